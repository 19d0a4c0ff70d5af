/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// run executes a fresh root command with args and returns its output streams.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// assertErrorCode asserts that err is an oops error with the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	assert.Equal(t, code, oopsErr.Code())
}

// writeFile creates a file with content in a test directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := run(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "size")
	for _, flag := range []string{"--capacity", "--escape", "--normalize", "--float-precision", "--newline", "--config"} {
		assert.Contains(t, stdout, flag, "Help missing %q flag", flag)
	}
}

func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	cmd.Version = "test-version"
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "test-version")
}

func TestRootCommand_Render(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "object",
			args: []string{"{s:i}", "age", "30"},
			want: "{\"age\":30}\n",
		},
		{
			name: "array with spaces and negative number",
			args: []string{"[i, i, f]", "1", "-2", "0.5"},
			want: "[1,-2,0.5]\n",
		},
		{
			name: "literals without arguments",
			args: []string{"[T,F,N]"},
			want: "[true,false,null]\n",
		},
		{
			name: "base64 and hex",
			args: []string{"[b,x]", "Man", "Hi"},
			want: "[\"TWFu\",\"4869\"]\n",
		},
		{
			name: "raw string",
			args: []string{"{s:S}", "nested", `{"a":1}`},
			want: "{\"nested\":{\"a\":1}}\n",
		},
		{
			name: "no trailing newline",
			args: []string{"--newline=false", "s", "x"},
			want: `"x"`,
		},
		{
			name: "escape flags",
			args: []string{"--escape", "non-ascii", "s", "\u00e9"},
			want: "\"\\u00e9\"\n",
		},
		{
			name: "normalization",
			args: []string{"--normalize", "nfc", "s", "e\u0301"},
			want: "\"\u00e9\"\n",
		},
		{
			name: "float precision",
			args: []string{"--float-precision", "3", "f", "3.14159"},
			want: "3.14\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRootCommand_Source(t *testing.T) {
	path := writeFile(t, "data.bin", "foobar")

	stdout, _, err := run(t, "{s:n}", "data", path)
	require.NoError(t, err)
	assert.Equal(t, "{\"data\":\"Zm9vYmFy\"}\n", stdout)
}

func TestRootCommand_Truncation(t *testing.T) {
	stdout, stderr, err := run(t, "--capacity", "5", "s", "hello")
	require.NoError(t, err)
	assert.Equal(t, "\"hell\n", stdout)
	assert.Contains(t, stderr, "output truncated")
	assert.Contains(t, stderr, "\"required\": 7")
}

func TestRootCommand_TruncationJSONLog(t *testing.T) {
	_, stderr, err := run(t, "--capacity", "0", "--log-format", "json", "--newline=false", "i", "12345")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"output truncated"`)
	assert.Contains(t, stderr, `"required":5`)
	assert.Contains(t, stderr, `"capacity":0`)
}

func TestRootCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{name: "unknown directive", args: []string{"[q]"}, code: "FORMAT_INVALID"},
		{name: "missing argument", args: []string{"[i,i]", "1"}, code: "ARGUMENT_INVALID"},
		{name: "surplus argument", args: []string{"i", "1", "2"}, code: "ARGUMENT_INVALID"},
		{name: "invalid integer", args: []string{"i", "abc"}, code: "ARGUMENT_INVALID"},
		{name: "invalid number", args: []string{"f", "1.2.3"}, code: "ARGUMENT_INVALID"},
		{name: "missing source file", args: []string{"n", filepath.Join(t.TempDir(), "absent")}, code: "SOURCE_FAILED"},
		{name: "source is a directory", args: []string{"n", t.TempDir()}, code: "SOURCE_FAILED"},
		{name: "unknown escape flag", args: []string{"--escape", "all", "T"}, code: "CONFIG_INVALID"},
		{name: "unknown log format", args: []string{"--log-format", "xml", "T"}, code: "CONFIG_INVALID"},
		{name: "capacity below -1", args: []string{"--capacity", "-2", "T"}, code: "CONFIG_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := run(t, tt.args...)
			require.Error(t, err)
			assertErrorCode(t, err, tt.code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.code)
		})
	}
}

func TestRootCommand_RequiresFormat(t *testing.T) {
	_, _, err := run(t)
	require.Error(t, err)
}

func TestSizeCommand(t *testing.T) {
	path := writeFile(t, "data.bin", "foobar")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "object", args: []string{"size", "{s:i}", "age", "30"}, want: "10\n"},
		{name: "source is measured", args: []string{"size", "{s:n}", "k", path}, want: "16\n"},
		{name: "escaping changes the size", args: []string{"size", "--escape", "non-ascii", "s", "\u00e9"}, want: "8\n"},
		{name: "no newline", args: []string{"size", "--newline=false", "T"}, want: "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestSizeCommand_DoesNotOpenSources(t *testing.T) {
	path := writeFile(t, "secret.bin", "abc")
	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() { _ = os.Chmod(path, 0o600) })

	stdout, _, err := run(t, "size", "n", path)
	require.NoError(t, err)
	assert.Equal(t, "6\n", stdout)
}
