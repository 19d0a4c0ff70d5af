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
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplu/jsonfmt/jsonfmt"
)

func TestConvertArgs(t *testing.T) {
	args, closeAll, err := convertArgs("{s:[i,f,v,V,S,b,x]} T", []string{"k", "-7", "2.5", "q", "r", "s", "b", "x"}, true)
	require.NoError(t, err)
	require.NoError(t, closeAll())

	kinds := make([]jsonfmt.Kind, len(args))
	for i, a := range args {
		kinds[i] = a.Kind()
	}
	assert.Equal(t, []jsonfmt.Kind{
		jsonfmt.KindString, jsonfmt.KindInt, jsonfmt.KindFloat,
		jsonfmt.KindBytes, jsonfmt.KindBytes, jsonfmt.KindString,
		jsonfmt.KindBytes, jsonfmt.KindBytes,
	}, kinds)
}

func TestConvertArgs_UnknownDirectivesAreLeftToTheEmitter(t *testing.T) {
	args, _, err := convertArgs("[q,i]", []string{"1"}, true)
	require.NoError(t, err)
	require.Len(t, args, 1)

	err = jsonfmt.Check("[q,i]", args...)
	assert.True(t, errors.Is(err, jsonfmt.ErrFormat))
}

func TestConvertArgs_Sources(t *testing.T) {
	path := writeFile(t, "payload", "hello")

	t.Run("open", func(t *testing.T) {
		args, closeAll, err := convertArgs("n", []string{path}, true)
		require.NoError(t, err)
		t.Cleanup(func() { assert.NoError(t, closeAll()) })

		buf := make([]byte, 16)
		n, err := jsonfmt.Emit(buf, "n", args...)
		require.NoError(t, err)
		assert.Equal(t, `"aGVsbG8="`, string(buf[:n]))
	})

	t.Run("measure only", func(t *testing.T) {
		args, closeAll, err := convertArgs("n", []string{path}, false)
		require.NoError(t, err)
		require.NoError(t, closeAll())

		n, err := jsonfmt.Emit(nil, "n", args...)
		require.NoError(t, err)
		assert.Equal(t, jsonfmt.QuotedBase64Len(5), n)

		_, err = jsonfmt.Emit(make([]byte, 16), "n", args...)
		assert.ErrorIs(t, err, jsonfmt.ErrSource, "an unopened source cannot be emitted")
	})
}

func TestConvertArgs_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		raw    []string
		code   string
	}{
		{name: "too few", format: "[i,i]", raw: []string{"1"}, code: "ARGUMENT_INVALID"},
		{name: "too many", format: "T", raw: []string{"1"}, code: "ARGUMENT_INVALID"},
		{name: "integer overflow", format: "i", raw: []string{"9223372036854775808"}, code: "ARGUMENT_INVALID"},
		{name: "not a float", format: "f", raw: []string{"one"}, code: "ARGUMENT_INVALID"},
		{name: "missing file", format: "n", raw: []string{"/nonexistent/file"}, code: "SOURCE_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, closeAll, err := convertArgs(tt.format, tt.raw, true)
			assert.Nil(t, args)
			assert.Nil(t, closeAll)
			assertErrorCode(t, err, tt.code)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "format", err: &jsonfmt.FormatError{Directive: 'q'}, code: "FORMAT_INVALID"},
		{name: "argument", err: &jsonfmt.ArgumentError{Directive: 'i', Want: jsonfmt.KindInt}, code: "ARGUMENT_INVALID"},
		{name: "source", err: &jsonfmt.SourceError{Err: io.ErrUnexpectedEOF}, code: "SOURCE_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err)
			assertErrorCode(t, err, tt.code)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, classify(nil))
}
