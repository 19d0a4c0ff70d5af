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

package jsonfmt

import (
	"io"
	"slices"
	"strings"
)

// Kind identifies the type carried by an Arg.
type Kind uint8

const (
	// KindNone marks the absence of an argument.
	KindNone Kind = iota
	// KindInt is a signed integer, consumed by 'i'.
	KindInt
	// KindFloat is a float64, consumed by 'f'.
	KindFloat
	// KindBytes is a byte slice with an explicit length, consumed by 'v', 'V', 'b' and 'x'.
	KindBytes
	// KindString is a NUL-terminated string, consumed by 's' and 'S'.
	KindString
	// KindSource is a byte source with a declared length, consumed by 'n'.
	KindSource
)

var kindNames = [...]string{
	KindNone:   "no",
	KindInt:    "int",
	KindFloat:  "float",
	KindBytes:  "bytes",
	KindString: "string",
	KindSource: "source",
}

// String returns the name used in error messages.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Arg is one typed value of an argument list. The zero Arg has KindNone and
// matches no directive.
type Arg struct {
	kind Kind
	i    int64
	f    float64
	b    []byte
	s    string
	src  io.ByteReader
	n    int
}

// Kind returns the kind of the argument.
func (a Arg) Kind() Kind { return a.kind }

// Int returns an argument for the 'i' directive.
func Int(v int64) Arg { return Arg{kind: KindInt, i: v} }

// Float returns an argument for the 'f' directive.
func Float(v float64) Arg { return Arg{kind: KindFloat, f: v} }

// Bytes returns an argument for the 'v', 'V', 'b' and 'x' directives. The
// whole slice is used, embedded NUL bytes included. The slice is not copied.
func Bytes(b []byte) Arg { return Arg{kind: KindBytes, b: b} }

// String returns an argument for the 's' and 'S' directives. Like a C string,
// only the bytes before the first NUL are used.
func String(s string) Arg { return Arg{kind: KindString, s: s} }

// Source returns an argument for the 'n' directive: n bytes pulled from src
// one at a time while emitting. Reading from src has side effects, so it is
// only read by passes that deliver output, exactly once per byte, and never
// while measuring. A negative n is treated as zero.
func Source(src io.ByteReader, n int) Arg {
	return Arg{kind: KindSource, src: src, n: max(n, 0)}
}

// PullFunc adapts a function returning successive bytes to io.ByteReader.
// It never fails; the caller must declare exactly as many bytes as the
// function can produce.
type PullFunc func() byte

// ReadByte calls f.
func (f PullFunc) ReadByte() (byte, error) { return f(), nil }

// cString returns s up to, not including, its first NUL byte.
func cString(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

// Args builds an argument list fluently:
//
//	args := jsonfmt.NewArgs().String("age").Int(30)
//	n, err := jsonfmt.EmitArgs(buf, "{s:i}", args)
type Args struct {
	list []Arg
}

// NewArgs returns an empty argument list.
func NewArgs() *Args { return &Args{} }

// Int appends an 'i' argument.
func (a *Args) Int(v int64) *Args { return a.add(Int(v)) }

// Float appends an 'f' argument.
func (a *Args) Float(v float64) *Args { return a.add(Float(v)) }

// Bytes appends a 'v', 'V', 'b' or 'x' argument.
func (a *Args) Bytes(b []byte) *Args { return a.add(Bytes(b)) }

// String appends an 's' or 'S' argument.
func (a *Args) String(s string) *Args { return a.add(String(s)) }

// Source appends an 'n' argument.
func (a *Args) Source(src io.ByteReader, n int) *Args { return a.add(Source(src, n)) }

// Len returns the number of arguments.
func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.list)
}

// List returns a copy of the arguments in order.
func (a *Args) List() []Arg {
	if a == nil {
		return nil
	}
	return slices.Clone(a.list)
}

func (a *Args) add(arg Arg) *Args {
	a.list = append(a.list, arg)
	return a
}
