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

// Package jsonfmt writes JSON text from a compact, printf-style format string
// into a caller-supplied buffer of fixed size.
//
// Each byte of the format is a directive. Punctuation ("[]{},:" and \r, \n,
// \t) is copied as is, spaces are skipped, and value directives consume the
// next argument:
//
//	i   Int      decimal integer
//	f   Float    %g-style number, 6 significant digits by default
//	v   Bytes    quoted, escaped string
//	V   Bytes    raw bytes
//	s   String   quoted, escaped string up to the first NUL
//	S   String   raw bytes up to the first NUL
//	b   Bytes    quoted base64
//	n   Source   quoted base64 of bytes pulled from an io.ByteReader
//	x   Bytes    quoted lowercase hex
//	T F N        true, false, null
//
// For example:
//
//	buf := make([]byte, 64)
//	n, err := jsonfmt.Emit(buf, "{s:i}", jsonfmt.String("age"), jsonfmt.Int(30))
//	// buf[:n] is {"age":30}
//
// Like snprintf, every emitting function returns the length the complete
// output needs, even when the buffer is smaller; only the bytes that fit are
// written. Truncation is not an error: compare the returned length with the
// buffer length. An empty buffer only measures.
//
// The emitter checks that the arguments match the directives and reports a
// *FormatError or *ArgumentError otherwise. It does not check that the
// punctuation forms well-nested JSON.
package jsonfmt

import "io"

// Emit interprets format with args and writes the result into dst. It
// returns the length of the complete output; at most len(dst) bytes are
// written, and a NUL byte follows the output when it fits. An empty dst only
// measures and never reads Source arguments.
//
// On error the returned length covers what was produced before the failing
// directive.
func Emit(dst []byte, format string, args ...Arg) (int, error) {
	opts := DefaultOptions()
	return emit(dst, format, args, &opts)
}

// EmitWithOptions is Emit with explicit options.
func EmitWithOptions(dst []byte, opts Options, format string, args ...Arg) (int, error) {
	if err := opts.Validate(); err != nil {
		return 0, err
	}
	return emit(dst, format, args, &opts)
}

// EmitArgs is Emit taking a prepared argument list. A nil list is empty.
func EmitArgs(dst []byte, format string, args *Args) (int, error) {
	opts := DefaultOptions()
	var list []Arg
	if args != nil {
		list = args.list
	}
	return emit(dst, format, list, &opts)
}

// Check reports whether format is valid and args match it, without
// producing output or reading sources.
func Check(format string, args ...Arg) error {
	opts := DefaultOptions()
	return check(format, args, &opts)
}

func check(format string, args []Arg, opts *Options) error {
	out := &voidOutputBuffer{}
	err := run(format, args, opts, out)
	logPass(format, out, err)
	return err
}

func emit(dst []byte, format string, args []Arg, opts *Options) (int, error) {
	out := newOutputBuffer(dst)
	err := run(format, args, opts, out)
	logPass(format, out, err)
	return finish(out), err
}

// EmitLong writes v in base 10 into dst and returns the full length.
func EmitLong(dst []byte, v int64) int {
	out := newOutputBuffer(dst)
	encodeLong(out, v)
	return finish(out)
}

// EmitDouble writes v like C's %g (six significant digits, trailing zeros
// removed, exponent form for very small or large magnitudes) into dst and
// returns the full length. NaN and infinities are written as "NaN", "+Inf"
// and "-Inf", which are not valid JSON.
func EmitDouble(dst []byte, v float64) int {
	out := newOutputBuffer(dst)
	encodeDouble(out, v, defaultFloatPrecision)
	return finish(out)
}

// EmitQuotedString writes s as a JSON string literal into dst and returns
// the full length. Only '"', '\\', \b, \f, \n, \r and \t are escaped.
func EmitQuotedString[T ~[]byte | ~string](dst []byte, s T) int {
	out := newOutputBuffer(dst)
	encodeQuoted(out, s, 0)
	return finish(out)
}

// EmitUnquotedString copies s into dst and returns len(s).
func EmitUnquotedString[T ~[]byte | ~string](dst []byte, s T) int {
	out := newOutputBuffer(dst)
	encodeRaw(out, s)
	return finish(out)
}

// EmitQuotedBase64 writes src as a quoted, padded standard base64 string
// into dst and returns the full length.
func EmitQuotedBase64(dst []byte, src []byte) int {
	out := newOutputBuffer(dst)
	encodeQuotedBase64(out, src)
	return finish(out)
}

// EmitQuotedBase64Source writes n bytes pulled from src as a quoted base64
// string into dst and returns the full length. With an empty dst src is not
// read and the length is computed from n.
func EmitQuotedBase64Source(dst []byte, src io.ByteReader, n int) (int, error) {
	n = max(n, 0)
	out := newOutputBuffer(dst)
	pulled, err := encodeQuotedBase64Source(out, src, n)
	if err != nil {
		return finish(out), &SourceError{Pulled: pulled, Want: n, Err: err}
	}
	return finish(out), nil
}

// EmitQuotedHex writes src as quoted lowercase hex into dst and returns the
// full length.
func EmitQuotedHex(dst []byte, src []byte) int {
	out := newOutputBuffer(dst)
	encodeQuotedHex(out, src)
	return finish(out)
}
