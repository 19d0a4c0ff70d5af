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
	"errors"
	"io"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// base64Alphabet is the standard RFC 4648 alphabet.
const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const hexDigits = "0123456789abcdef"

// QuotedBase64Len returns the length of n bytes encoded as a quoted, padded
// base64 string.
func QuotedBase64Len(n int) int {
	return 2 + (n+2)/3*4
}

// QuotedHexLen returns the length of n bytes encoded as a quoted hex string.
func QuotedHexLen(n int) int {
	return 2 + 2*n
}

// encodeLong writes v in base 10.
func encodeLong(out outputBuffer, v int64) {
	var tmp [20]byte
	out.writeBytes(strconv.AppendInt(tmp[:0], v, 10))
}

// encodeDouble writes v in the %g style with prec significant digits, or
// the shortest round-trip form when prec is -1.
func encodeDouble(out outputBuffer, v float64, prec int) {
	var tmp [32]byte
	out.writeBytes(strconv.AppendFloat(tmp[:0], v, 'g', prec, 64))
}

// encodeRaw copies s verbatim.
func encodeRaw[T ~[]byte | ~string](out outputBuffer, s T) {
	switch v := any(s).(type) {
	case string:
		out.writeString(v)
	case []byte:
		out.writeBytes(v)
	default:
		for i := 0; i < len(s); i++ {
			out.writeByte(s[i])
		}
	}
}

// encodeQuoted writes s as a JSON string literal under the escape policy esc.
func encodeQuoted[T ~[]byte | ~string](out outputBuffer, s T, esc Escape) {
	out.writeByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			encodeASCII(out, c, esc)
			i++
			continue
		}
		if esc&(EscapeNonASCII|EscapeBidi) == 0 {
			out.writeByte(c)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(string(s[i:min(i+utf8.UTFMax, len(s))]))
		switch {
		case r == utf8.RuneError && size == 1:
			if esc&EscapeNonASCII != 0 {
				writeUnicodeEscape(out, utf8.RuneError)
			} else {
				out.writeByte(c)
			}
		case esc&EscapeNonASCII != 0 || isBidiControl(r):
			writeUnicodeEscape(out, r)
		default:
			for j := range size {
				out.writeByte(s[i+j])
			}
		}
		i += size
	}
	out.writeByte('"')
}

// encodeASCII writes one byte below 0x80 of a string literal.
func encodeASCII(out outputBuffer, c byte, esc Escape) {
	if e := shortEscape(c); e != 0 {
		out.writeByte('\\')
		out.writeByte(e)
		return
	}
	if c < 0x20 && esc&EscapeControl != 0 {
		writeUnicodeEscape(out, rune(c))
		return
	}
	out.writeByte(c)
}

// writeUnicodeEscape writes r as \uXXXX, or as a surrogate pair of two such
// escapes when r is outside the Basic Multilingual Plane.
func writeUnicodeEscape(out outputBuffer, r rune) {
	if r >= 0x10000 {
		r1, r2 := utf16.EncodeRune(r)
		writeUnicodeEscape(out, r1)
		writeUnicodeEscape(out, r2)
		return
	}
	out.writeString(`\u`)
	out.writeByte(hexDigits[r>>12&0x0f])
	out.writeByte(hexDigits[r>>8&0x0f])
	out.writeByte(hexDigits[r>>4&0x0f])
	out.writeByte(hexDigits[r&0x0f])
}

// encodeQuotedBase64 writes src as a quoted, padded base64 string.
func encodeQuotedBase64(out outputBuffer, src []byte) {
	out.writeByte('"')
	i := 0
	for ; i+2 < len(src); i += 3 {
		writeBase64Group(out, src[i], src[i+1], src[i+2], 3)
	}
	switch len(src) - i {
	case 1:
		writeBase64Group(out, src[i], 0, 0, 1)
	case 2:
		writeBase64Group(out, src[i], src[i+1], 0, 2)
	}
	out.writeByte('"')
}

// writeBase64Group writes the four characters for a group of n (1 to 3)
// input bytes, padding with '=' when n < 3. Unused inputs must be zero.
func writeBase64Group(out outputBuffer, b0, b1, b2 byte, n int) {
	out.writeByte(base64Alphabet[b0>>2])
	out.writeByte(base64Alphabet[(b0&0x03)<<4|b1>>4])
	if n > 1 {
		out.writeByte(base64Alphabet[(b1&0x0f)<<2|b2>>6])
	} else {
		out.writeByte('=')
	}
	if n > 2 {
		out.writeByte(base64Alphabet[b2&0x3f])
	} else {
		out.writeByte('=')
	}
}

// encodeQuotedBase64Source writes n bytes pulled from src as a quoted base64
// string and returns how many bytes it pulled. Measuring buffers only grow by
// the encoded length: src is not touched. On a read error the output stops
// after the last complete group.
func encodeQuotedBase64Source(out outputBuffer, src io.ByteReader, n int) (int, error) {
	if m, ok := out.(measurer); ok {
		m.grow(QuotedBase64Len(n))
		return 0, nil
	}
	if src == nil && n > 0 {
		return 0, errNilSource
	}
	out.writeByte('"')
	var group [3]byte
	pulled := 0
	for pulled < n {
		k := min(3, n-pulled)
		for j := range k {
			c, err := src.ReadByte()
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = io.ErrUnexpectedEOF
				}
				return pulled, err
			}
			group[j] = c
			pulled++
		}
		for j := k; j < 3; j++ {
			group[j] = 0
		}
		writeBase64Group(out, group[0], group[1], group[2], k)
	}
	out.writeByte('"')
	return pulled, nil
}

// encodeQuotedHex writes src as a quoted string of lowercase hex digits,
// high nibble first.
func encodeQuotedHex(out outputBuffer, src []byte) {
	out.writeByte('"')
	for _, c := range src {
		out.writeByte(hexDigits[c>>4])
		out.writeByte(hexDigits[c&0x0f])
	}
	out.writeByte('"')
}
