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

import "golang.org/x/text/unicode/bidi"

// directiveKinds maps every value directive to the argument kind it consumes.
var directiveKinds = [256]Kind{
	'i': KindInt,
	'f': KindFloat,
	'v': KindBytes,
	'V': KindBytes,
	's': KindString,
	'S': KindString,
	'b': KindBytes,
	'n': KindSource,
	'x': KindBytes,
}

// literalTokens maps the literal directives to the bare JSON token they emit.
var literalTokens = [256]string{
	'T': "true",
	'F': "false",
	'N': "null",
}

// DirectiveKind returns the argument kind consumed by directive c, or
// KindNone for punctuation, literal tokens and unknown bytes.
func DirectiveKind(c byte) Kind { return directiveKinds[c] }

// isPunctuation checks if c is copied verbatim from the format to the output.
func isPunctuation(c byte) bool {
	switch c {
	case '[', ']', '{', '}', ',', ':', '\r', '\n', '\t':
		return true
	}
	return false
}

// shortEscape returns the letter of the two-byte JSON escape for c, or 0 if
// c has none. These are the only bytes escaped under the default policy.
func shortEscape(c byte) byte {
	switch c {
	case '"', '\\':
		return c
	case '\b':
		return 'b'
	case '\f':
		return 'f'
	case '\n':
		return 'n'
	case '\r':
		return 'r'
	case '\t':
		return 't'
	}
	return 0
}

// isBidiControl checks for the invisible characters that reorder displayed
// text: the explicit embedding, override and isolate controls plus the
// implicit marks LRM, RLM and ALM.
func isBidiControl(r rune) bool {
	switch r {
	case '\u200E', '\u200F', '\u061C':
		return true
	}
	prop, _ := bidi.LookupRune(r)
	switch prop.Class() {
	case bidi.LRE, bidi.RLE, bidi.LRO, bidi.RLO, bidi.PDF, bidi.LRI, bidi.RLI, bidi.FSI, bidi.PDI:
		return true
	}
	return false
}
