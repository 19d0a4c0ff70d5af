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
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Escape selects which bytes of a quoted string are escaped beyond the
// characters that always are: '"', '\\', and the control bytes \b, \f, \n,
// \r and \t.
//
// The zero value escapes only those and passes every other byte through
// unchanged, which yields raw UTF-8 inside strings and does not validate it.
type Escape uint8

const (
	// EscapeControl writes the remaining control bytes below 0x20 as \u00XX,
	// making the output strict RFC 8259 JSON for any input.
	EscapeControl Escape = 1 << iota
	// EscapeNonASCII writes every rune at or above 0x80 as \uXXXX, using a
	// surrogate pair outside the Basic Multilingual Plane. Invalid UTF-8
	// bytes become \ufffd. The output is pure ASCII.
	EscapeNonASCII
	// EscapeBidi writes bidirectional formatting controls as \uXXXX so they
	// cannot reorder text when the output is displayed.
	EscapeBidi
)

var escapeNames = []struct {
	flag Escape
	name string
}{
	{EscapeControl, "control"},
	{EscapeNonASCII, "non-ascii"},
	{EscapeBidi, "bidi"},
}

// String returns the comma-separated flag names, or "none".
func (e Escape) String() string {
	var names []string
	for _, n := range escapeNames {
		if e&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// ParseEscape parses a comma-separated list of "control", "non-ascii",
// "bidi" and "none". Blank entries are ignored.
func ParseEscape(s string) (Escape, error) {
	var e Escape
	for _, field := range strings.Split(s, ",") {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" || field == "none" {
			continue
		}
		found := false
		for _, n := range escapeNames {
			if n.name == field {
				e |= n.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("jsonfmt: unknown escape flag %q", field)
		}
	}
	return e, nil
}

// Normalization is the Unicode normalization form applied to quoted strings
// before they are escaped.
type Normalization uint8

const (
	// NormNone leaves strings untouched.
	NormNone Normalization = iota
	// NormNFC applies canonical composition.
	NormNFC
	// NormNFD applies canonical decomposition.
	NormNFD
	// NormNFKC applies compatibility composition.
	NormNFKC
	// NormNFKD applies compatibility decomposition.
	NormNFKD
)

var normalizationNames = [...]string{
	NormNone: "none",
	NormNFC:  "nfc",
	NormNFD:  "nfd",
	NormNFKC: "nfkc",
	NormNFKD: "nfkd",
}

// String returns the lower-case name of the form.
func (n Normalization) String() string {
	if int(n) < len(normalizationNames) {
		return normalizationNames[n]
	}
	return "unknown"
}

// ParseNormalization parses "none", "nfc", "nfd", "nfkc" or "nfkd". An
// empty string means "none".
func ParseNormalization(s string) (Normalization, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return NormNone, nil
	}
	for i, name := range normalizationNames {
		if name == s {
			return Normalization(i), nil
		}
	}
	return NormNone, fmt.Errorf("jsonfmt: unknown normalization form %q", s)
}

// form returns the x/text form, or false for NormNone.
func (n Normalization) form() (norm.Form, bool) {
	switch n {
	case NormNFC:
		return norm.NFC, true
	case NormNFD:
		return norm.NFD, true
	case NormNFKC:
		return norm.NFKC, true
	case NormNFKD:
		return norm.NFKD, true
	}
	return 0, false
}

// defaultFloatPrecision is the number of significant digits of C's %g.
const defaultFloatPrecision = 6

// Options configures how values are rendered. The zero value is ready to use
// and matches DefaultOptions.
type Options struct {
	// Escape adds escaping rules for quoted strings.
	Escape Escape
	// Normalize applies a Unicode normalization form to quoted strings ('v'
	// and 's'). Raw strings, base64 and hex are never normalized.
	Normalize Normalization
	// FloatPrecision is the number of significant digits written for 'f'.
	// 0 means the default of 6; -1 selects the shortest representation that
	// reads back to the same float64.
	FloatPrecision int
}

// DefaultOptions returns the reference behavior: minimal escaping, no
// normalization, six significant digits.
func DefaultOptions() Options {
	return Options{
		Escape:         0,
		Normalize:      NormNone,
		FloatPrecision: defaultFloatPrecision,
	}
}

// floatPrecision resolves the 0 default.
func (o *Options) floatPrecision() int {
	if o.FloatPrecision == 0 {
		return defaultFloatPrecision
	}
	return o.FloatPrecision
}

// Validate checks the option values.
func (o *Options) Validate() error {
	if o.FloatPrecision < -1 {
		return fmt.Errorf("jsonfmt: float precision must be -1 or greater, got %d", o.FloatPrecision)
	}
	if int(o.Normalize) >= len(normalizationNames) {
		return fmt.Errorf("jsonfmt: unknown normalization form %d", o.Normalize)
	}
	if o.Escape&^(EscapeControl|EscapeNonASCII|EscapeBidi) != 0 {
		return fmt.Errorf("jsonfmt: unknown escape flags %#x", uint8(o.Escape))
	}
	return nil
}
