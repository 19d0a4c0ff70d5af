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

import "strings"

// formatInput provides a reader-like interface over the format string with
// position tracking for error reports.
type formatInput struct {
	format string
	reader *strings.Reader
}

// newFormatInput creates a formatInput over s.
func newFormatInput(s string) *formatInput {
	return &formatInput{
		format: s,
		reader: strings.NewReader(s),
	}
}

// next reads the next byte, advancing the position.
func (p *formatInput) next() (byte, bool) {
	c, err := p.reader.ReadByte()
	return c, err == nil
}

// position returns the offset of the next unread byte.
func (p *formatInput) position() int {
	return len(p.format) - p.reader.Len()
}

// argCursor walks an argument list, checking each argument against the kind
// the current directive consumes.
type argCursor struct {
	args []Arg
	pos  int
}

// next returns the next argument if it has kind want. directive and offset
// only feed the error report.
func (c *argCursor) next(directive byte, offset int, want Kind) (Arg, int, error) {
	index := c.pos
	if index >= len(c.args) {
		return Arg{}, index, &ArgumentError{Directive: directive, Offset: offset, Index: index, Want: want}
	}
	arg := c.args[index]
	if arg.kind != want {
		return Arg{}, index, &ArgumentError{
			Directive: directive, Offset: offset, Index: index, Want: want, Got: arg.kind,
		}
	}
	c.pos++
	return arg, index, nil
}

// finish reports the first argument left unconsumed, if any.
func (c *argCursor) finish(offset int) error {
	if c.pos >= len(c.args) {
		return nil
	}
	return &ArgumentError{Offset: offset, Index: c.pos, Got: c.args[c.pos].kind}
}
