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
	"fmt"
)

// Sentinel errors matched by the concrete error types of this package with
// errors.Is.
var (
	// ErrFormat is matched by *FormatError.
	ErrFormat = errors.New("invalid format directive")
	// ErrArgumentMismatch is matched by *ArgumentError.
	ErrArgumentMismatch = errors.New("argument does not match format")
	// ErrSource is matched by *SourceError.
	ErrSource = errors.New("byte source failed")
)

// errNilSource is reported when an emit pass reaches a Source argument that
// carries no reader.
var errNilSource = errors.New("nil byte source")

// FormatError reports a byte in the format string that is neither a
// directive nor allowed punctuation. Processing stops at that byte.
type FormatError struct {
	// Directive is the offending byte.
	Directive byte
	// Offset is the byte offset of Directive in the format string.
	Offset int
}

// Error returns a message naming the directive and its position.
func (e *FormatError) Error() string {
	return fmt.Sprintf("jsonfmt: unknown directive %q at offset %d", e.Directive, e.Offset)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// ArgumentError reports an argument list that does not fit the format: a
// directive found no argument left, found one of the wrong kind, or the
// format ended while arguments remained.
type ArgumentError struct {
	// Directive is the directive being served, or 0 when arguments remain
	// after the end of the format.
	Directive byte
	// Offset is the byte offset of Directive in the format string, or the
	// format length for surplus arguments.
	Offset int
	// Index is the position of the offending argument in the list.
	Index int
	// Want is the kind the directive consumes; KindNone for surplus arguments.
	Want Kind
	// Got is the kind that was supplied; KindNone when the list ran out.
	Got Kind
}

// Error returns a message describing the mismatch.
func (e *ArgumentError) Error() string {
	switch {
	case e.Directive == 0:
		return fmt.Sprintf("jsonfmt: unused %s argument at index %d after end of format", e.Got, e.Index)
	case e.Got == KindNone:
		return fmt.Sprintf("jsonfmt: directive %q at offset %d expects %s argument at index %d, none left",
			e.Directive, e.Offset, e.Want, e.Index)
	default:
		return fmt.Sprintf("jsonfmt: directive %q at offset %d expects %s argument at index %d, got %s",
			e.Directive, e.Offset, e.Want, e.Index, e.Got)
	}
}

// Is reports whether target is ErrArgumentMismatch.
func (e *ArgumentError) Is(target error) bool { return target == ErrArgumentMismatch }

// SourceError reports a byte source that failed or ran dry before
// delivering the declared number of bytes.
type SourceError struct {
	// Offset is the byte offset of the 'n' directive in the format string.
	Offset int
	// Index is the position of the Source argument in the list.
	Index int
	// Pulled is the number of bytes successfully read before the failure.
	Pulled int
	// Want is the declared length of the source.
	Want int
	// Err is the underlying read error. An early io.EOF is reported as
	// io.ErrUnexpectedEOF.
	Err error
}

// Error returns a message with the read progress and the cause.
func (e *SourceError) Error() string {
	return fmt.Sprintf("jsonfmt: byte source at index %d failed after %d of %d bytes: %v",
		e.Index, e.Pulled, e.Want, e.Err)
}

// Unwrap returns the underlying read error.
func (e *SourceError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSource.
func (e *SourceError) Is(target error) bool { return target == ErrSource }
