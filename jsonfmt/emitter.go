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

import "slices"

// Emitter is a format bound to a checked argument list. It separates asking
// how large the output is from producing it: Size runs a measuring pass, and
// EmitTo or Emit run an emitting pass. Each pass restarts from the first
// argument.
//
// An Emitter whose arguments include a Source pulls from it on every
// emitting pass; such an Emitter should be emitted once.
type Emitter struct {
	format string
	args   []Arg
	opts   Options
}

// NewEmitter checks format against args with the default options. A format
// with an unknown directive or an argument list of the wrong shape is
// rejected here, so later passes can only fail on a Source read.
func NewEmitter(format string, args ...Arg) (*Emitter, error) {
	return NewEmitterWithOptions(DefaultOptions(), format, args...)
}

// NewEmitterWithOptions is NewEmitter with explicit options.
func NewEmitterWithOptions(opts Options, format string, args ...Arg) (*Emitter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := check(format, args, &opts); err != nil {
		return nil, err
	}
	return &Emitter{format: format, args: slices.Clone(args), opts: opts}, nil
}

// Format returns the format string.
func (e *Emitter) Format() string { return e.format }

// Size returns the length of the output without producing it. Sources are
// not read.
func (e *Emitter) Size() int {
	out := &voidOutputBuffer{}
	err := run(e.format, e.args, &e.opts, out)
	logPass(e.format, out, err)
	return out.len()
}

// EmitTo produces the output one byte at a time through fn and returns the
// number of bytes delivered. The only possible error is a *SourceError.
func (e *Emitter) EmitTo(fn func(c byte)) (int, error) {
	out := &callbackOutputBuffer{fn: fn}
	err := run(e.format, e.args, &e.opts, out)
	logPass(e.format, out, err)
	return out.len(), err
}

// Emit writes the output into dst with the semantics of the package-level
// Emit function.
func (e *Emitter) Emit(dst []byte) (int, error) {
	return emit(dst, e.format, e.args, &e.opts)
}
