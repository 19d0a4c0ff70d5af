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

// run interprets format against args, writing into output. It stops at the
// first error; everything written before it stays in output.
func run(format string, args []Arg, opts *Options, output outputBuffer) error {
	p := &interpreter{
		input:  newFormatInput(format),
		args:   &argCursor{args: args},
		output: output,
		opts:   opts,
	}
	return p.parse()
}

// interpreter holds the state of a single pass over a format string.
type interpreter struct {
	input  *formatInput
	args   *argCursor
	output outputBuffer
	opts   *Options
}

// parse consumes the whole format, then checks that no argument is left.
func (p *interpreter) parse() error {
	for {
		offset := p.input.position()
		c, ok := p.input.next()
		if !ok {
			return p.args.finish(offset)
		}
		if err := p.directive(c, offset); err != nil {
			return err
		}
	}
}

// directive dispatches one format byte.
func (p *interpreter) directive(c byte, offset int) error {
	if c == ' ' {
		return nil
	}
	if isPunctuation(c) {
		p.output.writeByte(c)
		return nil
	}
	if tok := literalTokens[c]; tok != "" {
		p.output.writeString(tok)
		return nil
	}
	want := directiveKinds[c]
	if want == KindNone {
		return &FormatError{Directive: c, Offset: offset}
	}
	arg, index, err := p.args.next(c, offset, want)
	if err != nil {
		return err
	}

	switch c {
	case 'i':
		encodeLong(p.output, arg.i)
	case 'f':
		encodeDouble(p.output, arg.f, p.opts.floatPrecision())
	case 'v':
		p.quoteBytes(arg.b)
	case 'V':
		encodeRaw(p.output, arg.b)
	case 's':
		p.quoteString(cString(arg.s))
	case 'S':
		encodeRaw(p.output, cString(arg.s))
	case 'b':
		encodeQuotedBase64(p.output, arg.b)
	case 'x':
		encodeQuotedHex(p.output, arg.b)
	case 'n':
		pulled, err := encodeQuotedBase64Source(p.output, arg.src, arg.n)
		if err != nil {
			return &SourceError{Offset: offset, Index: index, Pulled: pulled, Want: arg.n, Err: err}
		}
	}
	return nil
}

// quoteBytes applies the normalization option and quotes b.
func (p *interpreter) quoteBytes(b []byte) {
	if form, ok := p.opts.Normalize.form(); ok && !form.IsNormal(b) {
		b = form.Bytes(b)
	}
	encodeQuoted(p.output, b, p.opts.Escape)
}

// quoteString applies the normalization option and quotes s.
func (p *interpreter) quoteString(s string) {
	if form, ok := p.opts.Normalize.form(); ok && !form.IsNormalString(s) {
		s = form.String(s)
	}
	encodeQuoted(p.output, s, p.opts.Escape)
}
