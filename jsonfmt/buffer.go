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

// Phase tells whether an output buffer only measures or actually emits bytes.
type Phase uint8

const (
	// Measuring buffers count bytes and never write them. Byte sources are
	// not pulled while measuring.
	Measuring Phase = iota
	// Emitting buffers deliver bytes to a destination.
	Emitting
)

// String returns the lower-case name of the phase.
func (p Phase) String() string {
	if p == Measuring {
		return "measuring"
	}
	return "emitting"
}

// outputBuffer is the sink the interpreter and the encoders write into.
// Implementations decide what happens to the bytes; all of them count every
// byte offered, so len always reports the untruncated output length.
type outputBuffer interface {
	// writeByte appends a single byte.
	writeByte(c byte)
	// writeString appends the bytes of s.
	writeString(s string)
	// writeBytes appends the bytes of b.
	writeBytes(b []byte)
	// len returns the number of bytes offered so far.
	len() int
	// phase reports whether the buffer measures or emits.
	phase() Phase
}

// measurer is implemented by buffers that can account for n bytes without
// being handed their values. Encoders whose input has side effects check for
// it and skip reading their input entirely.
type measurer interface {
	grow(n int)
}

// voidOutputBuffer discards all writes and only tracks the length of the
// would-be output. It backs the measure pass and zero-capacity destinations.
type voidOutputBuffer struct {
	length int
}

func (b *voidOutputBuffer) writeByte(byte) { b.length++ }

func (b *voidOutputBuffer) writeString(s string) { b.length += len(s) }

func (b *voidOutputBuffer) writeBytes(p []byte) { b.length += len(p) }

func (b *voidOutputBuffer) len() int { return b.length }

func (b *voidOutputBuffer) phase() Phase { return Measuring }

// grow accounts for n bytes that were never materialized.
func (b *voidOutputBuffer) grow(n int) { b.length += n }

// boundedOutputBuffer writes into a fixed caller-owned slice. Writes at or
// past len(dst) are dropped but still counted.
type boundedOutputBuffer struct {
	dst    []byte
	length int
}

func (b *boundedOutputBuffer) writeByte(c byte) {
	if b.length < len(b.dst) {
		b.dst[b.length] = c
	}
	b.length++
}

func (b *boundedOutputBuffer) writeString(s string) {
	if b.length < len(b.dst) {
		copy(b.dst[b.length:], s)
	}
	b.length += len(s)
}

func (b *boundedOutputBuffer) writeBytes(p []byte) {
	if b.length < len(b.dst) {
		copy(b.dst[b.length:], p)
	}
	b.length += len(p)
}

func (b *boundedOutputBuffer) len() int { return b.length }

func (b *boundedOutputBuffer) phase() Phase { return Emitting }

// terminate writes a NUL right after the output when there is room for it.
// The terminator is not counted.
func (b *boundedOutputBuffer) terminate() {
	if b.length < len(b.dst) {
		b.dst[b.length] = 0
	}
}

// callbackOutputBuffer hands every byte to fn as soon as it is produced.
type callbackOutputBuffer struct {
	fn     func(c byte)
	length int
}

func (b *callbackOutputBuffer) writeByte(c byte) {
	b.fn(c)
	b.length++
}

func (b *callbackOutputBuffer) writeString(s string) {
	for i := 0; i < len(s); i++ {
		b.fn(s[i])
	}
	b.length += len(s)
}

func (b *callbackOutputBuffer) writeBytes(p []byte) {
	for _, c := range p {
		b.fn(c)
	}
	b.length += len(p)
}

func (b *callbackOutputBuffer) len() int { return b.length }

func (b *callbackOutputBuffer) phase() Phase { return Emitting }

// newOutputBuffer picks the sink for a caller slice: an empty slice only
// measures, anything else is written up to its length.
func newOutputBuffer(dst []byte) outputBuffer {
	if len(dst) == 0 {
		return &voidOutputBuffer{}
	}
	return &boundedOutputBuffer{dst: dst}
}

// finish terminates bounded buffers and returns the output length.
func finish(out outputBuffer) int {
	if b, ok := out.(*boundedOutputBuffer); ok {
		b.terminate()
	}
	return out.len()
}
