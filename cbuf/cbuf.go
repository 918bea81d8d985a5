/*
Package cbuf implements a look-ahead character buffer.

The tokenizer and the regex engine do not read their input directly.
Instead they operate on a Buffer, which reads characters from an
io.RuneReader on demand and keeps everything between the current logical
read position and the furthest position peeked so far. This makes
Peek(k) O(1) amortized and lets matchers look arbitrarily far ahead
without committing to consuming anything.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cbuf

import (
	"fmt"
	"io"
)

// Buffer is a look-ahead character buffer over an io.RuneReader.
// The zero value is not usable; create one with New.
type Buffer struct {
	in   io.RuneReader
	data []rune // characters peeked but not yet consumed; data[0] is at Pos()
	pos  int    // absolute input position of data[0]
	eof  bool   // the underlying reader is exhausted
	err  error  // sticky I/O error, io.EOF excluded
}

// New creates a buffer reading from in. A nil reader behaves like an
// empty input.
func New(in io.RuneReader) *Buffer {
	return &Buffer{in: in, eof: in == nil}
}

// Pos returns the current logical read position, i.e. the absolute index
// of the next character Read will consume. The first character of the
// input is at position 0.
func (b *Buffer) Pos() int {
	return b.pos
}

// Peek returns the character at offset characters after the current
// position, without consuming anything, or -1 if the input ends before
// that offset. I/O errors make Peek return -1 as well; they are sticky
// and retrievable through Err.
func (b *Buffer) Peek(offset int) int {
	if !b.fill(offset + 1) {
		return -1
	}
	return int(b.data[offset])
}

// Read consumes the next n characters and returns them. Fewer characters
// are returned if the input ends early.
func (b *Buffer) Read(n int) string {
	b.fill(n)
	if n > len(b.data) {
		n = len(b.data)
	}
	s := string(b.data[:n])
	b.data = b.data[n:]
	b.pos += n
	return s
}

// Substring returns n characters starting at absolute position start.
// The range must already have been materialized by Peek or Read and must
// not lie before the current position.
func (b *Buffer) Substring(start, n int) (string, error) {
	if start < b.pos {
		return "", fmt.Errorf("cbuf: substring start %d before position %d", start, b.pos)
	}
	lo := start - b.pos
	if lo+n > len(b.data) {
		return "", fmt.Errorf("cbuf: substring (%d,%d) not materialized", start, n)
	}
	return string(b.data[lo : lo+n]), nil
}

// Err returns the sticky I/O error of the underlying reader, if any.
// Reaching the end of the input is not an error.
func (b *Buffer) Err() error {
	return b.err
}

// fill makes sure at least n characters are buffered. It returns false
// if the input ends (or fails) before n characters are available.
func (b *Buffer) fill(n int) bool {
	for len(b.data) < n {
		if b.eof {
			return false
		}
		r, _, err := b.in.ReadRune()
		if err != nil {
			b.eof = true
			if err != io.EOF {
				b.err = err
			}
			return false
		}
		b.data = append(b.data, r)
	}
	return true
}
