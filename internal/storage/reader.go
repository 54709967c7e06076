// Package storage moves the buffer's character stream to and from files.
// The on-disk contract is a plain UTF-8 character stream.
package storage

import (
	"bufio"
	"errors"
	"io"
)

// Reader yields characters one at a time with carriage returns collapsed:
// a '\r' is dropped and the character after it is returned in its place, so
// "\r\n" reads as "\n" and a trailing lone '\r' reads as end of input.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next character, or io.EOF when the input is exhausted.
func (cr *Reader) Next() (rune, error) {
	r, _, err := cr.r.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == '\r' {
		r, _, err = cr.r.ReadRune()
		if err != nil {
			return 0, err
		}
	}
	return r, nil
}

// LoadFrom feeds every character of r to sink.
func LoadFrom(r io.Reader, sink func(rune)) error {
	cr := NewReader(r)
	for {
		ch, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		sink(ch)
	}
}

// WriteTo drains next into w. next reports false once the document is exhausted.
func WriteTo(w io.Writer, next func() (rune, bool)) error {
	bw := bufio.NewWriter(w)
	for r, ok := next(); ok; r, ok = next() {
		if _, err := bw.WriteRune(r); err != nil {
			return err
		}
	}
	return bw.Flush()
}
