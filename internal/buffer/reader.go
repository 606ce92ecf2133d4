// Package buffer provides a bounds-checked cursor over an immutable byte
// slice.
//
// Every decoder in this module reads through a Reader instead of
// reinterpreting byte spans as typed record arrays. This keeps all bounds,
// alignment and endianness handling in one place and fails cleanly with
// errs.ErrUnexpectedEOF on truncated input.
package buffer

import (
	"fmt"

	"github.com/arloliu/codeview/endian"
	"github.com/arloliu/codeview/errs"
)

// Reader is a forward-only cursor over a byte slice. The underlying slice is
// never modified; multiple readers over the same slice are independent.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a cursor over data reading multi-byte fields in the
// CodeView byte order (little-endian).
func NewReader(data []byte) *Reader {
	return &Reader{data: data, engine: endian.GetLittleEndianEngine()}
}

// Pos returns the current position relative to the start of the buffer.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Empty reports whether all bytes have been consumed.
func (r *Reader) Empty() bool {
	return r.pos >= len(r.data)
}

// Take consumes and returns the next n bytes as a view over the underlying
// slice.
func (r *Reader) Take(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrUnexpectedEOF, n, r.pos, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// Skip consumes n bytes without returning them.
func (r *Reader) Skip(n int) error {
	_, err := r.Take(n)
	return err
}

// Uint8 consumes a single byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.Take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint16 consumes a 16-bit field.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Take(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

// Uint32 consumes a 32-bit field.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Take(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// Align advances the cursor to the next multiple of n relative to the start
// of the buffer. Reaching the end of the buffer exactly is not an error.
func (r *Reader) Align(n int) error {
	rem := r.pos % n
	if rem == 0 {
		return nil
	}

	return r.Skip(n - rem)
}
