// Package stream provides a bounds-checked cursor over DEX byte regions.
package stream

import (
	"encoding/binary"
	"errors"

	"github.com/skdltmxn/dexinfo-go/internal/leb128"
)

// ErrUnexpectedEOF is returned when a read needs more bytes than remain.
var ErrUnexpectedEOF = errors.New("stream: unexpected end of data")

// Reader reads little-endian values and ULEB128 varints from an owned
// byte slice. Every read checks the slice bounds and advances the cursor by
// exactly the bytes consumed.
type Reader struct {
	data   []byte
	offset int
}

// NewReader creates a Reader from a byte slice.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, offset: 0}
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.offset
}

// Remaining returns the number of bytes remaining.
func (r *Reader) Remaining() int {
	if r.offset >= len(r.data) {
		return 0
	}
	return len(r.data) - r.offset
}

// ReadU32 reads an unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint32(r.data[r.offset:])
	r.offset += 4
	return v, nil
}

// ReadULEB128 decodes one unsigned LEB128 value at the cursor.
func (r *Reader) ReadULEB128() (uint32, error) {
	v, n, err := leb128.Decode(r.RemainingData())
	if err != nil {
		return 0, ErrUnexpectedEOF
	}
	r.offset += n
	return v, nil
}

// RemainingData returns the remaining unread data.
func (r *Reader) RemainingData() []byte {
	if r.offset >= len(r.data) {
		return nil
	}
	return r.data[r.offset:]
}
