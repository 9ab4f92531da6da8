package source

import (
	"fmt"
	"io"
)

// Funcs adapts a read callback and a seek callback into a byte source, for
// callers that expose a file-like object rather than a path.
//
// ReadFunc follows the io.Reader contract: a short read returns the number
// of bytes actually produced. SeekFunc receives io.SeekStart, io.SeekCurrent
// or io.SeekEnd and returns the new absolute offset.
type Funcs struct {
	ReadFunc func(p []byte) (int, error)
	SeekFunc func(offset int64, whence int) (int64, error)
}

// Read implements io.Reader.
func (f Funcs) Read(p []byte) (int, error) {
	if f.ReadFunc == nil {
		return 0, ErrNoCallback
	}
	n, err := f.ReadFunc(p)
	if n < 0 || n > len(p) {
		return 0, fmt.Errorf("source: read callback returned %d for a %d byte buffer", n, len(p))
	}
	return n, err
}

// Seek implements io.Seeker.
func (f Funcs) Seek(offset int64, whence int) (int64, error) {
	if f.SeekFunc == nil {
		return 0, ErrNoCallback
	}
	switch whence {
	case io.SeekStart, io.SeekCurrent, io.SeekEnd:
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}
	pos, err := f.SeekFunc(offset, whence)
	if err != nil {
		return 0, err
	}
	if pos < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeSeek, pos)
	}
	return pos, nil
}
