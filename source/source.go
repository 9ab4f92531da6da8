// Package source provides the random-access byte sources a DEX file is
// decoded from: a memory-mapped file, a pair of read/seek callbacks, and a
// wrapper that counts the calls made against any of them.
//
// Every source is an io.ReadSeeker. A source is owned by a single decoding
// session and is not safe for concurrent use.
package source

import (
	"errors"
	"fmt"
	"io"

	"github.com/skdltmxn/dexinfo-go/internal/mmfile"
)

// Errors returned by sources
var (
	ErrInvalidWhence = errors.New("source: invalid seek whence")
	ErrNegativeSeek  = errors.New("source: negative seek position")
	ErrNoCallback    = errors.New("source: callback not set")
)

// File is a byte source backed by a memory-mapped file.
// It implements io.Reader, io.Seeker, io.ReaderAt and io.Closer.
type File struct {
	*io.SectionReader
	m mmfile.File
}

// Open maps the file at path and returns a source positioned at offset 0.
func Open(path string) (*File, error) {
	m, err := mmfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: failed to open file: %w", err)
	}
	return &File{
		SectionReader: io.NewSectionReader(m, 0, int64(m.Len())),
		m:             m,
	}, nil
}

// Close releases the mapping.
func (f *File) Close() error {
	return f.m.Close()
}

// Size returns the length of a seekable source without moving its cursor.
func Size(s io.Seeker) (int64, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}
