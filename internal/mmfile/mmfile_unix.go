//go:build linux || darwin

package mmfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

type mapping struct {
	data   []byte
	closed bool
}

// Open maps the file at path into memory.
func Open(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &mapping{}, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmfile: mmap %s: %w", path, err)
	}
	// Tables, strings and class data are visited out of order. The hint is
	// advisory, so a failure leaves the mapping usable.
	_ = unix.Madvise(data, unix.MADV_RANDOM)

	return &mapping{data: data}, nil
}

func (m *mapping) Len() int {
	return len(m.data)
}

func (m *mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, errors.New("mmfile: file is closed")
	}
	if off < 0 {
		return 0, fmt.Errorf("mmfile: negative offset: %d", off)
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *mapping) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	if len(m.data) == 0 {
		return nil
	}
	data := m.data
	m.data = nil
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
