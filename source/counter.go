package source

import "io"

// Counter wraps a byte source and records how it is used.
type Counter struct {
	src io.ReadSeeker

	Reads     int   // number of Read calls
	Seeks     int   // number of Seek calls
	BytesRead int64 // total bytes returned by Read
}

// NewCounter wraps src.
func NewCounter(src io.ReadSeeker) *Counter {
	return &Counter{src: src}
}

// Read implements io.Reader.
func (c *Counter) Read(p []byte) (int, error) {
	c.Reads++
	n, err := c.src.Read(p)
	c.BytesRead += int64(n)
	return n, err
}

// Seek implements io.Seeker.
func (c *Counter) Seek(offset int64, whence int) (int64, error) {
	c.Seeks++
	return c.src.Seek(offset, whence)
}

// Reset zeroes the counters.
func (c *Counter) Reset() {
	c.Reads = 0
	c.Seeks = 0
	c.BytesRead = 0
}
