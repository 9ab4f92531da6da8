package dex

import (
	"errors"
	"io"
)

func seekTo(r io.Seeker, off int64) error {
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Offset: off, Err: err}
	}
	return nil
}

// readFull fills buf from r. Running out of data is a structural problem
// reported as kind; any other failure belongs to the source.
func readFull(r io.Reader, buf []byte, off int64, kind error, stage string) error {
	n, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return formatErr(kind, stage, off, "short read: got %d of %d bytes", n, len(buf))
	default:
		return &IOError{Op: "read", Offset: off, Err: err}
	}
}

// readAt seeks to off and fills buf.
func readAt(r io.ReadSeeker, buf []byte, off int64, kind error, stage string) error {
	if err := seekTo(r, off); err != nil {
		return err
	}
	return readFull(r, buf, off, kind, stage)
}
