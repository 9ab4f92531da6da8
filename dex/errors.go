package dex

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying what is structurally wrong with a DEX file.
// Every error returned by this package wraps exactly one of them, so callers
// can branch with errors.Is.
var (
	// ErrBadMagic indicates the first eight bytes are not "dex\n0XX\0".
	ErrBadMagic = errors.New("dex: bad magic")

	// ErrUnsupportedVersion indicates a version other than 035. It is
	// reported as a diagnostic and does not stop decoding.
	ErrUnsupportedVersion = errors.New("dex: unsupported version")

	// ErrBadHeaderSize indicates header_size is not 0x70.
	ErrBadHeaderSize = errors.New("dex: bad header size")

	// ErrBadEndianTag indicates endian_tag is not 0x12345678.
	ErrBadEndianTag = errors.New("dex: bad endian tag")

	// ErrTruncatedHeader indicates the source is shorter than a header.
	ErrTruncatedHeader = errors.New("dex: truncated header")

	// ErrTruncatedTable indicates an id table or class def extends past
	// the end of the source.
	ErrTruncatedTable = errors.New("dex: truncated table")

	// ErrTruncatedString indicates string data extends past the end of
	// the source.
	ErrTruncatedString = errors.New("dex: truncated string")

	// ErrTruncatedClassData indicates a class data record runs past the
	// end of its region.
	ErrTruncatedClassData = errors.New("dex: truncated class data")

	// ErrIndexOutOfRange indicates an index outside its table.
	ErrIndexOutOfRange = errors.New("dex: index out of range")

	// ErrInvalidLayout indicates offsets in the header cannot describe a
	// class data region.
	ErrInvalidLayout = errors.New("dex: invalid layout")
)

// FormatError provides detailed information about a structural failure.
type FormatError struct {
	Kind    error  // One of the sentinel errors above
	Stage   string // Decoding stage where the error occurred
	Offset  int64  // Byte offset within the file, or -1 when unknown
	Message string // Description of the error
}

func (e *FormatError) Error() string {
	msg := e.Kind.Error()
	if e.Stage != "" {
		msg += " in " + e.Stage
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset 0x%x", e.Offset)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Kind }

func formatErr(kind error, stage string, off int64, format string, args ...any) error {
	return &FormatError{
		Kind:    kind,
		Stage:   stage,
		Offset:  off,
		Message: fmt.Sprintf(format, args...),
	}
}

// IOError reports a failure of the underlying byte source.
type IOError struct {
	Op     string // "read" or "seek"
	Offset int64  // Target offset
	Err    error  // Error returned by the source
}

func (e *IOError) Error() string {
	return fmt.Sprintf("dex: %s at offset 0x%x: %v", e.Op, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
