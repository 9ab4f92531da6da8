package dex

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderItemSize is the size of the header_item structure
const HeaderItemSize = 0x70

// Header constants
const (
	EndianConstant        = 0x12345678
	ReverseEndianConstant = 0x78563412
	SupportedVersion      = "035"
)

// NoIndex marks an absent index in fields such as source_file_idx.
const NoIndex = 0xFFFFFFFF

// Byte offsets of the validated header fields.
const (
	offMagic      = 0x00
	offVersion    = 0x04
	offHeaderSize = 0x24
	offEndianTag  = 0x28
)

// Header is the header_item located at file offset 0.
// https://source.android.com/docs/core/runtime/dex-format#header-item
type Header struct {
	// Magic is "dex\n" followed by a three digit version and a NUL
	Magic [8]byte

	// Checksum is the adler32 of everything after this field
	Checksum uint32

	// Signature is the SHA-1 of everything after this field
	Signature [20]byte

	FileSize   uint32
	HeaderSize uint32
	EndianTag  uint32

	LinkSize uint32
	LinkOff  uint32

	// MapOff is the offset of the map_item list. In practice it follows
	// the class data, which is what bounds a class data region.
	MapOff uint32

	StringIDsSize uint32
	StringIDsOff  uint32
	TypeIDsSize   uint32
	TypeIDsOff    uint32
	ProtoIDsSize  uint32
	ProtoIDsOff   uint32
	FieldIDsSize  uint32
	FieldIDsOff   uint32
	MethodIDsSize uint32
	MethodIDsOff  uint32
	ClassDefsSize uint32
	ClassDefsOff  uint32

	DataSize uint32
	DataOff  uint32
}

// ReadHeader reads and validates the header from the start of r. On
// success r is positioned immediately after the header.
func ReadHeader(r io.ReadSeeker) (*Header, error) {
	if err := seekTo(r, 0); err != nil {
		return nil, err
	}

	buf := make([]byte, HeaderItemSize)
	if err := readFull(r, buf, 0, ErrTruncatedHeader, "header"); err != nil {
		return nil, err
	}

	var h Header
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("dex: failed to decode header: %w", err)
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &h, nil
}

// Validate checks the fields that decoding cannot proceed without.
func (h *Header) Validate() error {
	// Check magic signature; the two version digits are checked separately
	if string(h.Magic[:5]) != "dex\n0" || h.Magic[7] != 0 {
		return formatErr(ErrBadMagic, "header", offMagic, "got % x", h.Magic[:])
	}

	if h.HeaderSize != HeaderItemSize {
		return formatErr(ErrBadHeaderSize, "header", offHeaderSize,
			"got 0x%x, want 0x%x", h.HeaderSize, HeaderItemSize)
	}

	if h.EndianTag != EndianConstant {
		msg := fmt.Sprintf("got 0x%x, want 0x%x", h.EndianTag, EndianConstant)
		if h.EndianTag == ReverseEndianConstant {
			msg = "byte-swapped files are not supported"
		}
		return formatErr(ErrBadEndianTag, "header", offEndianTag, "%s", msg)
	}

	return nil
}

// Version returns the three version characters of the magic.
func (h *Header) Version() string {
	return string(h.Magic[4:7])
}

// Diagnostics returns problems that do not prevent decoding.
func (h *Header) Diagnostics() []error {
	var diags []error
	if v := h.Version(); v != SupportedVersion {
		diags = append(diags, formatErr(ErrUnsupportedVersion, "header", offVersion,
			"version %q, expected %q", v, SupportedVersion))
	}
	return diags
}
