package dex

import (
	"github.com/skdltmxn/dexinfo-go/internal/leb128"
	"github.com/skdltmxn/dexinfo-go/internal/mutf8"
)

// ResolveString returns string idx. Every index is genuine here, 0
// included; callers wanting "0 means none" apply that themselves.
func (f *File) ResolveString(idx uint32) (string, error) {
	if idx >= uint32(len(f.StringIDs)) {
		return "", formatErr(ErrIndexOutOfRange, "string_ids", -1,
			"string index %d, table has %d entries", idx, len(f.StringIDs))
	}

	if s, ok := f.strings.Get(idx); ok {
		return s, nil
	}

	s, err := f.readString(f.StringIDs[idx].DataOff)
	if err != nil {
		return "", err
	}
	f.strings.Add(idx, s)
	return s, nil
}

// ResolveTypeName returns the descriptor of type idx.
func (f *File) ResolveTypeName(idx uint32) (string, error) {
	if idx >= uint32(len(f.TypeIDs)) {
		return "", formatErr(ErrIndexOutOfRange, "type_ids", -1,
			"type index %d, table has %d entries", idx, len(f.TypeIDs))
	}
	return f.ResolveString(f.TypeIDs[idx].DescriptorIdx)
}

// ResolveMethodName returns the name of method idx.
func (f *File) ResolveMethodName(idx uint32) (string, error) {
	if idx >= uint32(len(f.MethodIDs)) {
		return "", formatErr(ErrIndexOutOfRange, "method_ids", -1,
			"method index %d, table has %d entries", idx, len(f.MethodIDs))
	}
	return f.ResolveString(f.MethodIDs[idx].NameIdx)
}

// readString decodes the string_data_item at off: a ULEB128 length
// followed by that many bytes of MUTF-8.
func (f *File) readString(off uint32) (string, error) {
	const stage = "string_data"
	start := int64(off)

	if start >= f.size {
		return "", formatErr(ErrTruncatedString, stage, start,
			"string data starts beyond end of source (0x%x)", f.size)
	}

	// Probe window for the length prefix, clamped to the source
	var scratch [leb128.MaxLen]byte
	probe := scratch[:]
	if rem := f.size - start; rem < int64(len(probe)) {
		probe = probe[:rem]
	}
	if err := readAt(f.src, probe, start, ErrTruncatedString, stage); err != nil {
		return "", err
	}

	length, _, err := leb128.Decode(probe)
	if err != nil {
		return "", formatErr(ErrTruncatedString, stage, start, "length prefix: %v", err)
	}

	dataOff := start + int64(leb128.EncodedLength(length))
	if dataOff+int64(length) > f.size {
		return "", formatErr(ErrTruncatedString, stage, start,
			"%d bytes at 0x%x run past end of source (0x%x)", length, dataOff, f.size)
	}

	payload := make([]byte, length)
	if err := readAt(f.src, payload, dataOff, ErrTruncatedString, stage); err != nil {
		return "", err
	}
	return mutf8.Decode(payload), nil
}
