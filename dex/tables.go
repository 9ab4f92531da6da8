package dex

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// StringID is a string_id_item.
type StringID struct {
	// DataOff is the file offset of the string_data_item
	DataOff uint32
}

// TypeID is a type_id_item.
type TypeID struct {
	// DescriptorIdx indexes the string ids
	DescriptorIdx uint32
}

// MethodID is a method_id_item.
type MethodID struct {
	ClassIdx uint16 // Index into the type ids
	ProtoIdx uint16 // Index into the proto ids
	NameIdx  uint32 // Index into the string ids
}

// ClassDef is a class_def_item.
type ClassDef struct {
	ClassIdx        uint32
	AccessFlags     AccessFlags
	SuperclassIdx   uint32
	InterfacesOff   uint32
	SourceFileIdx   uint32 // NoIndex when the class has no source file
	AnnotationsOff  uint32
	ClassDataOff    uint32 // 0 when the class has no fields or methods
	StaticValuesOff uint32
}

// ClassDefSize is the size of a class_def_item
const ClassDefSize = 32

// LoadTable reads count fixed-size little-endian records of type T starting
// at off. size is the total length of r; the table must fit inside it
// before anything is allocated.
func LoadTable[T any](r io.ReadSeeker, size int64, off, count uint32, stage string) ([]T, error) {
	var zero T
	recSize := binary.Size(zero)
	if recSize <= 0 {
		return nil, fmt.Errorf("dex: %T is not a fixed-size record", zero)
	}

	if count == 0 {
		return []T{}, nil
	}

	// Sizes are widened so count*recSize cannot overflow
	total := uint64(count) * uint64(recSize)
	if uint64(off)+total > uint64(size) {
		return nil, formatErr(ErrTruncatedTable, stage, int64(off),
			"%d records of %d bytes need 0x%x bytes, source ends at 0x%x",
			count, recSize, total, size)
	}

	buf := make([]byte, total)
	if err := readAt(r, buf, int64(off), ErrTruncatedTable, stage); err != nil {
		return nil, err
	}

	out := make([]T, count)
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("dex: failed to decode %s: %w", stage, err)
	}
	return out, nil
}
