// Package dextest builds small DEX images for tests.
package dextest

import (
	"crypto/sha1"
	"encoding/binary"
	"hash/adler32"

	"github.com/skdltmxn/dexinfo-go/internal/leb128"
)

// NoIndex mirrors dex.NoIndex without importing it.
const NoIndex = 0xFFFFFFFF

const headerSize = 0x70

// MethodID is a method_id_item.
type MethodID struct {
	ClassIdx uint16
	ProtoIdx uint16
	NameIdx  uint32
}

// EncodedField is one field entry of a class data item.
type EncodedField struct {
	IdxDiff     uint32
	AccessFlags uint32
}

// EncodedMethod is one method entry of a class data item.
type EncodedMethod struct {
	IdxDiff     uint32
	AccessFlags uint32
	CodeOff     uint32
}

// ClassData is a class_data_item before encoding.
type ClassData struct {
	StaticFields   []EncodedField
	InstanceFields []EncodedField
	DirectMethods  []EncodedMethod
	VirtualMethods []EncodedMethod
}

// Encode returns the ULEB128 encoding of d.
func (d *ClassData) Encode() []byte {
	var out []byte
	for _, n := range []int{len(d.StaticFields), len(d.InstanceFields), len(d.DirectMethods), len(d.VirtualMethods)} {
		out = leb128.Append(out, uint32(n))
	}
	for _, fields := range [][]EncodedField{d.StaticFields, d.InstanceFields} {
		for _, f := range fields {
			out = leb128.Append(out, f.IdxDiff)
			out = leb128.Append(out, f.AccessFlags)
		}
	}
	for _, methods := range [][]EncodedMethod{d.DirectMethods, d.VirtualMethods} {
		for _, m := range methods {
			out = leb128.Append(out, m.IdxDiff)
			out = leb128.Append(out, m.AccessFlags)
			out = leb128.Append(out, m.CodeOff)
		}
	}
	return out
}

// Class is a class_def_item. Its class data comes from RawData when set,
// otherwise from Data; with neither, class_data_off is 0.
type Class struct {
	ClassIdx        uint32
	AccessFlags     uint32
	SuperclassIdx   uint32
	InterfacesOff   uint32
	SourceFileIdx   uint32
	AnnotationsOff  uint32
	StaticValuesOff uint32

	Data    *ClassData
	RawData []byte
}

// Builder describes a DEX image.
type Builder struct {
	// Version defaults to "035"
	Version string

	Strings []string
	Types   []uint32 // descriptor string indices
	Methods []MethodID
	Classes []Class
}

// Layout records where Build placed each part of the image.
type Layout struct {
	StringIDsOff  uint32
	TypeIDsOff    uint32
	MethodIDsOff  uint32
	ClassDefsOff  uint32
	StringDataOff []uint32
	ClassDataOff  []uint32 // 0 for classes without class data
	MapOff        uint32
	FileSize      uint32
}

// Build lays out the image as header, id tables, class defs, string data,
// class data and a trailing empty map list.
func (b *Builder) Build() ([]byte, Layout) {
	var l Layout
	off := uint32(headerSize)

	l.StringIDsOff = off
	off += 4 * uint32(len(b.Strings))
	l.TypeIDsOff = off
	off += 4 * uint32(len(b.Types))
	l.MethodIDsOff = off
	off += 8 * uint32(len(b.Methods))
	l.ClassDefsOff = off
	off += 32 * uint32(len(b.Classes))

	var data []byte
	for _, s := range b.Strings {
		l.StringDataOff = append(l.StringDataOff, off+uint32(len(data)))
		data = leb128.Append(data, uint32(len(s)))
		data = append(data, s...)
		data = append(data, 0)
	}
	for _, c := range b.Classes {
		raw := c.RawData
		if raw == nil && c.Data != nil {
			raw = c.Data.Encode()
		}
		if raw == nil {
			l.ClassDataOff = append(l.ClassDataOff, 0)
			continue
		}
		l.ClassDataOff = append(l.ClassDataOff, off+uint32(len(data)))
		data = append(data, raw...)
	}
	for (off+uint32(len(data)))%4 != 0 {
		data = append(data, 0)
	}
	l.MapOff = off + uint32(len(data))
	l.FileSize = l.MapOff + 4

	img := make([]byte, l.FileSize)
	le := binary.LittleEndian

	version := b.Version
	if version == "" {
		version = "035"
	}
	copy(img, "dex\n")
	copy(img[4:7], version)
	le.PutUint32(img[0x20:], l.FileSize)
	le.PutUint32(img[0x24:], headerSize)
	le.PutUint32(img[0x28:], 0x12345678)
	le.PutUint32(img[0x34:], l.MapOff)
	le.PutUint32(img[0x38:], uint32(len(b.Strings)))
	le.PutUint32(img[0x3c:], l.StringIDsOff)
	le.PutUint32(img[0x40:], uint32(len(b.Types)))
	le.PutUint32(img[0x44:], l.TypeIDsOff)
	le.PutUint32(img[0x58:], uint32(len(b.Methods)))
	le.PutUint32(img[0x5c:], l.MethodIDsOff)
	le.PutUint32(img[0x60:], uint32(len(b.Classes)))
	le.PutUint32(img[0x64:], l.ClassDefsOff)
	le.PutUint32(img[0x68:], l.FileSize-off)
	le.PutUint32(img[0x6c:], off)

	for i, o := range l.StringDataOff {
		le.PutUint32(img[l.StringIDsOff+4*uint32(i):], o)
	}
	for i, t := range b.Types {
		le.PutUint32(img[l.TypeIDsOff+4*uint32(i):], t)
	}
	for i, m := range b.Methods {
		p := img[l.MethodIDsOff+8*uint32(i):]
		le.PutUint16(p, m.ClassIdx)
		le.PutUint16(p[2:], m.ProtoIdx)
		le.PutUint32(p[4:], m.NameIdx)
	}
	for i, c := range b.Classes {
		p := img[l.ClassDefsOff+32*uint32(i):]
		for j, v := range []uint32{c.ClassIdx, c.AccessFlags, c.SuperclassIdx, c.InterfacesOff,
			c.SourceFileIdx, c.AnnotationsOff, l.ClassDataOff[i], c.StaticValuesOff} {
			le.PutUint32(p[4*j:], v)
		}
	}
	copy(img[off:], data)
	// Empty map_list: size 0

	sig := sha1.Sum(img[32:])
	copy(img[12:32], sig[:])
	le.PutUint32(img[8:], adler32.Checksum(img[12:]))

	return img, l
}

// Bytes is Build without the layout.
func (b *Builder) Bytes() []byte {
	img, _ := b.Build()
	return img
}

// Minimal returns the smallest interesting image: one string "Main", one
// type and one method id both naming it, and one class whose class data
// declares a single direct method with diff 0.
func Minimal() *Builder {
	return &Builder{
		Strings: []string{"Main"},
		Types:   []uint32{0},
		Methods: []MethodID{{ClassIdx: 0, ProtoIdx: 0, NameIdx: 0}},
		Classes: []Class{{
			ClassIdx:      0,
			SourceFileIdx: NoIndex,
			Data: &ClassData{
				DirectMethods: []EncodedMethod{{IdxDiff: 0, AccessFlags: 0x1, CodeOff: 0}},
			},
		}},
	}
}
