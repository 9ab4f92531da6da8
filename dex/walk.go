package dex

import (
	"errors"

	"github.com/skdltmxn/dexinfo-go/internal/stream"
)

// ReadClassDef reads class definition i from the class_defs table.
func (f *File) ReadClassDef(i uint32) (*ClassDef, int64, error) {
	const stage = "class_defs"
	if i >= f.Header.ClassDefsSize {
		return nil, -1, formatErr(ErrIndexOutOfRange, stage, -1,
			"class index %d, header declares %d classes", i, f.Header.ClassDefsSize)
	}

	off := int64(f.Header.ClassDefsOff) + int64(i)*ClassDefSize
	if off+ClassDefSize > f.size {
		return nil, off, formatErr(ErrTruncatedTable, stage, off,
			"class def %d runs past end of source (0x%x)", i, f.size)
	}

	var buf [ClassDefSize]byte
	if err := readAt(f.src, buf[:], off, ErrTruncatedTable, stage); err != nil {
		return nil, off, err
	}

	def, err := decodeClassDef(stream.NewReader(buf[:]))
	if err != nil {
		return nil, off, formatErr(ErrTruncatedTable, stage, off, "class def %d: %v", i, err)
	}
	return def, off, nil
}

func decodeClassDef(r *stream.Reader) (*ClassDef, error) {
	var def ClassDef
	var flags uint32
	for _, p := range []*uint32{
		&def.ClassIdx,
		&flags,
		&def.SuperclassIdx,
		&def.InterfacesOff,
		&def.SourceFileIdx,
		&def.AnnotationsOff,
		&def.ClassDataOff,
		&def.StaticValuesOff,
	} {
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		*p = v
	}
	def.AccessFlags = AccessFlags(flags)
	return &def, nil
}

// Walk visits every class definition in file order. It stops at the first
// error, whether from decoding or from v.
func (f *File) Walk(v Visitor) error {
	for i := uint32(0); i < f.Header.ClassDefsSize; i++ {
		if err := f.walkClass(v, i); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) walkClass(v Visitor, i uint32) error {
	def, off, err := f.ReadClassDef(i)
	if err != nil {
		return err
	}

	c := &Class{Index: int(i), Offset: off, Def: *def}
	if err := f.resolveClassNames(c); err != nil {
		return err
	}

	if err := v.BeginClass(c); err != nil {
		return err
	}

	if !c.HasClassData() {
		if err := v.Counts(c); err != nil {
			return err
		}
		for k := StaticFields; k <= VirtualMethods; k++ {
			if err := v.BeginList(c, k, 0); err != nil {
				return err
			}
		}
		return v.EndClass(c)
	}

	region, err := f.classDataRegion(def.ClassDataOff)
	if err != nil {
		return err
	}

	// The region is scoped to this class; nothing keeps it past return.
	w := classWalker{f: f, v: v, c: c, r: stream.NewReader(region), base: int64(def.ClassDataOff)}
	if err := w.walk(); err != nil {
		return err
	}
	return v.EndClass(c)
}

func (f *File) resolveClassNames(c *Class) error {
	if c.Def.ClassIdx != 0 {
		name, err := f.ResolveTypeName(c.Def.ClassIdx)
		if err != nil {
			return err
		}
		c.Name = OptionalString{Value: name, Valid: true}
	}

	// NoIndex must be checked before any lookup
	if idx := c.Def.SourceFileIdx; idx != NoIndex && idx != 0 {
		name, err := f.ResolveString(idx)
		if err != nil {
			return err
		}
		c.SourceFile = OptionalString{Value: name, Valid: true}
	}
	return nil
}

// classDataRegion returns the bytes of a class data region. The format does
// not record where the region ends, so it runs to map_off when that lies
// ahead, otherwise to the declared file size, and never past the source.
func (f *File) classDataRegion(off uint32) ([]byte, error) {
	const stage = "class_data"
	start := int64(off)

	length := int64(f.Header.MapOff) - start
	if length < 1 {
		length = int64(f.Header.FileSize) - start
		if length < 1 {
			return nil, formatErr(ErrInvalidLayout, stage, start,
				"map_off 0x%x and file_size 0x%x both precede class data",
				f.Header.MapOff, f.Header.FileSize)
		}
	}

	if start >= f.size {
		return nil, formatErr(ErrTruncatedClassData, stage, start,
			"class data starts beyond end of source (0x%x)", f.size)
	}
	if avail := f.size - start; length > avail {
		length = avail
	}

	buf := make([]byte, length)
	if err := readAt(f.src, buf, start, ErrTruncatedClassData, stage); err != nil {
		return nil, err
	}
	return buf, nil
}

// classWalker decodes one class_data_item.
type classWalker struct {
	f    *File
	v    Visitor
	c    *Class
	r    *stream.Reader
	base int64 // file offset of the region
}

func (w *classWalker) uleb(what string) (uint32, error) {
	at := w.r.Offset()
	v, err := w.r.ReadULEB128()
	if err != nil {
		if errors.Is(err, stream.ErrUnexpectedEOF) {
			return 0, formatErr(ErrTruncatedClassData, "class_data", w.base+int64(at),
				"reading %s", what)
		}
		return 0, err
	}
	return v, nil
}

func (w *classWalker) walk() error {
	h := &w.c.Data
	for _, p := range []struct {
		dst  *uint32
		what string
	}{
		{&h.StaticFieldsSize, "static_fields_size"},
		{&h.InstanceFieldsSize, "instance_fields_size"},
		{&h.DirectMethodsSize, "direct_methods_size"},
		{&h.VirtualMethodsSize, "virtual_methods_size"},
	} {
		n, err := w.uleb(p.what)
		if err != nil {
			return err
		}
		*p.dst = n
	}

	if err := w.v.Counts(w.c); err != nil {
		return err
	}

	for _, k := range []ListKind{StaticFields, InstanceFields} {
		if err := w.fields(k); err != nil {
			return err
		}
	}
	for _, k := range []ListKind{DirectMethods, VirtualMethods} {
		if err := w.methods(k); err != nil {
			return err
		}
	}
	return nil
}

func (w *classWalker) fields(k ListKind) error {
	count := w.c.Data.Count(k)
	if err := w.v.BeginList(w.c, k, count); err != nil {
		return err
	}

	var idx uint64
	for i := uint32(0); i < count; i++ {
		diff, err := w.uleb("field_idx_diff")
		if err != nil {
			return err
		}
		flags, err := w.uleb("field access_flags")
		if err != nil {
			return err
		}

		if i == 0 {
			idx = uint64(diff)
		} else {
			idx += uint64(diff)
		}

		fld := &Field{
			Kind:        k,
			Pos:         int(i),
			IndexDiff:   diff,
			Index:       idx,
			AccessFlags: AccessFlags(flags),
		}
		if err := w.v.Field(w.c, fld); err != nil {
			return err
		}
	}
	return nil
}

func (w *classWalker) methods(k ListKind) error {
	count := w.c.Data.Count(k)
	if err := w.v.BeginList(w.c, k, count); err != nil {
		return err
	}

	var idx uint64
	for i := uint32(0); i < count; i++ {
		at := w.r.Offset()
		diff, err := w.uleb("method_idx_diff")
		if err != nil {
			return err
		}
		flags, err := w.uleb("method access_flags")
		if err != nil {
			return err
		}
		codeOff, err := w.uleb("code_off")
		if err != nil {
			return err
		}

		// The first diff is the absolute index of the list
		if i == 0 {
			idx = uint64(diff)
		} else {
			idx += uint64(diff)
		}
		if idx >= uint64(len(w.f.MethodIDs)) {
			return formatErr(ErrIndexOutOfRange, "class_data", w.base+int64(at),
				"%s entry %d resolves to method index %d, table has %d entries",
				k, i, idx, len(w.f.MethodIDs))
		}

		id := w.f.MethodIDs[idx]
		name, err := w.f.ResolveString(id.NameIdx)
		if err != nil {
			return err
		}

		m := &Method{
			Kind:        k,
			Pos:         int(i),
			IndexDiff:   diff,
			Index:       uint32(idx),
			AccessFlags: AccessFlags(flags),
			CodeOff:     codeOff,
			ID:          id,
			Name:        name,
		}
		if err := w.v.Method(w.c, m); err != nil {
			return err
		}
	}
	return nil
}
