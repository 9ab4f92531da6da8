package dex

// ListKind identifies one of the four entry lists of a class_data_item.
type ListKind int

// Lists in the order they are encoded.
const (
	StaticFields ListKind = iota
	InstanceFields
	DirectMethods
	VirtualMethods
)

var listKindNames = [...]string{
	StaticFields:   "static fields",
	InstanceFields: "instance fields",
	DirectMethods:  "direct methods",
	VirtualMethods: "virtual methods",
}

func (k ListKind) String() string {
	if k < 0 || int(k) >= len(listKindNames) {
		return "unknown list"
	}
	return listKindNames[k]
}

// IsMethod reports whether the list holds encoded_method entries.
func (k ListKind) IsMethod() bool {
	return k == DirectMethods || k == VirtualMethods
}

// ClassDataHeader holds the four ULEB128 sizes opening a class_data_item.
type ClassDataHeader struct {
	StaticFieldsSize   uint32
	InstanceFieldsSize uint32
	DirectMethodsSize  uint32
	VirtualMethodsSize uint32
}

// Count returns the size of list k.
func (h *ClassDataHeader) Count(k ListKind) uint32 {
	switch k {
	case StaticFields:
		return h.StaticFieldsSize
	case InstanceFields:
		return h.InstanceFieldsSize
	case DirectMethods:
		return h.DirectMethodsSize
	case VirtualMethods:
		return h.VirtualMethodsSize
	}
	return 0
}

// OptionalString is a name that may be absent.
type OptionalString struct {
	Value string
	Valid bool
}

// Or returns the value, or def when it is absent.
func (s OptionalString) Or(def string) string {
	if !s.Valid {
		return def
	}
	return s.Value
}

// Class is one class definition as seen by a Visitor.
type Class struct {
	// Index is the position in the class_defs table, starting at 0
	Index int

	// Offset is the file offset of the class_def_item
	Offset int64

	Def ClassDef

	// Name is the descriptor of Def.ClassIdx. Type index 0 is treated as
	// "no class selected" and left unresolved.
	Name OptionalString

	// SourceFile is the name of Def.SourceFileIdx. It is absent when the
	// index is NoIndex or 0.
	SourceFile OptionalString

	// Data holds the list sizes; all zero when Def.ClassDataOff is 0
	Data ClassDataHeader
}

// HasClassData reports whether the class points at a class_data_item.
func (c *Class) HasClassData() bool {
	return c.Def.ClassDataOff != 0
}

// Field is a decoded encoded_field.
type Field struct {
	Kind ListKind

	// Pos is the entry's position within its list, starting at 0
	Pos int

	// IndexDiff is the raw field_idx_diff
	IndexDiff uint32

	// Index is the absolute field index reconstructed from the diffs
	Index uint64

	AccessFlags AccessFlags
}

// Method is a decoded encoded_method with its resolved name.
type Method struct {
	Kind ListKind

	// Pos is the entry's position within its list, starting at 0
	Pos int

	// IndexDiff is the raw method_idx_diff
	IndexDiff uint32

	// Index is the absolute method index reconstructed from the diffs
	Index uint32

	AccessFlags AccessFlags
	CodeOff     uint32

	// ID is the method_id_item at Index
	ID MethodID

	// Name is the string named by ID.NameIdx
	Name string
}

// Visitor receives the contents of a DEX file in file order. Returning an
// error from any method stops the walk with that error.
type Visitor interface {
	// BeginClass is called once the class def is read and its names are
	// resolved.
	BeginClass(c *Class) error

	// Counts is called after the class data sizes are known. They are
	// all zero for classes without class data.
	Counts(c *Class) error

	// BeginList is called before the entries of each of the four lists,
	// including empty ones.
	BeginList(c *Class, kind ListKind, count uint32) error

	Field(c *Class, f *Field) error
	Method(c *Class, m *Method) error
	EndClass(c *Class) error
}

// NopVisitor implements Visitor by doing nothing. Embed it to override only
// the callbacks of interest.
type NopVisitor struct{}

func (NopVisitor) BeginClass(*Class) error { return nil }
func (NopVisitor) Counts(*Class) error { return nil }
func (NopVisitor) BeginList(*Class, ListKind, uint32) error { return nil }
func (NopVisitor) Field(*Class, *Field) error { return nil }
func (NopVisitor) Method(*Class, *Method) error { return nil }
func (NopVisitor) EndClass(*Class) error { return nil }
