package dex

import "strings"

// AccessFlags is the access_flags bitmask of classes, fields and methods.
type AccessFlags uint32

// Access flag bits. Some bits carry two meanings depending on whether they
// are applied to a class, a field or a method.
const (
	AccPublic               AccessFlags = 0x1
	AccPrivate              AccessFlags = 0x2
	AccProtected            AccessFlags = 0x4
	AccStatic               AccessFlags = 0x8
	AccFinal                AccessFlags = 0x10
	AccSynchronized         AccessFlags = 0x20
	AccSuper                AccessFlags = 0x20
	AccVolatile             AccessFlags = 0x40
	AccBridge               AccessFlags = 0x40
	AccTransient            AccessFlags = 0x80
	AccVarargs              AccessFlags = 0x80
	AccNative               AccessFlags = 0x100
	AccInterface            AccessFlags = 0x200
	AccAbstract             AccessFlags = 0x400
	AccStrict               AccessFlags = 0x800
	AccSynthetic            AccessFlags = 0x1000
	AccAnnotation           AccessFlags = 0x2000
	AccEnum                 AccessFlags = 0x4000
	AccConstructor          AccessFlags = 0x10000
	AccDeclaredSynchronized AccessFlags = 0x20000
)

// accessFlagNames is the lookup table used for every context. Shared bits
// appear once per name, so both names are reported when such a bit is set.
var accessFlagNames = [...]struct {
	flag AccessFlags
	name string
}{
	{AccPublic, "public"},
	{AccPrivate, "private"},
	{AccProtected, "protected"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccSynchronized, "synchronized"},
	{AccSuper, "super"},
	{AccVolatile, "volatile"},
	{AccBridge, "bridge"},
	{AccTransient, "transient"},
	{AccVarargs, "varargs"},
	{AccNative, "native"},
	{AccInterface, "interface"},
	{AccAbstract, "abstract"},
	{AccStrict, "strict"},
	{AccSynthetic, "synthetic"},
	{AccAnnotation, "annotation"},
	{AccEnum, "enum"},
	{AccConstructor, "constructor"},
	{AccDeclaredSynchronized, "declared_synchronized"},
}

// Names returns the name of every set flag in table order.
func (f AccessFlags) Names() []string {
	var names []string
	for _, e := range accessFlagNames {
		if f&e.flag != 0 {
			names = append(names, e.name)
		}
	}
	return names
}

// String joins Names with spaces.
func (f AccessFlags) String() string {
	return strings.Join(f.Names(), " ")
}
