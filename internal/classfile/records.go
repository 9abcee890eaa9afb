// Package classfile provides parsing for JVM class files.
package classfile

// Magic is the four-byte header every class file starts with.
const Magic uint32 = 0xCAFEBABE

// Supported major versions: JDK 1.1 (45) through JDK 25 (69).
const (
	MinMajorVersion uint16 = 45
	MaxMajorVersion uint16 = 69
)

// ConstantTag identifies the kind of a constant pool entry.
type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
	ConstantMethodHandle       ConstantTag = 15
	ConstantMethodType         ConstantTag = 16
	ConstantDynamic            ConstantTag = 17
	ConstantInvokeDynamic      ConstantTag = 18
	ConstantModule             ConstantTag = 19
	ConstantPackage            ConstantTag = 20
)

// payloadSize returns the number of bytes following the tag for fixed-size
// entries, or -1 for Utf8 (length-prefixed) and unknown tags.
func (t ConstantTag) payloadSize() int {
	switch t {
	case ConstantClass, ConstantString, ConstantMethodType, ConstantModule, ConstantPackage:
		return 2
	case ConstantMethodHandle:
		return 3
	case ConstantInteger, ConstantFloat, ConstantFieldref, ConstantMethodref,
		ConstantInterfaceMethodref, ConstantNameAndType, ConstantDynamic, ConstantInvokeDynamic:
		return 4
	case ConstantLong, ConstantDouble:
		return 8
	default:
		return -1
	}
}

// wide reports whether the entry occupies two constant pool slots.
func (t ConstantTag) wide() bool {
	return t == ConstantLong || t == ConstantDouble
}

// AccessFlags is the raw access_flags bit set of a class, field or method.
type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSynchronized AccessFlags = 0x0020 // methods; ACC_SUPER on classes
	AccVolatile     AccessFlags = 0x0040 // fields; ACC_BRIDGE on methods
	AccTransient    AccessFlags = 0x0080 // fields; ACC_VARARGS on methods
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccModule       AccessFlags = 0x8000

	AccBridge  = AccVolatile
	AccVarargs = AccTransient
)

// Has reports whether all bits of f are set.
func (a AccessFlags) Has(f AccessFlags) bool {
	return a&f == f
}

// Special method names.
const (
	InitName   = "<init>"
	ClinitName = "<clinit>"
)

// AttrSynthetic names the attribute that marks a compiler generated member
// or class, equivalent to ACC_SYNTHETIC.
const AttrSynthetic = "Synthetic"

// Member is a field_info or method_info entry with its names resolved.
type Member struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string
}

// File is a parsed class file. Class names are kept in internal binary form
// ("java/lang/Object").
type File struct {
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  AccessFlags
	ThisClass    string
	SuperClass   string // empty only for java/lang/Object and module-info
	Interfaces   []string
	Fields       []Member
	Methods      []Member
}
