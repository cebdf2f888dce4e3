package nbt

// Type identifies which of the thirteen tag kinds a node holds. The numeric
// values are the one-byte identifiers used on the wire.
type Type byte

const (
	TypeEnd       Type = 0  // sentinel closing a compound body
	TypeByte      Type = 1  // signed 8-bit integer
	TypeShort     Type = 2  // signed 16-bit integer
	TypeInt       Type = 3  // signed 32-bit integer
	TypeLong      Type = 4  // signed 64-bit integer
	TypeFloat     Type = 5  // IEEE-754 32-bit float
	TypeDouble    Type = 6  // IEEE-754 64-bit float
	TypeByteArray Type = 7  // int32 length-prefixed signed bytes
	TypeString    Type = 8  // uint16 length-prefixed UTF-8
	TypeList      Type = 9  // homogeneous, ordered children
	TypeCompound  Type = 10 // keyed children, sorted by name
	TypeIntArray  Type = 11 // int32 length-prefixed 32-bit integers
	TypeLongArray Type = 12 // int32 length-prefixed 64-bit integers
)

var tagNames = [...]string{
	"TAG_End",
	"TAG_Byte",
	"TAG_Short",
	"TAG_Int",
	"TAG_Long",
	"TAG_Float",
	"TAG_Double",
	"TAG_Byte_Array",
	"TAG_String",
	"TAG_List",
	"TAG_Compound",
	"TAG_Int_Array",
	"TAG_Long_Array",
}

// String returns the classic TAG_* name for t.
func (t Type) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "TAG_Invalid"
}

// Valid reports whether t is one of the thirteen wire tags.
func (t Type) Valid() bool {
	return t <= TypeLongArray
}
