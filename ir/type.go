package ir

// PrimitiveKind enumerates mlang's built-in scalar types.
type PrimitiveKind int

const (
	PrimitiveBool PrimitiveKind = iota
	PrimitiveString
	PrimitiveByte
	PrimitiveUByte
	PrimitiveShort
	PrimitiveUShort
	PrimitiveInt
	PrimitiveUInt
	PrimitiveLong
	PrimitiveULong
	PrimitiveFloat
	PrimitiveDouble
)

// String returns the mlang source spelling of the primitive, e.g. "ushort".
func (p PrimitiveKind) String() string {
	switch p {
	case PrimitiveBool:
		return "bool"
	case PrimitiveString:
		return "string"
	case PrimitiveByte:
		return "byte"
	case PrimitiveUByte:
		return "ubyte"
	case PrimitiveShort:
		return "short"
	case PrimitiveUShort:
		return "ushort"
	case PrimitiveInt:
		return "int"
	case PrimitiveUInt:
		return "uint"
	case PrimitiveLong:
		return "long"
	case PrimitiveULong:
		return "ulong"
	case PrimitiveFloat:
		return "float"
	case PrimitiveDouble:
		return "double"
	default:
		return "<invalid primitive>"
	}
}

// Primitives maps mlang source spellings to PrimitiveKind, used by the
// parser to tell a primitive keyword from a data-type reference.
var Primitives = map[string]PrimitiveKind{
	"bool":   PrimitiveBool,
	"string": PrimitiveString,
	"byte":   PrimitiveByte,
	"ubyte":  PrimitiveUByte,
	"short":  PrimitiveShort,
	"ushort": PrimitiveUShort,
	"int":    PrimitiveInt,
	"uint":   PrimitiveUInt,
	"long":   PrimitiveLong,
	"ulong":  PrimitiveULong,
	"float":  PrimitiveFloat,
	"double": PrimitiveDouble,
}

// Type is the closed sum of every shape a field or element type can take:
// a primitive, a reference to a node/enum/group by name (resolved by the
// analyzer), a list, or a fixed-size array.
type Type interface {
	typeNode()
	TypeSpan() Span
}

// PrimitiveType is a built-in scalar.
type PrimitiveType struct {
	Span Span
	Kind PrimitiveKind
}

func (t PrimitiveType) typeNode()      {}
func (t PrimitiveType) TypeSpan() Span { return t.Span }

// DataType references a declared node, enum, or group by name. The analyzer
// resolves Target to the declaration's index in Schema.Stats; until then
// Index is -1.
type DataType struct {
	Span   Span
	Target Ident
	Index  int
}

func (t DataType) typeNode()      {}
func (t DataType) TypeSpan() Span { return t.Span }

// ListOfType is `[T]`, a dynamically sized homogeneous sequence.
type ListOfType struct {
	Span Span
	Elem Type
}

func (t ListOfType) typeNode()      {}
func (t ListOfType) TypeSpan() Span { return t.Span }

// ArrayOfType is `[T; N]`, a fixed-length homogeneous sequence.
type ArrayOfType struct {
	Span   Span
	Elem   Type
	Length Literal
}

func (t ArrayOfType) typeNode()      {}
func (t ArrayOfType) TypeSpan() Span { return t.Span }
