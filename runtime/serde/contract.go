package serde

import "fmt"

// SerializeNode is the per-value serialization cursor returned by every
// Serializer.Serialize<Kind> call: one SerializeField call per declared
// field, in order, then Finish.
type SerializeNode interface {
	// SerializeField serializes the value at the given declared-field
	// index. name is the field's display name, empty for a positional
	// (unnamed) field.
	SerializeField(index int, name string, value any) error
	Finish() error
}

// Serializer is the host runtime's write-side entry point. type_id is the
// zero-based index of the declaration in the analyzed statement sequence.
type Serializer interface {
	SerializeEl(typeID int, name string, fieldCount int) (SerializeNode, error)
	SerializeLeaf(typeID int, name string, fieldCount int) (SerializeNode, error)
	SerializeAttr(typeID int, name string, fieldCount int) (SerializeNode, error)
	SerializeData(typeID int, name string, fieldCount int) (SerializeNode, error)
	SerializeEnum(typeID int, name, variant string, variantIdx, fieldCount int) (SerializeNode, error)
	// SerializePop emits the umbrella Opcode's Pop variant.
	SerializePop() error
}

// NodeAccess is what a Visitor's visit_node/visit_enum methods read fields
// through: one DeserializeField call per declared field, in order. A
// generic `deserialize_field<FieldType>(...)` call is rendered here as an
// any-returning method plus the package-level DeserializeField[T] helper,
// which type-asserts the result.
type NodeAccess interface {
	DeserializeField(parentName string, index int, fieldName string) (any, error)
}

// AttrsNodeAccess extends NodeAccess with the attribute-expansion path's
// attribute-name iterator, walked by VisitOpcodeWithAttrs.
type AttrsNodeAccess interface {
	NodeAccess
	Attrs() []string
}

// SeqAccess is what a Visitor's visit_seq reads list/array elements
// through.
type SeqAccess interface {
	// Len reports the sequence length when known in advance (arrays
	// always know it; lists may not).
	Len() (int, bool)
	// Next returns the next element, or ok=false once exhausted.
	Next() (any, bool, error)
}

// Deserializer is the host runtime's read-side entry point. Every
// Deserialize<Kind> method drives the Visitor it is given.
type Deserializer interface {
	AttrsNodeAccess

	DeserializeElement(typeID int, name string, v Visitor) (any, error)
	DeserializeLeaf(typeID int, name string, v Visitor) (any, error)
	DeserializeAttr(typeID int, name string, v Visitor) (any, error)
	DeserializeData(typeID int, name string, v Visitor) (any, error)
	DeserializeEnum(typeID int, name string, v Visitor) (any, error)

	DeserializeSeq(v Visitor) (any, error)
	DeserializeOption(v Visitor) (any, error)
	DeserializeVariable(v Visitor) (any, error)

	DeserializeBool(v Visitor) (any, error)
	DeserializeString(v Visitor) (any, error)
	DeserializeByte(v Visitor) (any, error)
	DeserializeUByte(v Visitor) (any, error)
	DeserializeShort(v Visitor) (any, error)
	DeserializeUShort(v Visitor) (any, error)
	DeserializeInt(v Visitor) (any, error)
	DeserializeUInt(v Visitor) (any, error)
	DeserializeLong(v Visitor) (any, error)
	DeserializeULong(v Visitor) (any, error)
	DeserializeFloat(v Visitor) (any, error)
	DeserializeDouble(v Visitor) (any, error)

	// DeserializeOpcode drives the umbrella Opcode visitor.
	DeserializeOpcode(v Visitor) (any, error)
}

// Visitor is the double-dispatch target every Deserialize<Kind> call
// drives. Every Visit* method defaults to erroring with Unexpect on the
// zero-value implementation (UnimplementedVisitor), and IsElement/IsLeaf
// default to false; concrete visitors
// embed it and override only the methods their declaration needs.
type Visitor interface {
	VisitBool(bool) (any, error)
	VisitString(string) (any, error)
	VisitByte(int8) (any, error)
	VisitUByte(uint8) (any, error)
	VisitShort(int16) (any, error)
	VisitUShort(uint16) (any, error)
	VisitInt(int32) (any, error)
	VisitUInt(uint32) (any, error)
	VisitLong(int64) (any, error)
	VisitULong(uint64) (any, error)
	VisitFloat(float32) (any, error)
	VisitDouble(float64) (any, error)

	VisitSeq(SeqAccess) (any, error)
	VisitOption(value any, present bool) (any, error)
	VisitVariable(value any) (any, error)

	// VisitNode builds an el/leaf/attr/data/mixin record from its fields.
	VisitNode(NodeAccess) (any, error)
	// VisitEnum builds an enum variant by positional index.
	VisitEnum(variantIndex int, node NodeAccess) (any, error)
	// VisitEnumWith builds an enum variant by display name.
	VisitEnumWith(variantName string, node NodeAccess) (any, error)

	// IsElement/IsLeaf classify a display name against the set of all
	// element/leaf declarations, used by the attribute-expansion
	// compact form.
	IsElement(name string) bool
	IsLeaf(name string) bool

	// VisitOpcode/VisitOpcodeWith/VisitOpcodeWithAttrs/VisitPop drive the
	// umbrella Opcode codec.
	VisitOpcode(typeID int, d Deserializer) (any, error)
	VisitOpcodeWith(name string, d Deserializer) (any, error)
	VisitOpcodeWithAttrs(name string, d Deserializer) (any, error)
	VisitPop() (any, error)
}

// UnimplementedVisitor implements every Visit* method by erroring with
// Unexpect (IsElement/IsLeaf report false), so a concrete visitor can
// embed it and override only the
// handful of methods relevant to the declaration it visits.
type UnimplementedVisitor struct{}

func (UnimplementedVisitor) VisitBool(bool) (any, error)     { return nil, Unexpect("bool") }
func (UnimplementedVisitor) VisitString(string) (any, error) { return nil, Unexpect("string") }
func (UnimplementedVisitor) VisitByte(int8) (any, error)     { return nil, Unexpect("byte") }
func (UnimplementedVisitor) VisitUByte(uint8) (any, error)   { return nil, Unexpect("ubyte") }
func (UnimplementedVisitor) VisitShort(int16) (any, error)   { return nil, Unexpect("short") }
func (UnimplementedVisitor) VisitUShort(uint16) (any, error) { return nil, Unexpect("ushort") }
func (UnimplementedVisitor) VisitInt(int32) (any, error)     { return nil, Unexpect("int") }
func (UnimplementedVisitor) VisitUInt(uint32) (any, error)   { return nil, Unexpect("uint") }
func (UnimplementedVisitor) VisitLong(int64) (any, error)    { return nil, Unexpect("long") }
func (UnimplementedVisitor) VisitULong(uint64) (any, error)  { return nil, Unexpect("ulong") }
func (UnimplementedVisitor) VisitFloat(float32) (any, error) { return nil, Unexpect("float") }
func (UnimplementedVisitor) VisitDouble(float64) (any, error) {
	return nil, Unexpect("double")
}
func (UnimplementedVisitor) VisitSeq(SeqAccess) (any, error) { return nil, Unexpect("seq") }
func (UnimplementedVisitor) VisitOption(any, bool) (any, error) {
	return nil, Unexpect("option")
}
func (UnimplementedVisitor) VisitVariable(any) (any, error) { return nil, Unexpect("variable") }
func (UnimplementedVisitor) VisitNode(NodeAccess) (any, error) {
	return nil, Unexpect("node")
}
func (UnimplementedVisitor) VisitEnum(int, NodeAccess) (any, error) {
	return nil, Unexpect("enum")
}
func (UnimplementedVisitor) VisitEnumWith(string, NodeAccess) (any, error) {
	return nil, Unexpect("enum")
}
func (UnimplementedVisitor) IsElement(string) bool { return false }
func (UnimplementedVisitor) IsLeaf(string) bool    { return false }
func (UnimplementedVisitor) VisitOpcode(int, Deserializer) (any, error) {
	return nil, Unexpect("opcode")
}
func (UnimplementedVisitor) VisitOpcodeWith(string, Deserializer) (any, error) {
	return nil, Unexpect("opcode")
}
func (UnimplementedVisitor) VisitOpcodeWithAttrs(string, Deserializer) (any, error) {
	return nil, Unexpect("opcode")
}
func (UnimplementedVisitor) VisitPop() (any, error) { return nil, Unexpect("pop") }

// DeserializeField is the Go rendition of the Rust contract's generic
// `data.deserialize_field::<FieldType>(parent, index, name)`: read the raw
// field value through NodeAccess, then assert it to the Go field type the
// generator emitted.
func DeserializeField[T any](n NodeAccess, parentName string, index int, fieldName string) (T, error) {
	var zero T
	raw, err := n.DeserializeField(parentName, index, fieldName)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, Unexpect(fieldTypeName[T]())
	}
	return v, nil
}

func fieldTypeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
