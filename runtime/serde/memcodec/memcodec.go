// Package memcodec is a minimal in-memory Serializer/Deserializer pair
// exercising the runtime/serde contract end to end. The concrete wire
// encoding is deliberately out of scope for the host runtime contract
// itself; this package supplies one reference double so generated
// opcode/serde code has something real to drive in tests.
package memcodec

import (
	"strconv"

	"github.com/styles-lab/mlc/runtime/serde"
)

// Value is one serialized node: an el/leaf/attr/data/enum record (or the
// umbrella Pop opcode) plus its fields in declared order.
type Value struct {
	Kind         string // "el", "leaf", "attr", "data", "enum", "pop"
	TypeID       int
	Name         string
	Variant      string
	VariantIndex int
	Fields       []Field
}

// Field is one serialized field: its declared index, optional display
// name (empty for a positional field), and raw value.
type Field struct {
	Index int
	Name  string
	Value any
}

func (v *Value) field(index int) (any, bool) {
	for _, f := range v.Fields {
		if f.Index == index {
			return f.Value, true
		}
	}
	return nil, false
}

func (v *Value) fieldByName(name string) (any, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Serializer builds a tree of Values. Nested SerializeNode calls (e.g. a
// Data-typed field serializing its own record) attach their finished Value
// as the field of whichever node is currently open; top-level Finish calls
// accumulate into Out, in opcode-stream order.
type Serializer struct {
	stack []*nodeWriter
	Out   []*Value
}

// New returns an empty Serializer.
func New() *Serializer { return &Serializer{} }

type nodeWriter struct {
	s     *Serializer
	value *Value
}

func (s *Serializer) begin(kind string, typeID int, name string, fieldCount int) (serde.SerializeNode, error) {
	nw := &nodeWriter{s: s, value: &Value{Kind: kind, TypeID: typeID, Name: name, Fields: make([]Field, 0, fieldCount)}}
	s.stack = append(s.stack, nw)
	return nw, nil
}

func (s *Serializer) SerializeEl(typeID int, name string, fieldCount int) (serde.SerializeNode, error) {
	return s.begin("el", typeID, name, fieldCount)
}

func (s *Serializer) SerializeLeaf(typeID int, name string, fieldCount int) (serde.SerializeNode, error) {
	return s.begin("leaf", typeID, name, fieldCount)
}

func (s *Serializer) SerializeAttr(typeID int, name string, fieldCount int) (serde.SerializeNode, error) {
	return s.begin("attr", typeID, name, fieldCount)
}

func (s *Serializer) SerializeData(typeID int, name string, fieldCount int) (serde.SerializeNode, error) {
	return s.begin("data", typeID, name, fieldCount)
}

func (s *Serializer) SerializeEnum(typeID int, name, variant string, variantIdx, fieldCount int) (serde.SerializeNode, error) {
	node, _ := s.begin("enum", typeID, name, fieldCount)
	nw := node.(*nodeWriter)
	nw.value.Variant = variant
	nw.value.VariantIndex = variantIdx
	return nw, nil
}

func (s *Serializer) SerializePop() error {
	s.Out = append(s.Out, &Value{Kind: "pop"})
	return nil
}

func (nw *nodeWriter) SerializeField(index int, name string, value any) error {
	nw.value.Fields = append(nw.value.Fields, Field{Index: index, Name: name, Value: value})
	return nil
}

func (nw *nodeWriter) Finish() error {
	s := nw.s
	s.stack = s.stack[:len(s.stack)-1]
	if len(s.stack) == 0 {
		s.Out = append(s.Out, nw.value)
		return nil
	}
	parent := s.stack[len(s.stack)-1]
	parent.value.Fields = append(parent.value.Fields, Field{Value: nw.value})
	return nil
}

// Deserializer walks a fixed []*Value opcode stream, driving Visitors over
// each one in turn.
type Deserializer struct {
	values []*Value
	pos    int
	attrs  []string
}

// NewDeserializer returns a Deserializer over values, read front to back.
func NewDeserializer(values []*Value) *Deserializer {
	return &Deserializer{values: values}
}

func (d *Deserializer) current() *Value {
	if d.pos >= len(d.values) {
		return nil
	}
	return d.values[d.pos]
}

// primField reads field 0 of the current value, the slot every primitive
// Deserialize* method decodes from; ok is false once the stream is
// exhausted.
func (d *Deserializer) primField() (any, bool) {
	val := d.current()
	if val == nil {
		return nil, false
	}
	return val.field(0)
}

func (d *Deserializer) expect(kind string, typeID int, name string) (*Value, error) {
	val := d.current()
	if val == nil || val.Kind != kind || val.TypeID != typeID {
		return nil, serde.UnknownType(typeID)
	}
	if name != "" && val.Name != name {
		return nil, serde.UnknownTypeName(name)
	}
	return val, nil
}

func (d *Deserializer) DeserializeElement(typeID int, name string, v serde.Visitor) (any, error) {
	val, err := d.expect("el", typeID, name)
	if err != nil {
		return nil, err
	}
	d.pos++
	return v.VisitNode(&nodeReader{value: val})
}

func (d *Deserializer) DeserializeLeaf(typeID int, name string, v serde.Visitor) (any, error) {
	val, err := d.expect("leaf", typeID, name)
	if err != nil {
		return nil, err
	}
	d.pos++
	return v.VisitNode(&nodeReader{value: val})
}

func (d *Deserializer) DeserializeAttr(typeID int, name string, v serde.Visitor) (any, error) {
	val, err := d.expect("attr", typeID, name)
	if err != nil {
		return nil, err
	}
	d.pos++
	return v.VisitNode(&nodeReader{value: val})
}

func (d *Deserializer) DeserializeData(typeID int, name string, v serde.Visitor) (any, error) {
	val, err := d.expect("data", typeID, name)
	if err != nil {
		return nil, err
	}
	d.pos++
	return v.VisitNode(&nodeReader{value: val})
}

func (d *Deserializer) DeserializeEnum(typeID int, name string, v serde.Visitor) (any, error) {
	val, err := d.expect("enum", typeID, name)
	if err != nil {
		return nil, err
	}
	d.pos++
	return v.VisitEnumWith(val.Variant, &nodeReader{value: val})
}

// DeserializeOpcode drives one entry of the opcode stream, returning (nil,
// nil) once the stream is exhausted. This reference double never populates
// Attrs(), so the compact attribute-expansion path the generator emits
// (visit_opcode_with_attrs) is never driven by it; that path's only
// consumer here is the generated code itself.
func (d *Deserializer) DeserializeOpcode(v serde.Visitor) (any, error) {
	val := d.current()
	if val == nil {
		return nil, nil
	}
	if val.Kind == "pop" {
		d.pos++
		return v.VisitPop()
	}
	return v.VisitOpcodeWith(val.Name, d)
}

func (d *Deserializer) Attrs() []string { return d.attrs }

func (d *Deserializer) DeserializeField(parentName string, index int, fieldName string) (any, error) {
	return nil, serde.Unexpect("DeserializeField called directly on Deserializer, not NodeAccess")
}

func (d *Deserializer) DeserializeSeq(v serde.Visitor) (any, error) {
	val := d.current()
	if val == nil || len(val.Fields) == 0 {
		return nil, serde.Unexpect("seq")
	}
	seq, ok := val.Fields[0].Value.([]any)
	if !ok {
		return nil, serde.Unexpect("seq")
	}
	return v.VisitSeq(&seqReader{items: seq})
}

func (d *Deserializer) DeserializeOption(v serde.Visitor) (any, error) { return v.VisitOption(nil, false) }
func (d *Deserializer) DeserializeVariable(v serde.Visitor) (any, error) {
	return v.VisitVariable(nil)
}

func (d *Deserializer) DeserializeBool(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	if s, ok := raw.(string); ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, serde.ParseNumeric(err)
		}
		return v.VisitBool(b)
	}
	b, _ := raw.(bool)
	return v.VisitBool(b)
}
func (d *Deserializer) DeserializeString(v serde.Visitor) (any, error) {
	s, _ := d.primField()
	ss, _ := s.(string)
	return v.VisitString(ss)
}
func (d *Deserializer) DeserializeByte(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	return visitSigned[int8](raw, 8, v.VisitByte)
}
func (d *Deserializer) DeserializeUByte(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	return visitUnsigned[uint8](raw, 8, v.VisitUByte)
}
func (d *Deserializer) DeserializeShort(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	return visitSigned[int16](raw, 16, v.VisitShort)
}
func (d *Deserializer) DeserializeUShort(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	return visitUnsigned[uint16](raw, 16, v.VisitUShort)
}
func (d *Deserializer) DeserializeInt(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	return visitSigned[int32](raw, 32, v.VisitInt)
}
func (d *Deserializer) DeserializeUInt(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	return visitUnsigned[uint32](raw, 32, v.VisitUInt)
}
func (d *Deserializer) DeserializeLong(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	return visitSigned[int64](raw, 64, v.VisitLong)
}
func (d *Deserializer) DeserializeULong(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	return visitUnsigned[uint64](raw, 64, v.VisitULong)
}
func (d *Deserializer) DeserializeFloat(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	return visitFloat[float32](raw, 32, v.VisitFloat)
}
func (d *Deserializer) DeserializeDouble(v serde.Visitor) (any, error) {
	raw, _ := d.primField()
	return visitFloat[float64](raw, 64, v.VisitDouble)
}

// visitSigned dispatches raw to the typed visit method, accepting the
// string fallback the runtime contract requires: a string value is parsed
// with the primitive's numeric parser before visiting.
func visitSigned[T int8 | int16 | int32 | int64](raw any, bits int, visit func(T) (any, error)) (any, error) {
	if x, ok := raw.(T); ok {
		return visit(x)
	}
	if s, ok := raw.(string); ok {
		n, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return nil, serde.ParseNumeric(err)
		}
		return visit(T(n))
	}
	var zero T
	return visit(zero)
}

func visitUnsigned[T uint8 | uint16 | uint32 | uint64](raw any, bits int, visit func(T) (any, error)) (any, error) {
	if x, ok := raw.(T); ok {
		return visit(x)
	}
	if s, ok := raw.(string); ok {
		n, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return nil, serde.ParseNumeric(err)
		}
		return visit(T(n))
	}
	var zero T
	return visit(zero)
}

func visitFloat[T float32 | float64](raw any, bits int, visit func(T) (any, error)) (any, error) {
	if x, ok := raw.(T); ok {
		return visit(x)
	}
	if s, ok := raw.(string); ok {
		n, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return nil, serde.ParseNumeric(err)
		}
		return visit(T(n))
	}
	var zero T
	return visit(zero)
}

// nodeReader implements serde.AttrsNodeAccess over one already-parsed
// Value, letting a Visitor's VisitNode/VisitEnumWith read fields back out
// by declared index.
type nodeReader struct {
	value *Value
}

func (n *nodeReader) DeserializeField(parentName string, index int, fieldName string) (any, error) {
	if v, ok := n.value.field(index); ok {
		return v, nil
	}
	if fieldName != "" {
		if v, ok := n.value.fieldByName(fieldName); ok {
			return v, nil
		}
	}
	return nil, serde.Unexpect("field " + fieldName + " of " + parentName)
}

func (n *nodeReader) Attrs() []string {
	var names []string
	for _, f := range n.value.Fields {
		names = append(names, f.Name)
	}
	return names
}

type seqReader struct {
	items []any
	pos   int
}

func (s *seqReader) Len() (int, bool) { return len(s.items), true }

func (s *seqReader) Next() (any, bool, error) {
	if s.pos >= len(s.items) {
		return nil, false, nil
	}
	v := s.items[s.pos]
	s.pos++
	return v, true, nil
}
