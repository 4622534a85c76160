package memcodec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/styles-lab/mlc/runtime/serde"
)

// path mirrors the shape GenerateOpcode would emit for `el Path { d: string
// };`, hand-written here so memcodec can be driven without compiling
// generated code.
type path struct {
	D string
}

func (p path) Serialize(s serde.Serializer) error {
	node, err := s.SerializeEl(0, "path", 1)
	if err != nil {
		return err
	}
	if err := node.SerializeField(0, "d", p.D); err != nil {
		return err
	}
	return node.Finish()
}

type pathVisitor struct{ serde.UnimplementedVisitor }

func (pathVisitor) VisitNode(data serde.NodeAccess) (any, error) {
	d, err := data.DeserializeField("path", 0, "d")
	if err != nil {
		return nil, err
	}
	return path{D: d.(string)}, nil
}

func deserializePath(d serde.Deserializer) (path, error) {
	v, err := d.DeserializeElement(0, "path", pathVisitor{})
	if err != nil {
		return path{}, err
	}
	p, ok := v.(path)
	if !ok {
		return path{}, serde.Unexpect("path")
	}
	return p, nil
}

// A single el with one string field should round-trip through the
// Serializer/Deserializer pair unchanged.
func TestSerializeDeserializeRoundTrip(t *testing.T) {
	ser := New()
	require.NoError(t, path{D: "M 0 0"}.Serialize(ser))
	require.Len(t, ser.Out, 1)
	require.Equal(t, "el", ser.Out[0].Kind)
	require.Equal(t, "path", ser.Out[0].Name)

	de := NewDeserializer(ser.Out)
	got, err := deserializePath(de)
	require.NoError(t, err)
	require.Equal(t, "M 0 0", got.D)
}

// A Pop opcode must serialize and deserialize as its own stream entry,
// distinct from el/leaf/attr nodes.
func TestSerializePop(t *testing.T) {
	ser := New()
	require.NoError(t, path{D: "x"}.Serialize(ser))
	require.NoError(t, ser.SerializePop())
	require.Len(t, ser.Out, 2)
	require.Equal(t, "pop", ser.Out[1].Kind)

	de := NewDeserializer(ser.Out)
	_, err := deserializePath(de)
	require.NoError(t, err)

	v, err := de.DeserializeOpcode(popVisitor{})
	require.NoError(t, err)
	require.Equal(t, "pop", v)
}

// popVisitor overrides VisitPop, which UnimplementedVisitor rejects with
// Unexpect("pop").
type popVisitor struct{ serde.UnimplementedVisitor }

func (popVisitor) VisitPop() (any, error) { return "pop", nil }

// Deserializing against the wrong type_id must report UnknownType rather
// than silently returning zero values.
func TestDeserializeWrongTypeID(t *testing.T) {
	ser := New()
	require.NoError(t, path{D: "x"}.Serialize(ser))

	de := NewDeserializer(ser.Out)
	_, err := de.DeserializeElement(99, "path", pathVisitor{})
	require.Error(t, err)

	var serdeErr *serde.Error
	require.ErrorAs(t, err, &serdeErr)
	require.Equal(t, 99, serdeErr.TypeID)
}

// Primitive deserialization reads back the field the serializer wrote.
func TestPrimitiveRoundTrip(t *testing.T) {
	ser := New()
	node, err := ser.SerializeLeaf(1, "count", 1)
	require.NoError(t, err)
	require.NoError(t, node.SerializeField(0, "n", int32(42)))
	require.NoError(t, node.Finish())

	de := NewDeserializer(ser.Out)
	v, err := de.DeserializeLeaf(1, "count", leafIntVisitor{})
	require.NoError(t, err)
	require.Equal(t, int32(42), v)
}

type leafIntVisitor struct{ serde.UnimplementedVisitor }

func (leafIntVisitor) VisitNode(data serde.NodeAccess) (any, error) {
	n, err := data.DeserializeField("count", 0, "n")
	if err != nil {
		return nil, err
	}
	return n.(int32), nil
}

// A primitive stored in its string form must be parsed with the
// primitive's numeric parser before the typed visit, and a malformed
// string must surface as a ParseNumeric error.
func TestPrimitiveStringFallback(t *testing.T) {
	de := NewDeserializer([]*Value{{Kind: "leaf", Fields: []Field{{Index: 0, Value: "42"}}}})
	v, err := de.DeserializeInt(intVisitor{})
	require.NoError(t, err)
	require.Equal(t, int32(42), v)

	de = NewDeserializer([]*Value{{Kind: "leaf", Fields: []Field{{Index: 0, Value: "nope"}}}})
	_, err = de.DeserializeInt(intVisitor{})
	var serdeErr *serde.Error
	require.ErrorAs(t, err, &serdeErr)
	require.Equal(t, serde.ErrParseNumeric, serdeErr.Kind)
}

type intVisitor struct{ serde.UnimplementedVisitor }

func (intVisitor) VisitInt(n int32) (any, error) { return n, nil }
