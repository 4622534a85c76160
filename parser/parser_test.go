package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/styles-lab/mlc/ir"
	"github.com/styles-lab/mlc/parser/errkind"
)

func TestParseMinimalElement(t *testing.T) {
	schema, err := Parse("test.mlang", `el Path { d: string };`)
	require.Nil(t, err)
	require.Len(t, schema.Stats, 1)

	node, ok := schema.Stats[0].(*ir.Node)
	require.True(t, ok)
	require.Equal(t, ir.DeclElement, node.DeclKind)
	require.Equal(t, "Path", node.Name.Name)
	require.Equal(t, ir.FieldsNamed, node.Fields.Kind)
	require.Len(t, node.Fields.Named, 1)
	require.Equal(t, "d", node.Fields.Named[0].Name.Name)
	prim, ok := node.Fields.Named[0].Type.(ir.PrimitiveType)
	require.True(t, ok)
	require.Equal(t, ir.PrimitiveString, prim.Kind)
}

// Parses the mixin-merge input; merging is the analyzer's job, so the
// parser leaves the mixin reference set and the fields unmerged.
func TestParseMixinMerge(t *testing.T) {
	schema, err := Parse("test.mlang", `mixin Common { id: string }  el Rect mixin Common { w: uint, h: uint };`)
	require.Nil(t, err)
	require.Len(t, schema.Stats, 2)

	mixinDecl := schema.Stats[0].(*ir.Node)
	require.Equal(t, ir.DeclMixin, mixinDecl.DeclKind)

	rect := schema.Stats[1].(*ir.Node)
	require.Equal(t, ir.DeclElement, rect.DeclKind)
	require.NotNil(t, rect.Mixin)
	require.Equal(t, "Common", rect.Mixin.Name)
}

// Parses the group-expansion input; expansion is the analyzer's job, so
// the apply-to target is still the group name here.
func TestParseGroupExpansion(t *testing.T) {
	schema, err := Parse("test.mlang", `el A{} el B{} group Shapes := (A,B); attr Fill(string); apply Fill to Shapes;`)
	require.Nil(t, err)
	require.Len(t, schema.Stats, 5)

	group := schema.Stats[2].(*ir.Group)
	require.Equal(t, "Shapes", group.Name.Name)
	require.Len(t, group.Members, 2)

	apply := schema.Stats[4].(*ir.ApplyTo)
	require.Len(t, apply.Attrs, 1)
	require.Equal(t, "Fill", apply.Attrs[0].Name)
	require.Len(t, apply.Targets, 1)
	require.Equal(t, "Shapes", apply.Targets[0].Name)
}

func TestParseEnumWithVariantFields(t *testing.T) {
	schema, err := Parse("test.mlang", `enum Hello { A { value: uint, name: string }, B, C }`)
	require.Nil(t, err)
	require.Len(t, schema.Stats, 1)

	enum := schema.Stats[0].(*ir.Enum)
	require.Equal(t, "Hello", enum.Name.Name)
	require.Len(t, enum.Variants, 3)
	require.Equal(t, ir.FieldsNamed, enum.Variants[0].Fields.Kind)
	require.Len(t, enum.Variants[0].Fields.Named, 2)
	require.Equal(t, ir.FieldsUnit, enum.Variants[1].Fields.Kind)
	require.Equal(t, ir.FieldsUnit, enum.Variants[2].Fields.Kind)
}

func TestParseChildrenOf(t *testing.T) {
	schema, err := Parse("test.mlang", `el A{} el B{} el C{} children (A,B) of C;`)
	require.Nil(t, err)
	require.Len(t, schema.Stats, 4)

	co := schema.Stats[3].(*ir.ChildrenOf)
	require.Len(t, co.Children, 2)
	require.Len(t, co.Parents, 1)
	require.Equal(t, "C", co.Parents[0].Name)
}

func TestParsePropertyAnnotations(t *testing.T) {
	schema, err := Parse("test.mlang", `[rename("path")] el Path { d: string [option] };`)
	require.Nil(t, err)
	node := schema.Stats[0].(*ir.Node)
	require.Len(t, node.Properties, 1)
	name, ok := ir.Rename(node.Properties)
	require.True(t, ok)
	require.Equal(t, "path", name)

	field := node.Fields.Named[0]
	require.True(t, ir.HasOption(field.Properties))
}

func TestParseArrayType(t *testing.T) {
	schema, err := Parse("test.mlang", `el Buf { data: [byte; 0x10] };`)
	require.Nil(t, err)
	node := schema.Stats[0].(*ir.Node)
	arr, ok := node.Fields.Named[0].Type.(ir.ArrayOfType)
	require.True(t, ok)
	require.Equal(t, uint64(0x10), arr.Length.Uint)
	prim, ok := arr.Elem.(ir.PrimitiveType)
	require.True(t, ok)
	require.Equal(t, ir.PrimitiveByte, prim.Kind)
}

func TestParseMissingSemicolonIsFatal(t *testing.T) {
	_, err := Parse("test.mlang", `attr Fill(string)`)
	require.NotNil(t, err)
}

func TestParseUnparsedTrailingGarbage(t *testing.T) {
	_, err := Parse("test.mlang", `el A {} ???`)
	require.NotNil(t, err)
}

func TestParseListTypeWithInnerWhitespace(t *testing.T) {
	schema, err := Parse("test.mlang", `el Poly { points: [ float ] };`)
	require.Nil(t, err)
	node := schema.Stats[0].(*ir.Node)
	list, ok := node.Fields.Named[0].Type.(ir.ListOfType)
	require.True(t, ok)
	prim, ok := list.Elem.(ir.PrimitiveType)
	require.True(t, ok)
	require.Equal(t, ir.PrimitiveFloat, prim.Kind)
}

// A comment run after the last statement is not a parse error.
func TestParseTrailingCommentAccepted(t *testing.T) {
	schema, err := Parse("test.mlang", "el A {}\n// trailing note\n")
	require.Nil(t, err)
	require.Len(t, schema.Stats, 1)
}

// A statement's span runs from its keyword through the terminating
// punctuation, excluding the comment/property prefix.
func TestParseStatSpanStartsAtKeyword(t *testing.T) {
	src := `[rename("a")] el A(string);`
	schema, err := Parse("test.mlang", src)
	require.Nil(t, err)
	node := schema.Stats[0].(*ir.Node)
	require.Equal(t, strings.Index(src, "el A"), node.Span.Start.Offset)
	require.Equal(t, len(src), node.Span.End.Offset)
}

// A mixin declaration naming a mixin of its own is rejected at parse time.
func TestParseMixinOnMixinRejected(t *testing.T) {
	_, err := Parse("test.mlang", `mixin A { id: string }  mixin B mixin A { x: string }`)
	require.NotNil(t, err)
	require.ErrorIs(t, err, errkind.NodeMixinOnMixin)
}

// Array lengths accept hexadecimal literals only.
func TestParseArrayLengthRequiresHexPrefix(t *testing.T) {
	_, err := Parse("test.mlang", `el Buf { data: [byte; 16] };`)
	require.NotNil(t, err)
	require.ErrorIs(t, err, errkind.UintPrefix)

	_, err = Parse("test.mlang", `el Buf { data: [byte; 0x] };`)
	require.NotNil(t, err)
	require.ErrorIs(t, err, errkind.UintMissBody)
}

// A token inside a positional field list that is not a type reports the
// dedicated unnamed-field kind.
func TestParseUnnamedFieldBadType(t *testing.T) {
	_, err := Parse("test.mlang", `attr Fill(123);`)
	require.NotNil(t, err)
	require.ErrorIs(t, err, errkind.UnnamedField{})
}
