package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/styles-lab/mlc/analyzer"
	"github.com/styles-lab/mlc/diagnostic"
	"github.com/styles-lab/mlc/ir"
	"github.com/styles-lab/mlc/parser"
)

func mustAnalyze(t *testing.T, src string) *ir.Schema {
	t.Helper()
	schema, err := parser.Parse("test.mlang", src)
	require.Nil(t, err, "%v", err)
	sink := &diagnostic.CollectingSink{}
	ok := analyzer.Analyze(schema, sink)
	require.True(t, ok, "%v", sink.Diagnostics)
	return schema
}

// A minimal single-field element should produce a matching record type
// and a Serialize call into SerializeEl with its type_id, display name,
// and field count.
func TestGenerateOpcodeMinimalElement(t *testing.T) {
	schema := mustAnalyze(t, `el Path { d: string };`)

	opcode, err := GenerateOpcode(schema, "mlang", "el Path { d: string };")
	require.NoError(t, err)
	src := string(opcode)

	require.Contains(t, src, "type Path struct {")
	require.Contains(t, src, "D string")

	serde, err := GenerateSerde(schema, "mlang", "el Path { d: string };")
	require.NoError(t, err)
	src = string(serde)
	require.Contains(t, src, `s.SerializeEl(0, "path", 1)`)
	require.Contains(t, src, "func DeserializePath(d serde.Deserializer) (Path, error) {")
	require.Contains(t, src, `d.DeserializeElement(0, "path"`)
}

// A mixin must never get its own Serialize/Deserialize in the serde
// artifact: its fields are merged into the referring node by analysis,
// and GenerateSerde skips DeclMixin entries outright. (The opcode artifact
// still carries a record type for the mixin.)
func TestGenerateSerdeSkipsMixin(t *testing.T) {
	schema := mustAnalyze(t, `mixin Common { id: string }  el Rect mixin Common { w: uint, h: uint };`)

	serde, err := GenerateSerde(schema, "mlang", "")
	require.NoError(t, err)
	src := string(serde)
	require.NotContains(t, src, "func (v Common) Serialize")
	require.Contains(t, src, "func (v Rect) Serialize")
}

// An enum with variant fields should emit a positional and a name-keyed
// dispatch arm per variant.
func TestGenerateSerdeEnum(t *testing.T) {
	schema := mustAnalyze(t, `enum Hello { A { value: uint, name: string }, B, C }`)

	serde, err := GenerateSerde(schema, "mlang", "")
	require.NoError(t, err)
	src := string(serde)
	require.Contains(t, src, "func (HelloVisitor) VisitEnum(variantIndex int")
	require.Contains(t, src, "func (HelloVisitor) VisitEnumWith(variantName string")
	require.Contains(t, src, `case "a":`)
}

// A group used as a link endpoint must expand to its member identifiers
// before generation sees it, so the attribute-routing table keys on the
// expanded member names, not the group name.
func TestGenerateSerdeGroupExpandedRouting(t *testing.T) {
	schema := mustAnalyze(t, `el A{} el B{} group Shapes := (A,B); attr Fill(string); apply Fill to Shapes;`)

	serde, err := GenerateSerde(schema, "mlang", "")
	require.NoError(t, err)
	src := string(serde)
	require.Contains(t, src, `"a": {"fill"}`)
	require.Contains(t, src, `"b": {"fill"}`)
	require.NotContains(t, src, "Shapes")
}

// Generating from the same analyzed schema twice must produce
// byte-identical artifacts, in particular a deterministically sorted
// apply_attrs/attr_fields table.
func TestGenerateDeterministic(t *testing.T) {
	src := `el A{} el B{} el C{} group Shapes := (A,B,C);
attr Zeta(string); attr Alpha(string); attr Mid(string);
apply Zeta to Shapes; apply Alpha to Shapes; apply Mid to Shapes;`

	schema1 := mustAnalyze(t, src)
	schema2 := mustAnalyze(t, src)

	out1, err := GenerateSerde(schema1, "mlang", src)
	require.NoError(t, err)
	out2, err := GenerateSerde(schema2, "mlang", src)
	require.NoError(t, err)
	require.Equal(t, out1, out2)

	body := string(out1)
	tblStart := strings.Index(body, "var applyAttrs")
	require.GreaterOrEqual(t, tblStart, 0)
	tbl := body[tblStart:]
	idxZeta := strings.Index(tbl, `"zeta"`)
	idxAlpha := strings.Index(tbl, `"alpha"`)
	idxMid := strings.Index(tbl, `"mid"`)
	require.True(t, idxAlpha < idxMid)
	require.True(t, idxMid < idxZeta)
}

func TestGenerateModBanner(t *testing.T) {
	out := GenerateMod("mlang", "el A{};", true)
	require.Contains(t, string(out), "package mlang")
	require.Contains(t, string(out), "Code generated by")
	require.Contains(t, string(out), "serialization bindings")
}
