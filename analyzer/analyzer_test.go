package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/styles-lab/mlc/diagnostic"
	"github.com/styles-lab/mlc/ir"
	"github.com/styles-lab/mlc/parser"
)

func mustParse(t *testing.T, src string) *ir.Schema {
	t.Helper()
	schema, err := parser.Parse("test.mlang", src)
	require.Nil(t, err, "%v", err)
	return schema
}

// A node referring to a mixin should carry the mixin's fields merged in.
func TestAnalyzeMixinMerge(t *testing.T) {
	schema := mustParse(t, `mixin Common { id: string }  el Rect mixin Common { w: uint, h: uint };`)
	sink := &diagnostic.CollectingSink{}
	ok := Analyze(schema, sink)
	require.True(t, ok, "%v", sink.Diagnostics)

	rect := schema.Stats[1].(*ir.Node)
	require.Nil(t, rect.Mixin)
	require.Equal(t, ir.FieldsNamed, rect.Fields.Kind)
	require.Len(t, rect.Fields.Named, 3)
	require.Equal(t, "id", rect.Fields.Named[0].Name.Name)
	require.Equal(t, "w", rect.Fields.Named[1].Name.Name)
	require.Equal(t, "h", rect.Fields.Named[2].Name.Name)
}

// A group used in a link endpoint should expand to its member identifiers.
func TestAnalyzeGroupExpansion(t *testing.T) {
	schema := mustParse(t, `el A{} el B{} group Shapes := (A,B); attr Fill(string); apply Fill to Shapes;`)
	sink := &diagnostic.CollectingSink{}
	ok := Analyze(schema, sink)
	require.True(t, ok, "%v", sink.Diagnostics)

	apply := schema.Stats[4].(*ir.ApplyTo)
	require.Len(t, apply.Targets, 2)
	require.Equal(t, "A", apply.Targets[0].Name)
	require.Equal(t, "B", apply.Targets[1].Name)
}

// Two declarations sharing an identifier should fail analysis.
func TestAnalyzeDuplicate(t *testing.T) {
	schema := mustParse(t, `el X{} leaf X{};`)
	sink := &diagnostic.CollectingSink{}
	ok := Analyze(schema, sink)
	require.False(t, ok)
	require.Len(t, sink.Diagnostics, 1)

	dup, ok := sink.Diagnostics[0].(*ErrDuplicate)
	require.True(t, ok)
	require.Equal(t, "X", dup.Name)
	require.Equal(t, schema.Stats[0].(*ir.Node).Name.Span, dup.PrevSpan)
}

// A field type referring to an undeclared identifier should fail analysis.
func TestAnalyzeUnknownType(t *testing.T) {
	schema := mustParse(t, `el X { y: Missing };`)
	sink := &diagnostic.CollectingSink{}
	ok := Analyze(schema, sink)
	require.False(t, ok)
	require.Len(t, sink.Diagnostics, 1)

	unk, ok := sink.Diagnostics[0].(*ErrUnknown)
	require.True(t, ok)
	require.Equal(t, "Missing", unk.Name)
}

func TestAnalyzeGroupUsedAsType(t *testing.T) {
	schema := mustParse(t, `el A{} el B{} group Shapes := (A,B); el X { y: Shapes };`)
	sink := &diagnostic.CollectingSink{}
	ok := Analyze(schema, sink)
	require.False(t, ok)

	var found bool
	for _, d := range sink.Diagnostics {
		if e, ok := d.(*ErrGroupAsType); ok {
			require.Equal(t, "Shapes", e.Name)
			found = true
		}
	}
	require.True(t, found)
}

func TestAnalyzeRenameArity(t *testing.T) {
	schema := mustParse(t, `[rename()] el X {};`)
	sink := &diagnostic.CollectingSink{}
	ok := Analyze(schema, sink)
	require.False(t, ok)
	_, ok = sink.Diagnostics[0].(*ErrRenameArity)
	require.True(t, ok)
}

func TestAnalyzeVariableOptionArity(t *testing.T) {
	schema := mustParse(t, `el X { y: string [option(0x1)] };`)
	sink := &diagnostic.CollectingSink{}
	ok := Analyze(schema, sink)
	require.False(t, ok)
	_, ok = sink.Diagnostics[0].(*ErrVariableOptionArity)
	require.True(t, ok)
}

func TestAnalyzeChildrenOfGroupExpansion(t *testing.T) {
	schema := mustParse(t, `el A{} el B{} el Root{} group Shapes := (A,B); children Shapes of Root;`)
	sink := &diagnostic.CollectingSink{}
	ok := Analyze(schema, sink)
	require.True(t, ok, "%v", sink.Diagnostics)

	co := schema.Stats[4].(*ir.ChildrenOf)
	require.Len(t, co.Children, 2)
	require.Equal(t, "A", co.Children[0].Name)
	require.Equal(t, "B", co.Children[1].Name)
	require.Len(t, co.Parents, 1)
	require.Equal(t, "Root", co.Parents[0].Name)
}

// An unknown identifier close to a declared one carries a "did you mean?"
// suggestion.
func TestAnalyzeUnknownTypeSuggestion(t *testing.T) {
	schema := mustParse(t, `data Point { x: float, y: float }  el X { p: Pont };`)
	sink := &diagnostic.CollectingSink{}
	ok := Analyze(schema, sink)
	require.False(t, ok)

	unk, ok := sink.Diagnostics[0].(*ErrUnknown)
	require.True(t, ok)
	require.Equal(t, "Pont", unk.Name)
	require.Equal(t, "Point", unk.Suggestion)
	require.Contains(t, unk.Error(), `did you mean "Point"?`)
}
