package diagnostic

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/require"
)

type fakeSpanErr struct {
	span Span
	msg  string
}

func (e *fakeSpanErr) Error() string  { return e.msg }
func (e *fakeSpanErr) DiagSpan() Span { return e.span }

func TestRenderUnderlinesSpan(t *testing.T) {
	src := NewSource("schema.mlang", "el Path {\n  d: strung;\n}\n")
	err := &fakeSpanErr{
		span: Span{
			Start: lexer.Position{Filename: "schema.mlang", Line: 2, Column: 6},
			End:   lexer.Position{Filename: "schema.mlang", Line: 2, Column: 12},
		},
		msg: "unknown identifier \"strung\"",
	}

	out := Render(err, src, false)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "schema.mlang:2:6:")
	require.Contains(t, lines[0], "unknown identifier")
	require.Equal(t, "    d: strung;", lines[1])
	require.Equal(t, "       ^^^^^^", lines[2])
}

func TestRenderNoColorHasNoEscapeCodes(t *testing.T) {
	src := NewSource("schema.mlang", "el Path { d: strung; }\n")
	err := &fakeSpanErr{
		span: Span{
			Start: lexer.Position{Filename: "schema.mlang", Line: 1, Column: 14},
			End:   lexer.Position{Filename: "schema.mlang", Line: 1, Column: 20},
		},
		msg: "unknown identifier",
	}

	out := Render(err, src, false)
	require.NotContains(t, out, "\x1b[")
}

func TestRenderColorIncludesEscapeCodes(t *testing.T) {
	src := NewSource("schema.mlang", "el Path { d: strung; }\n")
	err := &fakeSpanErr{
		span: Span{
			Start: lexer.Position{Filename: "schema.mlang", Line: 1, Column: 14},
			End:   lexer.Position{Filename: "schema.mlang", Line: 1, Column: 20},
		},
		msg: "unknown identifier",
	}

	out := Render(err, src, true)
	require.Contains(t, out, "\x1b[")
}

func TestRenderFallsBackWithoutSpanner(t *testing.T) {
	err := errString("plain error, no span")
	out := Render(err, nil, false)
	require.Equal(t, "plain error, no span", out)
}

func TestRenderNilSourceUsesPositionOnly(t *testing.T) {
	err := &fakeSpanErr{
		span: Span{Start: lexer.Position{Filename: "schema.mlang", Line: 3, Column: 1}},
		msg:  "boom",
	}
	out := Render(err, nil, false)
	require.Equal(t, "schema.mlang:3:1: boom", out)
}

func TestRenderAllJoinsMultipleDiagnostics(t *testing.T) {
	src := NewSource("schema.mlang", "el A {}\nel B {}\n")
	errs := []error{
		&fakeSpanErr{span: Span{Start: lexer.Position{Filename: "schema.mlang", Line: 1, Column: 1}}, msg: "first"},
		&fakeSpanErr{span: Span{Start: lexer.Position{Filename: "schema.mlang", Line: 2, Column: 1}}, msg: "second"},
	}
	out := RenderAll(errs, src, false)
	require.Contains(t, out, "first")
	require.Contains(t, out, "second")
	require.True(t, strings.Index(out, "first") < strings.Index(out, "second"))
}

type errString string

func (e errString) Error() string { return string(e) }
