// Package parser hand-rolls a recursive-descent combinator parser over
// mlang source text, built on a miss/fatal pair of outcomes rather than a
// reflection-driven struct-tag grammar, since the miss/fatal distinction
// this grammar needs at alternation boundaries isn't expressible through
// one. Only github.com/alecthomas/participle/v2's lexer.Position type is
// reused here (via the diagnostic package), not its parsing engine.
package parser

import (
	"fmt"

	"github.com/styles-lab/mlc/diagnostic"
)

// Generic error kinds: the top-level ParseError variants that do not wrap
// a per-production kind.
type Generic int

const (
	GenericEnd Generic = iota
	GenericIdent
	GenericSemantic
	GenericUnparsed
)

func (g Generic) Error() string {
	switch g {
	case GenericEnd:
		return "unexpected end of input."
	case GenericIdent:
		return "invalid ident."
	case GenericSemantic:
		return "semantic analyze error."
	case GenericUnparsed:
		return "expect stat."
	default:
		return "invalid generic kind"
	}
}

// Error is mlang's single parse-error value: a span plus the precise
// syntactic expectation that failed. Kind
// holds one of the errkind.* types, or a Generic, or a wrapped I/O error.
type Error struct {
	Span Span
	Kind error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s", diagnostic.FormatPos(e.Span.Start), e.Kind)
}

func (e *Error) Unwrap() error { return e.Kind }

func (e *Error) DiagSpan() diagnostic.Span { return e.Span }

// IoError wraps a non-parse I/O failure encountered while reading source.
type IoError struct {
	Message string
}

func (e IoError) Error() string { return "io error: " + e.Message }

func newErr(span Span, kind error) *Error {
	return &Error{Span: span, Kind: kind}
}
