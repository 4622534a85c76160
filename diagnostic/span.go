// Package diagnostic carries span-accurate source positions through the
// mlang pipeline and renders them into human-readable reports, pairing a
// lexer.Position with a small pretty-printer.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Span is a byte-offset range into source text, attached to every IR node
// for diagnostics.
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// Extend returns a span covering s.Start through other.End.
func (s Span) Extend(other Span) Span {
	return Span{Start: s.Start, End: other.End}
}

func (s Span) String() string {
	return FormatPos(s.Start)
}

// FormatPos renders a position as "file:line:col:".
func FormatPos(pos lexer.Position) string {
	return fmt.Sprintf("%s:%d:%d:", pos.Filename, pos.Line, pos.Column)
}

// SpanError pairs an error with the span that produced it.
type SpanError struct {
	Span Span
	Err  error
}

// WithSpan decorates err with a span. Returns nil if err is nil.
func WithSpan(span Span, err error) error {
	if err == nil {
		return nil
	}
	return &SpanError{Span: span, Err: err}
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("%s %s", FormatPos(e.Span.Start), e.Err)
}

func (e *SpanError) Unwrap() error {
	return e.Err
}

// DiagSpan implements Spanner, letting Render/RenderAll underline a
// SpanError the same way as any parser.Error or analyzer error.
func (e *SpanError) DiagSpan() Span {
	return e.Span
}

// Pretty renders a one-line "file:line:col: message" report plus, when src
// is non-nil and holds the span's line, the offending source line
// underlined at the span's column range.
func (e *SpanError) Pretty(src *Source) string {
	if src == nil {
		return e.Error()
	}
	line, ok := src.Line(e.Span.Start.Line)
	if !ok {
		return e.Error()
	}
	col := e.Span.Start.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	width := e.Span.End.Column - e.Span.Start.Column
	if width < 1 {
		width = 1
	}
	underline := strings.Repeat(" ", col) + strings.Repeat("^", width)
	return fmt.Sprintf("%s %s\n  %s\n  %s", FormatPos(e.Span.Start), e.Err, line, underline)
}
