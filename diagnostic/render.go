package diagnostic

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
)

// Spanner is implemented by every diagnostic error type that can point at a
// source location, letting Render underline the offending text the same
// way regardless of which pipeline stage produced the error.
type Spanner interface {
	DiagSpan() Span
}

// Render renders err as a one-line "file:line:col: message" report, plus
// the offending source line underlined when src is non-nil and err
// implements Spanner. color toggles aurora ANSI styling; pass false for
// non-terminal output (redirected to a file, CI logs).
func Render(err error, src *Source, color bool) string {
	au := aurora.NewAurora(color)

	spanner, ok := err.(Spanner)
	if !ok {
		return err.Error()
	}
	span := spanner.DiagSpan()
	pos := au.Cyan(FormatPos(span.Start)).String()

	if src == nil {
		return fmt.Sprintf("%s %s", pos, err)
	}
	line, ok := src.Line(span.Start.Line)
	if !ok {
		return fmt.Sprintf("%s %s", pos, err)
	}

	col := span.Start.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	width := span.End.Column - span.Start.Column
	if width < 1 {
		width = 1
	}
	underline := au.Red(strings.Repeat(" ", col) + strings.Repeat("^", width)).String()
	return fmt.Sprintf("%s %s\n  %s\n  %s", pos, err, line, underline)
}

// RenderAll renders each diagnostic in errs on its own paragraph, in order.
func RenderAll(errs []error, src *Source, color bool) string {
	var b strings.Builder
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Render(err, src, color))
		b.WriteString("\n")
	}
	return b.String()
}
