package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/styles-lab/mlc/ir"
	"github.com/styles-lab/mlc/parser/errkind"
)

// Span is ir.Span, re-exported so grammar functions in this package don't
// need to import ir just to spell the type.
type Span = ir.Span

// cursor walks source text byte-offset by byte-offset, tracking
// line/column for diagnostics. It carries no parse state of its own beyond
// position. Grammar productions are methods on *cursor returning
// (value, ok bool, err *Error): ok=false with a nil err is a recoverable
// miss ("this alternative didn't match"), a non-nil err is a committed,
// fatal failure.
type cursor struct {
	filename string
	src      string
	pos      int
	line     int
	col      int
}

func newCursor(filename, src string) *cursor {
	return &cursor{filename: filename, src: src, line: 1, col: 1}
}

func (c *cursor) position() lexer.Position {
	return lexer.Position{Filename: c.filename, Offset: c.pos, Line: c.line, Column: c.col}
}

// point returns a zero-width span at the cursor's current position, used
// as the starting bookend of a production before any input is consumed.
func (c *cursor) point() Span {
	p := c.position()
	return Span{Start: p, End: p}
}

// spanTo returns the span from start through the cursor's current
// position (exclusive), i.e. covering everything consumed since start.
func (c *cursor) spanTo(start Span) Span {
	return Span{Start: start.Start, End: c.position()}
}

func (c *cursor) remaining() int { return len(c.src) - c.pos }

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

// peek returns the rune at the cursor without consuming it.
func (c *cursor) peek() (rune, int) {
	if c.eof() {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	return r, size
}

// advance consumes n bytes, updating line/column bookkeeping.
func (c *cursor) advance(n int) {
	for i := 0; i < n; {
		r, size := utf8.DecodeRuneInString(c.src[c.pos+i:])
		if r == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
		i += size
	}
	c.pos += n
}

// skipWS consumes plain whitespace only. Line comments are never implicitly
// skipped here; parsePrefix is the sole place that recognizes and
// collects them, so a comment immediately preceding a declaration is never
// silently discarded by an intervening skipWS call.
func (c *cursor) skipWS() {
	for !c.eof() {
		r, size := c.peek()
		if !unicode.IsSpace(r) {
			break
		}
		c.advance(size)
	}
}

// ensureChar consumes r if it is next, reporting a miss (not a fatal
// error) otherwise.
func (c *cursor) ensureChar(r rune) bool {
	got, size := c.peek()
	if got != r {
		return false
	}
	c.advance(size)
	return true
}

// ensureKeyword consumes the literal kw if it appears next and is not
// immediately followed by an identifier-continuation rune (so `element`
// does not match the `el` keyword prefix).
func (c *cursor) ensureKeyword(kw string) bool {
	if !strings.HasPrefix(c.src[c.pos:], kw) {
		return false
	}
	after := c.pos + len(kw)
	if isIdentRune(kw[len(kw)-1]) && after < len(c.src) {
		r, _ := utf8.DecodeRuneInString(c.src[after:])
		if isIdentCont(r) {
			return false
		}
	}
	c.advance(len(kw))
	return true
}

func isIdentRune(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || (b >= '0' && b <= '9')
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentCont(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// parseIdent parses a bare identifier, reporting a miss if the cursor
// isn't at an identifier-start rune.
func (c *cursor) parseIdent() (ir.Ident, bool) {
	r, size := c.peek()
	if !isIdentStart(r) {
		return ir.Ident{}, false
	}
	start := c.point()
	begin := c.pos
	c.advance(size)
	for {
		r, size := c.peek()
		if !isIdentCont(r) {
			break
		}
		c.advance(size)
	}
	name := c.src[begin:c.pos]
	return ir.Ident{Span: c.spanTo(start), Name: name}, true
}

// parseHexUint parses a `0x...` literal, fatal once the `0x` prefix has
// matched.
func (c *cursor) parseHexUint() (ir.Literal, bool, *Error) {
	start := c.point()
	if !strings.HasPrefix(c.src[c.pos:], "0x") && !strings.HasPrefix(c.src[c.pos:], "0X") {
		return ir.Literal{}, false, nil
	}
	c.advance(2)
	begin := c.pos
	for {
		r, size := c.peek()
		if !isHexDigit(r) {
			break
		}
		c.advance(size)
	}
	if c.pos == begin {
		return ir.Literal{}, true, newErr(c.point(), errkind.UintMissBody)
	}
	var value uint64
	for i := begin; i < c.pos; i++ {
		value = value*16 + uint64(hexVal(c.src[i]))
	}
	return ir.Literal{Span: c.spanTo(start), Kind: ir.LiteralUint, Uint: value}, true, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

// parseStringLit parses a `"..."` literal with no escape processing beyond
// `\"` and `\\`, the minimal form mlang's property call arguments need.
func (c *cursor) parseStringLit() (ir.Literal, bool, *Error) {
	if r, _ := c.peek(); r != '"' {
		return ir.Literal{}, false, nil
	}
	start := c.point()
	c.advance(1)
	var b strings.Builder
	for {
		r, size := c.peek()
		if size == 0 {
			return ir.Literal{}, true, newErr(c.point(), GenericEnd)
		}
		if r == '"' {
			c.advance(1)
			break
		}
		if r == '\\' {
			c.advance(size)
			r2, size2 := c.peek()
			b.WriteRune(r2)
			c.advance(size2)
			continue
		}
		b.WriteRune(r)
		c.advance(size)
	}
	return ir.Literal{Span: c.spanTo(start), Kind: ir.LiteralString, Str: b.String()}, true, nil
}
