package parser

import (
	"unicode/utf8"

	"github.com/styles-lab/mlc/ir"
	"github.com/styles-lab/mlc/parser/errkind"
)

// parsePrefix parses the `comment* property*` run preceding a declaration.
// Comments are `//`-led lines collected verbatim, interleaved with
// whitespace and property blocks; this is the only place comments are
// recognized at all, since skipWS treats them as opaque text.
func (c *cursor) parsePrefix() ([]ir.Comment, []ir.Property, *Error) {
	var comments []ir.Comment
	var properties []ir.Property

	for {
		c.skipWS()

		if r, size := c.peek(); r == '/' {
			if r2, _ := utf8DecodeAt(c.src, c.pos+size); r2 == '/' {
				start := c.point()
				begin := c.pos
				for {
					r, sz := c.peek()
					if sz == 0 || r == '\n' {
						break
					}
					c.advance(sz)
				}
				comments = append(comments, ir.Comment{Span: c.spanTo(start), Text: c.src[begin:c.pos]})
				continue
			}
		}

		if r, _ := c.peek(); r != '[' {
			break
		}

		prop, err := c.parseProperty()
		if err != nil {
			return nil, nil, err
		}
		properties = append(properties, prop)
	}

	c.skipWS()
	return comments, properties, nil
}

func utf8DecodeAt(s string, at int) (rune, int) {
	if at >= len(s) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s[at:])
}

// parseProperty parses a single `[call, call, ...]` block. Once `[` is
// consumed the block is committed: a missing `]` is fatal
// (errkind.PropMissEnd).
func (c *cursor) parseProperty() (ir.Property, *Error) {
	start := c.point()
	c.advance(1) // '['
	c.skipWS()

	var calls []ir.Call
	for {
		call, ok, err := c.parseCall()
		if err != nil {
			return ir.Property{}, err
		}
		if !ok {
			break
		}
		calls = append(calls, call)
		c.skipWS()
		if !c.ensureChar(',') {
			break
		}
		c.skipWS()
	}

	if !c.ensureChar(']') {
		return ir.Property{}, newErr(c.point(), errkind.PropMissEnd)
	}

	return ir.Property{Span: c.spanTo(start), Calls: calls}, nil
}

// parseCall parses `ident('(' param (',' param)* ')')?`. Once the `(` is
// seen the parameter list is committed: a missing `)` is fatal
// (errkind.CallParamEnd).
func (c *cursor) parseCall() (ir.Call, bool, *Error) {
	target, ok := c.parseIdent()
	if !ok {
		return ir.Call{}, false, nil
	}
	start := target.Span
	c.skipWS()

	var params []ir.Literal
	if c.ensureChar('(') {
		c.skipWS()
		for {
			lit, ok, err := c.parseLiteral()
			if err != nil {
				return ir.Call{}, true, err
			}
			if !ok {
				break
			}
			params = append(params, lit)
			c.skipWS()
			if !c.ensureChar(',') {
				break
			}
			c.skipWS()
		}
		if !c.ensureChar(')') {
			return ir.Call{}, true, newErr(c.point(), errkind.CallParamEnd)
		}
	}

	return ir.Call{Span: c.spanTo(start), Target: target, Params: params}, true, nil
}

// parseLiteral parses a call-parameter value: a string literal or a
// hexadecimal uint literal.
func (c *cursor) parseLiteral() (ir.Literal, bool, *Error) {
	if lit, ok, err := c.parseStringLit(); ok || err != nil {
		return lit, ok, err
	}
	if lit, ok, err := c.parseHexUint(); ok || err != nil {
		return lit, ok, err
	}
	return ir.Literal{}, false, nil
}
