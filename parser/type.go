package parser

import (
	"github.com/styles-lab/mlc/ir"
	"github.com/styles-lab/mlc/parser/errkind"
)

// parseType parses a field/variant type: a primitive keyword, a data-type
// reference by identifier, a `[T]` list, or a `[T; N]` array.
func (c *cursor) parseType() (ir.Type, bool, *Error) {
	start := c.point()

	if c.ensureChar('[') {
		c.skipWS()
		elem, ok, err := c.parseType()
		if err != nil {
			return nil, true, err
		}
		if !ok {
			return nil, true, newErr(c.point(), errkind.TypeData)
		}
		c.skipWS()

		if c.ensureChar(';') {
			c.skipWS()
			length, ok, err := c.parseHexUint()
			if err != nil {
				return nil, true, err
			}
			if !ok {
				// Array lengths accept hexadecimal literals only; anything
				// else is a missing 0x prefix.
				return nil, true, newErr(c.point(), errkind.UintPrefix)
			}
			c.skipWS()
			if !c.ensureChar(']') {
				return nil, true, newErr(c.point(), errkind.TypeSquareBracketEnd)
			}
			return ir.ArrayOfType{Span: c.spanTo(start), Elem: elem, Length: length}, true, nil
		}

		if !c.ensureChar(']') {
			return nil, true, newErr(c.point(), errkind.TypeSquareBracketEnd)
		}
		return ir.ListOfType{Span: c.spanTo(start), Elem: elem}, true, nil
	}

	if ident, ok := c.parseIdent(); ok {
		if kind, isPrim := ir.Primitives[ident.Name]; isPrim {
			return ir.PrimitiveType{Span: ident.Span, Kind: kind}, true, nil
		}
		return ir.DataType{Span: ident.Span, Target: ident, Index: -1}, true, nil
	}

	return nil, false, nil
}
