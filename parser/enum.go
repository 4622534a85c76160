package parser

import (
	"github.com/styles-lab/mlc/ir"
	"github.com/styles-lab/mlc/parser/errkind"
)

// parseEnum parses `prefix 'enum' ident '{' variant (',' variant)* '}'`.
func (c *cursor) parseEnum() (ir.Stat, bool, *Error) {
	comments, properties, err := c.parsePrefix()
	if err != nil {
		return nil, false, err
	}
	start := c.point()

	if !c.ensureKeyword("enum") {
		return nil, false, nil
	}
	c.skipWS()

	name, ok := c.parseIdent()
	if !ok {
		return nil, true, newErr(c.point(), errkind.EnumIdent)
	}
	c.skipWS()

	if !c.ensureChar('{') {
		return nil, true, newErr(c.point(), errkind.EnumBodyStart)
	}
	c.skipWS()

	var variants []ir.EnumVariant
	for {
		vComments, vProps, err := c.parsePrefix()
		if err != nil {
			return nil, true, err
		}
		node, ok, err := c.parseNodeBody()
		if err != nil {
			return nil, true, err
		}
		if !ok {
			break
		}
		variants = append(variants, ir.EnumVariant{
			Span:       node.Span,
			Name:       node.Name,
			Fields:     node.Fields,
			Properties: vProps,
			Comments:   vComments,
		})
		c.skipWS()
		if !c.ensureChar(',') {
			break
		}
		c.skipWS()
	}

	if !c.ensureChar('}') {
		return nil, true, newErr(c.point(), errkind.EnumBodyEnd)
	}

	enum := &ir.Enum{
		Span:       c.spanTo(start),
		Name:       name,
		Variants:   variants,
		Properties: properties,
		Comments:   comments,
	}
	return enum, true, nil
}
