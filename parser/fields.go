package parser

import (
	"github.com/styles-lab/mlc/ir"
	"github.com/styles-lab/mlc/parser/errkind"
)

// parseFields parses a declaration body: `{ named-field, ... }`,
// `( type, ... )`, or nothing at all (unit). Once either opening
// brace/paren is consumed the body is committed: a missing closer is
// fatal (errkind.Fields{EndTag}).
func (c *cursor) parseFields() (ir.Fields, *Error) {
	start := c.point()

	if c.ensureChar('{') {
		fields := ir.NewNamedFields(start)
		c.skipWS()
		for {
			comments, properties, err := c.parsePrefix()
			if err != nil {
				return ir.Fields{}, err
			}
			field, ok, err := c.parseNamedField()
			if err != nil {
				return ir.Fields{}, err
			}
			if !ok {
				break
			}
			field.Comments = comments
			// A field's annotations may sit in its prefix or trail its
			// type; both land in the same property list, prefix first.
			field.Properties = append(properties, field.Properties...)
			if mergeErr := fields.AppendNamed(field); mergeErr != nil {
				return ir.Fields{}, newErr(field.Span, errkind.NodeFields)
			}
			c.skipWS()
			if !c.ensureChar(',') {
				break
			}
			c.skipWS()
		}
		if !c.ensureChar('}') {
			return ir.Fields{}, newErr(c.point(), errkind.Fields{EndTag: '}'})
		}
		fields.Span = c.spanTo(start)
		return fields, nil
	}

	if c.ensureChar('(') {
		fields := ir.NewUnnamedFields(start)
		c.skipWS()
		for {
			typ, ok, err := c.parseType()
			if err != nil {
				return ir.Fields{}, err
			}
			if !ok {
				// Anything other than the closing paren here is a token
				// that failed to parse as a field type.
				if r, _ := c.peek(); r != ')' {
					return ir.Fields{}, newErr(c.point(), errkind.UnnamedField{})
				}
				break
			}
			c.skipWS()
			properties, err := c.parseTrailingProperties()
			if err != nil {
				return ir.Fields{}, err
			}
			uf := ir.UnnamedField{Span: typ.TypeSpan(), Type: typ, Properties: properties}
			if mergeErr := fields.AppendUnnamed(uf); mergeErr != nil {
				return ir.Fields{}, newErr(uf.Span, errkind.UnnamedField{})
			}
			c.skipWS()
			if !c.ensureChar(',') {
				break
			}
			c.skipWS()
		}
		if !c.ensureChar(')') {
			return ir.Fields{}, newErr(c.point(), errkind.Fields{EndTag: ')'})
		}
		fields.Span = c.spanTo(start)
		return fields, nil
	}

	return ir.NewFields(start), nil
}

// parseTrailingProperties parses the optional `[call, ...]` block that may
// follow a positional field's type, reusing parseProperty directly since
// positional fields carry no leading comments.
func (c *cursor) parseTrailingProperties() ([]ir.Property, *Error) {
	var properties []ir.Property
	for {
		if r, _ := c.peek(); r != '[' {
			break
		}
		prop, err := c.parseProperty()
		if err != nil {
			return nil, err
		}
		properties = append(properties, prop)
		c.skipWS()
	}
	return properties, nil
}

// parseNamedField parses `ident ':' type` within a brace-delimited field
// list. Once the identifier has matched, the `:` and the type are
// committed (errkind.NamedFieldSemiColons / errkind.NamedFieldType).
func (c *cursor) parseNamedField() (ir.Field, bool, *Error) {
	name, ok := c.parseIdent()
	if !ok {
		return ir.Field{}, false, nil
	}
	start := name.Span
	c.skipWS()

	if !c.ensureChar(':') {
		return ir.Field{}, true, newErr(c.point(), errkind.NamedFieldSemiColons)
	}
	c.skipWS()

	typ, ok, err := c.parseType()
	if err != nil {
		return ir.Field{}, true, err
	}
	if !ok {
		return ir.Field{}, true, newErr(c.point(), errkind.NamedFieldType)
	}
	c.skipWS()

	properties, err := c.parseTrailingProperties()
	if err != nil {
		return ir.Field{}, true, err
	}

	return ir.Field{Span: c.spanTo(start), Name: name, Type: typ, Properties: properties}, true, nil
}
