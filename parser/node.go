package parser

import (
	"github.com/styles-lab/mlc/ir"
	"github.com/styles-lab/mlc/parser/errkind"
)

var declKeywords = []struct {
	kw   string
	kind ir.DeclKind
}{
	{"el", ir.DeclElement},
	{"leaf", ir.DeclLeaf},
	{"attr", ir.DeclAttr},
	{"data", ir.DeclData},
	{"mixin", ir.DeclMixin},
}

// parseNodeBody parses `ident ('mixin' ident)? fields`, shared by both
// node declarations and enum variants.
func (c *cursor) parseNodeBody() (ir.Node, bool, *Error) {
	start := c.point()

	ident, ok := c.parseIdent()
	if !ok {
		return ir.Node{}, false, nil
	}
	c.skipWS()

	var mixin *ir.Ident
	if c.ensureKeyword("mixin") {
		c.skipWS()
		id, ok := c.parseIdent()
		if !ok {
			return ir.Node{}, true, newErr(c.point(), errkind.NodeMixinIdent)
		}
		mixin = &id
		c.skipWS()
	}

	fields, err := c.parseFields()
	if err != nil {
		return ir.Node{}, true, err
	}

	return ir.Node{
		Span:   c.spanTo(start),
		Name:   ident,
		Mixin:  mixin,
		Fields: fields,
	}, true, nil
}

// parseNodeDecl parses a full `prefix keyword ident ('mixin' ident)?
// fields (';' if tuple|unit)` statement. The statement span runs from the
// keyword through the terminating punctuation inclusive.
func (c *cursor) parseNodeDecl() (ir.Stat, bool, *Error) {
	comments, properties, err := c.parsePrefix()
	if err != nil {
		return nil, false, err
	}
	start := c.point()

	var kind ir.DeclKind
	matched := false
	for _, k := range declKeywords {
		if c.ensureKeyword(k.kw) {
			kind, matched = k.kind, true
			break
		}
	}
	if !matched {
		return nil, false, nil
	}
	c.skipWS()

	node, ok, err := c.parseNodeBody()
	if err != nil {
		return nil, true, err
	}
	if !ok {
		return nil, true, newErr(c.point(), errkind.NodeFields)
	}

	node.Comments = comments
	node.Properties = properties
	node.DeclKind = kind

	if kind == ir.DeclMixin && node.Mixin != nil {
		return nil, true, newErr(node.Mixin.Span, errkind.NodeMixinOnMixin)
	}

	if node.Fields.IsTuple() {
		if !c.ensureChar(';') {
			return nil, true, newErr(c.point(), errkind.NodeEnd)
		}
	} else {
		// A brace-delimited field list is self-terminating, so a trailing
		// `;` is optional here, tolerated when present.
		mark := *c
		c.skipWS()
		if !c.ensureChar(';') {
			*c = mark
		}
	}
	node.Span = c.spanTo(start)

	nodeCopy := node
	return &nodeCopy, true, nil
}
