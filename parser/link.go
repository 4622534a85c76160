package parser

import (
	"github.com/styles-lab/mlc/ir"
	"github.com/styles-lab/mlc/parser/errkind"
)

// parseTupleIdents parses `'(' ident (',' ident)* ')'`. Once `(` is
// consumed the body is committed.
func (c *cursor) parseTupleIdents() ([]ir.Ident, *Error) {
	if !c.ensureChar('(') {
		return nil, newErr(c.point(), errkind.TupleBodyStart)
	}
	c.skipWS()

	var idents []ir.Ident
	for {
		id, ok := c.parseIdent()
		if !ok {
			break
		}
		idents = append(idents, id)
		c.skipWS()
		if !c.ensureChar(',') {
			break
		}
		c.skipWS()
	}

	if !c.ensureChar(')') {
		return nil, newErr(c.point(), errkind.TupleBodyEnd)
	}
	return idents, nil
}

// parseIdentOrTuple parses either a bare identifier (wrapped as a
// one-element slice) or a parenthesized tuple of identifiers, the
// `(ident|ident-tuple)` alternative used by apply-to and children-of.
func (c *cursor) parseIdentOrTuple() ([]ir.Ident, bool, *Error) {
	if id, ok := c.parseIdent(); ok {
		return []ir.Ident{id}, true, nil
	}
	if r, _ := c.peek(); r == '(' {
		idents, err := c.parseTupleIdents()
		if err != nil {
			return nil, true, err
		}
		return idents, true, nil
	}
	return nil, false, nil
}

// parseGroup parses `prefix 'group' ident ':=' '(' ident,... ')' ';'`.
func (c *cursor) parseGroup() (ir.Stat, bool, *Error) {
	comments, properties, err := c.parsePrefix()
	if err != nil {
		return nil, false, err
	}
	start := c.point()

	if !c.ensureKeyword("group") {
		return nil, false, nil
	}
	c.skipWS()

	name, ok := c.parseIdent()
	if !ok {
		return nil, true, newErr(c.point(), GenericIdent)
	}
	c.skipWS()

	if !c.ensureKeyword(":=") {
		return nil, true, newErr(c.point(), errkind.GroupAssign)
	}
	c.skipWS()

	members, terr := c.parseTupleIdents()
	if terr != nil {
		return nil, true, terr
	}
	c.skipWS()

	if !c.ensureChar(';') {
		return nil, true, newErr(c.point(), errkind.GroupEnd)
	}

	group := &ir.Group{
		Span:       c.spanTo(start),
		Name:       name,
		Members:    members,
		Properties: properties,
		Comments:   comments,
	}
	return group, true, nil
}

// parseApplyTo parses `prefix 'apply' (ident|tuple) 'to' (ident|tuple) ';'`.
func (c *cursor) parseApplyTo() (ir.Stat, bool, *Error) {
	comments, properties, err := c.parsePrefix()
	if err != nil {
		return nil, false, err
	}
	start := c.point()

	if !c.ensureKeyword("apply") {
		return nil, false, nil
	}
	c.skipWS()

	attrs, ok, ferr := c.parseIdentOrTuple()
	if ferr != nil {
		return nil, true, ferr
	}
	if !ok {
		return nil, true, newErr(c.point(), GenericIdent)
	}
	c.skipWS()

	if !c.ensureKeyword("to") {
		return nil, true, newErr(c.point(), errkind.ApplyToTo)
	}
	c.skipWS()

	targets, ok, ferr := c.parseIdentOrTuple()
	if ferr != nil {
		return nil, true, ferr
	}
	if !ok {
		return nil, true, newErr(c.point(), errkind.ApplyToTarget)
	}
	c.skipWS()

	if !c.ensureChar(';') {
		return nil, true, newErr(c.point(), errkind.ApplyToEnd)
	}

	apply := &ir.ApplyTo{
		Span:       c.spanTo(start),
		Attrs:      attrs,
		Targets:    targets,
		Properties: properties,
		Comments:   comments,
	}
	return apply, true, nil
}

// parseChildrenOf parses `prefix 'children' (ident|tuple) 'of' (ident|tuple)
// ';'`. The subject
// preceding `of` uses errkind.ChildrenOfFrom on miss, matching what it
// expects rather than reusing the Of kind (see errkind.ChildrenOf doc).
func (c *cursor) parseChildrenOf() (ir.Stat, bool, *Error) {
	comments, properties, err := c.parsePrefix()
	if err != nil {
		return nil, false, err
	}
	start := c.point()

	if !c.ensureKeyword("children") {
		return nil, false, nil
	}
	c.skipWS()

	children, ok, ferr := c.parseIdentOrTuple()
	if ferr != nil {
		return nil, true, ferr
	}
	if !ok {
		return nil, true, newErr(c.point(), errkind.ChildrenOfFrom)
	}
	c.skipWS()

	if !c.ensureKeyword("of") {
		return nil, true, newErr(c.point(), errkind.ChildrenOfOf)
	}
	c.skipWS()

	parents, ok, ferr := c.parseIdentOrTuple()
	if ferr != nil {
		return nil, true, ferr
	}
	if !ok {
		return nil, true, newErr(c.point(), errkind.ChildrenOfTo)
	}
	c.skipWS()

	if !c.ensureChar(';') {
		return nil, true, newErr(c.point(), errkind.ChildrenOfEnd)
	}

	co := &ir.ChildrenOf{
		Span:       c.spanTo(start),
		Children:   children,
		Parents:    parents,
		Properties: properties,
		Comments:   comments,
	}
	return co, true, nil
}
