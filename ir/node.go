package ir

// Node is an `element`/`leaf`/`attr`/`data`/`mixin` declaration, mlang's
// single declaration shape, distinguished by DeclKind.
type Node struct {
	Span     Span
	DeclKind DeclKind
	Name     Ident
	// Mixin is the optional `mixin Name` reference; the analyzer resolves
	// it, merges the mixin's fields in, and clears this slot.
	Mixin      *Ident
	Fields     Fields
	Properties []Property
	Comments   []Comment

	// Index is this node's position in Schema.Stats, filled by the
	// analyzer's build-index pass.
	Index int
}

// DeclKind distinguishes the five keyword-introduced declaration forms that
// all share Node's shape.
type DeclKind int

const (
	DeclElement DeclKind = iota
	DeclLeaf
	DeclAttr
	DeclData
	DeclMixin
)

func (k DeclKind) String() string {
	switch k {
	case DeclElement:
		return "element"
	case DeclLeaf:
		return "leaf"
	case DeclAttr:
		return "attr"
	case DeclData:
		return "data"
	case DeclMixin:
		return "mixin"
	default:
		return "<invalid decl kind>"
	}
}

// EnumVariant is one member of an enum: a name plus an optional associated
// field list.
type EnumVariant struct {
	Span       Span
	Name       Ident
	Fields     Fields
	Properties []Property
	Comments   []Comment
}

// Enum is an `enum Name { variant, variant(Fields), ... }` declaration.
type Enum struct {
	Span       Span
	Name       Ident
	Variants   []EnumVariant
	Properties []Property
	Comments   []Comment
	Index      int
}

// Group is a `group Name := (member, member, ...);` declaration: a named set
// of node references used by `apply ... to` and `children ... of` statements
// to expand to every member at once.
type Group struct {
	Span       Span
	Name       Ident
	Members    []Ident
	MemberIdx  []int
	Properties []Property
	Comments   []Comment
	Index      int
}
