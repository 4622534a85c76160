// Package errkind enumerates the precise syntactic expectations the parser
// can fail on, one enum per grammar production. Each value's Error()
// string names the exact expectation that failed.
package errkind

import "fmt"

// Uint is the error kind for a hexadecimal numeric literal.
type Uint int

const (
	UintPrefix Uint = iota
	UintMissBody
)

func (k Uint) Error() string {
	switch k {
	case UintPrefix:
		return "miss hexadecimal prefix: 0x.."
	case UintMissBody:
		return "miss hexadecimal body."
	default:
		return "invalid uint kind"
	}
}

// Prop is the error kind for a `[call, ...]` property block.
type Prop int

const (
	PropMissEnd Prop = iota
)

func (k Prop) Error() string {
	return "expect property end tag `]`"
}

// Call is the error kind for an `ident(params...)` call expression.
type Call int

const (
	CallParamEnd Call = iota
)

func (k Call) Error() string {
	return "expect call expr parameter list end tag `)`"
}

// Type is the error kind for a type declaration. A miss on the array
// length's hex literal is reported through the Uint kind, not here.
type Type int

const (
	TypeSquareBracketEnd Type = iota
	TypeData
)

func (k Type) Error() string {
	switch k {
	case TypeSquareBracketEnd:
		return "miss array/list end tag `]`"
	case TypeData:
		return "miss data name."
	default:
		return "invalid type kind"
	}
}

// Enum is the error kind for an `enum` declaration.
type Enum int

const (
	EnumIdent Enum = iota
	EnumBodyStart
	EnumBodyEnd
)

func (k Enum) Error() string {
	switch k {
	case EnumIdent:
		return "invalid enum ident."
	case EnumBodyStart:
		return "expect `{`"
	case EnumBodyEnd:
		return "expect `}`"
	default:
		return "invalid enum kind"
	}
}

// Fields is the error kind for a `{...}`/`(...)` field list.
type Fields struct {
	EndTag rune
}

func (k Fields) Error() string {
	return fmt.Sprintf("expect end tag `%c`", k.EndTag)
}

// NamedField is the error kind for a `name: Type` field.
type NamedField int

const (
	NamedFieldSemiColons NamedField = iota
	NamedFieldType
)

func (k NamedField) Error() string {
	switch k {
	case NamedFieldSemiColons:
		return "expect value/type split char `:`"
	case NamedFieldType:
		return "expect field type declaration."
	default:
		return "invalid named-field kind"
	}
}

// UnnamedField is the error kind for a positional field; it has only one
// failure mode so it carries no payload.
type UnnamedField struct{}

func (k UnnamedField) Error() string {
	return "expect field type declaration."
}

// Node is the error kind for an `el`/`leaf`/`attr`/`data`/`mixin` declaration.
type Node int

const (
	NodeMixinIdent Node = iota
	NodeFields
	NodeEnd
	NodeMixinOnMixin
)

func (k Node) Error() string {
	switch k {
	case NodeMixinIdent:
		return "expect mixin `ident`."
	case NodeFields:
		return "expect fields."
	case NodeEnd:
		return "expect `;`"
	case NodeMixinOnMixin:
		return "mixin declarations may not themselves declare a mixin."
	default:
		return "invalid node kind"
	}
}

// Group is the error kind for a `group` declaration.
type Group int

const (
	GroupAssign Group = iota
	GroupEnd
)

func (k Group) Error() string {
	switch k {
	case GroupAssign:
		return "expect `:=`."
	case GroupEnd:
		return "expect `;`."
	default:
		return "invalid group kind"
	}
}

// Tuple is the error kind for a `(ident, ...)` tuple.
type Tuple int

const (
	TupleBodyStart Tuple = iota
	TupleBodyEnd
)

func (k Tuple) Error() string {
	switch k {
	case TupleBodyStart:
		return "expect `(`."
	case TupleBodyEnd:
		return "expect `)`."
	default:
		return "invalid tuple kind"
	}
}

// ApplyTo is the error kind for an `apply ... to ...` statement.
type ApplyTo int

const (
	ApplyToTo ApplyTo = iota
	ApplyToTarget
	ApplyToEnd
)

func (k ApplyTo) Error() string {
	switch k {
	case ApplyToTo:
		return "expect keyword `to`."
	case ApplyToTarget:
		return "expect an `ident` or a group of idents `(ident,...)` following by `to` keyword."
	case ApplyToEnd:
		return "expect `;`."
	default:
		return "invalid apply-to kind"
	}
}

// ChildrenOf is the error kind for a `children ... of ...` statement. The
// miss site for the subject preceding `of` uses ChildrenOfFrom (named for
// what it expects, the subject of "children") rather than ChildrenOfOf,
// which names the `of`-keyword miss site separately so neither error
// mislabels the other's expectation.
type ChildrenOf int

const (
	ChildrenOfFrom ChildrenOf = iota
	ChildrenOfOf
	ChildrenOfTo
	ChildrenOfEnd
)

func (k ChildrenOf) Error() string {
	switch k {
	case ChildrenOfFrom:
		return "expect an `ident` or a group of idents `(ident,...)` following by `children` keyword."
	case ChildrenOfOf:
		return "expect keyword `of`."
	case ChildrenOfTo:
		return "expect an `ident` or a group of idents `(ident,...)` following by `of` keyword."
	case ChildrenOfEnd:
		return "expect `;`."
	default:
		return "invalid children-of kind"
	}
}
