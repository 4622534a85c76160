package ir

import "fmt"

// FieldsKind distinguishes the three shapes a declaration's field list may
// take.
type FieldsKind int

const (
	FieldsUnit FieldsKind = iota
	FieldsNamed
	FieldsUnnamed
)

// Field is one member of a named field list: `name: Type [properties]`.
type Field struct {
	Span       Span
	Name       Ident
	Type       Type
	Properties []Property
	Comments   []Comment
}

// UnnamedField is one member of a positional (tuple-style) field list:
// `Type [properties]`.
type UnnamedField struct {
	Span       Span
	Type       Type
	Properties []Property
}

// Fields is a declaration's body: either empty (unit), a list of named
// fields, or a list of positional fields. The Kind tag and the non-empty
// slice must always agree; Append, AppendNamed and AppendUnnamed are the
// mutators that guarantee this.
type Fields struct {
	Span    Span
	Kind    FieldsKind
	Named   []Field
	Unnamed []UnnamedField
}

// NewFields returns an empty (unit) Fields located at span.
func NewFields(span Span) Fields {
	return Fields{Span: span, Kind: FieldsUnit}
}

// NewNamedFields returns an empty FieldsNamed located at span, used the
// moment the parser sees the opening `{`, so an empty `{}` body is still
// self-delimiting (FieldsNamed) rather than FieldsUnit, distinct from a
// declaration with no field list at all.
func NewNamedFields(span Span) Fields {
	return Fields{Span: span, Kind: FieldsNamed}
}

// NewUnnamedFields returns an empty FieldsUnnamed located at span, used
// the moment the parser sees the opening `(`.
func NewUnnamedFields(span Span) Fields {
	return Fields{Span: span, Kind: FieldsUnnamed}
}

// AppendNamed adds a named field, promoting a unit Fields to FieldsNamed. It
// reports an error (rather than panicking) if fields already holds positional
// fields, enforcing invariant 4 at the single point of mutation.
func (f *Fields) AppendNamed(field Field) error {
	switch f.Kind {
	case FieldsUnit:
		f.Kind = FieldsNamed
	case FieldsUnnamed:
		return fmt.Errorf("cannot mix named and positional fields")
	}
	f.Named = append(f.Named, field)
	f.Span = f.Span.Extend(field.Span)
	return nil
}

// AppendUnnamed adds a positional field, promoting a unit Fields to
// FieldsUnnamed. See AppendNamed.
func (f *Fields) AppendUnnamed(field UnnamedField) error {
	switch f.Kind {
	case FieldsUnit:
		f.Kind = FieldsUnnamed
	case FieldsNamed:
		return fmt.Errorf("cannot mix named and positional fields")
	}
	f.Unnamed = append(f.Unnamed, field)
	f.Span = f.Span.Extend(field.Span)
	return nil
}

// Append merges other's fields onto the end of f's, promoting a unit f to
// other's Kind. It reports an error and leaves f unchanged if neither f nor
// other is unit and their Kinds disagree (an empty `{}` body counts as
// named); Fields never mixes named and positional shapes.
func (f *Fields) Append(other Fields) error {
	if other.Kind == FieldsUnit {
		return nil
	}
	if f.Kind != FieldsUnit && f.Kind != other.Kind {
		return fmt.Errorf("cannot mix named and positional fields")
	}
	switch other.Kind {
	case FieldsNamed:
		f.Kind = FieldsNamed
		f.Named = append(f.Named, other.Named...)
	case FieldsUnnamed:
		f.Kind = FieldsUnnamed
		f.Unnamed = append(f.Unnamed, other.Unnamed...)
	}
	f.Span = f.Span.Extend(other.Span)
	return nil
}

// Len returns the number of fields regardless of Kind.
func (f Fields) Len() int {
	switch f.Kind {
	case FieldsNamed:
		return len(f.Named)
	case FieldsUnnamed:
		return len(f.Unnamed)
	default:
		return 0
	}
}

// IsTuple reports whether this Fields lacks a self-delimiting closing brace:
// true for both FieldsUnnamed (closed by `)`, ambiguous with a following
// statement without a terminator) and FieldsUnit (no delimiter at all).
// The parser requires a trailing `;` in exactly these two cases.
func (f Fields) IsTuple() bool {
	return f.Kind != FieldsNamed
}
