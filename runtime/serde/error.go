// Package serde defines the host runtime contract generated opcode/serde
// code is written against. The production wire encoding behind these
// interfaces is explicitly out of scope; this package only pins down the
// interface surface, plus error kinds raised only by generated
// deserializers.
package serde

import "fmt"

// ErrorKind discriminates the runtime error variants the host contract
// requires.
type ErrorKind int

const (
	ErrUnknownType ErrorKind = iota
	ErrUnknownTypeName
	ErrUnknownVariant
	ErrUnknownVariantIndex
	ErrOutOfRange
	ErrUnexpect
	ErrParseNumeric
)

// Error is the single runtime error value raised by generated
// deserializers, one value per ErrorKind.
type Error struct {
	Kind ErrorKind

	TypeID       int
	TypeName     string
	EnumName     string
	Variant      string
	VariantIndex int
	Got          int
	Expected     int
	UnexpectKind string
	Cause        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnknownType:
		return fmt.Sprintf("unknown type id %d", e.TypeID)
	case ErrUnknownTypeName:
		return fmt.Sprintf("unknown type name %q", e.TypeName)
	case ErrUnknownVariant:
		return fmt.Sprintf("unknown variant %q of enum %q", e.Variant, e.EnumName)
	case ErrUnknownVariantIndex:
		return fmt.Sprintf("unknown variant index %d of enum %q", e.VariantIndex, e.EnumName)
	case ErrOutOfRange:
		return fmt.Sprintf("value %d out of range, expected at most %d", e.Got, e.Expected)
	case ErrUnexpect:
		return fmt.Sprintf("unexpected value, wanted %s", e.UnexpectKind)
	case ErrParseNumeric:
		return fmt.Sprintf("failed to parse numeric value: %s", e.Cause)
	default:
		return "unknown serde error"
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// UnknownType builds an ErrUnknownType error for the given type_id.
func UnknownType(typeID int) error { return &Error{Kind: ErrUnknownType, TypeID: typeID} }

// UnknownTypeName builds an ErrUnknownTypeName error.
func UnknownTypeName(name string) error { return &Error{Kind: ErrUnknownTypeName, TypeName: name} }

// UnknownVariant builds an ErrUnknownVariant error.
func UnknownVariant(enumName, variant string) error {
	return &Error{Kind: ErrUnknownVariant, EnumName: enumName, Variant: variant}
}

// UnknownVariantIndex builds an ErrUnknownVariantIndex error.
func UnknownVariantIndex(enumName string, index int) error {
	return &Error{Kind: ErrUnknownVariantIndex, EnumName: enumName, VariantIndex: index}
}

// OutOfRange builds an ErrOutOfRange error.
func OutOfRange(got, expected int) error {
	return &Error{Kind: ErrOutOfRange, Got: got, Expected: expected}
}

// Unexpect builds an ErrUnexpect error.
func Unexpect(kind string) error { return &Error{Kind: ErrUnexpect, UnexpectKind: kind} }

// ParseNumeric wraps a numeric-parse failure.
func ParseNumeric(cause error) error { return &Error{Kind: ErrParseNumeric, Cause: cause} }
