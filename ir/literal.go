package ir

// LiteralKind distinguishes the two literal forms mlang property calls and
// array lengths accept.
type LiteralKind int

const (
	// LiteralString is a quoted string literal, e.g. the argument to
	// `rename("path")`.
	LiteralString LiteralKind = iota
	// LiteralUint is a hexadecimal unsigned-integer literal, e.g. an array
	// length `[byte; 0x10]`.
	LiteralUint
)

// Literal is a call-parameter value: either a literal string or a literal
// (hex) unsigned integer.
type Literal struct {
	Span Span
	Kind LiteralKind
	Str  string
	Uint uint64
}

// Call is a single `ident(params...)` property invocation.
type Call struct {
	Span   Span
	Target Ident
	Params []Literal
}

// Property is a `[call, call, ...]` annotation attached to a declaration or
// field.
type Property struct {
	Span  Span
	Calls []Call
}

// findCall returns the last call in the property list targeting name, since a
// property block may legally repeat (mlang does not forbid it; the
// analyzer type-checks every call it finds, and rename-last-wins matches
// the display-name lookup path used throughout codegen).
func findCall(props []Property, name string) (Call, bool) {
	var (
		found Call
		ok    bool
	)
	for _, prop := range props {
		for _, call := range prop.Calls {
			if call.Target.Name == name {
				found, ok = call, true
			}
		}
	}
	return found, ok
}

// HasOption reports whether props sets the `option` property.
func HasOption(props []Property) bool { _, ok := findCall(props, "option"); return ok }

// HasVariable reports whether props sets the `variable` property.
func HasVariable(props []Property) bool { _, ok := findCall(props, "variable"); return ok }

// HasInit reports whether props sets the `init` property.
func HasInit(props []Property) bool { _, ok := findCall(props, "init"); return ok }

// Rename returns the `rename(...)` override name, if the property list sets
// one with exactly one string parameter; ok is
// false both when rename is absent and when it's present but malformed (the
// analyzer is responsible for reporting the malformed case; Rename here
// just reports presence of a usable override).
func Rename(props []Property) (string, bool) {
	call, ok := findCall(props, "rename")
	if !ok || len(call.Params) != 1 || call.Params[0].Kind != LiteralString {
		return "", false
	}
	return call.Params[0].Str, true
}
