// Package ir defines mlang's shared intermediate representation: the typed
// tree the parser builds, the analyzer mutates in place, and the generator
// consumes read-only. Closed interface sums stand in for the sum types of
// the schema language this was modeled on, and marker interfaces (Stat,
// Type) with span accessors replace struct tags, since nothing here is fed
// through a reflection-based parser.
package ir

import "github.com/styles-lab/mlc/diagnostic"

// Span is a byte-offset range into source text, attached to every IR node
// for diagnostics.
type Span = diagnostic.Span

// Ident is a source-located identifier.
type Ident struct {
	Span Span
	Name string
}

func (id Ident) String() string { return id.Name }

// Comment is a single line of documentation attached to a declaration.
type Comment struct {
	Span Span
	Text string
}
