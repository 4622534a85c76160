package analyzer

import "github.com/styles-lab/mlc/ir"

// symbolEntry is a symbol table value: the span of the declaration (for
// "previously declared at" diagnostics) and its index into the Stats slice
// the analyzer is walking. The analyzer never stores a direct reference to
// the Stat itself, only this index, so lookups stay index-based rather
// than forming reference cycles.
type symbolEntry struct {
	Span  ir.Span
	Index int
}

// symbolTable is keyed by identifier string; the analyzer's three tables
// (symbol_table, mixin_table, group_table) all share this shape.
type symbolTable map[string]symbolEntry
