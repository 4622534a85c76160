package analyzer

import (
	"sort"

	"github.com/styles-lab/mlc/diagnostic"
	"github.com/styles-lab/mlc/ir"
)

// analysis carries the three symbol tables and the error count across both
// passes.
type analysis struct {
	stats   []ir.Stat
	symbols symbolTable
	mixins  symbolTable
	groups  symbolTable
	sink    diagnostic.Sink
	errors  int
}

// Analyze runs the build-index pass followed by the check-and-rewrite pass
// over schema.Stats, reporting every diagnostic through sink with target
// Target, and mutating schema.Stats in place. It returns true iff zero
// errors were accumulated.
func Analyze(schema *ir.Schema, sink diagnostic.Sink) bool {
	a := &analysis{
		stats:   schema.Stats,
		symbols: symbolTable{},
		mixins:  symbolTable{},
		groups:  symbolTable{},
		sink:    sink,
	}
	a.buildIndex()
	a.checkAndRewrite()
	return a.errors == 0
}

func (a *analysis) report(err error) {
	a.errors++
	a.sink.Report(Target, err)
}

// suggest returns the declared name in table closest to name by edit
// distance, for "did you mean?" hints on unknown-identifier reports.
// Candidates are sorted first so a tie always resolves the same way.
func (a *analysis) suggest(name string, table symbolTable) string {
	candidates := make([]string, 0, len(table))
	for k := range table {
		candidates = append(candidates, k)
	}
	sort.Strings(candidates)
	return diagnostic.Suggestion(name, candidates)
}

// buildIndex is pass 1: walk the slice once, inserting every named
// declaration into the appropriate tables. A duplicate symbol-table
// insertion is reported but does not stop indexing: the later occurrence
// wins in the map (see DESIGN.md's Open Question decision), so downstream
// lookups resolve to the second declaration.
func (a *analysis) buildIndex() {
	for i, stat := range a.stats {
		switch s := stat.(type) {
		case *ir.Node:
			s.Index = i
			a.insertSymbol(s.Name, i)
			if s.DeclKind == ir.DeclMixin {
				a.mixins[s.Name.Name] = symbolEntry{Span: s.Name.Span, Index: i}
			}
		case *ir.Enum:
			s.Index = i
			a.insertSymbol(s.Name, i)
		case *ir.Group:
			s.Index = i
			a.insertSymbol(s.Name, i)
			a.groups[s.Name.Name] = symbolEntry{Span: s.Name.Span, Index: i}
		}
		// ApplyTo/ChildrenOf declare no names.
	}
}

func (a *analysis) insertSymbol(name ir.Ident, index int) {
	if prev, ok := a.symbols[name.Name]; ok {
		a.report(&ErrDuplicate{Name: name.Name, Span: name.Span, PrevSpan: prev.Span})
	}
	a.symbols[name.Name] = symbolEntry{Span: name.Span, Index: index}
}

// checkAndRewrite is pass 2: iterate the slice again, type-checking every
// field, validating every property call, merging mixins, and expanding
// group references in link endpoints. ApplyTo/ChildrenOf rewrites are
// collected into a deferred buffer and applied only once the walk
// finishes, so every lookup during the walk sees the original, stable set
// of statements.
func (a *analysis) checkAndRewrite() {
	deferred := map[int]ir.Stat{}

	for i, stat := range a.stats {
		switch s := stat.(type) {
		case *ir.Node:
			a.checkNode(s)
		case *ir.Enum:
			a.checkProperties(s.Properties)
			for vi := range s.Variants {
				a.checkFields(&s.Variants[vi].Fields)
				a.checkProperties(s.Variants[vi].Properties)
			}
		case *ir.Group:
			a.checkProperties(s.Properties)
			a.checkGroup(s)
		case *ir.ApplyTo:
			a.checkProperties(s.Properties)
			attrs, attrIdx := a.expandEndpoint(s.Attrs)
			targets, targetIdx := a.expandEndpoint(s.Targets)
			deferred[i] = &ir.ApplyTo{
				Span:       s.Span,
				Attrs:      attrs,
				AttrIdx:    attrIdx,
				Targets:    targets,
				TargetIdx:  targetIdx,
				Properties: s.Properties,
				Comments:   s.Comments,
			}
		case *ir.ChildrenOf:
			a.checkProperties(s.Properties)
			children, childIdx := a.expandEndpoint(s.Children)
			parents, parentIdx := a.expandEndpoint(s.Parents)
			deferred[i] = &ir.ChildrenOf{
				Span:       s.Span,
				Children:   children,
				ChildIdx:   childIdx,
				Parents:    parents,
				ParentIdx:  parentIdx,
				Properties: s.Properties,
				Comments:   s.Comments,
			}
		}
	}

	for i, rewritten := range deferred {
		a.stats[i] = rewritten
	}
}

// checkNode type-checks a node's own fields and, if it names a mixin,
// resolves and merges it.
func (a *analysis) checkNode(s *ir.Node) {
	a.checkFields(&s.Fields)
	a.checkProperties(s.Properties)

	if s.Mixin == nil {
		return
	}
	// The parser rejects a `mixin` declaration that itself names a mixin,
	// so s.DeclKind == ir.DeclMixin never reaches here with Mixin set.
	mixinIdent := *s.Mixin
	entry, ok := a.mixins[mixinIdent.Name]
	if !ok {
		a.report(&ErrUnknown{Name: mixinIdent.Name, Span: mixinIdent.Span, Suggestion: a.suggest(mixinIdent.Name, a.mixins)})
		s.Mixin = nil
		return
	}

	mixinNode := a.stats[entry.Index].(*ir.Node)
	merged := ir.Fields{Span: mixinNode.Fields.Span, Kind: mixinNode.Fields.Kind}
	merged.Named = append([]ir.Field{}, mixinNode.Fields.Named...)
	merged.Unnamed = append([]ir.UnnamedField{}, mixinNode.Fields.Unnamed...)

	if err := merged.Append(s.Fields); err != nil {
		a.report(&ErrMerge{MixinName: mixinIdent.Name, MixinSpan: entry.Span})
	} else {
		s.Fields = merged
	}
	s.Mixin = nil
}

// checkGroup validates that every group member resolves to a declared,
// non-group symbol.
func (a *analysis) checkGroup(s *ir.Group) {
	s.MemberIdx = nil
	for _, member := range s.Members {
		entry, ok := a.symbols[member.Name]
		if !ok {
			a.report(&ErrUnknown{Name: member.Name, Span: member.Span, Suggestion: a.suggest(member.Name, a.symbols)})
			continue
		}
		if groupEntry, isGroup := a.groups[member.Name]; isGroup {
			a.report(&ErrGroupNested{Name: member.Name, Span: member.Span, GroupSpan: groupEntry.Span})
			continue
		}
		s.MemberIdx = append(s.MemberIdx, entry.Index)
	}
}

// expandEndpoint resolves every identifier in an ApplyTo/ChildrenOf
// endpoint list, replacing any group reference with the group's member
// identifiers in place. Unknown
// identifiers are reported and dropped from the result.
func (a *analysis) expandEndpoint(idents []ir.Ident) ([]ir.Ident, []int) {
	var names []ir.Ident
	var idxs []int
	for _, id := range idents {
		entry, ok := a.symbols[id.Name]
		if !ok {
			a.report(&ErrUnknown{Name: id.Name, Span: id.Span, Suggestion: a.suggest(id.Name, a.symbols)})
			continue
		}
		if _, isGroup := a.groups[id.Name]; isGroup {
			groupStat := a.stats[entry.Index].(*ir.Group)
			for _, member := range groupStat.Members {
				memberEntry, ok := a.symbols[member.Name]
				if !ok {
					// The group's own check already reported this member.
					continue
				}
				names = append(names, member)
				idxs = append(idxs, memberEntry.Index)
			}
			continue
		}
		names = append(names, id)
		idxs = append(idxs, entry.Index)
	}
	return names, idxs
}

// checkFields type-checks every field's Type and validates every field's
// property calls, writing the resolved Type (DataType.Index filled in)
// back into the Fields in place.
func (a *analysis) checkFields(fields *ir.Fields) {
	switch fields.Kind {
	case ir.FieldsNamed:
		for i := range fields.Named {
			f := &fields.Named[i]
			f.Type = a.checkType(f.Type)
			a.checkProperties(f.Properties)
		}
	case ir.FieldsUnnamed:
		for i := range fields.Unnamed {
			f := &fields.Unnamed[i]
			f.Type = a.checkType(f.Type)
			a.checkProperties(f.Properties)
		}
	}
}

// checkType implements the type-check policy: a Data reference must name
// a declared, non-group symbol; List/Array recurse
// into their element type. Returns the type with any DataType.Index
// resolved, since ir.Type variants are plain values, not pointers.
func (a *analysis) checkType(t ir.Type) ir.Type {
	switch v := t.(type) {
	case ir.DataType:
		entry, ok := a.symbols[v.Target.Name]
		if !ok {
			a.report(&ErrUnknown{Name: v.Target.Name, Span: v.Target.Span, Suggestion: a.suggest(v.Target.Name, a.symbols)})
			return v
		}
		if groupEntry, isGroup := a.groups[v.Target.Name]; isGroup {
			a.report(&ErrGroupAsType{Name: v.Target.Name, Span: v.Target.Span, GroupSpan: groupEntry.Span})
			return v
		}
		v.Index = entry.Index
		return v
	case ir.ListOfType:
		v.Elem = a.checkType(v.Elem)
		return v
	case ir.ArrayOfType:
		v.Elem = a.checkType(v.Elem)
		return v
	default:
		return t
	}
}

// checkProperties validates every `option|variable|init` (zero params) and
// `rename` (exactly one string param) call; unknown property names are
// silently accepted.
func (a *analysis) checkProperties(props []ir.Property) {
	for _, prop := range props {
		for _, call := range prop.Calls {
			switch call.Target.Name {
			case "option", "variable", "init":
				if len(call.Params) > 0 {
					a.report(&ErrVariableOptionArity{Name: call.Target.Name, Span: call.Span})
				}
			case "rename":
				if len(call.Params) != 1 || call.Params[0].Kind != ir.LiteralString {
					a.report(&ErrRenameArity{Span: call.Span})
				}
			}
		}
	}
}
