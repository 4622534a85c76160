// Package analyzer implements mlang's semantic-analysis pass: a three-table
// symbol index plus a validate-and-rewrite walk over the parser's []ir.Stat.
package analyzer

import (
	"fmt"

	"github.com/styles-lab/mlc/diagnostic"
	"github.com/styles-lab/mlc/ir"
)

// Target is the diagnostic sink tag every analyzer report carries.
const Target = "MLANG_ANALYZER"

// ErrDuplicate reports a second declaration of a name already indexed. The
// map keeps the later declaration (see DESIGN.md's Open Question decision);
// PrevSpan still names the earlier one for the diagnostic.
type ErrDuplicate struct {
	Name     string
	Span     ir.Span
	PrevSpan ir.Span
}

func (e *ErrDuplicate) Error() string {
	return fmt.Sprintf("%s duplicate declaration %q, first declared at %s",
		diagnostic.FormatPos(e.Span.Start), e.Name, diagnostic.FormatPos(e.PrevSpan.Start))
}

func (e *ErrDuplicate) DiagSpan() diagnostic.Span { return e.Span }

// ErrUnknown reports a reference to an identifier with no matching
// declaration in the relevant table. Suggestion, when non-empty, names the
// closest declared identifier by edit distance.
type ErrUnknown struct {
	Name       string
	Span       ir.Span
	Suggestion string
}

func (e *ErrUnknown) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s unknown identifier %q, did you mean %q?",
			diagnostic.FormatPos(e.Span.Start), e.Name, e.Suggestion)
	}
	return fmt.Sprintf("%s unknown identifier %q", diagnostic.FormatPos(e.Span.Start), e.Name)
}

func (e *ErrUnknown) DiagSpan() diagnostic.Span { return e.Span }

// ErrGroupAsType reports a field `Type::Data` whose identifier names a
// group, which is never a valid type.
type ErrGroupAsType struct {
	Name      string
	Span      ir.Span
	GroupSpan ir.Span
}

func (e *ErrGroupAsType) Error() string {
	return fmt.Sprintf("%s group %q (declared at %s) cannot be used as a type",
		diagnostic.FormatPos(e.Span.Start), e.Name, diagnostic.FormatPos(e.GroupSpan.Start))
}

func (e *ErrGroupAsType) DiagSpan() diagnostic.Span { return e.Span }

// ErrGroupNested reports a `group` declaration naming another group among
// its members; groups may not nest.
type ErrGroupNested struct {
	Name      string
	Span      ir.Span
	GroupSpan ir.Span
}

func (e *ErrGroupNested) Error() string {
	return fmt.Sprintf("%s group %q (declared at %s) cannot be a member of another group",
		diagnostic.FormatPos(e.Span.Start), e.Name, diagnostic.FormatPos(e.GroupSpan.Start))
}

func (e *ErrGroupNested) DiagSpan() diagnostic.Span { return e.Span }

// ErrMerge reports a mixin whose fields could not be merged into the
// referring node because the two field-list shapes disagree.
type ErrMerge struct {
	MixinName string
	MixinSpan ir.Span
}

func (e *ErrMerge) Error() string {
	return fmt.Sprintf("%s cannot merge mixin %q: incompatible field shapes",
		diagnostic.FormatPos(e.MixinSpan.Start), e.MixinName)
}

func (e *ErrMerge) DiagSpan() diagnostic.Span { return e.MixinSpan }

// ErrRenameArity reports a `rename(...)` call without exactly one string
// parameter.
type ErrRenameArity struct {
	Span ir.Span
}

func (e *ErrRenameArity) Error() string {
	return fmt.Sprintf("%s rename() expects exactly one string parameter", diagnostic.FormatPos(e.Span.Start))
}

func (e *ErrRenameArity) DiagSpan() diagnostic.Span { return e.Span }

// ErrVariableOptionArity reports an `option`/`variable`/`init` call with
// one or more parameters.
type ErrVariableOptionArity struct {
	Name string
	Span ir.Span
}

func (e *ErrVariableOptionArity) Error() string {
	return fmt.Sprintf("%s %s() expects no parameters", diagnostic.FormatPos(e.Span.Start), e.Name)
}

func (e *ErrVariableOptionArity) DiagSpan() diagnostic.Span { return e.Span }
