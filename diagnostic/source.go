package diagnostic

import "strings"

// Source is a named, line-indexed source buffer. It indexes an
// already-complete source string up front rather than tracking lines
// incrementally off a streaming writer, since mlang only ever diagnoses
// one already-read source string.
type Source struct {
	Name  string
	lines []string
}

// NewSource indexes src by line for later lookups in diagnostic reports.
func NewSource(name, src string) *Source {
	return &Source{Name: name, lines: strings.Split(src, "\n")}
}

// Line returns the 1-indexed line of source text.
func (s *Source) Line(n int) (string, bool) {
	if s == nil || n < 1 || n > len(s.lines) {
		return "", false
	}
	return s.lines[n-1], true
}
