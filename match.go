package re2compat

import (
	"fmt"
)

// MatchResult is the result of a successful match attempt. Offsets are logical
// units for text subjects and byte offsets for byte subjects. Derived values
// are computed on first use and kept; a MatchResult is not safe for concurrent
// use.
type MatchResult[T Text] struct {
	pattern *Pattern[T]
	subject T
	in      *input

	pos, endpos int   // searched range in bytes
	spans       []int // byte offsets, two per group, -1 when absent

	logical    []int // spans in caller units, then pos and endpos
	lastIndex  int
	lastMapped bool
}

func newMatch[T Text](p *Pattern[T], subject T, in *input, pos, endpos int, spans []int) *MatchResult[T] {
	return &MatchResult[T]{
		pattern: p,
		subject: subject,
		in:      in,
		pos:     pos,
		endpos:  endpos,
		spans:   spans,
	}
}

// table returns the spans, pos and endpos converted to caller units. Every
// offset is mapped in a single pass over the subject.
func (m *MatchResult[T]) table() []int {
	if m.logical == nil {
		offs := make([]int, 0, len(m.spans)+2)
		offs = append(offs, m.spans...)
		offs = append(offs, m.pos, m.endpos)
		m.logical = m.in.units(offs)
	}
	return m.logical
}

func (m *MatchResult[T]) checkGroup(i int) error {
	if i < 0 || 2*i >= len(m.spans) {
		return fmt.Errorf("%w: %d", ErrNoSuchGroup, i)
	}
	return nil
}

func (m *MatchResult[T]) groupIndex(name string) (int, error) {
	i, ok := m.pattern.groupIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNoSuchGroup, name)
	}
	return i, nil
}

// text returns group i and whether it participated. i must be valid.
func (m *MatchResult[T]) text(i int) (T, bool) {
	start, end := m.spans[2*i], m.spans[2*i+1]
	if start < 0 {
		var zero T
		return zero, false
	}
	return m.subject[start:end], true
}

// Text returns the text of the whole match.
func (m *MatchResult[T]) Text() T {
	t, _ := m.text(0)
	return t
}

// Group returns the text of group i. Groups that did not participate return
// the zero value.
func (m *MatchResult[T]) Group(i int) (T, error) {
	if err := m.checkGroup(i); err != nil {
		var zero T
		return zero, err
	}
	t, _ := m.text(i)
	return t, nil
}

// GroupByName returns the text of the named group.
func (m *MatchResult[T]) GroupByName(name string) (T, error) {
	i, err := m.groupIndex(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.Group(i)
}

// Groups returns the text of every group but the whole match, with def in
// place of groups that did not participate.
func (m *MatchResult[T]) Groups(def T) []T {
	n := len(m.spans)/2 - 1
	out := make([]T, n)
	for i := range out {
		if t, ok := m.text(i + 1); ok {
			out[i] = t
		} else {
			out[i] = def
		}
	}
	return out
}

// GroupDict returns the text of every named group, with def in place of
// groups that did not participate.
func (m *MatchResult[T]) GroupDict(def T) map[string]T {
	out := make(map[string]T, len(m.pattern.groupIndex))
	for name, i := range m.pattern.groupIndex {
		if t, ok := m.text(i); ok {
			out[name] = t
		} else {
			out[name] = def
		}
	}
	return out
}

// Matched reports whether group i participated in the match.
func (m *MatchResult[T]) Matched(i int) bool {
	return m.checkGroup(i) == nil && m.spans[2*i] >= 0
}

// Span returns the start and end of group i, (-1, -1) when it did not
// participate.
func (m *MatchResult[T]) Span(i int) (start, end int, err error) {
	if err := m.checkGroup(i); err != nil {
		return -1, -1, err
	}
	t := m.table()
	return t[2*i], t[2*i+1], nil
}

// SpanByName returns the start and end of the named group.
func (m *MatchResult[T]) SpanByName(name string) (start, end int, err error) {
	i, err := m.groupIndex(name)
	if err != nil {
		return -1, -1, err
	}
	return m.Span(i)
}

// Start returns the start of the whole match.
func (m *MatchResult[T]) Start() int {
	return m.table()[0]
}

// End returns the end of the whole match.
func (m *MatchResult[T]) End() int {
	return m.table()[1]
}

// Regs returns the span of every group, the whole match first.
func (m *MatchResult[T]) Regs() [][2]int {
	t := m.table()
	out := make([][2]int, len(m.spans)/2)
	for i := range out {
		out[i] = [2]int{t[2*i], t[2*i+1]}
	}
	return out
}

// LastIndex returns the index of the participating group that ends last.
// When several end at the same offset the one opened first wins. ok is false
// when no group participated.
func (m *MatchResult[T]) LastIndex() (int, bool) {
	if !m.lastMapped {
		m.lastIndex = -1
		best := -1
		for i := 1; 2*i < len(m.spans); i++ {
			if m.spans[2*i] >= 0 && m.spans[2*i+1] > best {
				best = m.spans[2*i+1]
				m.lastIndex = i
			}
		}
		m.lastMapped = true
	}
	return m.lastIndex, m.lastIndex > 0
}

// LastGroup returns the name of the last group, if it has one.
func (m *MatchResult[T]) LastGroup() (string, bool) {
	i, ok := m.LastIndex()
	if !ok || m.pattern.groupNames[i] == "" {
		return "", false
	}
	return m.pattern.groupNames[i], true
}

// Expand returns template with group references replaced by the text of
// this match. It understands \g<name>, \g<number>, \0 to \9 and the escapes
// \n \t \r \f \v \a \b and \\. Other escapes are kept as written.
func (m *MatchResult[T]) Expand(template T) (T, error) {
	t, err := parseExpand(string(template), m.pattern)
	if err != nil {
		var zero T
		return zero, err
	}
	return T(appendTemplate(nil, t, m)), nil
}

// Pos returns the start of the searched range.
func (m *MatchResult[T]) Pos() int {
	t := m.table()
	return t[len(t)-2]
}

// EndPos returns the end of the searched range.
func (m *MatchResult[T]) EndPos() int {
	t := m.table()
	return t[len(t)-1]
}

// Pattern returns the pattern that produced the match.
func (m *MatchResult[T]) Pattern() *Pattern[T] {
	return m.pattern
}

// Subject returns the text that was searched.
func (m *MatchResult[T]) Subject() T {
	return m.subject
}
