package re2compat

import (
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/dlclark/re2compat/syntax"
)

// fallbackOptions maps pattern flags onto backtracking engine options.
// Verbose has no option; the dialect has already removed the whitespace.
func fallbackOptions(flags Flag) regexp2.RegexOptions {
	opt := regexp2.None
	if flags&IgnoreCase != 0 {
		opt |= regexp2.IgnoreCase
	}
	if flags&Multiline != 0 {
		opt |= regexp2.Multiline
	}
	if flags&DotAll != 0 {
		opt |= regexp2.Singleline
	}
	return opt
}

// fallbackMatcher runs a pattern on the backtracking engine. Subjects are
// handed over as runes with the full text before pos still visible, so
// lookbehind sees real context. Anchored attempts use \G, which pins the
// match to the start position.
//
// Groups reach the engine unnamed and numbered by opening parenthesis; names
// holds what the pattern called them.
type fallbackMatcher struct {
	expr    string
	opt     regexp2.RegexOptions
	timeout time.Duration
	base    *regexp2.Regexp
	names   []string

	mu       sync.Mutex
	anchored map[anchor]*regexp2.Regexp
}

func newFallbackMatcher(pattern string, flags Flag, bytes bool, timeout time.Duration) (*fallbackMatcher, error) {
	d, err := syntax.FallbackDialect(pattern, syntax.Flags(flags), bytes)
	if err != nil {
		return nil, err
	}
	f := &fallbackMatcher{
		expr:    d.Expr,
		opt:     fallbackOptions(Flag(d.Flags)),
		timeout: timeout,
		names:   d.Names,
	}
	if f.base, err = f.compile(d.Expr); err != nil {
		return nil, err
	}
	if n := len(f.base.GetGroupNumbers()); n != len(f.names) {
		return nil, fmt.Errorf("backtracking engine sees %d groups, expected %d", n-1, len(f.names)-1)
	}
	return f, nil
}

func (f *fallbackMatcher) compile(expr string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, f.opt)
	if err != nil {
		return nil, err
	}
	if f.timeout > 0 {
		re.MatchTimeout = f.timeout
	}
	return re, nil
}

func (f *fallbackMatcher) numSubexp() int {
	return len(f.names) - 1
}

func (f *fallbackMatcher) subexpNames() []string {
	return f.names
}

func (f *fallbackMatcher) program(anc anchor) (*regexp2.Regexp, error) {
	if anc == unanchored {
		return f.base, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if re, ok := f.anchored[anc]; ok {
		return re, nil
	}

	expr := `\G(?:` + f.expr + ")"
	if anc == anchorBoth {
		expr += `\z`
	}
	re, err := f.compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling anchored program: %w", err)
	}
	if f.anchored == nil {
		f.anchored = make(map[anchor]*regexp2.Regexp)
	}
	f.anchored[anc] = re
	return re, nil
}

func (f *fallbackMatcher) match(in *input, pos, endpos int, anc anchor) ([]int, error) {
	re, err := f.program(anc)
	if err != nil {
		return nil, err
	}
	rc := in.runeCache()
	runes := rc.Runes()
	start, end := rc.RuneIndex(pos), rc.RuneIndex(endpos)

	m, err := re.FindRunesMatchStartingAt(runes[:end], start)
	if err != nil || m == nil {
		return nil, err
	}
	loc := make([]int, 2*len(f.names))
	for i := range f.names {
		g := m.GroupByNumber(i)
		if g == nil || len(g.Captures) == 0 {
			loc[2*i], loc[2*i+1] = -1, -1
			continue
		}
		loc[2*i] = rc.ByteOffset(g.Index)
		loc[2*i+1] = rc.ByteOffset(g.Index + g.Length)
	}
	return loc, nil
}
