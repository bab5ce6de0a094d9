/*
Package re2compat is a regexp package that follows the semantics of Python's re module (flags, group
numbering, spans, sub and split behaviour) but runs patterns on a linear time RE2 style engine whenever
it can.

Patterns are rewritten from Python syntax into RE2 syntax first. When the rewrite or the RE2 compile
fails for a construct RE2 does not have, such as backreferences or lookaround, the original pattern is
compiled by the backtracking engine from github.com/dlclark/regexp2 instead. Which engine runs a pattern
is visible through Pattern.Engine and is otherwise transparent.

A Pattern[string] treats its subjects as logical text and reports offsets in logical units, one per
character and two for characters outside the Basic Multilingual Plane. A Pattern[[]byte] works on raw
bytes and reports byte offsets.
*/
package re2compat

import (
	"fmt"
	"strconv"

	"github.com/dlclark/re2compat/syntax"
)

// Text is the set of subject and pattern types: string for logical text,
// []byte for raw bytes.
type Text interface {
	string | []byte
}

// Flag is a bitmask of compile flags. The values match those of Python's re
// module.
type Flag uint32

const (
	IgnoreCase = Flag(syntax.IgnoreCase) // "i"
	Locale     = Flag(syntax.Locale)     // "L", accepted, no effect
	Multiline  = Flag(syntax.Multiline)  // "m"
	DotAll     = Flag(syntax.DotAll)     // "s"
	Unicode    = Flag(syntax.Unicode)    // "u"
	Verbose    = Flag(syntax.Verbose)    // "x"
	Debug      = Flag(syntax.Debug)      // accepted, no effect
	ASCII      = Flag(syntax.ASCII)      // "a"

	I = IgnoreCase
	L = Locale
	M = Multiline
	S = DotAll
	U = Unicode
	X = Verbose
	A = ASCII
)

func (f Flag) String() string {
	return syntax.Flags(f).String()
}

// ParseFlags parses inline flag letters such as "imx".
func ParseFlags(letters string) (Flag, error) {
	var flags Flag
	for i := 0; i < len(letters); i++ {
		f, ok := syntax.FlagForLetter(letters[i])
		if !ok {
			return 0, fmt.Errorf("re2compat: unknown flag %q", letters[i])
		}
		flags |= Flag(f)
	}
	return flags, nil
}

// Pattern is the representation of a compiled regular expression.
// A Pattern is safe for concurrent use by multiple goroutines.
type Pattern[T Text] struct {
	// read-only after Compile
	pattern    T      // as passed to Compile
	flags      Flag   // including leading inline flags
	translated string // empty for fallback patterns
	engine     Engine
	reason     error // why the automaton engine was not used

	groupIndex map[string]int
	groupNames []string // index -> name, "" for unnamed groups

	m matcher
}

func newPattern[T Text](pattern T, flags Flag, engine Engine, translated string, m matcher, reason error) *Pattern[T] {
	p := &Pattern[T]{
		pattern:    pattern,
		flags:      flags,
		translated: translated,
		engine:     engine,
		reason:     reason,
		groupNames: m.subexpNames(),
		groupIndex: make(map[string]int),
		m:          m,
	}
	for i, name := range p.groupNames {
		if name != "" {
			p.groupIndex[name] = i
		}
	}
	return p
}

// Compile parses a regular expression and returns, if successful,
// a Pattern that can be used to match against text. Compiled patterns are
// cached by the package level Compiler.
func Compile[T Text](pattern T, flags Flag) (*Pattern[T], error) {
	return withStd(func(c *Compiler) (*Pattern[T], error) {
		return CompileWith(c, pattern, flags)
	})
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
// It simplifies safe initialization of global variables holding compiled regular
// expressions.
func MustCompile[T Text](pattern T, flags Flag) *Pattern[T] {
	p, err := Compile(pattern, flags)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// CompilePattern accepts an already compiled pattern. It returns p unchanged
// when flags is zero and ErrConflictingFlags otherwise.
func CompilePattern[T Text](p *Pattern[T], flags Flag) (*Pattern[T], error) {
	if flags != 0 {
		return nil, &CompileError{Pattern: string(p.pattern), Err: ErrConflictingFlags}
	}
	return p, nil
}

// String returns the source text used to compile the regular expression.
func (p *Pattern[T]) String() string {
	return string(p.pattern)
}

// Pattern returns the pattern as passed to Compile.
func (p *Pattern[T]) Pattern() T {
	return p.pattern
}

// Translated returns the pattern as handed to the automaton engine, or ""
// for fallback patterns.
func (p *Pattern[T]) Translated() string {
	return p.translated
}

// Flags returns the compile flags, including those set by leading inline
// flag groups.
func (p *Pattern[T]) Flags() Flag {
	return p.flags
}

// Groups returns the number of capturing groups.
func (p *Pattern[T]) Groups() int {
	return len(p.groupNames) - 1
}

// GroupIndex returns a copy of the mapping from group names to indexes.
func (p *Pattern[T]) GroupIndex() map[string]int {
	out := make(map[string]int, len(p.groupIndex))
	for k, v := range p.groupIndex {
		out[k] = v
	}
	return out
}

// Engine reports which engine runs the pattern.
func (p *Pattern[T]) Engine() Engine {
	return p.engine
}

// FallbackReason returns why the automaton engine could not run the
// pattern, or nil for automaton patterns.
func (p *Pattern[T]) FallbackReason() error {
	return p.reason
}

func quote(s string) string {
	if strconv.CanBackquote(s) {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
