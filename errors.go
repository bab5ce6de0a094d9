package re2compat

import (
	"errors"
	"strings"

	gosyntax "regexp/syntax"

	"github.com/dlclark/re2compat/syntax"
	binsyntax "rsc.io/binaryregexp/syntax"
)

var (
	// ErrConflictingFlags is returned when flags are passed together with an
	// already compiled pattern.
	ErrConflictingFlags = errors.New("re2compat: cannot process flags argument with a compiled pattern")
	// ErrIncompatibleFlags is returned for flag combinations that cannot apply
	// to the pattern, such as Unicode with a bytes pattern.
	ErrIncompatibleFlags = errors.New("re2compat: incompatible flags")
	// ErrNoSuchGroup is returned when a group is looked up by an index out of
	// range or by a name the pattern does not define.
	ErrNoSuchGroup = errors.New("re2compat: no such group")
	// ErrUnsupportedReplacementCount is returned by template substitution for
	// counts other than 0 (all) and 1.
	ErrUnsupportedReplacementCount = errors.New("re2compat: replacement count must be 0 or 1 for template substitution")
	// ErrBadTemplate is returned for malformed replacement templates.
	ErrBadTemplate = errors.New("re2compat: bad replacement template")
)

// Category classifies automaton engine compile failures.
type Category int

const (
	OtherCompileError Category = iota
	BadPerlOperator
	RepeatTooLarge
	BadEscape
	PatternTooLarge
)

func (c Category) String() string {
	switch c {
	case BadPerlOperator:
		return "bad perl operator"
	case RepeatTooLarge:
		return "repeat too large"
	case BadEscape:
		return "bad escape"
	case PatternTooLarge:
		return "pattern too large"
	}
	return "compile error"
}

// Recoverable reports whether patterns failing with this category may be
// compiled by the backtracking engine instead.
func (c Category) Recoverable() bool {
	return c != OtherCompileError
}

// EngineError is a compile failure reported by an automaton engine.
type EngineError struct {
	Category Category
	Err      error
}

func (e *EngineError) Error() string {
	return e.Category.String() + ": " + e.Err.Error()
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// CompileError wraps every fatal failure to compile a pattern.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return "re2compat: Compile(" + quote(e.Pattern) + "): " + e.Err.Error()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// categorize maps an automaton compile error onto a Category. go-re2 reports
// plain strings, so its errors are classified by message.
func categorize(err error) Category {
	var se *gosyntax.Error
	if errors.As(err, &se) {
		switch se.Code {
		case gosyntax.ErrInvalidPerlOp:
			return BadPerlOperator
		case gosyntax.ErrInvalidRepeatSize:
			return RepeatTooLarge
		case gosyntax.ErrInvalidEscape:
			return BadEscape
		case gosyntax.ErrLarge:
			return PatternTooLarge
		case gosyntax.ErrInvalidNamedCapture:
			// newer parsers read lookbehind as a bad group name
			if strings.HasPrefix(se.Expr, "(?<=") || strings.HasPrefix(se.Expr, "(?<!") {
				return BadPerlOperator
			}
		}
		return OtherCompileError
	}
	var be *binsyntax.Error
	if errors.As(err, &be) {
		switch be.Code {
		case binsyntax.ErrInvalidPerlOp:
			return BadPerlOperator
		case binsyntax.ErrInvalidRepeatSize:
			return RepeatTooLarge
		case binsyntax.ErrInvalidEscape:
			return BadEscape
		}
		return OtherCompileError
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "bad perl operator"):
		return BadPerlOperator
	case strings.Contains(msg, "bad repitition argument"):
		return RepeatTooLarge
	case strings.Contains(msg, "invalid escape sequence"):
		return BadEscape
	case strings.Contains(msg, "expression too large"):
		return PatternTooLarge
	}
	return OtherCompileError
}

// recoverable reports whether a translation or engine failure allows the
// backtracking engine to take over.
func recoverable(err error) bool {
	var se *syntax.Error
	if errors.As(err, &se) {
		return se.Recoverable()
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Category.Recoverable()
	}
	return false
}
