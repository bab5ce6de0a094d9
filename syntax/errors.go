package syntax

// An ErrorCode describes why a pattern could not be translated.
type ErrorCode string

const (
	// ErrMalformedEscape is returned when a pattern ends with a lone backslash.
	ErrMalformedEscape ErrorCode = "trailing backslash at end of expression"
	// ErrBackreferencesUnsupported is returned for \1-\9 and (?P=name) outside
	// character classes. The automaton engine has no backreferences.
	ErrBackreferencesUnsupported ErrorCode = "backreferences are not supported"
	// ErrCharClassUnsupported is returned for negated shorthand classes that
	// have no single-class Unicode equivalent.
	ErrCharClassUnsupported ErrorCode = "character class cannot be translated"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error describes a failure to translate a pattern and the offending text.
type Error struct {
	Code ErrorCode
	Expr string
}

func (e *Error) Error() string {
	return "error translating regexp: " + e.Code.String() + ": `" + e.Expr + "`"
}

// Recoverable reports whether the pattern may still be compiled by a
// backtracking engine.
func (e *Error) Recoverable() bool {
	return e.Code == ErrBackreferencesUnsupported || e.Code == ErrCharClassUnsupported
}
