package re2compat

// DecisionKind is the outcome of a compile attempt.
type DecisionKind int

const (
	UseAutomaton DecisionKind = iota
	UseFallback
	Fatal
)

func (k DecisionKind) String() string {
	switch k {
	case UseFallback:
		return "fallback"
	case Fatal:
		return "fatal"
	}
	return "automaton"
}

// Decision records which engine a pattern goes to and why.
type Decision struct {
	Kind   DecisionKind
	Reason error
}

// decide classifies a translation or automaton compile failure. A nil err
// keeps the automaton engine. Under Raise every failure is fatal; otherwise
// only the recoverable ones go to the backtracking engine.
func decide(err error, level NotificationLevel) Decision {
	switch {
	case err == nil:
		return Decision{Kind: UseAutomaton}
	case level == Raise, !recoverable(err):
		return Decision{Kind: Fatal, Reason: err}
	}
	return Decision{Kind: UseFallback, Reason: err}
}
