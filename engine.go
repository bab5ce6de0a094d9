package re2compat

import (
	"fmt"
	"regexp"
	gosyntax "regexp/syntax"
	"sync"

	re2 "github.com/wasilibs/go-re2"
	"rsc.io/binaryregexp"
)

// Engine identifies which engine runs a compiled pattern.
type Engine int

const (
	// Automaton patterns run on a linear time RE2 style engine.
	Automaton Engine = iota
	// Fallback patterns run on the backtracking engine.
	Fallback
)

func (e Engine) String() string {
	if e == Fallback {
		return "fallback"
	}
	return "automaton"
}

// anchor selects how a match attempt is tied to the start position.
type anchor int

const (
	unanchored anchor = iota
	anchorStart
	anchorBoth
)

// matcher is the capability both engines share. match returns byte spans,
// two per group with -1 for groups that did not participate, or nil when
// there is no match. pos and endpos are byte offsets.
type matcher interface {
	match(in *input, pos, endpos int, anc anchor) ([]int, error)
	numSubexp() int
	subexpNames() []string
}

// automaton is the method set shared by regexp, go-re2 and binaryregexp.
type automaton interface {
	FindSubmatchIndex(b []byte) []int
	FindStringSubmatchIndex(s string) []int
	NumSubexp() int
	SubexpNames() []string
	String() string
}

// automaton engine names accepted in Options.Engine
const (
	EngineStdlib = "stdlib"
	EngineRE2    = "re2"
)

type compileFunc func(expr string) (automaton, error)

func stdlibCompile(expr string) (automaton, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return re, nil
}

func re2Compile(expr string) (automaton, error) {
	re, err := re2.Compile(expr)
	if err != nil {
		return nil, err
	}
	return re, nil
}

func binaryCompile(expr string) (automaton, error) {
	re, err := binaryregexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// instBytes approximates the memory RE2 spends per program instruction.
const instBytes = 16

// checkProgramSize estimates the compiled size of expr and fails with
// PatternTooLarge when it exceeds the two thirds of maxMem RE2 gives to the
// forward program. Expressions the estimator cannot parse are left to the
// engine.
func checkProgramSize(expr string, maxMem int64) error {
	if maxMem <= 0 {
		return nil
	}
	re, err := gosyntax.Parse(expr, gosyntax.Perl)
	if err != nil {
		return nil
	}
	prog, err := gosyntax.Compile(re.Simplify())
	if err != nil {
		return nil
	}
	if size, budget := int64(len(prog.Inst))*instBytes, maxMem*2/3; size > budget {
		return &EngineError{
			Category: PatternTooLarge,
			Err:      fmt.Errorf("program needs about %d bytes, max_mem allows %d", size, budget),
		}
	}
	return nil
}

type companionKey struct {
	anc     anchor
	context bool
}

// automatonMatcher runs a translated pattern. The automaton engines only
// search whole subjects, so start positions and anchoring are implemented
// with companion programs compiled on first use:
//
//	\A(P)              anchored at pos 0
//	\A(P)\z            full match from pos 0
//	\A(?s:.)(?s:.)*?(P) search from pos > 0, sliced one character early
//	\A(?s:.)(P)        anchored at pos > 0
//	\A(?s:.)(P)\z      full match from pos > 0
//
// The leading character keeps ^, \b and friends honest about what precedes
// pos. Group 1 of a companion is group 0 of P.
type automatonMatcher struct {
	expr    string
	compile compileFunc
	base    automaton

	mu         sync.Mutex
	companions map[companionKey]automaton
}

func newAutomatonMatcher(expr string, compile compileFunc) (*automatonMatcher, error) {
	base, err := compile(expr)
	if err != nil {
		return nil, &EngineError{Category: categorize(err), Err: err}
	}
	return &automatonMatcher{expr: expr, compile: compile, base: base}, nil
}

func (a *automatonMatcher) numSubexp() int {
	return a.base.NumSubexp()
}

func (a *automatonMatcher) subexpNames() []string {
	return a.base.SubexpNames()
}

func (a *automatonMatcher) program(key companionKey) (automaton, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if prog, ok := a.companions[key]; ok {
		return prog, nil
	}

	expr := `\A`
	if key.context {
		expr += `(?s:.)`
		if key.anc == unanchored {
			expr += `(?s:.)*?`
		}
	}
	expr += "(" + a.expr + ")"
	if key.anc == anchorBoth {
		expr += `\z`
	}
	prog, err := a.compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling companion program: %w", err)
	}
	if a.companions == nil {
		a.companions = make(map[companionKey]automaton)
	}
	a.companions[key] = prog
	return prog, nil
}

func (a *automatonMatcher) match(in *input, pos, endpos int, anc anchor) ([]int, error) {
	ctx := in.prevWidth(pos)
	start := pos - ctx

	prog, wrapped := a.base, false
	if anc != unanchored || ctx > 0 {
		var err error
		if prog, err = a.program(companionKey{anc: anc, context: ctx > 0}); err != nil {
			return nil, err
		}
		wrapped = true
	}

	var loc []int
	if in.text {
		loc = prog.FindStringSubmatchIndex(in.str[start:endpos])
	} else {
		loc = prog.FindSubmatchIndex(in.bytes[start:endpos])
	}
	if loc == nil {
		return nil, nil
	}
	if wrapped {
		loc = loc[2:]
	}
	for i, v := range loc {
		if v >= 0 {
			loc[i] = v + start
		}
	}
	return loc, nil
}
