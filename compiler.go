package re2compat

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dlclark/re2compat/runecacher"
	"github.com/dlclark/re2compat/syntax"
)

// Compiler compiles and caches patterns. A Compiler is not safe for
// concurrent use; the package level functions share one guarded by a mutex.
type Compiler struct {
	opts   Options
	notify *Notification
	log    zerolog.Logger
	text   compileFunc
	cache  *patternCache
}

// NewCompiler returns a Compiler configured by opts.
func NewCompiler(opts Options) (*Compiler, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	c := &Compiler{
		opts:   opts,
		notify: opts.Notification,
		log:    log.Logger,
		text:   stdlibCompile,
	}
	if c.notify == nil {
		c.notify = &defaultNotification
	}
	// cache events are only logged to a logger the caller supplied
	cacheLog := zerolog.Nop()
	if opts.Logger != nil {
		c.log = *opts.Logger
		cacheLog = c.log
	}
	if opts.Engine == EngineRE2 {
		c.text = re2Compile
	}
	cache, err := newPatternCache(opts.CacheSize, cacheLog)
	if err != nil {
		return nil, err
	}
	c.cache = cache
	return c, nil
}

// Options returns the options the Compiler was built with.
func (c *Compiler) Options() Options {
	return c.opts
}

// Purge drops every cached pattern.
func (c *Compiler) Purge() {
	c.cache.purge()
}

// CompileWith compiles pattern with c, returning the cached Pattern when the
// same pattern and flags were compiled before.
func CompileWith[T Text](c *Compiler, pattern T, flags Flag) (*Pattern[T], error) {
	key := cacheKey{kind: kindOf[T](), pattern: string(pattern), flags: flags}
	if p := getPattern[T](c.cache, key); p != nil {
		return p, nil
	}
	p, err := build(c, key.kind, T(key.pattern), flags)
	if err != nil {
		return nil, err
	}
	putPattern(c.cache, key, p)
	return p, nil
}

func build[T Text](c *Compiler, kind patternKind, pattern T, flags Flag) (*Pattern[T], error) {
	src := string(pattern)
	if err := checkFlags(kind, flags); err != nil {
		return nil, &CompileError{Pattern: src, Err: err}
	}

	translated, folded, err := syntax.Translate(src, syntax.Flags(flags))
	flags |= Flag(folded)
	if err == nil {
		err = checkFlags(kind, flags)
	}
	var m matcher
	if err == nil {
		m, err = c.compileAutomaton(kind, translated)
	}

	level := c.notify.Level()
	d := decide(err, level)
	switch d.Kind {
	case UseAutomaton:
		return newPattern(pattern, flags, Automaton, translated, m, nil), nil
	case Fatal:
		return nil, &CompileError{Pattern: src, Err: d.Reason}
	}

	if level == Warn {
		c.log.Warn().
			Str("pattern", src).
			Err(d.Reason).
			Msg("falling back to backtracking engine")
	}
	if kind == bytesPattern {
		src = runecacher.NewFromBytes([]byte(src)).String()
	}
	fm, err := newFallbackMatcher(src, flags, kind == bytesPattern, c.opts.FallbackTimeout)
	if err != nil {
		return nil, &CompileError{Pattern: string(pattern), Err: errors.Join(err, d.Reason)}
	}
	return newPattern(pattern, flags, Fallback, "", fm, d.Reason), nil
}

func (c *Compiler) compileAutomaton(kind patternKind, translated string) (matcher, error) {
	compile := c.text
	if kind == bytesPattern {
		compile = binaryCompile
	}
	if err := checkProgramSize(translated, c.opts.MaxMem); err != nil {
		return nil, err
	}
	am, err := newAutomatonMatcher(translated, compile)
	if err != nil {
		return nil, err
	}
	return am, nil
}

func checkFlags(kind patternKind, flags Flag) error {
	switch {
	case flags&Unicode != 0 && flags&ASCII != 0:
		return fmt.Errorf("%w: ASCII and UNICODE flags are incompatible", ErrIncompatibleFlags)
	case kind == bytesPattern && flags&Unicode != 0:
		return fmt.Errorf("%w: cannot use UNICODE flag with a bytes pattern", ErrIncompatibleFlags)
	}
	return nil
}

// the package level Compiler
var std struct {
	sync.Mutex
	c *Compiler
}

func withStd[R any](fn func(c *Compiler) (R, error)) (R, error) {
	std.Lock()
	defer std.Unlock()
	if std.c == nil {
		c, err := NewCompiler(DefaultOptions())
		if err != nil {
			var zero R
			return zero, err
		}
		std.c = c
	}
	return fn(std.c)
}

// Purge clears the package level pattern cache.
func Purge() {
	std.Lock()
	defer std.Unlock()
	if std.c != nil {
		std.c.Purge()
	}
}
