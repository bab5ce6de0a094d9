package re2compat

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/require"

	"github.com/dlclark/re2compat/syntax"
)

func init() {
	// a short clock period keeps the timeout tests fast
	regexp2.SetTimeoutCheckPeriod(time.Millisecond)
}

func TestCompile_Basic(t *testing.T) {
	p, err := Compile(`a(b)c`, 0)
	if err != nil {
		t.Fatalf("unexpected compile err: %v", err)
	}
	if want, got := Automaton, p.Engine(); want != got {
		t.Fatalf("Wanted '%v'\nGot '%v'", want, got)
	}
	if want, got := 1, p.Groups(); want != got {
		t.Fatalf("Wanted '%v'\nGot '%v'", want, got)
	}
	if p.FallbackReason() != nil {
		t.Fatalf("unexpected fallback reason: %v", p.FallbackReason())
	}

	m, err := p.Search("xabcx")
	if err != nil {
		t.Fatalf("unexpected match err: %v", err)
	}
	if m == nil {
		t.Fatal("Nil match, expected success")
	}
	start, end, err := m.Span(1)
	require.NoError(t, err)
	if want, got := [2]int{2, 3}, [2]int{start, end}; want != got {
		t.Fatalf("Wanted '%v'\nGot '%v'", want, got)
	}
	if want, got := "abc", m.Text(); want != got {
		t.Fatalf("Wanted '%v'\nGot '%v'", want, got)
	}
}

func TestCompile_Engine(t *testing.T) {
	tests := map[string]struct {
		pattern string
		flags   Flag
		engine  Engine
	}{
		"plain":               {`\d+-\d+`, 0, Automaton},
		"named group":         {`(?P<year>\d{4})`, 0, Automaton},
		"octal escape":        {`\101`, 0, Automaton},
		"backreference":       {`(a)\1`, 0, Fallback},
		"named backreference": {`(?P<q>['"]).*?(?P=q)`, 0, Fallback},
		"negative lookahead":  {`a(?!b)`, 0, Fallback},
		"positive lookahead":  {`a(?=b)`, 0, Fallback},
		"lookbehind":          {`(?<=a)b`, 0, Fallback},
		"negative lookbehind": {`(?<!a)b`, 0, Fallback},
		"unicode non word":    {`\W+`, Unicode, Fallback},
		"non space in class":  {`[\S]`, 0, Fallback},
		"repeat too large":    {`a{1001}`, 0, Fallback},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := NewCompiler(DefaultOptions())
			require.NoError(t, err)
			p, err := CompileWith(c, tc.pattern, tc.flags)
			require.NoError(t, err)
			require.Equal(t, tc.engine, p.Engine())
			if tc.engine == Fallback {
				require.Error(t, p.FallbackReason())
				require.Empty(t, p.Translated())
			}
		})
	}
}

func TestCompile_FallbackReason(t *testing.T) {
	p := MustCompile(`(a)\1`, 0)
	var se *syntax.Error
	require.True(t, errors.As(p.FallbackReason(), &se))
	require.Equal(t, syntax.ErrBackreferencesUnsupported, se.Code)

	p = MustCompile(`a(?!b)`, 0)
	var ee *EngineError
	require.True(t, errors.As(p.FallbackReason(), &ee))
	require.Equal(t, BadPerlOperator, ee.Category)

	p = MustCompile(`x{2000}`, 0)
	require.True(t, errors.As(p.FallbackReason(), &ee))
	require.Equal(t, RepeatTooLarge, ee.Category)
}

func TestCompile_Fatal(t *testing.T) {
	bogus := []string{
		`a(`,
		`a)`,
		`[a`,
		`ab\`,
		`*a`,
	}
	for _, inp := range bogus {
		t.Run(inp, func(t *testing.T) {
			p, err := Compile(inp, 0)
			if err == nil {
				t.Fatal("Expected failure to parse")
			}
			if p != nil {
				t.Fatal("expected pattern to be nil")
			}
			var ce *CompileError
			require.True(t, errors.As(err, &ce))
			require.Equal(t, inp, ce.Pattern)
		})
	}
}

func TestCompile_InlineFlags(t *testing.T) {
	p := MustCompile(`(?i)abc`, 0)
	if want, got := IgnoreCase, p.Flags(); want != got {
		t.Fatalf("Wanted '%v'\nGot '%v'", want, got)
	}
	m, err := p.Match("ABC")
	require.NoError(t, err)
	require.NotNil(t, m)

	p = MustCompile("(?x) a b # letters", 0)
	require.Equal(t, Verbose, p.Flags())
	require.Equal(t, "ab", p.Translated())

	p = MustCompile(`^b`, Multiline)
	m, err = p.Search("a\nb")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, 2, m.Start())
}

func TestCompile_DotAll(t *testing.T) {
	m, err := Search(`a.b`, "a\nb", 0)
	require.NoError(t, err)
	require.Nil(t, m)

	m, err = Search(`a.b`, "a\nb", DotAll)
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestCompile_IncompatibleFlags(t *testing.T) {
	_, err := Compile(`a`, ASCII|Unicode)
	require.ErrorIs(t, err, ErrIncompatibleFlags)

	_, err = Compile([]byte(`a`), Unicode)
	require.ErrorIs(t, err, ErrIncompatibleFlags)

	_, err = Compile(`(?u)a`, ASCII)
	require.ErrorIs(t, err, ErrIncompatibleFlags)
}

func TestCompilePattern(t *testing.T) {
	p := MustCompile(`abc`, 0)
	same, err := CompilePattern(p, 0)
	require.NoError(t, err)
	require.Same(t, p, same)

	_, err = CompilePattern(p, IgnoreCase)
	require.ErrorIs(t, err, ErrConflictingFlags)
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		msg, ok := r.(string)
		require.True(t, ok)
		require.True(t, strings.HasPrefix(msg, "re2compat: Compile(`a(`): "), msg)
		require.Equal(t, 1, strings.Count(msg, "re2compat: Compile("), msg)
	}()
	MustCompile(`a(`, 0)
}

func TestGroupIndex(t *testing.T) {
	for _, pattern := range []string{
		`(?P<first>\w+) (\w+) (?P<last>\w+)`,
		`(?P<first>\w+) (\w+) (?P<last>\w+)(?=$)`,
	} {
		p := MustCompile(pattern, 0)
		require.Equal(t, 3, p.Groups())
		require.Equal(t, map[string]int{"first": 1, "last": 3}, p.GroupIndex())

		m, err := p.Search("ada king lovelace")
		require.NoError(t, err)
		require.NotNil(t, m)
		require.Equal(t, []string{"ada", "king", "lovelace"}, m.Groups(""))

		// the map handed out is a copy
		p.GroupIndex()["first"] = 7
		require.Equal(t, 1, p.GroupIndex()["first"])
	}
}

func TestFallback_CaptureOrder(t *testing.T) {
	p := MustCompile(`(?P<first>this).+?(testing).+?(?P<last>stuff)(?!x)`, 0)
	require.Equal(t, Fallback, p.Engine())

	text := `this is a testing stuff`
	m, err := p.Search(text)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, text, m.Text())
	require.Equal(t, []string{"this", "testing", "stuff"}, m.Groups(""))

	last, err := m.GroupByName("last")
	require.NoError(t, err)
	require.Equal(t, "stuff", last)
	name, ok := m.LastGroup()
	require.True(t, ok)
	require.Equal(t, "last", name)
}

func TestFallback_Backreference(t *testing.T) {
	m, err := Search(`(\w)\1`, "abccd", 0)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "cc", m.Text())
	require.Equal(t, 2, m.Start())

	m, err = Search(`(?P<q>['"]).*?(?P=q)`, `say "hi" now`, 0)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, `"hi"`, m.Text())
}

func TestFallback_GroupNumbering(t *testing.T) {
	p := MustCompile(`(?P<q>['"])(\w+)(?P=q)(?!x)`, 0)
	require.Equal(t, Fallback, p.Engine())
	require.Equal(t, 2, p.Groups())
	require.Equal(t, map[string]int{"q": 1}, p.GroupIndex())

	out, err := p.Sub(`<\2>`, `say "hi" 'yo'`, 0)
	require.NoError(t, err)
	require.Equal(t, `say <hi> <yo>`, out)

	rows, err := p.FindAll(`say "hi" 'no"`)
	require.NoError(t, err)
	require.Equal(t, [][]string{{`"`, "hi"}}, rows)

	vals, err := Split(`(?P<sep>[,;])(-)?(?<=.)`, "a,-b;c", 0, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"a", ",", "-", "b", ";", "", "c"}, vals)

	m, err := Search(`(?P<a>x)(y)(?!z)`, "xy", 0)
	require.NoError(t, err)
	require.NotNil(t, m)
	i, ok := m.LastIndex()
	require.True(t, ok)
	require.Equal(t, 2, i)
	_, ok = m.LastGroup()
	require.False(t, ok)
}

func TestFallback_Flags(t *testing.T) {
	m, err := FullMatch(`(a)\1B`, "AAb", IgnoreCase)
	require.NoError(t, err)
	require.NotNil(t, m)

	m, err = Search(`(?s)(a).\1`, "a\na", 0)
	require.NoError(t, err)
	require.NotNil(t, m)

	m, err = Search("(?x) (a) \\1 # doubled", "xaa", 0)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, 1, m.Start())

	m, err = Match("(?x) (a) \\1 # doubled", "aa", 0)
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestFallback_Timeout(t *testing.T) {
	opts := DefaultOptions()
	opts.FallbackTimeout = 10 * time.Millisecond
	c, err := NewCompiler(opts)
	require.NoError(t, err)

	p, err := CompileWith(c, `(x+x+)+y(?!z)`, 0)
	require.NoError(t, err)
	require.Equal(t, Fallback, p.Engine())

	_, err = p.Search(strings.Repeat("x", 40))
	require.Error(t, err)
}

func TestREEngine(t *testing.T) {
	opts := DefaultOptions()
	opts.Engine = EngineRE2
	c, err := NewCompiler(opts)
	require.NoError(t, err)

	p, err := CompileWith(c, `(?P<user>\w+)@(\w+)\.com`, 0)
	require.NoError(t, err)
	require.Equal(t, Automaton, p.Engine())

	m, err := p.Search("mail bob@example.com now")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "bob@example.com", m.Text())
	user, err := m.GroupByName("user")
	require.NoError(t, err)
	require.Equal(t, "bob", user)

	m, err = p.SearchRange("bob@example.com", 1, -1)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "ob@example.com", m.Text())

	p, err = CompileWith(c, `a(?!b)`, 0)
	require.NoError(t, err)
	require.Equal(t, Fallback, p.Engine())
}

func TestParseFlags(t *testing.T) {
	flags, err := ParseFlags("imx")
	require.NoError(t, err)
	require.Equal(t, IgnoreCase|Multiline|Verbose, flags)
	require.Equal(t, "imx", flags.String())

	flags, err = ParseFlags("")
	require.NoError(t, err)
	require.Equal(t, Flag(0), flags)

	_, err = ParseFlags("iq")
	require.Error(t, err)
}

func TestEscape(t *testing.T) {
	tests := map[string]struct {
		in, want string
	}{
		"plain":     {"abc123", "abc123"},
		"dot":       {"a.b", `a\.b`},
		"specials":  {"1+1=2?", `1\+1\=2\?`},
		"space":     {"a b", `a\ b`},
		"non ascii": {"café", "café"},
		"empty":     {"", ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, Escape(tc.in))
		})
	}

	require.Equal(t, []byte("\\*\xff"), Escape([]byte("*\xff")))

	m, err := FullMatch(Escape("[x](y)"), "[x](y)", 0)
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestExamples(t *testing.T) {
	m, err := MustCompile(`a(b)c`, 0).Match("abc")
	require.NoError(t, err)
	g, err := m.Group(1)
	require.NoError(t, err)
	require.Equal(t, "b", g)

	p := MustCompile(`a(?!b)`, 0)
	require.Equal(t, Fallback, p.Engine())
	m, err = p.Search("ac")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "a", m.Text())

	s, err := Sub(`(\d+)`, `[\1]`, "x12y", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "x[12]y", s)

	parts, err := Split(`,`, "a,,b", 0, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "", "b"}, parts)

	s, err = Sub(`q`, "", "abc", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "abc", s)
}
