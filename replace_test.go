package re2compat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplace_Basic(t *testing.T) {
	str, err := Sub(`test`, "unit", "this is a test", 0, 0)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	if want, got := "this is a unit", str; want != got {
		t.Fatalf("Replace failed, wanted %v, got %v", want, got)
	}
}

func TestReplace_NumberGroup(t *testing.T) {
	str, err := Sub(`(\d+)`, `[\1]`, "x12y", 0, 0)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	if want, got := "x[12]y", str; want != got {
		t.Fatalf("Replace failed, wanted %v, got %v", want, got)
	}
}

func TestReplace_IgnoreCase(t *testing.T) {
	str, err := Sub(`dog`, "CAT", "my DoG has fleas", 0, IgnoreCase)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	if want, got := "my CAT has fleas", str; want != got {
		t.Fatalf("Replace failed, wanted %v, got %v", want, got)
	}
}

func TestReplace_Count(t *testing.T) {
	str, n, err := Subn(`a`, "b", "aXa", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "bXb", str)
	require.Equal(t, 2, n)

	str, n, err = Subn(`a`, "b", "aXa", 1, 0)
	require.NoError(t, err)
	require.Equal(t, "bXa", str)
	require.Equal(t, 1, n)

	for _, count := range []int{-1, 2, 5} {
		_, _, err = Subn(`a`, "b", "aXa", count, 0)
		require.ErrorIs(t, err, ErrUnsupportedReplacementCount)
	}
}

func TestReplace_NoMatch(t *testing.T) {
	str, n, err := Subn(`z`, "y", "abc", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "abc", str)
	require.Equal(t, 0, n)
}

func TestReplace_Template(t *testing.T) {
	tests := map[string]struct {
		pattern, repl, subject, want string
	}{
		"whole match":     {`\d+`, `<\0>`, "a12b", "a<12>b"},
		"swap":            {`(\w+) (\w+)`, `\2 \1`, "hello world", "world hello"},
		"newline":         {`,`, `\n`, "a,b", "a\nb"},
		"backslash":       {`,`, `\\`, "a,b", `a\b`},
		"other escape":    {`,`, `\t`, "a,b", `a\tb`},
		"absent group":    {`(a)|(b)`, `[\1\2]`, "ab", "[a][b]"},
		"named reference": {`(?P<d>\d)`, `<\g<d>>`, "a1b2", "a<1>b<2>"},
		"numbered g":      {`(\d)`, `\g<1>0`, "a1", "a10"},
		"unicode":         {`é`, "e", "café é", "cafe e"},
		"fallback":        {`(\w)\1`, `<\1>`, "aabcc", "<a>b<c>"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Sub(tc.pattern, tc.repl, tc.subject, 0, 0)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestReplace_ExpandAnyCount(t *testing.T) {
	str, n, err := Subn(`(?P<d>\d)`, `<\g<d>>`, "a1b2c3", 2, 0)
	require.NoError(t, err)
	require.Equal(t, "a<1>b<2>c3", str)
	require.Equal(t, 2, n)
}

func TestReplace_BadTemplate(t *testing.T) {
	_, err := Sub(`(a)`, `\2`, "a", 0, 0)
	require.ErrorIs(t, err, ErrNoSuchGroup)

	_, err = Sub(`(a)`, `x\`, "a", 0, 0)
	require.ErrorIs(t, err, ErrBadTemplate)

	_, err = Sub(`(a)`, `\g<b>`, "a", 0, 0)
	require.ErrorIs(t, err, ErrNoSuchGroup)
}

func TestReplace_EmptyMatches(t *testing.T) {
	str, err := Sub(`x*`, "-", "abxd", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "-a-b--d-", str)

	str, err = Sub(`x*`, "-", "", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "-", str)

	str, err = Sub(``, "-", "😀é", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "-😀-é-", str)
}

func TestReplace_Func(t *testing.T) {
	str, err := SubFunc(`[aeiou]`, func(m *MatchResult[string]) string {
		return strings.ToUpper(m.Text())
	}, "hello", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "hEllO", str)

	// an empty result removes the match
	str, err = SubFunc(`\s+`, func(*MatchResult[string]) string { return "" }, "a b  c", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "abc", str)

	var spans [][2]int
	str, n, err := SubnFunc(`\d`, func(m *MatchResult[string]) string {
		spans = append(spans, [2]int{m.Start(), m.End()})
		return "#"
	}, "😀1a2b3", 2, 0)
	require.NoError(t, err)
	require.Equal(t, "😀#a#b3", str)
	require.Equal(t, 2, n)
	require.Equal(t, [][2]int{{2, 3}, {4, 5}}, spans)

	str, n, err = SubnFunc(`\d`, func(*MatchResult[string]) string { return "#" }, "a1", -1, 0)
	require.NoError(t, err)
	require.Equal(t, "a1", str)
	require.Equal(t, 0, n)
}

func TestReplace_Bytes(t *testing.T) {
	out, err := Sub([]byte(`\d`), []byte("#"), []byte("a1\xff2"), 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("a#\xff#"), out)

	out, err = SubFunc([]byte(`(.)\1`), func(m *MatchResult[[]byte]) []byte {
		g, _ := m.Group(1)
		return g
	}, []byte("\xff\xffab"), 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("\xffab"), out)
}

func TestReplace_Method(t *testing.T) {
	p := MustCompile(`(?P<word>\w+)`, 0)
	str, err := p.Sub(`\g<word>!`, "hi there", 0)
	require.NoError(t, err)
	require.Equal(t, "hi! there!", str)

	str, err = p.SubFunc(func(m *MatchResult[string]) string {
		w, _ := m.GroupByName("word")
		return strings.Repeat(w, 2)
	}, "ab cd", 1)
	require.NoError(t, err)
	require.Equal(t, "abab cd", str)
}
