package re2compat

import (
	"fmt"
	"strconv"
	"strings"
)

// segment is one piece of a parsed replacement: literal text, or a group
// reference when group >= 0.
type segment struct {
	lit   string
	group int
}

type template struct {
	segs []segment
}

func (t *template) literal(s string) {
	if s == "" {
		return
	}
	if n := len(t.segs); n > 0 && t.segs[n-1].group < 0 {
		t.segs[n-1].lit += s
		return
	}
	t.segs = append(t.segs, segment{lit: s, group: -1})
}

func (t *template) ref(i int) {
	t.segs = append(t.segs, segment{group: i})
}

// appendTemplate appends the expansion of t for match m to dst. Groups that did not
// participate expand to nothing.
func appendTemplate[T Text](dst []byte, t *template, m *MatchResult[T]) []byte {
	for _, s := range t.segs {
		if s.group < 0 {
			dst = append(dst, s.lit...)
			continue
		}
		if g, ok := m.text(s.group); ok {
			dst = append(dst, g...)
		}
	}
	return dst
}

// rewriteTemplate turns a replacement template into the rewrite syntax of
// RE2's Replace: "\\" and "\0" to "\9" stay as written, "\n" becomes a
// newline and every other escape is doubled so it comes out literally.
func rewriteTemplate(tmpl string) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(tmpl) {
			return "", fmt.Errorf("%w: trailing backslash", ErrBadTemplate)
		}
		i++
		switch n := tmpl[i]; {
		case n == '\\' || '0' <= n && n <= '9':
			b.WriteByte('\\')
			b.WriteByte(n)
		case n == 'n':
			b.WriteByte('\n')
		default:
			b.WriteString(`\\`)
			b.WriteByte(n)
		}
	}
	return b.String(), nil
}

// parseRewrite parses RE2 rewrite syntax: \0 to \9 refer to groups and \\ is
// a backslash. References past the last group are rejected up front.
func parseRewrite(rewrite string, groups int) (*template, error) {
	t := &template{}
	last := 0
	for i := 0; i < len(rewrite); i++ {
		if rewrite[i] != '\\' {
			continue
		}
		t.literal(rewrite[last:i])
		if i+1 >= len(rewrite) {
			return nil, fmt.Errorf("%w: trailing backslash", ErrBadTemplate)
		}
		i++
		switch c := rewrite[i]; {
		case c == '\\':
			t.literal(`\`)
		case '0' <= c && c <= '9':
			n := int(c - '0')
			if n > groups {
				return nil, fmt.Errorf("%w: invalid group reference %d", ErrNoSuchGroup, n)
			}
			t.ref(n)
		default:
			return nil, fmt.Errorf("%w: invalid rewrite escape %q", ErrBadTemplate, `\`+string(c))
		}
		last = i + 1
	}
	t.literal(rewrite[last:])
	return t, nil
}

var expandEscapes = map[byte]string{
	'n':  "\n",
	't':  "\t",
	'r':  "\r",
	'f':  "\f",
	'v':  "\v",
	'a':  "\a",
	'b':  "\b",
	'\\': `\`,
}

// parseExpand parses the template language of MatchResult.Expand.
func parseExpand[T Text](tmpl string, p *Pattern[T]) (*template, error) {
	t := &template{}
	last := 0
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '\\' {
			continue
		}
		t.literal(tmpl[last:i])
		if i+1 >= len(tmpl) {
			return nil, fmt.Errorf("%w: trailing backslash", ErrBadTemplate)
		}
		i++
		c := tmpl[i]
		switch {
		case c == 'g':
			if i+1 >= len(tmpl) || tmpl[i+1] != '<' {
				return nil, fmt.Errorf("%w: missing < after \\g", ErrBadTemplate)
			}
			end := strings.IndexByte(tmpl[i+2:], '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: missing > after \\g<", ErrBadTemplate)
			}
			name := tmpl[i+2 : i+2+end]
			if name == "" {
				return nil, fmt.Errorf("%w: missing group name", ErrBadTemplate)
			}
			n, err := resolveGroup(name, p)
			if err != nil {
				return nil, err
			}
			t.ref(n)
			i += 2 + end
		case '0' <= c && c <= '9':
			n := int(c - '0')
			if n > p.Groups() {
				return nil, fmt.Errorf("%w: invalid group reference %d", ErrNoSuchGroup, n)
			}
			t.ref(n)
		default:
			if esc, ok := expandEscapes[c]; ok {
				t.literal(esc)
			} else {
				t.literal(tmpl[i-1 : i+1])
			}
		}
		last = i + 1
	}
	t.literal(tmpl[last:])
	return t, nil
}

func resolveGroup[T Text](name string, p *Pattern[T]) (int, error) {
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > p.Groups() {
			return 0, fmt.Errorf("%w: invalid group reference %d", ErrNoSuchGroup, n)
		}
		return n, nil
	}
	if n, ok := p.groupIndex[name]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: unknown group name %q", ErrNoSuchGroup, name)
}
