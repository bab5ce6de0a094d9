package re2compat

import (
	"strings"
)

// Two replacement paths appear below: template and callback. Both share the
// scan in replace.

// Subn replaces matches of p in subject with the template repl and returns
// the result and the number of replacements made. In the template \0 to \9
// refer to groups, \\ is a backslash and \n a newline; any other escape is
// kept as written. count 0 replaces every match and 1 only the first; other
// counts fail with ErrUnsupportedReplacementCount.
//
// Templates that use \g<name> or \g<number> are expanded like MatchResult.Expand
// and accept any count.
//
// With no matches subject is returned unchanged.
func (p *Pattern[T]) Subn(repl, subject T, count int) (T, int, error) {
	tmpl := string(repl)
	if strings.Contains(tmpl, `\g<`) {
		t, err := parseExpand(tmpl, p)
		if err != nil {
			var zero T
			return zero, 0, err
		}
		return p.replace(subject, count, func(dst []byte, m *MatchResult[T]) ([]byte, error) {
			return appendTemplate(dst, t, m), nil
		})
	}

	if count != 0 && count != 1 {
		var zero T
		return zero, 0, ErrUnsupportedReplacementCount
	}
	rewrite, err := rewriteTemplate(tmpl)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	t, err := parseRewrite(rewrite, p.Groups())
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return p.replace(subject, count, func(dst []byte, m *MatchResult[T]) ([]byte, error) {
		return appendTemplate(dst, t, m), nil
	})
}

// Sub is like Subn without the count of replacements.
func (p *Pattern[T]) Sub(repl, subject T, count int) (T, error) {
	out, _, err := p.Subn(repl, subject, count)
	return out, err
}

// SubnFunc replaces matches of p in subject with the text returned by fn for
// each match. A zero value from fn removes the match. count limits the
// number of replacements when positive; 0 replaces every match.
func (p *Pattern[T]) SubnFunc(fn func(*MatchResult[T]) T, subject T, count int) (T, int, error) {
	if count < 0 {
		return subject, 0, nil
	}
	return p.replace(subject, count, func(dst []byte, m *MatchResult[T]) ([]byte, error) {
		return append(dst, fn(m)...), nil
	})
}

// SubFunc is like SubnFunc without the count of replacements.
func (p *Pattern[T]) SubFunc(fn func(*MatchResult[T]) T, subject T, count int) (T, error) {
	out, _, err := p.SubnFunc(fn, subject, count)
	return out, err
}

type replacement[T Text] func(dst []byte, m *MatchResult[T]) ([]byte, error)

// replace copies subject to a new buffer, swapping each match for what repl
// appends. Matches are found left to right without overlap; after an empty
// match the scan moves on by one character.
func (p *Pattern[T]) replace(subject T, count int, repl replacement[T]) (T, int, error) {
	it := p.iterate(subject, 0, -1)

	var buf []byte
	prevat, n := 0, 0
	for count <= 0 || n < count {
		m, err := it.Next()
		if err != nil {
			var zero T
			return zero, 0, err
		}
		if m == nil {
			break
		}
		start, end := m.spans[0], m.spans[1]
		if start != prevat {
			buf = append(buf, subject[prevat:start]...)
		}
		if buf, err = repl(buf, m); err != nil {
			var zero T
			return zero, 0, err
		}
		prevat = end
		n++
	}
	if n == 0 {
		return subject, 0, nil
	}
	if prevat < len(subject) {
		buf = append(buf, subject[prevat:]...)
	}
	return T(buf), n, nil
}
