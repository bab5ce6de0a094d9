package syntax

import "strings"

// Unicode spellings of the shorthand classes, used when the Unicode flag is
// set. The automaton engine's own shorthands are ASCII only.
var (
	unicodeOutside = map[byte]string{
		'd': `\p{Nd}`,
		'w': `[\p{L}\p{Nd}_]`,
		's': `[\s\p{Z}]`,
		'D': `[^\p{Nd}]`,
	}
	unicodeInside = map[byte]string{
		'd': `\p{Nd}`,
		'w': `\p{L}\p{Nd}_`,
		's': `\s\p{Z}`,
		'D': `\P{Nd}`,
	}
)

// Translate rewrites a pattern written in Python re syntax into the syntax
// accepted by RE2 style automaton engines. It returns the translated pattern
// and flags extended with any leading global inline flags found in pattern.
//
// Translation fails with a *Error when the pattern uses a construct the
// automaton engine cannot express. Codes ErrBackreferencesUnsupported and
// ErrCharClassUnsupported leave the pattern valid for a backtracking engine.
func Translate(pattern string, flags Flags) (string, Flags, error) {
	body, inline := ExtractGlobalFlags(pattern)
	flags |= inline

	toks, err := Tokenize(body)
	if err != nil {
		return "", flags, err
	}
	toks = stripComments(toks, flags&Verbose != 0)
	inClass := classMask(toks)
	unicode := flags&Unicode != 0 && flags&ASCII == 0

	var b strings.Builder
	b.Grow(len(body) + 8)
	b.WriteString(modePrefix(flags))

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if !t.Escaped {
			if !inClass[i] {
				if err := checkGroupReference(toks, i); err != nil {
					return "", flags, err
				}
				if n := writeOpenRepeat(&b, toks, i); n > 0 {
					i += n - 1
					continue
				}
			}
			b.WriteByte(t.Ch)
			continue
		}

		if inClass[i] {
			if err := writeClassEscape(&b, t, unicode); err != nil {
				return "", flags, err
			}
			continue
		}

		switch c := t.Ch; {
		case c >= '1' && c <= '9':
			if c <= '7' && i+2 < len(toks) && isOctal(toks[i+1]) && isOctal(toks[i+2]) {
				b.WriteByte('\\')
				b.WriteByte(c)
				b.WriteByte(toks[i+1].Ch)
				b.WriteByte(toks[i+2].Ch)
				i += 2
				continue
			}
			expr := t.String()
			for j := i + 1; j < len(toks) && !toks[j].Escaped && isDigit(toks[j].Ch); j++ {
				expr += string(toks[j].Ch)
			}
			return "", flags, &Error{Code: ErrBackreferencesUnsupported, Expr: expr}
		case c == 'W' || c == 'S':
			if unicode {
				return "", flags, &Error{Code: ErrCharClassUnsupported, Expr: t.String()}
			}
			b.WriteString(t.String())
		case c == 'd' || c == 'w' || c == 's' || c == 'D':
			if unicode {
				b.WriteString(unicodeOutside[c])
			} else {
				b.WriteString(t.String())
			}
		case c == 'Z':
			b.WriteString(`\z`)
		case c == 'u' || c == 'U':
			n := 4
			if c == 'U' {
				n = 8
			}
			if hex, ok := hexRun(toks[i+1:], n); ok {
				b.WriteString(`\x{` + hex + `}`)
				i += n
				continue
			}
			b.WriteString(t.String())
		default:
			b.WriteString(t.String())
		}
	}
	return b.String(), flags, nil
}

// writeClassEscape writes the translation of an escape found inside a
// character class.
func writeClassEscape(b *strings.Builder, t Token, unicode bool) error {
	switch c := t.Ch; c {
	case 'W', 'S':
		return &Error{Code: ErrCharClassUnsupported, Expr: t.String()}
	case 'd', 'w', 's', 'D':
		if unicode {
			b.WriteString(unicodeInside[c])
			return nil
		}
	case 'b':
		// backspace inside a class
		b.WriteString(`\x08`)
		return nil
	}
	b.WriteString(t.String())
	return nil
}

// checkGroupReference rejects the named backreference "(?P=name)" starting
// at toks[i].
func checkGroupReference(toks []Token, i int) error {
	if !toks[i].Is('(') || i+3 >= len(toks) {
		return nil
	}
	if !toks[i+1].Is('?') || !toks[i+2].Is('P') || !toks[i+3].Is('=') {
		return nil
	}
	j := i + 4
	for j < len(toks) && !toks[j].Is(')') {
		j++
	}
	if j < len(toks) {
		j++
	}
	return &Error{Code: ErrBackreferencesUnsupported, Expr: join(toks[i:j])}
}

// writeOpenRepeat rewrites the repetition "{,n}", which means "{0,n}", at
// toks[i]. It returns the number of tokens consumed, 0 when toks[i] does not
// start such a repetition.
func writeOpenRepeat(b *strings.Builder, toks []Token, i int) int {
	if !toks[i].Is('{') || i+1 >= len(toks) || !toks[i+1].Is(',') {
		return 0
	}
	j := i + 2
	for j < len(toks) && !toks[j].Escaped && isDigit(toks[j].Ch) {
		j++
	}
	if j == i+2 || j >= len(toks) || !toks[j].Is('}') {
		return 0
	}
	b.WriteString("{0")
	b.WriteString(join(toks[i+1 : j+1]))
	return j + 1 - i
}

func hexRun(toks []Token, n int) (string, bool) {
	if len(toks) < n {
		return "", false
	}
	hex := make([]byte, n)
	for i := 0; i < n; i++ {
		c := toks[i].Ch
		if toks[i].Escaped || !(isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return "", false
		}
		hex[i] = c
	}
	return string(hex), true
}

func isOctal(t Token) bool {
	return !t.Escaped && '0' <= t.Ch && t.Ch <= '7'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
