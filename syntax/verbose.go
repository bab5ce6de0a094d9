package syntax

// stripComments removes "(?#...)" comment groups and, when verbose is set,
// unescaped whitespace and "#" comments outside character classes.
func stripComments(toks []Token, verbose bool) []Token {
	out := make([]Token, 0, len(toks))
	inClass := false
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if inClass {
			out = append(out, t)
			if t.Is(']') {
				inClass = false
			}
			continue
		}
		switch {
		case t.Is('['):
			out = append(out, t)
			i = openClass(toks, i, func(t Token) { out = append(out, t) })
			inClass = true
		case t.Is('(') && i+2 < len(toks) && toks[i+1].Is('?') && toks[i+2].Is('#'):
			i += 3
			for i < len(toks) && !toks[i].Is(')') {
				i++
			}
		case verbose && !t.Escaped && isSpace(t.Ch):
		case verbose && t.Is('#'):
			for i < len(toks) && !toks[i].Is('\n') {
				i++
			}
		default:
			out = append(out, t)
		}
	}
	return out
}

// openClass consumes the optional negation and a leading literal ']' that
// follow the '[' at toks[i], passing each to emit. It returns the index of
// the last token consumed.
func openClass(toks []Token, i int, emit func(Token)) int {
	if i+1 < len(toks) && toks[i+1].Is('^') {
		i++
		emit(toks[i])
	}
	if i+1 < len(toks) && toks[i+1].Is(']') {
		i++
		emit(toks[i])
	}
	return i
}

// classEnd returns the index of the ']' closing the class opened at toks[i],
// or -1 when the class is not closed.
func classEnd(toks []Token, i int) int {
	i = openClass(toks, i, func(Token) {})
	for i+1 < len(toks) {
		i++
		if toks[i].Is(']') {
			return i
		}
	}
	return -1
}

// classMask marks every token that belongs to a character class, brackets
// included.
func classMask(toks []Token) []bool {
	mask := make([]bool, len(toks))
	for i := 0; i < len(toks); i++ {
		if !toks[i].Is('[') {
			continue
		}
		mask[i] = true
		i = openClass(toks, i, func(Token) {})
		for j := i; j >= 0 && !mask[j]; j-- {
			mask[j] = true
		}
		for i+1 < len(toks) {
			i++
			mask[i] = true
			if toks[i].Is(']') {
				break
			}
		}
	}
	return mask
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
