package syntax

// Token is one lexical unit of a pattern: a single byte, or a backslash and
// the byte that follows it.
type Token struct {
	Pos     int  // offset of the token in the pattern
	Ch      byte // the byte, or the escaped byte when Escaped is set
	Escaped bool
}

// String returns the token as it appeared in the pattern.
func (t Token) String() string {
	if t.Escaped {
		return string([]byte{'\\', t.Ch})
	}
	return string([]byte{t.Ch})
}

// Is reports whether t is the unescaped byte c.
func (t Token) Is(c byte) bool {
	return !t.Escaped && t.Ch == c
}

// Tokenizer splits a pattern into tokens. The zero value is not usable, use
// NewTokenizer.
type Tokenizer struct {
	pattern string
	pos     int
}

func NewTokenizer(pattern string) *Tokenizer {
	return &Tokenizer{pattern: pattern}
}

// Next returns the next token. ok is false once the pattern is exhausted.
func (t *Tokenizer) Next() (tok Token, ok bool, err error) {
	if t.pos >= len(t.pattern) {
		return Token{}, false, nil
	}
	start := t.pos
	c := t.pattern[t.pos]
	if c != '\\' {
		t.pos++
		return Token{Pos: start, Ch: c}, true, nil
	}
	if t.pos+1 >= len(t.pattern) {
		return Token{}, false, &Error{Code: ErrMalformedEscape, Expr: t.pattern[start:]}
	}
	t.pos += 2
	return Token{Pos: start, Ch: t.pattern[start+1], Escaped: true}, true, nil
}

// Reset rewinds the tokenizer to the start of the pattern.
func (t *Tokenizer) Reset() {
	t.pos = 0
}

// Tokenize splits the whole pattern into tokens.
func Tokenize(pattern string) ([]Token, error) {
	t := NewTokenizer(pattern)
	toks := make([]Token, 0, len(pattern))
	for {
		tok, ok, err := t.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// join writes tokens back out in their original spelling.
func join(toks []Token) string {
	b := make([]byte, 0, len(toks)+len(toks)/4)
	for _, t := range toks {
		if t.Escaped {
			b = append(b, '\\')
		}
		b = append(b, t.Ch)
	}
	return string(b)
}
