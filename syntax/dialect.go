package syntax

import (
	"strconv"
	"strings"
)

// Dialect is a pattern respelled for the backtracking engine.
type Dialect struct {
	Expr string
	// Flags include the leading global inline flags of the pattern.
	Flags Flags
	// Names holds the name of every group by number, "" for unnamed groups.
	// Names[0] stands for the whole match.
	Names []string
}

// Groups returns the number of capturing groups.
func (d *Dialect) Groups() int {
	return len(d.Names) - 1
}

// ASCII spellings of the shorthand classes. The backtracking engine reads
// \d, \w, \s and \b as Unicode classes.
var (
	asciiSets = map[byte]string{
		'd': `0-9`,
		'w': `0-9A-Za-z_`,
		's': `\t\n\v\f\r `,
	}
	asciiNegated = map[byte]byte{'D': 'd', 'W': 'w', 'S': 's'}

	asciiBoundary    = `(?:(?<=[0-9A-Za-z_])(?![0-9A-Za-z_])|(?<![0-9A-Za-z_])(?=[0-9A-Za-z_]))`
	asciiNonBoundary = `(?:(?<=[0-9A-Za-z_])(?=[0-9A-Za-z_])|(?<![0-9A-Za-z_])(?![0-9A-Za-z_]))`
)

// FallbackDialect respells a pattern for the backtracking engine.
//
// Groups are numbered here, by opening parenthesis, and every group is handed
// to the engine unnamed: "(?P<name>" becomes "(" and "(?P=name)" becomes a
// numbered backreference. Comments and, under Verbose, insignificant
// whitespace are removed. "\Z" becomes "\z", "{,n}" becomes "{0,n}" and octal
// escapes are spelled in hex.
//
// Unless the Unicode flag is set the shorthand classes and word boundaries
// are spelled out as ASCII sets. Byte patterns are always ASCII; they must be
// decoded with runecacher.NewFromBytes, and hex or octal escapes of bytes
// 0x80 and above are rewritten to the runes that decoding produces.
func FallbackDialect(pattern string, flags Flags, bytes bool) (*Dialect, error) {
	body, inline := ExtractGlobalFlags(pattern)
	flags |= inline

	toks, err := Tokenize(body)
	if err != nil {
		return nil, err
	}
	toks = stripComments(toks, flags&Verbose != 0)

	w := &dialectWriter{
		toks:  toks,
		ascii: bytes || flags&Unicode == 0 || flags&ASCII != 0,
		bytes: bytes,
		names: []string{""},
		index: make(map[string]int),
	}
	w.b.Grow(len(body))
	w.write()
	return &Dialect{Expr: w.b.String(), Flags: flags, Names: w.names}, nil
}

type dialectWriter struct {
	b     strings.Builder
	toks  []Token
	ascii bool
	bytes bool

	names []string
	index map[string]int
}

func (w *dialectWriter) write() {
	toks := w.toks
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.Is('['):
			end := classEnd(toks, i)
			if end < 0 {
				// unterminated, left for the engine to reject
				w.b.WriteString(join(toks[i:]))
				return
			}
			w.class(toks[i : end+1])
			i = end
		case t.Escaped:
			i += w.escape(i) - 1
		case t.Is('('):
			i += w.group(i) - 1
		default:
			if n := writeOpenRepeat(&w.b, toks, i); n > 0 {
				i += n - 1
				continue
			}
			w.b.WriteByte(t.Ch)
		}
	}
}

// group writes the group opening at toks[i] and returns the number of tokens
// consumed.
func (w *dialectWriter) group(i int) int {
	toks := w.toks
	at := func(j int, c byte) bool { return j < len(toks) && toks[j].Is(c) }

	if !at(i+1, '?') {
		w.names = append(w.names, "")
		w.b.WriteByte('(')
		return 1
	}
	start := -1
	switch {
	case at(i+2, 'P') && at(i+3, '<'):
		start = i + 4
	case at(i+2, '<') && !at(i+3, '=') && !at(i+3, '!'):
		start = i + 3
	case at(i+2, 'P') && at(i+3, '='):
		return w.reference(i)
	}
	if start < 0 {
		w.b.WriteString("(?")
		return 2
	}
	end := start
	for end < len(toks) && !toks[end].Is('>') {
		end++
	}
	if end == len(toks) {
		// malformed, left for the engine to reject
		w.b.WriteString(join(toks[i:]))
		return len(toks) - i
	}
	name := join(toks[start:end])
	w.names = append(w.names, name)
	if _, dup := w.index[name]; !dup {
		w.index[name] = len(w.names) - 1
	}
	w.b.WriteByte('(')
	return end + 1 - i
}

// reference writes the named backreference "(?P=name)" at toks[i].
func (w *dialectWriter) reference(i int) int {
	toks := w.toks
	end := i + 4
	for end < len(toks) && !toks[end].Is(')') {
		end++
	}
	if end == len(toks) {
		w.b.WriteString(join(toks[i:]))
		return len(toks) - i
	}
	name := join(toks[i+4 : end])
	if n, ok := w.index[name]; ok {
		w.b.WriteString(`(?:\` + strconv.Itoa(n) + `)`)
	} else {
		// unknown names are rejected by the engine
		w.b.WriteString(`\k<` + name + `>`)
	}
	return end + 1 - i
}

// escape writes the escape at toks[i] found outside a class and returns the
// number of tokens consumed.
func (w *dialectWriter) escape(i int) int {
	if s, n := w.charEscape(w.toks, i); n > 0 {
		w.b.WriteString(s)
		return n
	}
	c := w.toks[i].Ch
	if w.ascii {
		switch c {
		case 'd', 'w', 's':
			w.b.WriteString("[" + asciiSets[c] + "]")
			return 1
		case 'D', 'W', 'S':
			w.b.WriteString("[^" + asciiSets[asciiNegated[c]] + "]")
			return 1
		case 'b':
			w.b.WriteString(asciiBoundary)
			return 1
		case 'B':
			w.b.WriteString(asciiNonBoundary)
			return 1
		}
	}
	if c == 'Z' {
		w.b.WriteString(`\z`)
		return 1
	}
	w.b.WriteString(w.toks[i].String())
	return 1
}

// charEscape rewrites the octal escape, or in byte patterns the hex escape,
// at toks[i]. n is 0 when toks[i] is neither.
func (w *dialectWriter) charEscape(toks []Token, i int) (s string, n int) {
	c := toks[i].Ch
	switch {
	case '1' <= c && c <= '7' && i+2 < len(toks) && isOctal(toks[i+1]) && isOctal(toks[i+2]):
		v, err := strconv.ParseUint(string([]byte{c, toks[i+1].Ch, toks[i+2].Ch}), 8, 16)
		if err != nil || v > 0xff {
			return "", 0
		}
		return w.byteEscape(byte(v)), 3
	case c == 'x' && w.bytes:
		if hex, ok := hexRun(toks[i+1:], 2); ok {
			v, _ := strconv.ParseUint(hex, 16, 8)
			return w.byteEscape(byte(v)), 3
		}
	}
	return "", 0
}

func (w *dialectWriter) byteEscape(v byte) string {
	if w.bytes && v >= 0x80 {
		return `\u` + strconv.FormatUint(uint64(highByteBase)+uint64(v), 16)
	}
	return `\x` + strconv.FormatUint(uint64(v)|0x100, 16)[1:]
}

// highByteBase matches runecacher.HighByteBase.
const highByteBase = 0xF700

// class writes the character class cls, brackets included.
func (w *dialectWriter) class(cls []Token) {
	negated := len(cls) > 1 && cls[1].Is('^')
	i := 1
	if negated {
		i++
	}

	var items strings.Builder
	var sets []string // shorthands negated inside the class
	if i < len(cls)-1 && cls[i].Is(']') {
		items.WriteString(`\]`)
		i++
	}
	for ; i < len(cls)-1; i++ {
		t := cls[i]
		shorthand := false
		switch {
		case !t.Escaped:
			items.WriteByte(t.Ch)
		case t.Ch == 'b':
			items.WriteString(`\x08`)
		default:
			if s, n := w.charEscape(cls[:len(cls)-1], i); n > 0 {
				items.WriteString(s)
				i += n - 1
				continue
			}
			if w.ascii {
				if set, ok := asciiSets[t.Ch]; ok {
					items.WriteString(set)
					shorthand = true
					break
				}
				if c, ok := asciiNegated[t.Ch]; ok {
					sets = append(sets, asciiSets[c])
					shorthand = true
					break
				}
			}
			items.WriteString(t.String())
		}
		// a '-' after a shorthand is literal
		if shorthand && i+1 < len(cls)-1 && cls[i+1].Is('-') {
			items.WriteString(`\-`)
			i++
		}
	}

	caret := ""
	if negated {
		caret = "^"
	}
	if len(sets) == 0 {
		w.b.WriteString("[" + caret + items.String() + "]")
		return
	}

	w.b.WriteString("(?:")
	if !negated {
		// any of the items, or outside any of the sets
		var alts []string
		if items.Len() > 0 {
			alts = append(alts, "["+items.String()+"]")
		}
		for _, set := range sets {
			alts = append(alts, "[^"+set+"]")
		}
		w.b.WriteString(strings.Join(alts, "|"))
	} else {
		// inside every set and none of the items
		last := len(sets) - 1
		for _, set := range sets[:last] {
			w.b.WriteString("(?=[" + set + "])")
		}
		if items.Len() > 0 {
			w.b.WriteString("(?=[" + sets[last] + "])[^" + items.String() + "]")
		} else {
			w.b.WriteString("[" + sets[last] + "]")
		}
	}
	w.b.WriteString(")")
}
