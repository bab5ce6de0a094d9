package syntax

import "strings"

// Flags are the pattern compile flags. The values are the ones callers of
// Python's re module pass around, so they survive a round trip through
// configuration files and foreign callers unchanged.
type Flags uint32

const (
	IgnoreCase Flags = 2   // "i"
	Locale     Flags = 4   // "L", accepted, no effect
	Multiline  Flags = 8   // "m"
	DotAll     Flags = 16  // "s"
	Unicode    Flags = 32  // "u"
	Verbose    Flags = 64  // "x"
	Debug      Flags = 128 // accepted, no effect
	ASCII      Flags = 256 // "a"
)

var flagLetters = []struct {
	letter byte
	flag   Flags
}{
	{'a', ASCII},
	{'i', IgnoreCase},
	{'L', Locale},
	{'m', Multiline},
	{'s', DotAll},
	{'u', Unicode},
	{'x', Verbose},
}

// FlagForLetter returns the flag spelled by an inline flag letter.
func FlagForLetter(c byte) (Flags, bool) {
	for _, fl := range flagLetters {
		if fl.letter == c {
			return fl.flag, true
		}
	}
	return 0, false
}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var b strings.Builder
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			b.WriteByte(fl.letter)
		}
	}
	if f&Debug != 0 {
		b.WriteString("(debug)")
	}
	return b.String()
}

// ExtractGlobalFlags removes leading global inline flag groups such as
// "(?im)" from pattern and returns the remaining pattern together with the
// flags they spelled. Scoped groups like "(?i:...)" are left in place.
func ExtractGlobalFlags(pattern string) (string, Flags) {
	var flags Flags
	for strings.HasPrefix(pattern, "(?") {
		end := strings.IndexByte(pattern, ')')
		if end < 3 {
			break
		}
		var group Flags
		ok := true
		for i := 2; i < end; i++ {
			f, known := FlagForLetter(pattern[i])
			if !known {
				ok = false
				break
			}
			group |= f
		}
		if !ok {
			break
		}
		flags |= group
		pattern = pattern[end+1:]
	}
	return pattern, flags
}

// modePrefix returns the inline group expressing the flags the automaton
// engine understands, or "" when none is set.
func modePrefix(flags Flags) string {
	var b []byte
	if flags&IgnoreCase != 0 {
		b = append(b, 'i')
	}
	if flags&Multiline != 0 {
		b = append(b, 'm')
	}
	if flags&DotAll != 0 {
		b = append(b, 's')
	}
	if len(b) == 0 {
		return ""
	}
	return "(?" + string(b) + ")"
}
