package runecacher

import (
	"sort"
	"unicode/utf8"
)

const cachePrimeSize = 10

// RuneCacher decodes a subject into the runes the backtracking engine works
// on and remembers where each rune starts in the original bytes, so spans can
// be carried back to byte offsets. Decoding is lazy and cached.
type RuneCacher struct {
	runes   []rune
	offsets []int // byte offset of runes[i]

	inpStr string
	inpLen int
	raw    bool

	// start of uncached position in our input
	inpUncachedPos int
}

// NewFromString decodes str as UTF-8. Each invalid byte becomes one
// utf8.RuneError.
func NewFromString(str string) *RuneCacher {
	r := &RuneCacher{
		runes:   make([]rune, 0, len(str)),
		offsets: make([]int, 0, len(str)),
		inpStr:  str,
		inpLen:  len(str),
	}
	// prime cache with some runes
	r.cachedNext(cachePrimeSize)
	return r
}

// HighByteBase is added to bytes 0x80 and above by NewFromBytes. The
// resulting runes lie in the Private Use Area, which has no case mappings and
// no word, digit or space characters.
const HighByteBase = 0xF700

// ByteRune returns the rune NewFromBytes decodes b to.
func ByteRune(b byte) rune {
	if b < utf8.RuneSelf {
		return rune(b)
	}
	return HighByteBase + rune(b)
}

// NewFromBytes decodes b one rune per byte, so byte patterns and byte
// subjects line up one to one. ASCII bytes keep their value and the others
// become ByteRune(b).
func NewFromBytes(b []byte) *RuneCacher {
	r := &RuneCacher{
		runes:   make([]rune, 0, len(b)),
		offsets: make([]int, 0, len(b)),
		inpStr:  string(b),
		inpLen:  len(b),
		raw:     true,
	}
	r.cachedNext(cachePrimeSize)
	return r
}

// Len returns the number of runes in the input.
func (r *RuneCacher) Len() int {
	r.fill()
	return len(r.runes)
}

// String returns the decoded input. For byte input this differs from the
// raw bytes whenever a byte is 0x80 or above.
func (r *RuneCacher) String() string {
	if !r.raw {
		return r.inpStr
	}
	return string(r.Runes())
}

func (r *RuneCacher) RuneAt(textPos int) rune {
	if textPos < len(r.runes) {
		return r.runes[textPos]
	}
	// not in our cache - populate cache
	want := textPos - len(r.runes) + 1
	r.cachedNext(want)

	return r.runes[textPos]
}

// Runes returns every rune of the input.
func (r *RuneCacher) Runes() []rune {
	r.fill()
	return r.runes
}

// ByteOffset returns the byte offset at which rune textPos starts. textPos
// equal to the rune count maps to the input length.
func (r *RuneCacher) ByteOffset(textPos int) int {
	if textPos >= len(r.runes) {
		r.cachedNext(textPos - len(r.runes) + 1)
	}
	if textPos >= len(r.runes) {
		return r.inpLen
	}
	return r.offsets[textPos]
}

// RuneIndex returns the index of the rune starting at byte offset off. An
// offset inside a multi-byte rune maps to the rune that follows it.
func (r *RuneCacher) RuneIndex(off int) int {
	for r.hasUncached() && (len(r.offsets) == 0 || r.offsets[len(r.offsets)-1] < off) {
		r.cachedNext(cachePrimeSize)
	}
	return sort.SearchInts(r.offsets, off)
}

func (r *RuneCacher) fill() {
	if r.hasUncached() {
		r.cachedNext(r.inpLen)
	}
}

func (r *RuneCacher) hasUncached() bool {
	// if we're not passed the end then we have more to cache
	return r.inpUncachedPos < r.inpLen
}

func (r *RuneCacher) cachedNext(count int) {
	for r.hasUncached() && count > 0 {
		r.offsets = append(r.offsets, r.inpUncachedPos)
		if r.raw {
			r.runes = append(r.runes, ByteRune(r.inpStr[r.inpUncachedPos]))
			r.inpUncachedPos++
		} else {
			newRune, newLen := utf8.DecodeRuneInString(r.inpStr[r.inpUncachedPos:])
			r.runes = append(r.runes, newRune)
			r.inpUncachedPos += newLen
		}
		count--
	}
}
