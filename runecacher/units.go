package runecacher

import (
	"sort"
	"unicode/utf8"
)

// Offsets reported for text subjects are counted in logical units: one per
// UTF-8 sequence of up to three bytes, two per four byte sequence (the width
// the character has in UTF-16) and one per invalid byte. The UTF-16 width is
// a compatibility choice for callers that index text by code units.

// width returns the byte length and logical width of the sequence at s[i].
func width(s string, i int) (size, units int) {
	r, size := utf8.DecodeRuneInString(s[i:])
	if r == utf8.RuneError && size <= 1 {
		return 1, 1
	}
	if size == 4 {
		return 4, 2
	}
	return size, 1
}

// UnitsAt converts byte offsets into s to logical offsets with one scan of s.
// Negative offsets are passed through unchanged.
func UnitsAt(s string, offs []int) []int {
	out := make([]int, len(offs))
	distinct := make([]int, 0, len(offs))
	for _, o := range offs {
		if o >= 0 {
			distinct = append(distinct, o)
		}
	}
	sort.Ints(distinct)

	mapped := make(map[int]int, len(distinct))
	i, units := 0, 0
	for _, o := range distinct {
		if _, ok := mapped[o]; ok {
			continue
		}
		for i < o && i < len(s) {
			size, n := width(s, i)
			i += size
			units += n
		}
		mapped[o] = units
	}
	for k, o := range offs {
		if o < 0 {
			out[k] = o
			continue
		}
		out[k] = mapped[o]
	}
	return out
}

// Units returns the logical length of s.
func Units(s string) int {
	return UnitsAt(s, []int{len(s)})[0]
}

// ByteOffset converts a logical offset into s to a byte offset. Offsets past
// the end map to len(s); an offset that falls between the two units of a four
// byte sequence maps to the end of that sequence.
func ByteOffset(s string, units int) int {
	i, n := 0, 0
	for i < len(s) && n < units {
		size, w := width(s, i)
		i += size
		n += w
	}
	return i
}

// NextUnit returns the byte offset one logical character past off.
func NextUnit(s string, off int) int {
	if off >= len(s) {
		return off + 1
	}
	size, _ := width(s, off)
	return off + size
}

// PrevWidth returns the byte length of the character that ends at off.
func PrevWidth(s string, off int) int {
	if off <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(s[:off])
	return size
}
