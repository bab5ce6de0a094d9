package re2compat

import (
	"github.com/dlclark/re2compat/runecacher"
)

// input is a subject prepared for matching. Text subjects are addressed by
// the caller in logical units and by the engines in bytes; input converts
// between the two and keeps the rune table the backtracking engine needs.
type input struct {
	str   string
	bytes []byte
	text  bool

	runes *runecacher.RuneCacher
}

func newInput[T Text](subject T) *input {
	switch s := any(subject).(type) {
	case string:
		return &input{str: s, text: true}
	case []byte:
		return &input{bytes: s}
	}
	panic("unreachable")
}

func (in *input) len() int {
	if in.text {
		return len(in.str)
	}
	return len(in.bytes)
}

// byteOffset converts a caller supplied offset to a byte offset clamped to
// the subject.
func (in *input) byteOffset(pos int) int {
	if pos < 0 {
		return 0
	}
	if in.text {
		return runecacher.ByteOffset(in.str, pos)
	}
	if pos > len(in.bytes) {
		return len(in.bytes)
	}
	return pos
}

// bounds resolves pos and endpos to byte offsets. ok is false when the range
// is empty in a way that forbids any match.
func (in *input) bounds(pos, endpos int) (start, end int, ok bool) {
	start = in.byteOffset(pos)
	if endpos < 0 {
		end = in.len()
	} else {
		end = in.byteOffset(endpos)
	}
	return start, end, start <= end
}

// units maps byte offsets back to the offsets the caller works with.
func (in *input) units(offs []int) []int {
	if !in.text {
		return offs
	}
	return runecacher.UnitsAt(in.str, offs)
}

// next returns the position to resume scanning from after an empty match at
// off.
func (in *input) next(off int) int {
	if in.text {
		return runecacher.NextUnit(in.str, off)
	}
	return off + 1
}

// prevWidth returns the byte length of the character ending at off.
func (in *input) prevWidth(off int) int {
	if off <= 0 {
		return 0
	}
	if in.text {
		return runecacher.PrevWidth(in.str, off)
	}
	return 1
}

func (in *input) runeCache() *runecacher.RuneCacher {
	if in.runes == nil {
		if in.text {
			in.runes = runecacher.NewFromString(in.str)
		} else {
			in.runes = runecacher.NewFromBytes(in.bytes)
		}
	}
	return in.runes
}
