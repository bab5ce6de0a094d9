package re2compat

import (
	"iter"
)

// Iterator walks the successive non-overlapping matches of a pattern. It
// cannot be restarted; search again for a fresh one.
type Iterator[T Text] struct {
	p       *Pattern[T]
	subject T
	in      *input

	pos, endpos int // bytes
	start       int // searched range start, reported by Match.Pos
	done        bool
}

func (p *Pattern[T]) iterate(subject T, pos, endpos int) *Iterator[T] {
	in := newInput(subject)
	start, end, ok := in.bounds(pos, endpos)
	return &Iterator[T]{
		p:       p,
		subject: subject,
		in:      in,
		pos:     start,
		endpos:  end,
		start:   start,
		done:    !ok,
	}
}

// Next returns the next match, or nil once there are no more.
func (it *Iterator[T]) Next() (*MatchResult[T], error) {
	if it.done || it.pos > it.endpos {
		it.done = true
		return nil, nil
	}
	loc, err := it.p.m.match(it.in, it.pos, it.endpos, unanchored)
	if err != nil || loc == nil {
		it.done = true
		return nil, err
	}
	switch {
	case loc[1] != loc[0]:
		it.pos = loc[1]
	case loc[1] >= it.endpos:
		it.done = true
	default:
		it.pos = it.in.next(loc[1])
	}
	return newMatch(it.p, it.subject, it.in, it.start, it.endpos, loc), nil
}

// All adapts the iterator to a range loop. Iteration stops after the first
// error is yielded.
func (it *Iterator[T]) All() iter.Seq2[*MatchResult[T], error] {
	return func(yield func(*MatchResult[T], error) bool) {
		for {
			m, err := it.Next()
			if m == nil && err == nil {
				return
			}
			if !yield(m, err) || err != nil {
				return
			}
		}
	}
}
