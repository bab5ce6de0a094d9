package re2compat

// run makes one match attempt over subject[pos:endpos]. Offsets are in
// caller units; a negative endpos means the end of subject.
func (p *Pattern[T]) run(subject T, pos, endpos int, anc anchor) (*MatchResult[T], error) {
	in := newInput(subject)
	start, end, ok := in.bounds(pos, endpos)
	if !ok {
		return nil, nil
	}
	loc, err := p.m.match(in, start, end, anc)
	if err != nil || loc == nil {
		return nil, err
	}
	return newMatch(p, subject, in, start, end, loc), nil
}

// Search returns the first match of p in subject, or nil.
func (p *Pattern[T]) Search(subject T) (*MatchResult[T], error) {
	return p.run(subject, 0, -1, unanchored)
}

// SearchRange is like Search over subject[pos:endpos]. Assertions such as ^
// and \b still see the text before pos. A negative endpos means the end of
// subject.
func (p *Pattern[T]) SearchRange(subject T, pos, endpos int) (*MatchResult[T], error) {
	return p.run(subject, pos, endpos, unanchored)
}

// Match returns the match of p at the start of subject, or nil.
func (p *Pattern[T]) Match(subject T) (*MatchResult[T], error) {
	return p.run(subject, 0, -1, anchorStart)
}

// MatchRange is like Match anchored at pos instead of the start.
func (p *Pattern[T]) MatchRange(subject T, pos, endpos int) (*MatchResult[T], error) {
	return p.run(subject, pos, endpos, anchorStart)
}

// FullMatch returns the match of p covering all of subject, or nil.
func (p *Pattern[T]) FullMatch(subject T) (*MatchResult[T], error) {
	return p.run(subject, 0, -1, anchorBoth)
}

// FullMatchRange is like FullMatch over subject[pos:endpos].
func (p *Pattern[T]) FullMatchRange(subject T, pos, endpos int) (*MatchResult[T], error) {
	return p.run(subject, pos, endpos, anchorBoth)
}

// FindIter returns an iterator over the non-overlapping matches of p in
// subject.
func (p *Pattern[T]) FindIter(subject T) *Iterator[T] {
	return p.iterate(subject, 0, -1)
}

// FindIterRange is like FindIter over subject[pos:endpos].
func (p *Pattern[T]) FindIterRange(subject T, pos, endpos int) *Iterator[T] {
	return p.iterate(subject, pos, endpos)
}

// FindAll returns one row per non-overlapping match. Without groups a row
// holds the whole match, otherwise one entry per group, the zero value for
// groups that did not participate.
func (p *Pattern[T]) FindAll(subject T) ([][]T, error) {
	return p.FindAllRange(subject, 0, -1)
}

// FindAllRange is like FindAll over subject[pos:endpos].
func (p *Pattern[T]) FindAllRange(subject T, pos, endpos int) ([][]T, error) {
	var rows [][]T
	it := p.iterate(subject, pos, endpos)
	for {
		m, err := it.Next()
		if err != nil {
			return nil, err
		}
		if m == nil {
			return rows, nil
		}
		if p.Groups() == 0 {
			rows = append(rows, []T{m.Text()})
		} else {
			rows = append(rows, m.Groups(*new(T)))
		}
	}
}

// The package level functions below compile pattern through the package
// level Compiler, so repeated calls reuse the cached Pattern.

// Search compiles pattern and returns its first match in subject, or nil.
func Search[T Text](pattern, subject T, flags Flag) (*MatchResult[T], error) {
	p, err := Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	return p.Search(subject)
}

// Match compiles pattern and returns its match at the start of subject, or nil.
func Match[T Text](pattern, subject T, flags Flag) (*MatchResult[T], error) {
	p, err := Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	return p.Match(subject)
}

// FullMatch compiles pattern and returns its match covering all of subject, or nil.
func FullMatch[T Text](pattern, subject T, flags Flag) (*MatchResult[T], error) {
	p, err := Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	return p.FullMatch(subject)
}

// FindIter compiles pattern and returns an iterator over its matches in subject.
func FindIter[T Text](pattern, subject T, flags Flag) (*Iterator[T], error) {
	p, err := Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	return p.FindIter(subject), nil
}

// FindAll compiles pattern and returns its matches in subject as Pattern.FindAll does.
func FindAll[T Text](pattern, subject T, flags Flag) ([][]T, error) {
	p, err := Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	return p.FindAll(subject)
}

// Split compiles pattern and splits subject around its matches as Pattern.Split does.
func Split[T Text](pattern, subject T, maxsplit int, flags Flag) ([]T, error) {
	p, err := Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	return p.Split(subject, maxsplit)
}

// Sub compiles pattern and replaces its matches in subject with the template repl.
func Sub[T Text](pattern, repl, subject T, count int, flags Flag) (T, error) {
	p, err := Compile(pattern, flags)
	if err != nil {
		var zero T
		return zero, err
	}
	return p.Sub(repl, subject, count)
}

// Subn is like Sub and also returns the number of replacements made.
func Subn[T Text](pattern, repl, subject T, count int, flags Flag) (T, int, error) {
	p, err := Compile(pattern, flags)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return p.Subn(repl, subject, count)
}

// SubFunc compiles pattern and replaces its matches in subject with the text fn returns.
func SubFunc[T Text](pattern T, fn func(*MatchResult[T]) T, subject T, count int, flags Flag) (T, error) {
	p, err := Compile(pattern, flags)
	if err != nil {
		var zero T
		return zero, err
	}
	return p.SubFunc(fn, subject, count)
}

// SubnFunc is like SubFunc and also returns the number of replacements made.
func SubnFunc[T Text](pattern T, fn func(*MatchResult[T]) T, subject T, count int, flags Flag) (T, int, error) {
	p, err := Compile(pattern, flags)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return p.SubnFunc(fn, subject, count)
}
