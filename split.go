package re2compat

// Split splits subject around the matches of p and returns the pieces.
// maxsplit limits the number of splits when positive; 0 splits at every
// match and a negative value does not split at all.
//
// If capturing parentheses are used in the pattern, the text of each group
// is included in the result after the piece it ends, the zero value for groups
// that did not participate.
// For example, a pattern of "-" Split("a-b") will return ["a", "b"]
// but a pattern with "(-)" Split("a-b") will return ["a", "-", "b"]
func (p *Pattern[T]) Split(subject T, maxsplit int) ([]T, error) {
	if maxsplit < 0 {
		return []T{subject}, nil
	}

	var retVal []T
	priorIndex, n := 0, 0
	it := p.iterate(subject, 0, -1)
	for maxsplit == 0 || n < maxsplit {
		m, err := it.Next()
		if err != nil {
			return nil, err
		}
		if m == nil {
			break
		}
		// append our piece
		retVal = append(retVal, subject[priorIndex:m.spans[0]])
		// append any capture groups, skipping group 0
		retVal = append(retVal, m.Groups(*new(T))...)
		priorIndex = m.spans[1]
		n++
	}

	// append our remainder
	return append(retVal, subject[priorIndex:]), nil
}
