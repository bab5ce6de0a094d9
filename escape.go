package re2compat

// Escape backslash-escapes every ASCII byte of s that is not a letter or a
// digit, so the result matches s literally. Bytes outside ASCII are left
// alone.
func Escape[T Text](s T) T {
	buf := make([]byte, 0, len(s)+len(s)/4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x80 && !isAlnum(c) {
			buf = append(buf, '\\')
		}
		buf = append(buf, c)
	}
	return T(buf)
}

func isAlnum(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
