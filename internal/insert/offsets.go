package insert

// Browsers report textarea selections in UTF-16 code units while Insert
// works on runes. RuneOffset and UTF16Offset convert between the two for
// a given buffer.

// RuneOffset converts an offset counted in UTF-16 code units into a rune
// offset of s. An offset that falls inside a surrogate pair rounds down
// to the start of that character; offsets past the end give the rune
// count of s.
func RuneOffset(s string, units int) int {
	if units <= 0 {
		return 0
	}
	n, u := 0, 0
	for _, r := range s {
		w := utf16Len(r)
		if u+w > units {
			return n
		}
		u += w
		n++
	}
	return n
}

// UTF16Offset converts a rune offset of s into UTF-16 code units.
func UTF16Offset(s string, runes int) int {
	if runes <= 0 {
		return 0
	}
	n, u := 0, 0
	for _, r := range s {
		if n == runes {
			break
		}
		u += utf16Len(r)
		n++
	}
	return u
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
