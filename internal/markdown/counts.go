package markdown

import "strings"

// WordCount returns the number of whitespace separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// CharCount returns the number of characters in s, not counting line breaks.
func CharCount(s string) int {
	n := 0
	for _, r := range s {
		if r != '\n' && r != '\r' {
			n++
		}
	}
	return n
}

// ReadingMinutes estimates reading time at 200 words per minute, rounding up.
func ReadingMinutes(s string) int {
	words := WordCount(s)
	if words == 0 {
		return 0
	}
	return (words + 199) / 200
}

