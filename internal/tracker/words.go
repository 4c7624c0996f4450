package tracker

import "strings"

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
