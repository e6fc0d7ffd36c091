package press

import "strings"

// CollapseSpace reduces all runs of whitespace in s to single spaces and
// trims the ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// HasDevanagariRun reports whether s contains at least n consecutive
// Devanagari code points. PIB publishes every release in Hindi as well as
// English; the pipeline only classifies the English editions, so a long
// Devanagari run marks content to exclude.
func HasDevanagariRun(s string, n int) bool {
	if n <= 0 {
		return false
	}
	run := 0
	for _, r := range s {
		if r >= 0x0900 && r <= 0x097F {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
