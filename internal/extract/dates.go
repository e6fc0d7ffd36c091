package extract

import (
	"regexp"
	"strings"
	"time"
)

var (
	postedOnPattern = regexp.MustCompile(`(?i)Posted\s+On[:\s]*(\d{1,2}\s+\w+\s+\d{4})`)
	namedDatePattern = regexp.MustCompile(
		`(?i)(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})`)
)

// DefaultDateFormats are the accepted date layouts, tried in order.
var DefaultDateFormats = []string{
	"2 January 2006",
	"2 Jan 2006",
	"2/1/2006",
	"2-1-2006",
}

// findDateText locates a raw date string in page text, preferring the
// labeled "Posted On:" form over a bare named-month date.
func findDateText(pageText string) string {
	if m := postedOnPattern.FindStringSubmatch(pageText); m != nil {
		return m[1]
	}
	if m := namedDatePattern.FindStringSubmatch(pageText); m != nil {
		return m[1]
	}
	return ""
}

// parseDate tries each layout in order and returns the first that parses,
// normalized to UTC. The second return is false when no layout matched.
func parseDate(raw string, layouts []string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
