// Package press defines the press-release domain model shared by the
// discovery, extraction, and publishing stages.
package press

import (
	"regexp"
	"time"
)

// idPattern matches the numeric press-release identifier (PRID) embedded in
// PIB URLs. Identifiers are 6 to 8 digits long.
var idPattern = regexp.MustCompile(`(?i)PRID=(\d{6,8})`)

// bareIDPattern validates a standalone identifier string.
var bareIDPattern = regexp.MustCompile(`^\d{6,8}$`)

// ExtractID pulls the PRID out of a URL. It returns the empty string when
// the URL carries no identifier.
func ExtractID(rawURL string) string {
	m := idPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// ValidID reports whether id is a well-formed standalone identifier.
func ValidID(id string) bool {
	return bareIDPattern.MatchString(id)
}

// Stub is the low-confidence metadata a discovery strategy yields for one
// release before its detail page has been fetched. Hint fields may be empty.
type Stub struct {
	ID           string
	TitleHint    string
	MinistryHint string
	DateHint     string
}

// Attachment is one downloadable document linked from a release page.
type Attachment struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// Record is a finalized, classified press release. Title is never empty and
// Topics always holds between one and three labels.
type Record struct {
	ID          string       `json:"prid"`
	Title       string       `json:"title"`
	Ministry    string       `json:"ministry"`
	Summary     string       `json:"snippet"`
	SourceURL   string       `json:"source_url"`
	PublishedAt time.Time    `json:"pub_date"`
	RawDateText string       `json:"posted_on_raw"`
	Attachments []Attachment `json:"pdfs"`
	Topics      []string     `json:"topics"`
}

// FullText carries the body of one release. It is persisted separately from
// the index so a failed body fetch does not lose the listing metadata.
type FullText struct {
	ID   string `json:"prid"`
	Text string `json:"text"`
}

// Index is the aggregate artifact consumed by the site frontend. Items are
// ordered by publication date, newest first.
type Index struct {
	UpdatedAt time.Time `json:"updated_at_utc"`
	Total     int       `json:"total"`
	Items     []Record  `json:"items"`
}

// Clock abstracts time.Now so date-fallback behavior is testable.
type Clock interface {
	Now() time.Time
}
