// Package classify assigns topic labels to press-release text using a
// fixed, ordered keyword taxonomy.
package classify

import "strings"

// FallbackLabel is returned when no taxonomy topic matches.
const FallbackLabel = "General"

// Classifier is a deterministic, order-sensitive text labeler.
type Classifier struct {
	taxonomy []Topic
	limit    int
	fallback string
}

// New constructs a Classifier that returns at most limit labels, falling
// back to the given sentinel when nothing matches.
func New(taxonomy []Topic, limit int, fallback string) *Classifier {
	if limit <= 0 {
		limit = 3
	}
	if fallback == "" {
		fallback = FallbackLabel
	}
	return &Classifier{
		taxonomy: taxonomy,
		limit:    limit,
		fallback: fallback,
	}
}

// Default returns a Classifier over DefaultTaxonomy with the standard
// three-label limit.
func Default() *Classifier {
	return New(DefaultTaxonomy, 3, FallbackLabel)
}

// Classify returns the labels of every topic with at least one keyword
// present in text, in taxonomy declaration order, truncated to the limit.
// The result always has at least one entry.
func (c *Classifier) Classify(text string) []string {
	lower := strings.ToLower(text)

	var matched []string
	for _, topic := range c.taxonomy {
		for _, kw := range topic.Keywords {
			if kw != "" && strings.Contains(lower, kw) {
				matched = append(matched, topic.Label)
				break
			}
		}
		if len(matched) == c.limit {
			break
		}
	}

	if len(matched) == 0 {
		return []string{c.fallback}
	}
	return matched
}
