package discovery

import (
	"context"
	"strings"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/upsc-samachar/pib-scraper/internal/fetch"
	"github.com/upsc-samachar/pib-scraper/internal/press"
)

// FeedStrategy discovers releases through one of PIB's RSS endpoints. The
// feeds are served behind the same flaky frontend as the HTML pages and
// occasionally arrive prefixed with whitespace or error banners, so the raw
// payload is truncated to the first markup character before parsing.
type FeedStrategy struct {
	name         string
	url          string
	referer      string
	fetcher      fetch.Fetcher
	parser       *gofeed.Parser
	exclusionRun int
	logger       *zap.Logger
}

// NewFeedStrategy constructs a FeedStrategy. exclusionRun is the Devanagari
// run length that marks an entry as a Hindi edition to skip.
func NewFeedStrategy(name, url, referer string, fetcher fetch.Fetcher, exclusionRun int, logger *zap.Logger) *FeedStrategy {
	return &FeedStrategy{
		name:         name,
		url:          url,
		referer:      referer,
		fetcher:      fetcher,
		parser:       gofeed.NewParser(),
		exclusionRun: exclusionRun,
		logger:       logger,
	}
}

// Name identifies the strategy in logs and metrics.
func (s *FeedStrategy) Name() string { return s.name }

// Collect fetches and parses the feed. Fetch and parse failures are soft:
// the strategy yields nothing and resolution moves on.
func (s *FeedStrategy) Collect(ctx context.Context, seen map[string]struct{}, limit int) ([]press.Stub, error) {
	raw, err := s.fetcher.Fetch(ctx, s.url, s.referer)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("feed fetch failed", zap.String("strategy", s.name), zap.Error(err))
		return nil, nil
	}

	feed, err := s.parser.ParseString(trimLeadingNoise(raw))
	if err != nil {
		s.logger.Warn("feed parse failed", zap.String("strategy", s.name), zap.Error(err))
		return nil, nil
	}

	local := make(map[string]struct{})
	var stubs []press.Stub
	for _, item := range feed.Items {
		if len(stubs) >= limit {
			break
		}
		if item == nil {
			continue
		}
		id := press.ExtractID(item.Link)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		if _, dup := local[id]; dup {
			continue
		}

		title := press.CollapseSpace(item.Title)
		if press.HasDevanagariRun(title, s.exclusionRun) {
			continue
		}

		// Feed timestamps arrive in RFC1123 form; re-render parsed ones
		// into the day-month-year shape the extractor's format list knows.
		date := strings.TrimSpace(item.Published)
		if item.PublishedParsed != nil {
			date = item.PublishedParsed.UTC().Format("2 January 2006")
		}

		local[id] = struct{}{}
		stubs = append(stubs, press.Stub{
			ID:        id,
			TitleHint: title,
			DateHint:  date,
		})
	}
	return stubs, nil
}

// trimLeadingNoise drops anything before the first structural tag character
// so feeds prefixed with junk still parse.
func trimLeadingNoise(raw string) string {
	if i := strings.IndexByte(raw, '<'); i > 0 {
		return raw[i:]
	}
	return raw
}
