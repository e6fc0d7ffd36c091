package discovery

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/upsc-samachar/pib-scraper/internal/fetch"
	"github.com/upsc-samachar/pib-scraper/internal/press"
)

const (
	// How far above an anchor to look for ministry and date context.
	ministryWalkDepth = 5
	dateWalkDepth     = 4

	// Anchor text shorter than this falls back to the title attribute.
	minAnchorTitle = 10
)

var (
	namedDatePattern = regexp.MustCompile(
		`(?i)(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})`)
	numericDatePattern = regexp.MustCompile(`(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`)
)

// HTMLStrategy discovers releases by scraping anchors off one of PIB's
// listing pages. Ministry and date hints come from walking a bounded number
// of ancestor nodes around each matching anchor.
type HTMLStrategy struct {
	name         string
	url          string
	referer      string
	fetcher      fetch.Fetcher
	ministries   []string
	exclusionRun int
	logger       *zap.Logger
}

// NewHTMLStrategy constructs an HTMLStrategy. ministries is the priority
// ordered list used for the hint scan.
func NewHTMLStrategy(name, url, referer string, fetcher fetch.Fetcher, ministries []string, exclusionRun int, logger *zap.Logger) *HTMLStrategy {
	return &HTMLStrategy{
		name:         name,
		url:          url,
		referer:      referer,
		fetcher:      fetcher,
		ministries:   ministries,
		exclusionRun: exclusionRun,
		logger:       logger,
	}
}

// Name identifies the strategy in logs and metrics.
func (s *HTMLStrategy) Name() string { return s.name }

// Collect scrapes the listing page for release anchors. Failures are soft.
func (s *HTMLStrategy) Collect(ctx context.Context, seen map[string]struct{}, limit int) ([]press.Stub, error) {
	html, err := s.fetcher.Fetch(ctx, s.url, s.referer)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("listing fetch failed", zap.String("strategy", s.name), zap.Error(err))
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.logger.Warn("listing parse failed", zap.String("strategy", s.name), zap.Error(err))
		return nil, nil
	}

	local := make(map[string]struct{})
	var stubs []press.Stub
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		id := press.ExtractID(href)
		if id == "" {
			return true
		}
		if _, dup := seen[id]; dup {
			return true
		}
		if _, dup := local[id]; dup {
			return true
		}

		title := press.CollapseSpace(a.Text())
		if len([]rune(title)) < minAnchorTitle {
			if attr, ok := a.Attr("title"); ok && strings.TrimSpace(attr) != "" {
				title = press.CollapseSpace(attr)
			}
		}
		if press.HasDevanagariRun(title, s.exclusionRun) {
			return true
		}

		local[id] = struct{}{}
		stubs = append(stubs, press.Stub{
			ID:           id,
			TitleHint:    title,
			MinistryHint: s.ministryHint(a),
			DateHint:     dateHint(a),
		})
		return len(stubs) < limit
	})
	return stubs, nil
}

// ministryHint walks ancestor nodes looking for a known organization name.
// Priority order matters: the first name in the configured list found at
// the nearest level wins.
func (s *HTMLStrategy) ministryHint(a *goquery.Selection) string {
	node := a.Parent()
	for depth := 0; depth < ministryWalkDepth && node.Length() > 0; depth++ {
		text := node.Text()
		for _, name := range s.ministries {
			if strings.Contains(text, name) {
				return name
			}
		}
		node = node.Parent()
	}
	return ""
}

// dateHint scans the text of nearby ancestors for a date-shaped substring,
// preferring a named-month form over a numeric one.
func dateHint(a *goquery.Selection) string {
	var b strings.Builder
	node := a.Parent()
	for depth := 0; depth < dateWalkDepth && node.Length() > 0; depth++ {
		b.WriteByte(' ')
		b.WriteString(node.Text())
		node = node.Parent()
	}
	text := b.String()

	if m := namedDatePattern.FindStringSubmatch(text); m != nil {
		return press.CollapseSpace(m[1])
	}
	if m := numericDatePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
