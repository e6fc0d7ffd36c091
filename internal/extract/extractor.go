// Package extract turns a discovered identifier into a finalized press
// release Record by fetching its detail page and applying ordered fallback
// chains per field.
package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/upsc-samachar/pib-scraper/internal/fetch"
	"github.com/upsc-samachar/pib-scraper/internal/press"
)

// Drop reasons surfaced in logs and metrics.
const (
	DropUnreachable      = "unreachable"
	DropNoTitle          = "no_title"
	DropExcludedLanguage = "excluded_language"
)

// DefaultTitleSelectors is the structural title chain, most specific first.
var DefaultTitleSelectors = []string{
	"div.innner-page-main-about-us-head-right h2",
	"div.innner-page-main-about-us-head-right h3",
	"div#ContentDiv h2",
	"div#ContentDiv h3",
	"h2.page-title",
	"h1",
	"h2",
}

// DefaultBodySelectors is the body container chain, most specific first.
var DefaultBodySelectors = []string{
	"div#ContentDiv",
	"div.innner-page-main-about-us-head-right",
	"div.content-area",
	"div#content",
	"main",
}

var blankLinesPattern = regexp.MustCompile(`\n{3,}`)

// Config carries every extraction threshold and fallback list.
type Config struct {
	DetailURLTemplate string // printf template taking the release id
	DetailReferer     string
	BaseOrigin        string // origin for resolving relative attachment links

	TitleSelectors []string
	BodySelectors  []string
	DateFormats    []string
	Ministries     []string

	// Devanagari run lengths: StructuralRun rejects individual selector
	// candidates, FinalRun rejects the whole record.
	StructuralRun int
	FinalRun      int

	MinStructuralTitle int // selector candidates shorter than this are skipped
	MinFinalTitle      int // accepted titles shorter than this drop the record
	MinHintTitle       int // hint length needed for the degraded-record path
	MinBodyChars       int
	SummaryLimit       int
	AttachmentExt      string
	AttachmentLabelMax int
}

// DefaultConfig returns the extraction settings for pib.gov.in.
func DefaultConfig() Config {
	return Config{
		DetailURLTemplate:  "https://pib.gov.in/PressReleasePage.aspx?PRID=%s",
		DetailReferer:      "https://www.pib.gov.in/allRel.aspx",
		BaseOrigin:         "https://pib.gov.in",
		TitleSelectors:     DefaultTitleSelectors,
		BodySelectors:      DefaultBodySelectors,
		DateFormats:        DefaultDateFormats,
		Ministries:         press.DefaultMinistries,
		StructuralRun:      5,
		FinalRun:           8,
		MinStructuralTitle: 15,
		MinFinalTitle:      8,
		MinHintTitle:       10,
		MinBodyChars:       100,
		SummaryLimit:       500,
		AttachmentExt:      ".pdf",
		AttachmentLabelMax: 80,
	}
}

// Result is the outcome of one detail extraction. Record is nil when the id
// was dropped, in which case Dropped names the reason.
type Result struct {
	Record   *press.Record
	FullText string
	Dropped  string
}

// Extractor fetches and parses detail pages.
type Extractor struct {
	cfg     Config
	fetcher fetch.Fetcher
	clock   press.Clock
	logger  *zap.Logger
}

// New constructs an Extractor.
func New(cfg Config, fetcher fetch.Fetcher, clock press.Clock, logger *zap.Logger) *Extractor {
	return &Extractor{
		cfg:     cfg,
		fetcher: fetcher,
		clock:   clock,
		logger:  logger,
	}
}

// Extract fetches the detail page for stub's id and builds a Record. When
// the page is unreachable it degrades to a hint-only Record if the stub
// carries a usable title, and drops the id otherwise.
func (e *Extractor) Extract(ctx context.Context, stub press.Stub) Result {
	sourceURL := fmt.Sprintf(e.cfg.DetailURLTemplate, stub.ID)

	page, err := e.fetcher.Fetch(ctx, sourceURL, e.cfg.DetailReferer)
	if err != nil {
		return e.degrade(stub, sourceURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		e.logger.Warn("detail page parse failed", zap.String("prid", stub.ID), zap.Error(err))
		return e.degrade(stub, sourceURL, err)
	}

	title, reason := e.title(doc, stub)
	if reason != "" {
		return Result{Dropped: reason}
	}

	pageText := doc.Text()
	rawDate := stub.DateHint
	if rawDate == "" {
		rawDate = findDateText(pageText)
	}
	published := e.clock.Now()
	if t, ok := parseDate(rawDate, e.cfg.DateFormats); ok {
		published = t
	}

	body := e.body(doc)

	rec := &press.Record{
		ID:          stub.ID,
		Title:       title,
		Ministry:    e.ministry(pageText, stub),
		Summary:     press.TruncateRunes(press.CollapseSpace(body), e.cfg.SummaryLimit),
		SourceURL:   sourceURL,
		PublishedAt: published,
		RawDateText: rawDate,
		Attachments: e.attachments(doc),
		Topics:      nil, // filled by the classifier downstream
	}
	return Result{Record: rec, FullText: body}
}

// degrade builds a Record purely from discovery hints, or drops the id when
// the hints are unusable.
func (e *Extractor) degrade(stub press.Stub, sourceURL string, cause error) Result {
	hint := press.CollapseSpace(stub.TitleHint)
	if utf8.RuneCountInString(hint) < e.cfg.MinHintTitle {
		e.logger.Info("dropping unreachable release",
			zap.String("prid", stub.ID),
			zap.Error(cause),
		)
		return Result{Dropped: DropUnreachable}
	}
	if press.HasDevanagariRun(hint, e.cfg.FinalRun) {
		return Result{Dropped: DropExcludedLanguage}
	}

	published := e.clock.Now()
	if t, ok := parseDate(stub.DateHint, e.cfg.DateFormats); ok {
		published = t
	}

	e.logger.Warn("detail fetch failed; using stub hints",
		zap.String("prid", stub.ID),
		zap.Error(cause),
	)
	return Result{
		Record: &press.Record{
			ID:          stub.ID,
			Title:       hint,
			Ministry:    stub.MinistryHint,
			SourceURL:   sourceURL,
			PublishedAt: published,
			RawDateText: stub.DateHint,
			Attachments: nil,
		},
		FullText: "",
	}
}

// title walks the fallback chain: structural selectors, page metadata, then
// the stub hint. It returns a non-empty drop reason on rejection.
func (e *Extractor) title(doc *goquery.Document, stub press.Stub) (string, string) {
	var title string
	for _, sel := range e.cfg.TitleSelectors {
		t := press.CollapseSpace(doc.Find(sel).First().Text())
		if utf8.RuneCountInString(t) < e.cfg.MinStructuralTitle {
			continue
		}
		if press.HasDevanagariRun(t, e.cfg.StructuralRun) {
			continue
		}
		title = t
		break
	}

	if title == "" {
		title = metaTitle(doc)
	}
	if title == "" {
		title = press.CollapseSpace(stub.TitleHint)
	}

	if utf8.RuneCountInString(title) < e.cfg.MinFinalTitle {
		return "", DropNoTitle
	}
	// A short Devanagari fragment inside an English title is tolerated;
	// a title dominated by one is not.
	if press.HasDevanagariRun(title, e.cfg.FinalRun) {
		return "", DropExcludedLanguage
	}
	return title, ""
}

func metaTitle(doc *goquery.Document) string {
	for _, sel := range []string{`meta[property="og:title"]`, `meta[name="title"]`} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if t := press.CollapseSpace(content); t != "" {
				return t
			}
		}
	}
	return ""
}

// ministry prefers the discovery hint, then scans the whole page for the
// first organization in priority order.
func (e *Extractor) ministry(pageText string, stub press.Stub) string {
	if stub.MinistryHint != "" {
		return stub.MinistryHint
	}
	for _, name := range e.cfg.Ministries {
		if strings.Contains(pageText, name) {
			return name
		}
	}
	return ""
}

// body tries each container selector and accepts the first whose stripped
// text clears the minimum length.
func (e *Extractor) body(doc *goquery.Document) string {
	for _, sel := range e.cfg.BodySelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		text := containerText(container)
		if len(text) > e.cfg.MinBodyChars {
			return text
		}
	}
	return ""
}

// containerText extracts newline-joined text with scripts and styles
// removed and runs of blank lines collapsed.
func containerText(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find("script, style, noscript").Remove()

	var lines []string
	for _, node := range clone.Nodes {
		collectTextLines(node, &lines)
	}
	text := strings.Join(lines, "\n")
	return strings.TrimSpace(blankLinesPattern.ReplaceAllString(text, "\n\n"))
}

func collectTextLines(n *html.Node, lines *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*lines = append(*lines, press.CollapseSpace(t))
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTextLines(c, lines)
	}
}

// attachments collects every anchor pointing at the attachment extension,
// resolving relative targets against the base origin.
func (e *Extractor) attachments(doc *goquery.Document) []press.Attachment {
	var out []press.Attachment
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !e.isAttachment(href) {
			return
		}
		if !strings.HasPrefix(strings.ToLower(href), "http") {
			href = e.cfg.BaseOrigin + href
		}
		label := press.CollapseSpace(a.Text())
		if label == "" {
			label = "PDF"
		}
		out = append(out, press.Attachment{
			URL:   href,
			Label: press.TruncateRunes(label, e.cfg.AttachmentLabelMax),
		})
	})
	return out
}

func (e *Extractor) isAttachment(href string) bool {
	target := strings.ToLower(href)
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	return strings.HasSuffix(target, e.cfg.AttachmentExt)
}
