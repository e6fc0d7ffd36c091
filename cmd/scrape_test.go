package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appconfig "github.com/upsc-samachar/pib-scraper/internal/config"
	"github.com/upsc-samachar/pib-scraper/internal/press"
)

type stubFetcher struct{ pages map[string]string }

func (f *stubFetcher) Fetch(_ context.Context, rawURL, _ string) (string, error) {
	return f.pages[rawURL], nil
}

const feedURL = "https://pib.gov.in/RssMain.aspx?ModId=6"
const listingURL = "https://pib.gov.in/allRel.aspx"

// "योजनाएं" and "ग्रामीण" are both runs of seven Devanagari code points:
// long enough to mark a Hindi edition, but shorter than the final-stage
// threshold the extractor applies to whole records.
const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Press Releases</title>
<item>
  <title>Cabinet approves expanded rural housing support</title>
  <link>https://pib.gov.in/PressReleasePage.aspx?PRID=2098001</link>
</item>
<item>
  <title>New योजनाएं announced for rural families</title>
  <link>https://pib.gov.in/PressReleasePage.aspx?PRID=2098002</link>
</item>
</channel></rss>`

const listingFixture = `<html><body>
<a href="PressReleasePage.aspx?PRID=2098003">Centre releases annual statistical handbook for states</a>
<a href="PressReleasePage.aspx?PRID=2098004">Update on ग्रामीण development scheme rollout</a>
</body></html>`

func TestBuildStrategies_DiscoveryUsesStructuralExclusionRun(t *testing.T) {
	t.Parallel()

	cfg := appconfig.Config{}
	cfg.Source.FeedURLs = []string{feedURL}
	cfg.Source.ListingURLs = []string{listingURL}
	cfg.Source.ListingReferer = "https://pib.gov.in/"
	cfg.Extract.StructuralRun = 5
	cfg.Extract.FinalRun = 8

	fetcher := &stubFetcher{pages: map[string]string{
		feedURL:    feedFixture,
		listingURL: listingFixture,
	}}

	strategies := buildStrategies(cfg, fetcher, zap.NewNop())
	require.Len(t, strategies, 2)

	seen := make(map[string]struct{})
	var ids []string
	for _, strategy := range strategies {
		stubs, err := strategy.Collect(context.Background(), seen, 10)
		require.NoError(t, err)
		for _, stub := range stubs {
			seen[stub.ID] = struct{}{}
			ids = append(ids, stub.ID)
		}
	}

	// Hindi-run entries never leave discovery, so they can never reach the
	// degraded hint-only record path.
	require.Equal(t, []string{"2098001", "2098003"}, ids)
}

func TestBuildStrategies_HintsSurvive(t *testing.T) {
	t.Parallel()

	cfg := appconfig.Config{}
	cfg.Source.FeedURLs = []string{feedURL}
	cfg.Source.Ministries = press.DefaultMinistries
	cfg.Extract.StructuralRun = 5

	fetcher := &stubFetcher{pages: map[string]string{feedURL: feedFixture}}
	strategies := buildStrategies(cfg, fetcher, zap.NewNop())
	require.Len(t, strategies, 1)

	stubs, err := strategies[0].Collect(context.Background(), map[string]struct{}{}, 10)
	require.NoError(t, err)
	require.Len(t, stubs, 1)
	require.Equal(t, "Cabinet approves expanded rural housing support", stubs[0].TitleHint)
}
