package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFetcher serves canned bodies keyed by URL.
type fakeFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL, _ string) (string, error) {
	f.calls = append(f.calls, rawURL)
	if err, ok := f.errs[rawURL]; ok {
		return "", err
	}
	return f.pages[rawURL], nil
}

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>PIB Press Releases</title>
    <item>
      <title>Cabinet approves new railway corridor bill</title>
      <link>https://pib.gov.in/PressReleasePage.aspx?PRID=2098001</link>
      <pubDate>Mon, 03 Mar 2025 10:00:00 +0530</pubDate>
    </item>
    <item>
      <title>मंत्रिमंडल ने रेलवे गलियारे को मंजूरी दी</title>
      <link>https://pib.gov.in/PressReleasePage.aspx?PRID=2098002</link>
    </item>
    <item>
      <title>No identifier in this link</title>
      <link>https://pib.gov.in/allRel.aspx</link>
    </item>
    <item>
      <title>Cabinet approves new railway corridor bill (duplicate)</title>
      <link>https://pib.gov.in/PressReleasePage.aspx?PRID=2098001</link>
    </item>
    <item>
      <title>India signs bilateral trade agreement</title>
      <link>https://pib.gov.in/PressReleasePage.aspx?PRID=2098003</link>
    </item>
  </channel>
</rss>`

func TestFeedStrategy_Collect(t *testing.T) {
	t.Parallel()

	const feedURL = "https://pib.gov.in/RssMain.aspx?ModId=6"
	fetcher := &fakeFetcher{pages: map[string]string{feedURL: feedFixture}}
	s := NewFeedStrategy("feed-1", feedURL, "", fetcher, 5, zap.NewNop())

	stubs, err := s.Collect(context.Background(), map[string]struct{}{}, 10)
	require.NoError(t, err)
	require.Len(t, stubs, 2)

	require.Equal(t, "2098001", stubs[0].ID)
	require.Equal(t, "Cabinet approves new railway corridor bill", stubs[0].TitleHint)
	require.Equal(t, "3 March 2025", stubs[0].DateHint)
	require.Equal(t, "2098003", stubs[1].ID)
}

func TestFeedStrategy_LeadingNoiseTolerated(t *testing.T) {
	t.Parallel()

	const feedURL = "https://pib.gov.in/RssMain.aspx?ModId=6"
	fetcher := &fakeFetcher{pages: map[string]string{feedURL: "\n\ufeffserver warming up...\n" + feedFixture}}
	s := NewFeedStrategy("feed-1", feedURL, "", fetcher, 5, zap.NewNop())

	stubs, err := s.Collect(context.Background(), map[string]struct{}{}, 10)
	require.NoError(t, err)
	require.Len(t, stubs, 2)
}

func TestFeedStrategy_LimitStopsCollection(t *testing.T) {
	t.Parallel()

	const feedURL = "https://pib.gov.in/RssMain.aspx?ModId=6"
	fetcher := &fakeFetcher{pages: map[string]string{feedURL: feedFixture}}
	s := NewFeedStrategy("feed-1", feedURL, "", fetcher, 5, zap.NewNop())

	stubs, err := s.Collect(context.Background(), map[string]struct{}{}, 1)
	require.NoError(t, err)
	require.Len(t, stubs, 1)
	require.Equal(t, "2098001", stubs[0].ID)
}

func TestFeedStrategy_SkipsSeenIDs(t *testing.T) {
	t.Parallel()

	const feedURL = "https://pib.gov.in/RssMain.aspx?ModId=6"
	fetcher := &fakeFetcher{pages: map[string]string{feedURL: feedFixture}}
	s := NewFeedStrategy("feed-1", feedURL, "", fetcher, 5, zap.NewNop())

	seen := map[string]struct{}{"2098001": {}}
	stubs, err := s.Collect(context.Background(), seen, 10)
	require.NoError(t, err)
	require.Len(t, stubs, 1)
	require.Equal(t, "2098003", stubs[0].ID)
}

func TestFeedStrategy_SoftFailures(t *testing.T) {
	t.Parallel()

	const feedURL = "https://pib.gov.in/RssMain.aspx?ModId=6"

	t.Run("fetch failure", func(t *testing.T) {
		t.Parallel()
		fetcher := &fakeFetcher{errs: map[string]error{feedURL: errors.New("boom")}}
		s := NewFeedStrategy("feed-1", feedURL, "", fetcher, 5, zap.NewNop())
		stubs, err := s.Collect(context.Background(), map[string]struct{}{}, 10)
		require.NoError(t, err)
		require.Empty(t, stubs)
	})

	t.Run("malformed xml", func(t *testing.T) {
		t.Parallel()
		fetcher := &fakeFetcher{pages: map[string]string{feedURL: "<rss><channel><item>"}}
		s := NewFeedStrategy("feed-1", feedURL, "", fetcher, 5, zap.NewNop())
		stubs, err := s.Collect(context.Background(), map[string]struct{}{}, 10)
		require.NoError(t, err)
		require.Empty(t, stubs)
	})
}

func TestTrimLeadingNoise(t *testing.T) {
	t.Parallel()
	require.Equal(t, "<rss/>", trimLeadingNoise("junk before <rss/>"))
	require.Equal(t, "<rss/>", trimLeadingNoise("<rss/>"))
	require.Equal(t, "no markup at all", trimLeadingNoise("no markup at all"))
}
