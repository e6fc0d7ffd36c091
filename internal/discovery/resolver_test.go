package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upsc-samachar/pib-scraper/internal/press"
)

// fakeStrategy yields a fixed stub list, honoring seen and limit the same
// way the real strategies do.
type fakeStrategy struct {
	name   string
	stubs  []press.Stub
	called bool
}

func (s *fakeStrategy) Name() string { return s.name }

func (s *fakeStrategy) Collect(_ context.Context, seen map[string]struct{}, limit int) ([]press.Stub, error) {
	s.called = true
	var out []press.Stub
	for _, stub := range s.stubs {
		if len(out) >= limit {
			break
		}
		if _, dup := seen[stub.ID]; dup {
			continue
		}
		out = append(out, stub)
	}
	return out, nil
}

func TestResolver_TopsUpAcrossStrategies(t *testing.T) {
	t.Parallel()

	feed := &fakeStrategy{name: "feed-1", stubs: []press.Stub{
		{ID: "100001", TitleHint: "feed title", MinistryHint: "Ministry of Power"},
		{ID: "100002"},
	}}
	listing := &fakeStrategy{name: "listing-1", stubs: []press.Stub{
		{ID: "100001", TitleHint: "listing title"}, // duplicate, hints must not win
		{ID: "100003"},
		{ID: "100004"},
	}}

	r := NewResolver([]Strategy{feed, listing}, 10, 0, zap.NewNop())
	stubs, err := r.Resolve(context.Background())
	require.NoError(t, err)

	require.Len(t, stubs, 4)
	require.True(t, feed.called)
	require.True(t, listing.called)

	// First-strategy-wins for hint values.
	require.Equal(t, "feed title", stubs[0].TitleHint)
	require.Equal(t, "Ministry of Power", stubs[0].MinistryHint)
}

func TestResolver_QuotaShortCircuitsLaterStrategies(t *testing.T) {
	t.Parallel()

	feed := &fakeStrategy{name: "feed-1", stubs: []press.Stub{
		{ID: "100001"}, {ID: "100002"}, {ID: "100003"},
	}}
	listing := &fakeStrategy{name: "listing-1", stubs: []press.Stub{{ID: "100004"}}}

	r := NewResolver([]Strategy{feed, listing}, 3, 0, zap.NewNop())
	stubs, err := r.Resolve(context.Background())
	require.NoError(t, err)

	require.Len(t, stubs, 3)
	require.False(t, listing.called)
}

// greedyStrategy ignores the limit it was asked for.
type greedyStrategy struct {
	name  string
	stubs []press.Stub
}

func (s *greedyStrategy) Name() string { return s.name }

func (s *greedyStrategy) Collect(context.Context, map[string]struct{}, int) ([]press.Stub, error) {
	return s.stubs, nil
}

func TestResolver_QuotaHoldsAgainstOverReturningStrategy(t *testing.T) {
	t.Parallel()

	greedy := &greedyStrategy{name: "feed-1", stubs: []press.Stub{
		{ID: "100001"}, {ID: "100002"}, {ID: "100003"}, {ID: "100004"}, {ID: "100005"},
	}}

	r := NewResolver([]Strategy{greedy}, 2, 0, zap.NewNop())
	stubs, err := r.Resolve(context.Background())
	require.NoError(t, err)

	require.Len(t, stubs, 2)
	require.Equal(t, "100001", stubs[0].ID)
	require.Equal(t, "100002", stubs[1].ID)
}

func TestResolver_ZeroYieldContinues(t *testing.T) {
	t.Parallel()

	empty := &fakeStrategy{name: "feed-1"}
	listing := &fakeStrategy{name: "listing-1", stubs: []press.Stub{{ID: "100001"}}}

	r := NewResolver([]Strategy{empty, listing}, 10, 0, zap.NewNop())
	stubs, err := r.Resolve(context.Background())
	require.NoError(t, err)

	require.Len(t, stubs, 1)
	require.True(t, empty.called)
	require.True(t, listing.called)
}

func TestResolver_AllStrategiesEmpty(t *testing.T) {
	t.Parallel()

	r := NewResolver([]Strategy{&fakeStrategy{name: "feed-1"}, &fakeStrategy{name: "listing-1"}}, 10, 0, zap.NewNop())
	stubs, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Empty(t, stubs)
}

func TestResolver_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The inter-strategy pause observes cancellation.
	feed := &fakeStrategy{name: "feed-1", stubs: []press.Stub{{ID: "100001"}}}
	listing := &fakeStrategy{name: "listing-1", stubs: []press.Stub{{ID: "100002"}}}
	r := NewResolver([]Strategy{feed, listing}, 10, time.Minute, zap.NewNop())

	stubs, err := r.Resolve(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, stubs, 1)
}
