// Package discovery resolves the set of recent press-release identifiers by
// trying feed and listing-page strategies in order.
package discovery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/upsc-samachar/pib-scraper/internal/metrics"
	"github.com/upsc-samachar/pib-scraper/internal/press"
)

// Strategy is one way of finding release identifiers. Implementations skip
// ids already present in seen, return at most limit new stubs, and treat
// their own fetch or parse failures as an empty yield.
type Strategy interface {
	Name() string
	Collect(ctx context.Context, seen map[string]struct{}, limit int) ([]press.Stub, error)
}

// Resolver runs strategies sequentially until the quota of unique ids is
// met or every strategy has been tried. Later strategies only top up what
// earlier ones found; hints from the first strategy that saw an id win.
type Resolver struct {
	strategies []Strategy
	quota      int
	delay      time.Duration
	logger     *zap.Logger
}

// NewResolver constructs a Resolver. delay is the politeness pause between
// consecutive strategies.
func NewResolver(strategies []Strategy, quota int, delay time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		strategies: strategies,
		quota:      quota,
		delay:      delay,
		logger:     logger,
	}
}

// Resolve returns the deduplicated, quota-bounded stub set. A run where
// every strategy fails yields an empty slice and a nil error; only context
// cancellation is reported as an error.
func (r *Resolver) Resolve(ctx context.Context) ([]press.Stub, error) {
	seen := make(map[string]struct{})
	stubs := make([]press.Stub, 0, r.quota)

	for i, strategy := range r.strategies {
		if len(stubs) >= r.quota {
			break
		}
		if i > 0 {
			if err := pause(ctx, r.delay); err != nil {
				return stubs, err
			}
		}

		found, err := strategy.Collect(ctx, seen, r.quota-len(stubs))
		if err != nil {
			return stubs, err
		}

		added := 0
		for _, stub := range found {
			// Strategies are asked for at most the shortfall; enforce the
			// quota here anyway so a misbehaving one cannot push past it.
			if len(stubs) >= r.quota {
				break
			}
			if _, dup := seen[stub.ID]; dup {
				continue
			}
			seen[stub.ID] = struct{}{}
			stubs = append(stubs, stub)
			added++
		}
		metrics.Discovered(strategy.Name(), added)
		r.logger.Info("discovery strategy finished",
			zap.String("strategy", strategy.Name()),
			zap.Int("new_ids", added),
			zap.Int("total", len(stubs)),
		)
	}

	return stubs, nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
