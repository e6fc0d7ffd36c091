// Package pipeline orchestrates one complete scrape run: discovery, bounded
// parallel extraction, classification, and publishing.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/upsc-samachar/pib-scraper/internal/extract"
	"github.com/upsc-samachar/pib-scraper/internal/metrics"
	"github.com/upsc-samachar/pib-scraper/internal/press"
)

// Resolver yields the quota-bounded stub set for one run.
type Resolver interface {
	Resolve(ctx context.Context) ([]press.Stub, error)
}

// Extractor turns one stub into an extraction result.
type Extractor interface {
	Extract(ctx context.Context, stub press.Stub) extract.Result
}

// Classifier labels record text with topics.
type Classifier interface {
	Classify(text string) []string
}

// Publisher persists run artifacts.
type Publisher interface {
	WriteIndex(ctx context.Context, idx press.Index) error
	WriteFullText(ctx context.Context, ft press.FullText) error
}

// Config controls orchestration behavior.
type Config struct {
	// Concurrency caps the number of in-flight detail fetches.
	Concurrency int
	// RunTimeout bounds the whole run; zero disables the deadline.
	RunTimeout time.Duration
	// ItemDelay is the politeness pause each worker takes after finishing
	// a release.
	ItemDelay time.Duration
}

// Pipeline wires the run stages together.
type Pipeline struct {
	resolver   Resolver
	extractor  Extractor
	classifier Classifier
	publisher  Publisher
	clock      press.Clock
	cfg        Config
	logger     *zap.Logger
}

// New constructs a Pipeline.
func New(
	resolver Resolver,
	extractor Extractor,
	classifier Classifier,
	publisher Publisher,
	clock press.Clock,
	cfg Config,
	logger *zap.Logger,
) *Pipeline {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Pipeline{
		resolver:   resolver,
		extractor:  extractor,
		classifier: classifier,
		publisher:  publisher,
		clock:      clock,
		cfg:        cfg,
		logger:     logger,
	}
}

// Run executes one scrape. The index artifact is always written, even when
// discovery yields nothing; source failures degrade the output instead of
// failing the run. Only artifact write failures surface as errors.
func (p *Pipeline) Run(ctx context.Context) (press.Index, error) {
	logger := p.logger.With(zap.String("run_id", uuid.NewString()))
	start := p.clock.Now()

	if p.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.RunTimeout)
		defer cancel()
	}

	stubs, err := p.resolver.Resolve(ctx)
	if err != nil {
		logger.Warn("discovery interrupted", zap.Error(err))
	}
	if len(stubs) == 0 {
		logger.Warn("discovery yielded no identifiers; publishing empty index")
		return p.publish(ctx, logger, nil, start)
	}
	logger.Info("discovery complete", zap.Int("stubs", len(stubs)))

	records, accepted, dropped := p.extractAll(ctx, logger, stubs)
	logger.Info("extraction complete",
		zap.Int("accepted", accepted),
		zap.Int("dropped", dropped),
	)

	return p.publish(ctx, logger, records, start)
}

// extractAll fans stubs out to a bounded worker pool and collects results
// in completion order.
func (p *Pipeline) extractAll(ctx context.Context, logger *zap.Logger, stubs []press.Stub) ([]press.Record, int, int) {
	var (
		mu       sync.Mutex
		records  []press.Record
		accepted int
		dropped  int
	)

	g := new(errgroup.Group)
	g.SetLimit(p.cfg.Concurrency)

	for _, stub := range stubs {
		stub := stub
		g.Go(func() error {
			res := p.extractor.Extract(ctx, stub)
			if res.Record == nil {
				reason := res.Dropped
				if reason == "" {
					reason = "unknown"
				}
				metrics.RecordDropped(reason)
				logger.Info("release dropped",
					zap.String("prid", stub.ID),
					zap.String("reason", reason),
				)
				mu.Lock()
				dropped++
				mu.Unlock()
				return nil
			}

			rec := *res.Record
			rec.Topics = p.classifier.Classify(rec.Title + " " + rec.Summary)

			// The body side channel is written immediately, before the
			// index exists, so it survives even if the index write fails.
			if err := p.publisher.WriteFullText(ctx, press.FullText{ID: rec.ID, Text: res.FullText}); err != nil {
				logger.Warn("full text write failed", zap.String("prid", rec.ID), zap.Error(err))
			}

			metrics.RecordAccepted()
			mu.Lock()
			records = append(records, rec)
			accepted++
			mu.Unlock()

			if p.cfg.ItemDelay > 0 {
				timer := time.NewTimer(p.cfg.ItemDelay)
				defer timer.Stop()
				select {
				case <-ctx.Done():
				case <-timer.C:
				}
			}
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()

	return records, accepted, dropped
}

func (p *Pipeline) publish(ctx context.Context, logger *zap.Logger, records []press.Record, start time.Time) (press.Index, error) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PublishedAt.After(records[j].PublishedAt)
	})
	if records == nil {
		records = []press.Record{}
	}

	idx := press.Index{
		UpdatedAt: p.clock.Now(),
		Total:     len(records),
		Items:     records,
	}
	if err := p.publisher.WriteIndex(ctx, idx); err != nil {
		return idx, fmt.Errorf("write index: %w", err)
	}

	elapsed := p.clock.Now().Sub(start)
	metrics.ObserveRunDuration(elapsed)
	logger.Info("scrape run finished",
		zap.Int("total", idx.Total),
		zap.Duration("elapsed", elapsed),
	)
	return idx, nil
}
