// Package fetch implements the resilient HTTP fetcher that every other
// pipeline stage performs its I/O through.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/upsc-samachar/pib-scraper/internal/metrics"
)

// ErrUnavailable reports that every attempt for a URL failed. Callers use it
// to distinguish an unreachable page from a page that legitimately returned
// an empty body.
var ErrUnavailable = errors.New("url unavailable after retries")

// Config controls transport and retry behavior.
type Config struct {
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
}

// Fetcher retrieves pages as charset-normalized text.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, referer string) (string, error)
}

// CollyFetcher implements Fetcher on a shared colly collector. Each request
// runs on a clone of the base collector so callbacks never leak between
// fetches.
type CollyFetcher struct {
	base   *colly.Collector
	cfg    Config
	logger *zap.Logger
}

// New constructs a CollyFetcher.
func New(cfg Config, logger *zap.Logger) (*CollyFetcher, error) {
	if cfg.MaxAttempts <= 0 {
		return nil, fmt.Errorf("max attempts must be > 0")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be > 0")
	}

	base := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.DetectCharset(),
		colly.IgnoreRobotsTxt(),
	)
	// Retries revisit the same URL on purpose.
	base.AllowURLRevisit = true
	base.SetRequestTimeout(cfg.Timeout)
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})

	return &CollyFetcher{
		base:   base,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Fetch retrieves rawURL, retrying failed attempts with linearly increasing
// backoff. Only a 200 response counts as success. Exhausting the attempt
// budget returns an error wrapping ErrUnavailable.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL, referer string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := f.fetchOnce(rawURL, referer)
		if err == nil {
			metrics.FetchAttempt("ok")
			return text, nil
		}
		lastErr = err
		f.logger.Warn("fetch attempt failed",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < f.cfg.MaxAttempts {
			metrics.FetchAttempt("retry")
			if err := sleep(ctx, time.Duration(attempt)*f.cfg.BackoffBase); err != nil {
				return "", err
			}
		}
	}
	metrics.FetchAttempt("exhausted")
	return "", fmt.Errorf("fetch %s: %w (last attempt: %v)", rawURL, ErrUnavailable, lastErr)
}

func (f *CollyFetcher) fetchOnce(rawURL, referer string) (string, error) {
	c := f.base.Clone()

	var (
		once sync.Once
		body string
		ferr error
	)
	settle := func(text string, err error) {
		once.Do(func() {
			body, ferr = text, err
		})
	}

	if referer != "" {
		c.OnRequest(func(r *colly.Request) {
			r.Headers.Set("Referer", referer)
		})
	}
	c.OnResponse(func(r *colly.Response) {
		if r.StatusCode != http.StatusOK {
			settle("", fmt.Errorf("unexpected status %d", r.StatusCode))
			return
		}
		settle(string(r.Body), nil)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			settle("", fmt.Errorf("status %d: %w", r.StatusCode, err))
			return
		}
		settle("", err)
	})

	if err := c.Visit(rawURL); err != nil {
		return "", fmt.Errorf("visit %s: %w", rawURL, err)
	}
	c.Wait()

	return body, ferr
}

// sleep waits for d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
