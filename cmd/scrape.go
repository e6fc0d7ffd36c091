package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/upsc-samachar/pib-scraper/internal/classify"
	"github.com/upsc-samachar/pib-scraper/internal/clock/system"
	appconfig "github.com/upsc-samachar/pib-scraper/internal/config"
	"github.com/upsc-samachar/pib-scraper/internal/discovery"
	"github.com/upsc-samachar/pib-scraper/internal/extract"
	"github.com/upsc-samachar/pib-scraper/internal/fetch"
	"github.com/upsc-samachar/pib-scraper/internal/pipeline"
	"github.com/upsc-samachar/pib-scraper/internal/sink"
)

// newScrapeCmd creates the 'scrape' subcommand, which executes one complete
// scrape run and exits.
func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Runs one scrape of recent press releases",
		Long: `Discovers recent press-release identifiers, fetches and extracts each
release with bounded concurrency, classifies it by topic, and writes the
index and per-release JSON artifacts to the output directory.

A degraded source never fails the run; the index is written regardless.`,
		RunE: runScrapeCommand,
	}
}

func runScrapeCommand(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	idx, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("scrape run: %w", err)
	}
	logger.Info("scrape finished", zap.Int("total", idx.Total))
	return nil
}

func buildPipeline(cfg appconfig.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	fetcher, err := fetch.New(fetch.Config{
		UserAgent:   cfg.HTTP.UserAgent,
		Timeout:     cfg.HTTP.Timeout,
		MaxAttempts: cfg.HTTP.MaxAttempts,
		BackoffBase: cfg.HTTP.BackoffBase,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}

	resolver := discovery.NewResolver(
		buildStrategies(cfg, fetcher, logger),
		cfg.Scraper.Quota,
		cfg.Scraper.StrategyDelay,
		logger,
	)

	extractor := extract.New(extract.Config{
		DetailURLTemplate:  cfg.Source.DetailURL,
		DetailReferer:      cfg.Source.DetailReferer,
		BaseOrigin:         cfg.Source.BaseOrigin,
		TitleSelectors:     cfg.Extract.TitleSelectors,
		BodySelectors:      cfg.Extract.BodySelectors,
		DateFormats:        cfg.Extract.DateFormats,
		Ministries:         cfg.Source.Ministries,
		StructuralRun:      cfg.Extract.StructuralRun,
		FinalRun:           cfg.Extract.FinalRun,
		MinStructuralTitle: cfg.Extract.MinStructuralTitle,
		MinFinalTitle:      cfg.Extract.MinFinalTitle,
		MinHintTitle:       cfg.Extract.MinHintTitle,
		MinBodyChars:       cfg.Extract.MinBodyChars,
		SummaryLimit:       cfg.Extract.SummaryLimit,
		AttachmentExt:      cfg.Extract.AttachmentExt,
		AttachmentLabelMax: cfg.Extract.AttachmentLabelMax,
	}, fetcher, system.New(), logger)

	publisher, err := sink.NewFileSystem(cfg.Scraper.OutputDir, logger)
	if err != nil {
		return nil, fmt.Errorf("init sink: %w", err)
	}

	classifier := classify.New(cfg.Taxonomy, 3, classify.FallbackLabel)

	return pipeline.New(
		resolver,
		extractor,
		classifier,
		publisher,
		system.New(),
		pipeline.Config{
			Concurrency: cfg.Scraper.Concurrency,
			RunTimeout:  cfg.Scraper.RunTimeout,
			ItemDelay:   cfg.Scraper.ItemDelay,
		},
		logger,
	), nil
}

// buildStrategies orders discovery endpoints: feeds first, listings as
// fallback top-up.
func buildStrategies(cfg appconfig.Config, fetcher fetch.Fetcher, logger *zap.Logger) []discovery.Strategy {
	var strategies []discovery.Strategy
	for i, url := range cfg.Source.FeedURLs {
		strategies = append(strategies, discovery.NewFeedStrategy(
			fmt.Sprintf("feed_%d", i+1),
			url,
			cfg.Source.ListingReferer,
			fetcher,
			cfg.Extract.StructuralRun,
			logger,
		))
	}
	for i, url := range cfg.Source.ListingURLs {
		strategies = append(strategies, discovery.NewHTMLStrategy(
			fmt.Sprintf("listing_%d", i+1),
			url,
			cfg.Source.ListingReferer,
			fetcher,
			cfg.Source.Ministries,
			cfg.Extract.StructuralRun,
			logger,
		))
	}
	return strategies
}
