// Package config loads and validates scraper configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/upsc-samachar/pib-scraper/internal/classify"
)

// Config captures every configuration knob for a scrape run. All values
// originate from Viper so they can come from a file, env vars, or defaults.
type Config struct {
	Logging  LoggingConfig
	HTTP     HTTPConfig
	Scraper  ScraperConfig
	Source   SourceConfig
	Extract  ExtractConfig
	Server   ServerConfig
	Taxonomy []classify.Topic
}

// LoggingConfig selects the logger profile.
type LoggingConfig struct {
	Development bool
}

// HTTPConfig controls the resilient fetcher.
type HTTPConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
}

// ScraperConfig governs discovery and orchestration.
type ScraperConfig struct {
	Quota         int
	Concurrency   int
	StrategyDelay time.Duration
	ItemDelay     time.Duration
	RunTimeout    time.Duration
	OutputDir     string
}

// SourceConfig names the PIB endpoints and scan lists.
type SourceConfig struct {
	FeedURLs       []string
	ListingURLs    []string
	ListingReferer string
	DetailURL      string
	DetailReferer  string
	BaseOrigin     string
	Ministries     []string
}

// ExtractConfig carries field-extraction thresholds and fallback lists.
type ExtractConfig struct {
	TitleSelectors     []string
	BodySelectors      []string
	DateFormats        []string
	StructuralRun      int
	FinalRun           int
	MinStructuralTitle int
	MinFinalTitle      int
	MinHintTitle       int
	MinBodyChars       int
	SummaryLimit       int
	AttachmentExt      string
	AttachmentLabelMax int
}

// ServerConfig controls the preview server.
type ServerConfig struct {
	Port int
}

// Load constructs a Config by reading from Viper.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Logging: LoggingConfig{
			Development: v.GetBool("logging.development"),
		},
		HTTP: HTTPConfig{
			UserAgent:   v.GetString("http.user_agent"),
			Timeout:     v.GetDuration("http.timeout"),
			MaxAttempts: v.GetInt("http.max_attempts"),
			BackoffBase: v.GetDuration("http.backoff_base"),
		},
		Scraper: ScraperConfig{
			Quota:         v.GetInt("scraper.quota"),
			Concurrency:   v.GetInt("scraper.concurrency"),
			StrategyDelay: v.GetDuration("scraper.strategy_delay"),
			ItemDelay:     v.GetDuration("scraper.item_delay"),
			RunTimeout:    v.GetDuration("scraper.run_timeout"),
			OutputDir:     v.GetString("scraper.output_dir"),
		},
		Source: SourceConfig{
			FeedURLs:       v.GetStringSlice("source.feed_urls"),
			ListingURLs:    v.GetStringSlice("source.listing_urls"),
			ListingReferer: v.GetString("source.listing_referer"),
			DetailURL:      v.GetString("source.detail_url"),
			DetailReferer:  v.GetString("source.detail_referer"),
			BaseOrigin:     v.GetString("source.base_origin"),
			Ministries:     v.GetStringSlice("source.ministries"),
		},
		Extract: ExtractConfig{
			TitleSelectors:     v.GetStringSlice("extract.title_selectors"),
			BodySelectors:      v.GetStringSlice("extract.body_selectors"),
			DateFormats:        v.GetStringSlice("extract.date_formats"),
			StructuralRun:      v.GetInt("extract.structural_run"),
			FinalRun:           v.GetInt("extract.final_run"),
			MinStructuralTitle: v.GetInt("extract.min_structural_title"),
			MinFinalTitle:      v.GetInt("extract.min_final_title"),
			MinHintTitle:       v.GetInt("extract.min_hint_title"),
			MinBodyChars:       v.GetInt("extract.min_body_chars"),
			SummaryLimit:       v.GetInt("extract.summary_limit"),
			AttachmentExt:      v.GetString("extract.attachment_ext"),
			AttachmentLabelMax: v.GetInt("extract.attachment_label_max"),
		},
		Server: ServerConfig{
			Port: v.GetInt("server.port"),
		},
		Taxonomy: loadTaxonomy(v),
	}
	return cfg, cfg.Validate()
}

// loadTaxonomy rebuilds the ordered taxonomy from the topic-order list and
// the per-topic keyword map. Viper lowercases map keys, so lookups go
// through a normalized key.
func loadTaxonomy(v *viper.Viper) []classify.Topic {
	labels := v.GetStringSlice("classifier.topics")
	if len(labels) == 0 {
		return classify.DefaultTaxonomy
	}
	keywords := v.GetStringMapStringSlice("classifier.keywords")

	taxonomy := make([]classify.Topic, 0, len(labels))
	for _, label := range labels {
		taxonomy = append(taxonomy, classify.Topic{
			Label:    label,
			Keywords: keywords[strings.ToLower(label)],
		})
	}
	return taxonomy
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent must be set")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be > 0")
	}
	if c.HTTP.MaxAttempts <= 0 {
		return fmt.Errorf("http.max_attempts must be > 0")
	}
	if c.Scraper.Quota <= 0 {
		return fmt.Errorf("scraper.quota must be > 0")
	}
	if c.Scraper.Concurrency <= 0 {
		return fmt.Errorf("scraper.concurrency must be > 0")
	}
	if c.Scraper.OutputDir == "" {
		return fmt.Errorf("scraper.output_dir must be set")
	}
	if len(c.Source.FeedURLs) == 0 && len(c.Source.ListingURLs) == 0 {
		return fmt.Errorf("at least one discovery endpoint must be configured")
	}
	if c.Source.DetailURL == "" {
		return fmt.Errorf("source.detail_url must be set")
	}
	if !strings.Contains(c.Source.DetailURL, "%s") {
		return fmt.Errorf("source.detail_url must contain a %%s placeholder for the release id")
	}
	if c.Extract.MinFinalTitle <= 0 {
		return fmt.Errorf("extract.min_final_title must be > 0")
	}
	if c.Extract.SummaryLimit <= 0 {
		return fmt.Errorf("extract.summary_limit must be > 0")
	}
	if len(c.Taxonomy) == 0 {
		return fmt.Errorf("classifier taxonomy must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port number")
	}
	return nil
}
