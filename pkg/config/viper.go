// Package config initializes the application's configuration. It uses the
// Viper library to read settings from a config file and environment
// variables, with defaults tuned for pib.gov.in.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/upsc-samachar/pib-scraper/internal/classify"
	"github.com/upsc-samachar/pib-scraper/internal/extract"
	"github.com/upsc-samachar/pib-scraper/internal/press"
)

// InitConfig initializes the application's configuration using Viper.
// Defaults cover a complete scrape of the English press-release stream, so
// the binary runs usefully with no config file at all. Call once at startup.
func InitConfig(cfgFile string, logger *zap.Logger) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/pib-scraper/")
		viper.AddConfigPath("$HOME/.pib-scraper")
	}

	viper.SetDefault("logging.development", false)

	viper.SetDefault("http.user_agent",
		"Mozilla/5.0 (compatible; PIBScraper/1.0; +https://github.com/upsc-samachar/pib-scraper)")
	viper.SetDefault("http.timeout", "15s")
	viper.SetDefault("http.max_attempts", 3)
	viper.SetDefault("http.backoff_base", "1500ms")

	viper.SetDefault("scraper.quota", 60)
	viper.SetDefault("scraper.concurrency", 6)
	viper.SetDefault("scraper.strategy_delay", "300ms")
	viper.SetDefault("scraper.item_delay", "100ms")
	viper.SetDefault("scraper.run_timeout", "10m")
	viper.SetDefault("scraper.output_dir", "public/data")

	viper.SetDefault("source.feed_urls", []string{
		"https://pib.gov.in/RssMain.aspx?ModId=6&Lang=1&Regid=3",
	})
	viper.SetDefault("source.listing_urls", []string{
		"https://pib.gov.in/allRel.aspx",
		"https://pib.gov.in/PMContents/PMContents.aspx?type=release",
	})
	viper.SetDefault("source.listing_referer", "https://pib.gov.in/")
	viper.SetDefault("source.detail_url", "https://pib.gov.in/PressReleasePage.aspx?PRID=%s")
	viper.SetDefault("source.detail_referer", "https://www.pib.gov.in/allRel.aspx")
	viper.SetDefault("source.base_origin", "https://pib.gov.in")
	viper.SetDefault("source.ministries", press.DefaultMinistries)

	viper.SetDefault("extract.title_selectors", extract.DefaultTitleSelectors)
	viper.SetDefault("extract.body_selectors", extract.DefaultBodySelectors)
	viper.SetDefault("extract.date_formats", extract.DefaultDateFormats)
	viper.SetDefault("extract.structural_run", 5)
	viper.SetDefault("extract.final_run", 8)
	viper.SetDefault("extract.min_structural_title", 15)
	viper.SetDefault("extract.min_final_title", 8)
	viper.SetDefault("extract.min_hint_title", 10)
	viper.SetDefault("extract.min_body_chars", 100)
	viper.SetDefault("extract.summary_limit", 500)
	viper.SetDefault("extract.attachment_ext", ".pdf")
	viper.SetDefault("extract.attachment_label_max", 80)

	viper.SetDefault("classifier.topics", classify.TopicLabels())
	viper.SetDefault("classifier.keywords", defaultKeywords())

	viper.SetDefault("server.port", 8089)

	viper.SetEnvPrefix("PIB") // e.g. PIB_SCRAPER_QUOTA=100
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.Info("no config file found; using defaults and environment variables")
		} else {
			logger.Error("error reading config file", zap.Error(err))
		}
	} else {
		logger.Info("using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}

// defaultKeywords flattens the built-in taxonomy into the map shape Viper
// round-trips. Keys are lowercased to survive Viper's key normalization.
func defaultKeywords() map[string][]string {
	out := make(map[string][]string, len(classify.DefaultTaxonomy))
	for _, topic := range classify.DefaultTaxonomy {
		out[strings.ToLower(topic.Label)] = topic.Keywords
	}
	return out
}
