// Package cmd defines the CLI commands for the pib-scraper executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	appconfig "github.com/upsc-samachar/pib-scraper/internal/config"
	"github.com/upsc-samachar/pib-scraper/internal/logging"
	"github.com/upsc-samachar/pib-scraper/pkg/config"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd(bootLogger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pib-scraper",
		Short: "Scrapes English press releases from the Press Information Bureau.",
		Long: `pib-scraper discovers recent press-release identifiers from pib.gov.in,
fetches each release's detail page, extracts and classifies the content, and
publishes JSON artifacts for a static site to consume.`,
	}

	cobra.OnInitialize(func() {
		config.InitConfig(cfgFile, bootLogger)
	})

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ., /etc/pib-scraper, $HOME/.pib-scraper)")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

// loadConfig reads the fully-initialized Viper state into typed config and
// builds the run logger from it.
func loadConfig() (appconfig.Config, *zap.Logger, error) {
	cfg, err := appconfig.Load(viper.GetViper())
	if err != nil {
		return appconfig.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return appconfig.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

// Execute is the main entry point.
func Execute() {
	bootLogger, err := logging.New(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = bootLogger.Sync() }()

	if err := newRootCmd(bootLogger).Execute(); err != nil {
		bootLogger.Fatal("command execution failed", zap.Error(err))
	}
}
