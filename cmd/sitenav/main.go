package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mchmarny/sitenav/pkg/config"
	"github.com/mchmarny/sitenav/pkg/logger"
)

const name = "sitenav"

var (
	version = "dev"     // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   name,
	Short: "Shared header and navigation menu for static websites",
	Long: `sitenav renders the shared page header, with the logo, hamburger
control and navigation menu, into the HTML pages of a static website.
Links are adjusted for pages living in section directories.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetDefaultLoggerWithLevel(name, version, logLevel)
		slog.Debug("starting", "command", cmd.Name(), "commit", commit, "date", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL or info)")

	rootCmd.AddCommand(renderCmd(), serveCmd(), menuCmd(), prefixCmd(), configCmd(), versionCmd())
}

// effectiveLogLevel applies the precedence --log-level, then log_level from
// the config file or SITENAV_LOG_LEVEL, then LOG_LEVEL.
func effectiveLogLevel(cfg *config.Config) string {
	return logger.ResolveLevel(logLevel, cfg.LogLevel)
}

// loadConfig reads and validates the config and reapplies the log level
// once the config is known.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger.SetDefaultLoggerWithLevel(name, version, effectiveLogLevel(cfg))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
