package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/readingtime/readingtime/internal/config"
	"github.com/readingtime/readingtime/internal/logging"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "readingtime",
		Short: "Estimate and maintain reading times for content entries",
		Long: `readingtime computes how long a piece of content takes to read from its
word count and the assets and entries embedded in it.

Usage:
  readingtime estimate <file> [flags]
  readingtime watch <entry.yaml> [flags]
  readingtime override <entry.yaml> <locale> [minutes]`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file (defaults apply when empty)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug | info | warn | error (overrides config)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: json | text (overrides config)")

	root.AddCommand(newEstimateCmd(a), newWatchCmd(a), newOverrideCmd(a))
	return root
}

// setup loads the configuration and installs the process logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Host.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Host.LogFormat = a.logFormat
	}
	a.cfg = cfg

	slog.SetDefault(logging.NewWriter(cmd.ErrOrStderr(), cfg.Host.LogLevel, cfg.Host.LogFormat))
	slog.Debug("readingtime: config loaded",
		"config", a.configPath,
		"words_per_minute", cfg.Installation.WordsPerMinute,
		"seconds_per_asset", cfg.Installation.SecondsPerAsset,
		"seconds_per_entry", cfg.Installation.SecondsPerEntry,
		"allow_override", cfg.Installation.AllowOverride,
	)
	return nil
}
