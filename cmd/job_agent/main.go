// Package main provides the job tracking CLI: fetch job ads, extract
// structured fields with AI, assess candidate fit, and scan career pages.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-agent/internal/config"
)

var (
	settings *config.Settings

	configPath string
	verbose    bool
	modelFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "job",
	Short: "Track job postings and tailor applications",
	Long: "job fetches job ads from URLs or GitHub issues, extracts structured fields " +
		"with AI, stores them in PostgreSQL, and generates fit assessments and " +
		"application drafts. It can also scan configured career pages for keywords.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := zerolog.InfoLevel
		if verbose || settings.Verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

		if settings.ConfigPath != "" {
			log.Debug().Str("config", settings.ConfigPath).Msg("loaded config file")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to job.toml (default: standard search locations)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "AI model to use (overrides config)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
