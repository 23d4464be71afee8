package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "vomadrid",
	Short: "Original-language showtimes for Madrid",
	Long: `vomadrid - original-language showtimes for Madrid

Serves the movie, cinema and screening listings kept in an Airtable base
as a JSON API, queries them from the command line, and writes offline
snapshots for static builds.

Without AIRTABLE_BASE_ID and AIRTABLE_API_TOKEN every listing is empty.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("vomadrid {{.Version}}\n")
}
