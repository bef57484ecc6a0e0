// Package handlers wires the CLI commands to the application services.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mentionpulse/internal/config"
	"mentionpulse/internal/insights"
	"mentionpulse/internal/llm"
	"mentionpulse/internal/logger"
	"mentionpulse/internal/store"
)

var (
	cfgFile   string
	appConfig *config.Config
)

// NewRootCmd creates the base command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mentionpulse",
		Short: "Turn scraped brand mentions into topic clusters with sentiment and trends",
		Long: `MentionPulse ingests social and review mentions for your monitors and
distills them into a handful of readable topic clusters, each with a
sentiment breakdown, a trend label, and platform correlation data.

Examples:
  # Serve the insights API
  mentionpulse serve

  # Print insights for a user on the command line
  mentionpulse insights user-123 --range 30d

  # Pull new mentions from monitor feeds
  mentionpulse ingest --user user-123`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .mentionpulse.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewInsightsCmd())
	rootCmd.AddCommand(NewIngestCmd())
	rootCmd.AddCommand(NewSeedCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	appConfig = cfg
}

// openStore opens the SQLite store configured under app.data_dir.
func openStore() (*store.Store, error) {
	return store.NewStore(appConfig.App.DataDir)
}

// buildInsightsService assembles the insight engine on top of the store.
// When no Gemini key is configured the AI fallback is simply disabled.
func buildInsightsService(ctx context.Context, st *store.Store) *insights.Service {
	var generator insights.TextGenerator
	client, err := llm.NewClient(ctx, appConfig.Gemini.Model)
	if err != nil {
		logger.Warn("AI fallback disabled", "reason", err.Error())
	} else {
		generator = client
	}

	return insights.NewService(st, st, generator)
}
