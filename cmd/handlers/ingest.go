package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mentionpulse/internal/ingest"
	"mentionpulse/internal/logger"
)

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	var userID string

	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Pull new mentions from monitor feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}

			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			ctx := context.Background()
			monitors, err := st.Monitors(ctx, userID)
			if err != nil {
				return err
			}
			if len(monitors) == 0 {
				fmt.Printf("no monitors configured for user %s\n", userID)
				return nil
			}

			ingestor := ingest.NewIngestor(st, appConfig.IngestTimeout())
			total := 0
			for _, monitor := range monitors {
				if monitor.FeedURL == "" {
					continue
				}
				stored, err := ingestor.IngestMonitor(ctx, monitor)
				if err != nil {
					// One failing feed should not stop the rest.
					logger.Warn("monitor ingest failed", "monitor_id", monitor.ID, "error", err.Error())
					continue
				}
				total += stored
			}

			fmt.Printf("ingested %d mentions across %d monitors\n", total, len(monitors))
			return nil
		},
	}

	ingestCmd.Flags().StringVar(&userID, "user", "", "user whose monitors to ingest")

	return ingestCmd
}
