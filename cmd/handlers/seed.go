package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mentionpulse/internal/core"
	"mentionpulse/internal/ingest"
)

// NewSeedCmd creates the seed command, which loads a small demo dataset so
// the insights endpoint has something to chew on locally.
func NewSeedCmd() *cobra.Command {
	var (
		userID string
		tier   string
	)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo monitors and mentions for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			ctx := context.Background()
			if err := st.SetPlan(ctx, userID, core.PlanTier(tier)); err != nil {
				return err
			}

			monitor := core.Monitor{
				ID:        uuid.NewString(),
				UserID:    userID,
				Name:      "demo brand",
				CreatedAt: time.Now(),
			}
			if err := st.AddMonitor(ctx, monitor); err != nil {
				return err
			}

			now := time.Now()
			for i, seed := range demoMentions {
				result := core.RawResult{
					ID:        uuid.NewString(),
					MonitorID: monitor.ID,
					Title:     seed.title,
					Content:   seed.content,
					Platform:  seed.platform,
					Sentiment: ingest.Label(seed.title + " " + seed.content),
					SourceURL: fmt.Sprintf("https://example.com/mention/%d", i),
					CreatedAt: now.Add(-time.Duration(i*6) * time.Hour),
				}
				if err := st.SaveResult(ctx, result); err != nil {
					return err
				}
			}

			fmt.Printf("seeded %d mentions for user %s (%s tier)\n", len(demoMentions), userID, tier)
			return nil
		},
	}

	seedCmd.Flags().StringVar(&userID, "user", "demo-user", "user id to seed")
	seedCmd.Flags().StringVar(&tier, "tier", "pro", "plan tier to assign")

	return seedCmd
}

var demoMentions = []struct {
	title    string
	content  string
	platform core.Platform
}{
	{"Pricing change discussion", "The new pricing tiers feel steep for small teams", core.PlatformReddit},
	{"Pricing update thread", "Pricing went up again, considering alternatives", core.PlatformTwitter},
	{"New pricing is fair", "Honestly the pricing matches the value for pricing-sensitive users", core.PlatformHackerNews},
	{"Mobile crashes after update", "App crashes on launch since the latest update, crashes constantly", core.PlatformGooglePlay},
	{"Crashes on my phone too", "Same here, crashes whenever I open a project", core.PlatformAppStore},
	{"Crashes fixed?", "Latest beta seems to fix the crashes for me, great work", core.PlatformReddit},
	{"Love the new dashboard", "The dashboard redesign is excellent and fast", core.PlatformTwitter},
	{"Dashboard feedback", "New dashboard layout is good but the dashboard filters are hidden", core.PlatformTrustpilot},
	{"Support experience", "Support team resolved my billing issue quickly, impressive", core.PlatformTrustpilot},
	{"Billing confusion", "Got charged twice, billing support was helpful though", core.PlatformReddit},
}
