package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mentionpulse/internal/core"
	"mentionpulse/internal/email"
	"mentionpulse/internal/insights"
)

// NewInsightsCmd creates the insights command.
func NewInsightsCmd() *cobra.Command {
	var (
		rangeToken string
		asJSON     bool
		asEmail    bool
	)

	insightsCmd := &cobra.Command{
		Use:   "insights <user-id>",
		Short: "Compute topic insights for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 2*appConfig.GeminiTimeout())
			defer cancel()

			service := buildInsightsService(ctx, st)
			resp, err := service.Generate(ctx, insights.Request{UserID: args[0], Range: rangeToken})
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(resp)
			case asEmail:
				body, err := email.RenderDigest(appConfig.Email.Subject, resp, time.Now())
				if err != nil {
					return err
				}
				fmt.Println(body)
				return nil
			default:
				printInsights(resp)
				return nil
			}
		},
	}

	insightsCmd.Flags().StringVar(&rangeToken, "range", "30d", "time range: 7d, 30d, or 90d")
	insightsCmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON response")
	insightsCmd.Flags().BoolVar(&asEmail, "email", false, "print the HTML email digest body")

	return insightsCmd
}

func printInsights(resp *insights.Response) {
	fmt.Printf("Plan: %s  Results: %d  Platforms: %s\n\n",
		resp.Plan, resp.TotalResults, strings.Join(resp.PlatformsInData, ", "))

	printClusterList("Topics", resp.Topics)
	printClusterList("Single-platform topics", resp.SinglePlatformTopics)
	printClusterList("AI topics", resp.AITopics)

	if len(resp.PlatformCorrelation) > 0 {
		fmt.Println("Platform correlation:")
		for _, entry := range resp.PlatformCorrelation {
			fmt.Printf("  %s + %s: %d shared topics\n",
				entry.Platforms[0], entry.Platforms[1], entry.SharedTopics)
		}
	}
}

func printClusterList(header string, clusters []core.TopicCluster) {
	if len(clusters) == 0 {
		return
	}
	fmt.Printf("%s:\n", header)
	for _, topicCluster := range clusters {
		fmt.Printf("  [%s] %s - %d mentions (+%d/-%d/=%d) on %s\n",
			topicCluster.Trend, topicCluster.Name, len(topicCluster.Results),
			topicCluster.Sentiment.Positive, topicCluster.Sentiment.Negative,
			topicCluster.Sentiment.Neutral, strings.Join(topicCluster.Platforms, ", "))
	}
	fmt.Println()
}
