package cluster

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"mentionpulse/internal/core"
	"mentionpulse/internal/policy"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// mention builds a result whose primary keyword is the first word of the
// title (ties in single-text extraction resolve to first encounter).
func mention(title string, platform core.Platform, sentiment core.Sentiment, age time.Duration) core.RawResult {
	return core.RawResult{
		ID:        uuid.NewString(),
		MonitorID: "mon-1",
		Title:     title,
		Platform:  platform,
		Sentiment: sentiment,
		SourceURL: "https://example.com",
		CreatedAt: testNow.Add(-age),
	}
}

func proThreshold() policy.Threshold {
	return policy.Resolve(core.TierPro)
}

func TestCrossPlatform_RequiresPlatformSpan(t *testing.T) {
	// Five results sharing a primary keyword, all on one platform.
	var results []core.RawResult
	for i := 0; i < 5; i++ {
		results = append(results, mention("pricing complaint thread", core.PlatformReddit, core.SentimentNegative, time.Hour))
	}

	clusters := CrossPlatform(results, proThreshold(), testNow)
	if len(clusters) != 0 {
		t.Errorf("Single-platform group should not pass the cross-platform pass, got %d clusters", len(clusters))
	}

	single := SinglePlatform(results, proThreshold(), testNow)
	if len(single) != 1 {
		t.Fatalf("Expected one cluster from the single-platform pass, got %d", len(single))
	}
	if len(single[0].Results) != 5 {
		t.Errorf("Expected 5 members, got %d", len(single[0].Results))
	}
}

func TestCrossPlatform_AdmitsSpanningGroup(t *testing.T) {
	results := []core.RawResult{
		mention("crashes after update", core.PlatformReddit, core.SentimentNegative, time.Hour),
		mention("crashes on startup", core.PlatformTwitter, core.SentimentNegative, 2*time.Hour),
		mention("crashes constantly now", core.PlatformGooglePlay, core.SentimentNegative, 3*time.Hour),
	}

	clusters := CrossPlatform(results, proThreshold(), testNow)
	if len(clusters) != 1 {
		t.Fatalf("Expected one cluster, got %d", len(clusters))
	}

	topicCluster := clusters[0]
	if len(topicCluster.Platforms) < 2 {
		t.Errorf("Cross-platform cluster must span at least 2 platforms, got %v", topicCluster.Platforms)
	}
	if topicCluster.Provenance != core.ProvenanceLexical {
		t.Errorf("Expected lexical provenance, got %s", topicCluster.Provenance)
	}
	if topicCluster.Name == "" {
		t.Error("Cluster should have a display name")
	}
}

func TestLexicalPass_MinResultsPerTopic(t *testing.T) {
	// Two results sharing a keyword across two platforms; pro requires 3.
	results := []core.RawResult{
		mention("billing dispute", core.PlatformReddit, core.SentimentNegative, time.Hour),
		mention("billing confusion", core.PlatformTwitter, core.SentimentNeutral, time.Hour),
	}

	if clusters := CrossPlatform(results, proThreshold(), testNow); len(clusters) != 0 {
		t.Errorf("Group below MinResultsPerTopic should be rejected, got %d clusters", len(clusters))
	}

	enterprise := policy.Resolve(core.TierEnterprise)
	if clusters := CrossPlatform(results, enterprise, testNow); len(clusters) != 1 {
		t.Errorf("Enterprise threshold of 2 should admit the group, got %d clusters", len(clusters))
	}
}

func TestLexicalPass_SkipsResultsWithoutKeywords(t *testing.T) {
	results := []core.RawResult{
		mention("a of the", core.PlatformReddit, "", time.Hour),
		mention("", core.PlatformTwitter, "", time.Hour),
		mention("ok", core.PlatformReddit, "", time.Hour),
	}

	if clusters := SinglePlatform(results, policy.Resolve(core.TierFree), testNow); len(clusters) != 0 {
		t.Errorf("Results yielding no keywords should be skipped, got %d clusters", len(clusters))
	}
}

func TestLexicalPass_SentimentSumsToMemberCount(t *testing.T) {
	results := []core.RawResult{
		mention("dashboard feedback positive", core.PlatformReddit, core.SentimentPositive, time.Hour),
		mention("dashboard looks broken", core.PlatformTwitter, core.SentimentNegative, time.Hour),
		mention("dashboard release notes", core.PlatformReddit, "", time.Hour),
		mention("dashboard question", core.PlatformTwitter, "weird-label", time.Hour),
	}

	clusters := CrossPlatform(results, proThreshold(), testNow)
	if len(clusters) != 1 {
		t.Fatalf("Expected one cluster, got %d", len(clusters))
	}

	topicCluster := clusters[0]
	if topicCluster.Sentiment.Total() != len(topicCluster.Results) {
		t.Errorf("Sentiment counters must sum to member count: %+v vs %d members",
			topicCluster.Sentiment, len(topicCluster.Results))
	}
	if topicCluster.Sentiment.Neutral != 2 {
		t.Errorf("Missing and unrecognized labels should count as neutral, got %d", topicCluster.Sentiment.Neutral)
	}
}

func TestLexicalPass_OrderedByMemberCountCappedAtTen(t *testing.T) {
	var results []core.RawResult
	// 14 keyword groups of decreasing size (sizes 16..3), alternating platforms.
	for group := 0; group < 14; group++ {
		size := 16 - group
		for i := 0; i < size; i++ {
			platform := core.PlatformReddit
			if i%2 == 1 {
				platform = core.PlatformTwitter
			}
			title := fmt.Sprintf("topic%02d discussion entry", group)
			results = append(results, mention(title, platform, "", time.Hour))
		}
	}

	clusters := CrossPlatform(results, proThreshold(), testNow)
	if len(clusters) != MaxClusters {
		t.Fatalf("Expected %d clusters, got %d", MaxClusters, len(clusters))
	}

	for i := 1; i < len(clusters); i++ {
		if len(clusters[i].Results) > len(clusters[i-1].Results) {
			t.Errorf("Clusters not ordered by member count descending at %d", i)
		}
	}
	if len(clusters[0].Results) != 16 {
		t.Errorf("Largest cluster should come first, got %d members", len(clusters[0].Results))
	}
}

func TestLexicalPass_TieBreakByFirstEncounteredKeyword(t *testing.T) {
	results := []core.RawResult{
		mention("zephyr report one", core.PlatformReddit, "", time.Hour),
		mention("anchor report one", core.PlatformReddit, "", time.Hour),
		mention("zephyr report two", core.PlatformTwitter, "", time.Hour),
		mention("anchor report two", core.PlatformTwitter, "", time.Hour),
		mention("zephyr report three", core.PlatformReddit, "", time.Hour),
		mention("anchor report three", core.PlatformTwitter, "", time.Hour),
	}

	clusters := CrossPlatform(results, proThreshold(), testNow)
	if len(clusters) != 2 {
		t.Fatalf("Expected two clusters, got %d", len(clusters))
	}
	// Both have 3 members; "zephyr" was encountered first in the window.
	if got := clusters[0].Results[0].Title; got != "zephyr report one" {
		t.Errorf("Tie should preserve first-encountered keyword order, first cluster leads with %q", got)
	}
}

func TestLexicalPass_Idempotent(t *testing.T) {
	results := []core.RawResult{
		mention("pricing complaint thread", core.PlatformReddit, core.SentimentNegative, time.Hour),
		mention("pricing discussion today", core.PlatformTwitter, core.SentimentNeutral, 2*time.Hour),
		mention("pricing update announcement", core.PlatformReddit, core.SentimentPositive, 3*time.Hour),
		mention("crashes after update", core.PlatformReddit, core.SentimentNegative, time.Hour),
		mention("crashes on my tablet", core.PlatformTwitter, core.SentimentNegative, time.Hour),
		mention("crashes every session", core.PlatformGooglePlay, core.SentimentNegative, time.Hour),
	}

	first := CrossPlatform(results, proThreshold(), testNow)
	for i := 0; i < 10; i++ {
		if again := CrossPlatform(results, proThreshold(), testNow); !reflect.DeepEqual(first, again) {
			t.Fatal("Identical window and now must produce identical clusters")
		}
	}
}

func TestDescribeGroup_FallbackToGroupingKeyword(t *testing.T) {
	// A strict occurrence threshold can empty the re-extraction; the
	// grouping keyword then names the cluster.
	results := []core.RawResult{
		mention("gateway timeout", core.PlatformReddit, "", time.Hour),
		mention("gateway errors", core.PlatformTwitter, "", time.Hour),
	}

	threshold := policy.Threshold{MinKeywordOccurrence: 5, MinResultsPerTopic: 2, RequireMultiplePlatforms: true}
	clusters := CrossPlatform(results, threshold, testNow)
	if len(clusters) != 1 {
		t.Fatalf("Expected one cluster, got %d", len(clusters))
	}
	if clusters[0].Name != "Gateway" {
		t.Errorf("Expected fallback name 'Gateway', got %q", clusters[0].Name)
	}
	if !reflect.DeepEqual(clusters[0].Keywords, []string{"gateway"}) {
		t.Errorf("Expected fallback keywords, got %v", clusters[0].Keywords)
	}
}

func TestDistinctPlatforms_SortedAndDeduplicated(t *testing.T) {
	results := []core.RawResult{
		mention("one", core.PlatformTwitter, "", time.Hour),
		mention("two", core.PlatformReddit, "", time.Hour),
		mention("three", core.PlatformTwitter, "", time.Hour),
	}

	platforms := DistinctPlatforms(results)
	if !reflect.DeepEqual(platforms, []string{"reddit", "twitter"}) {
		t.Errorf("Expected sorted distinct platforms, got %v", platforms)
	}
}
