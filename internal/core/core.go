package core

import "time"

// Platform identifies where a mention was captured.
type Platform string

const (
	PlatformReddit      Platform = "reddit"
	PlatformTwitter     Platform = "twitter"
	PlatformHackerNews  Platform = "hackernews"
	PlatformYouTube     Platform = "youtube"
	PlatformTrustpilot  Platform = "trustpilot"
	PlatformGooglePlay  Platform = "googleplay"
	PlatformAppStore    Platform = "appstore"
	PlatformProductHunt Platform = "producthunt"
)

// Sentiment is the label attached to a single mention. It is optional on
// ingested data; anything other than positive/negative is treated as neutral
// by the aggregation stage.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Trend classifies recent volume momentum for a topic cluster.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// Provenance marks how a topic cluster was produced.
type Provenance string

const (
	ProvenanceLexical Provenance = "lexical"
	ProvenanceAI      Provenance = "ai"
)

// PlanTier is the subscription level gating clustering thresholds.
type PlanTier string

const (
	TierFree       PlanTier = "free"
	TierPro        PlanTier = "pro"
	TierEnterprise PlanTier = "enterprise"
)

// Monitor is a user-configured watch on a brand or product across platforms.
type Monitor struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	FeedURL   string    `json:"feed_url,omitempty"` // optional RSS/Atom mention source
	CreatedAt time.Time `json:"created_at"`
}

// RawResult is one normalized mention captured from a monitored platform.
// The insight engine receives read-only copies and never mutates them.
type RawResult struct {
	ID        string    `json:"id"`
	MonitorID string    `json:"monitor_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Platform  Platform  `json:"platform"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
	SourceURL string    `json:"source_url"`
	CreatedAt time.Time `json:"created_at"`
}

// SentimentBreakdown tallies member sentiment labels for one cluster.
// The three counters always sum to the cluster's member count.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the sum of all counters.
func (b SentimentBreakdown) Total() int {
	return b.Positive + b.Negative + b.Neutral
}

// TopicCluster is a set of mentions judged to share a theme, via keyword
// co-occurrence or AI grouping. Clusters are created transiently per request
// and never persisted.
type TopicCluster struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Keywords    []string           `json:"keywords"`
	Platforms   []string           `json:"platforms"`
	Results     []RawResult        `json:"results"`
	Sentiment   SentimentBreakdown `json:"sentiment"`
	Trend       Trend              `json:"trend"`
	Provenance  Provenance         `json:"provenance"`
}

// PlatformCorrelationEntry counts topics shared by an unordered platform
// pair. Platforms are alphabetically normalized.
type PlatformCorrelationEntry struct {
	Platforms    [2]string `json:"platforms"`
	SharedTopics int       `json:"sharedTopics"`
}
