// Package insights assembles topic clusters, sentiment, trend, and platform
// correlation for one user request. It is a bounded, point-in-time batch
// pass over a fixed result window, recomputed per request: no background
// work, no shared state, no writes back to storage.
package insights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentionpulse/internal/cluster"
	"mentionpulse/internal/core"
	"mentionpulse/internal/llm"
	"mentionpulse/internal/logger"
	"mentionpulse/internal/policy"
)

const (
	// WindowLimit caps how many results one computation pass considers.
	WindowLimit = 500
	// minLexicalClusters is the lexical yield below which the AI fallback
	// may run.
	minLexicalClusters = 3
	// minResultsForAI is the smallest window worth sending to the model.
	minResultsForAI = 3
)

// Input validation errors. They are rejected before any computation begins.
var (
	ErrMissingUser  = errors.New("missing user id")
	ErrInvalidRange = errors.New("invalid time range")
)

// ranges maps the request range selector to a window duration.
var ranges = map[string]time.Duration{
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

// ParseRange resolves a range token (7d/30d/90d) to a duration.
func ParseRange(token string) (time.Duration, error) {
	duration, ok := ranges[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRange, token)
	}
	return duration, nil
}

// Request identifies one insights computation.
type Request struct {
	UserID string
	Range  string
}

// Response is the JSON-serializable result consumed by the dashboard and by
// email digests. All slices are non-nil so empty states serialize as [].
type Response struct {
	Topics                   []core.TopicCluster             `json:"topics"`
	SinglePlatformTopics     []core.TopicCluster             `json:"singlePlatformTopics"`
	AITopics                 []core.TopicCluster             `json:"aiTopics"`
	PlatformCorrelation      []core.PlatformCorrelationEntry `json:"platformCorrelation"`
	TotalResults             int                             `json:"totalResults"`
	Plan                     string                          `json:"plan"`
	CanHaveMultiplePlatforms bool                            `json:"canHaveMultiplePlatforms"`
	PlatformsInData          []string                        `json:"platformsInData"`
}

// ResultSource is the storage collaborator contract. ResultsWindow must
// return at most limit results created after since, newest first; the
// engine trusts that ordering and does not re-sort.
type ResultSource interface {
	MonitorIDs(ctx context.Context, userID string) ([]string, error)
	ResultsWindow(ctx context.Context, monitorIDs []string, since time.Time, limit int) ([]core.RawResult, error)
}

// PlanSource resolves a user's current plan tier. Treated as opaque.
type PlanSource interface {
	PlanForUser(ctx context.Context, userID string) (core.PlanTier, error)
}

// TextGenerator is the LLM collaborator contract, satisfied by *llm.Client.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, options llm.TextGenerationOptions) (string, error)
}

// Service computes insight responses. It holds no mutable state, so
// concurrent requests are independent and need no locking.
type Service struct {
	results ResultSource
	plans   PlanSource
	ai      TextGenerator // nil disables the AI fallback entirely
	now     func() time.Time
}

// NewService creates an insights service. ai may be nil when no LLM is
// configured; the fallback stage is then skipped regardless of tier.
func NewService(results ResultSource, plans PlanSource, ai TextGenerator) *Service {
	return &Service{
		results: results,
		plans:   plans,
		ai:      ai,
		now:     time.Now,
	}
}

// Generate runs the full pipeline: fetch window, cluster (cross-platform
// then single-platform), aggregate, conditionally call the AI fallback, and
// correlate platforms. Storage failures propagate; AI failures degrade to an
// empty AI topic list.
func (s *Service) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.UserID == "" {
		return nil, ErrMissingUser
	}
	window, err := ParseRange(req.Range)
	if err != nil {
		return nil, err
	}

	tier, err := s.plans.PlanForUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan for user %s: %w", req.UserID, err)
	}
	threshold := policy.Resolve(tier)
	resp := emptyResponse(tier, threshold)

	monitorIDs, err := s.results.MonitorIDs(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monitors for user %s: %w", req.UserID, err)
	}
	if len(monitorIDs) == 0 {
		return resp, nil
	}

	now := s.now()
	results, err := s.results.ResultsWindow(ctx, monitorIDs, now.Add(-window), WindowLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result window: %w", err)
	}
	if len(results) == 0 {
		return resp, nil
	}

	resp.TotalResults = len(results)
	resp.PlatformsInData = cluster.DistinctPlatforms(results)

	for stage := stageLexicalCrossPlatform; stage != stageDone; {
		switch stage {
		case stageLexicalCrossPlatform:
			resp.Topics = cluster.CrossPlatform(results, threshold, now)
		case stageLexicalSinglePlatform:
			resp.SinglePlatformTopics = cluster.SinglePlatform(results, threshold, now)
		case stageAIFallback:
			resp.AITopics = s.runAIFallback(ctx, results, now)
		}
		stage = nextStage(stage, threshold, len(resp.Topics), len(resp.SinglePlatformTopics), len(results), s.ai != nil)
	}

	resp.PlatformCorrelation = cluster.PlatformCorrelation(resp.Topics)

	logger.Debug("insights computed",
		"user_id", req.UserID,
		"range", req.Range,
		"plan", string(tier),
		"total_results", resp.TotalResults,
		"topics", len(resp.Topics),
		"single_platform_topics", len(resp.SinglePlatformTopics),
		"ai_topics", len(resp.AITopics))

	return resp, nil
}

func emptyResponse(tier core.PlanTier, threshold policy.Threshold) *Response {
	return &Response{
		Topics:                   []core.TopicCluster{},
		SinglePlatformTopics:     []core.TopicCluster{},
		AITopics:                 []core.TopicCluster{},
		PlatformCorrelation:      []core.PlatformCorrelationEntry{},
		Plan:                     string(tier),
		CanHaveMultiplePlatforms: threshold.RequireMultiplePlatforms,
		PlatformsInData:          []string{},
	}
}
