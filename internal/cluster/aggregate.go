package cluster

import (
	"time"

	"mentionpulse/internal/core"
)

// recentWindow splits cluster members into "recent" and "older" halves for
// trend classification.
const recentWindow = 7 * 24 * time.Hour

// fallingRatio is the multiplier under which recent volume counts as
// falling. The 0.5 cutoff is a product decision; keep it as-is.
const fallingRatio = 0.5

// TallySentiment counts member sentiment labels. Missing or unrecognized
// labels count as neutral, so the three counters always sum to the member
// count.
func TallySentiment(members []core.RawResult) core.SentimentBreakdown {
	var breakdown core.SentimentBreakdown
	for _, member := range members {
		switch member.Sentiment {
		case core.SentimentPositive:
			breakdown.Positive++
		case core.SentimentNegative:
			breakdown.Negative++
		default:
			breakdown.Neutral++
		}
	}
	return breakdown
}

// ClassifyTrend applies a volume-momentum heuristic: members created within
// the last seven days of now are "recent", the rest "older". More recent
// than older means rising; recent below half the older count means falling;
// anything else is stable.
func ClassifyTrend(members []core.RawResult, now time.Time) core.Trend {
	cutoff := now.Add(-recentWindow)

	var recent, older int
	for _, member := range members {
		if member.CreatedAt.After(cutoff) {
			recent++
		} else {
			older++
		}
	}

	switch {
	case recent > older:
		return core.TrendRising
	case float64(recent) < float64(older)*fallingRatio:
		return core.TrendFalling
	default:
		return core.TrendStable
	}
}
