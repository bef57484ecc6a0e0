package cluster

import (
	"testing"
	"time"

	"mentionpulse/internal/core"
)

func resultAt(age time.Duration) core.RawResult {
	return core.RawResult{CreatedAt: testNow.Add(-age)}
}

func TestClassifyTrend_Boundaries(t *testing.T) {
	const day = 24 * time.Hour

	testCases := []struct {
		name     string
		recent   int
		older    int
		expected core.Trend
	}{
		{"more recent than older", 3, 1, core.TrendRising},
		{"recent below half of older", 1, 3, core.TrendFalling},
		{"even split", 2, 2, core.TrendStable},
		{"recent exactly half of older", 2, 4, core.TrendStable},
		{"all recent", 4, 0, core.TrendRising},
		{"all older", 0, 4, core.TrendFalling},
		{"single recent member", 1, 0, core.TrendRising},
	}

	for _, tc := range testCases {
		var members []core.RawResult
		for i := 0; i < tc.recent; i++ {
			members = append(members, resultAt(2*day))
		}
		for i := 0; i < tc.older; i++ {
			members = append(members, resultAt(20*day))
		}

		if got := ClassifyTrend(members, testNow); got != tc.expected {
			t.Errorf("%s (%d recent / %d older): expected %s, got %s",
				tc.name, tc.recent, tc.older, tc.expected, got)
		}
	}
}

func TestClassifyTrend_SevenDayCutoff(t *testing.T) {
	const day = 24 * time.Hour

	// Just inside the window vs just outside.
	inside := []core.RawResult{resultAt(7*day - time.Minute)}
	if got := ClassifyTrend(inside, testNow); got != core.TrendRising {
		t.Errorf("Member just inside 7 days should read rising, got %s", got)
	}

	outside := []core.RawResult{resultAt(7*day + time.Minute)}
	if got := ClassifyTrend(outside, testNow); got != core.TrendFalling {
		t.Errorf("Member just outside 7 days should read falling, got %s", got)
	}
}

func TestTallySentiment(t *testing.T) {
	members := []core.RawResult{
		{Sentiment: core.SentimentPositive},
		{Sentiment: core.SentimentPositive},
		{Sentiment: core.SentimentNegative},
		{Sentiment: core.SentimentNeutral},
		{Sentiment: ""},
		{Sentiment: "enthusiastic"},
	}

	breakdown := TallySentiment(members)

	if breakdown.Positive != 2 || breakdown.Negative != 1 || breakdown.Neutral != 3 {
		t.Errorf("Unexpected breakdown: %+v", breakdown)
	}
	if breakdown.Total() != len(members) {
		t.Errorf("Counters must sum to member count: %d vs %d", breakdown.Total(), len(members))
	}
}

func TestTallySentiment_Empty(t *testing.T) {
	if breakdown := TallySentiment(nil); breakdown.Total() != 0 {
		t.Errorf("Empty member list should yield zero counters, got %+v", breakdown)
	}
}
