package ingest

import (
	"strings"

	"mentionpulse/internal/core"
)

// Rule-based sentiment labeling applied at ingest time. Deliberately crude:
// the label is optional input for the insight engine, and anything
// ambiguous stays neutral.

var positiveWords = map[string]bool{
	"excellent": true, "amazing": true, "outstanding": true, "fantastic": true,
	"great": true, "good": true, "love": true, "loved": true, "awesome": true,
	"success": true, "improvement": true, "impressive": true, "recommend": true,
	"recommended": true, "helpful": true, "reliable": true, "smooth": true,
	"fast": true, "easy": true, "breakthrough": true, "perfect": true,
	"happy": true, "best": true, "solid": true, "beneficial": true,
}

var negativeWords = map[string]bool{
	"terrible": true, "awful": true, "horrible": true, "disaster": true,
	"bad": true, "poor": true, "broken": true, "failure": true, "fail": true,
	"problem": true, "issue": true, "bug": true, "crash": true, "crashes": true,
	"slow": true, "scam": true, "refund": true, "worst": true, "hate": true,
	"useless": true, "disappointed": true, "disappointing": true, "buggy": true,
	"outage": true, "downtime": true, "breach": true, "unusable": true,
}

// Label classifies text by counting positive and negative keyword hits.
// Ties and no-signal text come back neutral.
func Label(text string) core.Sentiment {
	var positive, negative int

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:'\"()")
		if positiveWords[word] {
			positive++
		}
		if negativeWords[word] {
			negative++
		}
	}

	switch {
	case positive > negative:
		return core.SentimentPositive
	case negative > positive:
		return core.SentimentNegative
	default:
		return core.SentimentNeutral
	}
}
