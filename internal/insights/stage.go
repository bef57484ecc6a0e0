package insights

import "mentionpulse/internal/policy"

// stage models the pipeline's pass progression explicitly rather than as
// nested conditionals at the call site, so the decision path is testable on
// its own.
type stage int

const (
	stageLexicalCrossPlatform stage = iota
	stageLexicalSinglePlatform
	stageAIFallback
	stageDone
)

// nextStage decides the following pass from the admission counts so far.
// The single-platform pass runs when the cross-platform pass yielded
// nothing, or unconditionally for tiers whose monitors do not span
// platforms. The AI fallback runs only when the tier enables it, the
// combined lexical yield is sparse, and the window is big enough to be
// worth a model call.
func nextStage(current stage, threshold policy.Threshold, crossCount, singleCount, totalResults int, aiAvailable bool) stage {
	switch current {
	case stageLexicalCrossPlatform:
		if crossCount == 0 || !threshold.RequireMultiplePlatforms {
			return stageLexicalSinglePlatform
		}
		return aiOrDone(threshold, crossCount, singleCount, totalResults, aiAvailable)
	case stageLexicalSinglePlatform:
		return aiOrDone(threshold, crossCount, singleCount, totalResults, aiAvailable)
	default:
		return stageDone
	}
}

func aiOrDone(threshold policy.Threshold, crossCount, singleCount, totalResults int, aiAvailable bool) stage {
	if aiAvailable &&
		threshold.UseAIFallback &&
		crossCount+singleCount < minLexicalClusters &&
		totalResults >= minResultsForAI {
		return stageAIFallback
	}
	return stageDone
}
