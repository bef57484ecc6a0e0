// Package policy maps plan tiers to clustering threshold configurations.
package policy

import "mentionpulse/internal/core"

// Threshold holds the per-tier admission rules applied by the clustering
// engine. Values are immutable constants resolved once per request.
type Threshold struct {
	// MinKeywordOccurrence is the minimum aggregate count a keyword needs
	// when re-extracting a cluster's keyword set from its member texts.
	MinKeywordOccurrence int
	// MinResultsPerTopic is the minimum member count a candidate cluster
	// must have to be surfaced.
	MinResultsPerTopic int
	// RequireMultiplePlatforms reports whether the tier's monitors span
	// platforms; when false, the single-platform clustering pass always
	// runs in addition to the cross-platform one.
	RequireMultiplePlatforms bool
	// UseAIFallback enables the LLM topic extraction when lexical
	// clustering under-delivers.
	UseAIFallback bool
}

var thresholds = map[core.PlanTier]Threshold{
	core.TierFree: {
		MinKeywordOccurrence:     3,
		MinResultsPerTopic:       3,
		RequireMultiplePlatforms: false,
		UseAIFallback:            false,
	},
	core.TierPro: {
		MinKeywordOccurrence:     2,
		MinResultsPerTopic:       3,
		RequireMultiplePlatforms: true,
		UseAIFallback:            true,
	},
	core.TierEnterprise: {
		MinKeywordOccurrence:     2,
		MinResultsPerTopic:       2,
		RequireMultiplePlatforms: true,
		UseAIFallback:            true,
	},
}

// Resolve returns the threshold configuration for the given tier.
// Unrecognized tiers fall back to the most restrictive (free) policy.
func Resolve(tier core.PlanTier) Threshold {
	if threshold, ok := thresholds[tier]; ok {
		return threshold
	}
	return thresholds[core.TierFree]
}
