// Package cluster groups mention results into topic clusters by shared
// keywords. Clustering is a cheap, deterministic proxy for topical
// coherence: no embeddings, no inference, just keyword co-occurrence under
// tier-specific admission rules.
package cluster

import (
	"sort"
	"strings"
	"time"

	"mentionpulse/internal/core"
	"mentionpulse/internal/keywords"
	"mentionpulse/internal/policy"
)

// MaxClusters caps how many clusters a single pass returns.
const MaxClusters = 10

// CrossPlatform runs the first lexical pass. Candidate groups must span at
// least two distinct platforms in addition to the tier's member threshold.
func CrossPlatform(results []core.RawResult, threshold policy.Threshold, now time.Time) []core.TopicCluster {
	return lexicalPass(results, threshold, true, now)
}

// SinglePlatform runs the fallback pass without the platform-span rule. It
// surfaces something for single-platform coverage (e.g. free-tier monitors)
// when the cross-platform pass comes up empty.
func SinglePlatform(results []core.RawResult, threshold policy.Threshold, now time.Time) []core.TopicCluster {
	return lexicalPass(results, threshold, false, now)
}

// lexicalPass groups results by their primary keyword, applies admission
// rules, and builds display metadata for admitted groups. Iteration follows
// window order throughout so identical input yields identical output.
func lexicalPass(results []core.RawResult, threshold policy.Threshold, requireSpan bool, now time.Time) []core.TopicCluster {
	groups := make(map[string][]core.RawResult)
	var keyOrder []string

	for _, result := range results {
		primary := primaryKeyword(result)
		if primary == "" {
			continue
		}
		if _, ok := groups[primary]; !ok {
			keyOrder = append(keyOrder, primary)
		}
		groups[primary] = append(groups[primary], result)
	}

	var clusters []core.TopicCluster
	for _, key := range keyOrder {
		members := groups[key]
		if len(members) < threshold.MinResultsPerTopic {
			continue
		}

		platforms := DistinctPlatforms(members)
		if requireSpan && len(platforms) < 2 {
			continue
		}

		name, terms := describeGroup(key, members, threshold.MinKeywordOccurrence)
		breakdown := TallySentiment(members)

		clusters = append(clusters, core.TopicCluster{
			Name:       name,
			Keywords:   terms,
			Platforms:  platforms,
			Results:    members,
			Sentiment:  breakdown,
			Trend:      ClassifyTrend(members, now),
			Provenance: core.ProvenanceLexical,
		})
	}

	// Stable sort keeps first-encountered keyword order for ties.
	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i].Results) > len(clusters[j].Results)
	})

	if len(clusters) > MaxClusters {
		clusters = clusters[:MaxClusters]
	}

	return clusters
}

// primaryKeyword returns the highest-ranked keyword of a single result's
// title and content, or "" when extraction yields nothing.
func primaryKeyword(result core.RawResult) string {
	extracted := keywords.Extract([]string{result.Title + " " + result.Content}, 1)
	if len(extracted) == 0 {
		return ""
	}
	return extracted[0].Term
}

// describeGroup re-runs extraction over all member texts to produce a richer
// keyword set. The display name is the title-cased join of the top three
// keywords; when the richer extraction yields nothing (e.g. a strict
// occurrence threshold), the grouping keyword serves as the fallback.
func describeGroup(key string, members []core.RawResult, minOccurrence int) (string, []string) {
	texts := make([]string, 0, len(members))
	for _, member := range members {
		texts = append(texts, member.Title+" "+member.Content)
	}

	extracted := keywords.Extract(texts, minOccurrence)
	if len(extracted) == 0 {
		return titleCase(key), []string{key}
	}

	terms := make([]string, 0, len(extracted))
	for _, keyword := range extracted {
		terms = append(terms, keyword.Term)
	}

	top := terms
	if len(top) > 3 {
		top = top[:3]
	}

	return titleCase(strings.Join(top, " ")), terms
}

// DistinctPlatforms returns the distinct platforms across the given results,
// sorted alphabetically.
func DistinctPlatforms(results []core.RawResult) []string {
	seen := make(map[string]bool)
	var platforms []string
	for _, result := range results {
		name := string(result.Platform)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		platforms = append(platforms, name)
	}
	sort.Strings(platforms)
	return platforms
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
