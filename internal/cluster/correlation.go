package cluster

import (
	"sort"

	"mentionpulse/internal/core"
)

// PlatformCorrelation derives platform co-occurrence counts from the
// cross-platform cluster set. For every unordered platform pair inside a
// cluster's platform set, the shared-topic counter is incremented once.
// Single-platform and AI clusters are excluded by the caller since
// correlation is undefined for them.
func PlatformCorrelation(clusters []core.TopicCluster) []core.PlatformCorrelationEntry {
	counts := make(map[[2]string]int)

	for _, topicCluster := range clusters {
		platforms := topicCluster.Platforms
		for i := 0; i < len(platforms); i++ {
			for j := i + 1; j < len(platforms); j++ {
				// Platform lists are already sorted alphabetically,
				// so the pair is normalized by construction.
				counts[[2]string{platforms[i], platforms[j]}]++
			}
		}
	}

	entries := make([]core.PlatformCorrelationEntry, 0, len(counts))
	for pair, count := range counts {
		entries = append(entries, core.PlatformCorrelationEntry{
			Platforms:    pair,
			SharedTopics: count,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SharedTopics != entries[j].SharedTopics {
			return entries[i].SharedTopics > entries[j].SharedTopics
		}
		return entries[i].Platforms[0]+entries[i].Platforms[1] < entries[j].Platforms[0]+entries[j].Platforms[1]
	})

	return entries
}
