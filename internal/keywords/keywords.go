// Package keywords provides frequency-based keyword extraction with
// stop-word filtering. Extraction is pure and deterministic: identical
// inputs always produce identical output order.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// Keyword is a token with its aggregate count across the extraction call.
// Keywords are scoped to a single call and never persisted.
type Keyword struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// MaxKeywords caps how many keywords a single extraction returns.
const MaxKeywords = 10

// minTokenLength drops short tokens before counting; tokens of length 3 or
// shorter carry almost no topical signal.
const minTokenLength = 4

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]+`)

// Extract tokenizes the given texts and returns up to MaxKeywords keywords
// whose aggregate count meets minOccurrence, sorted by count descending.
// Each token is counted at most once per source text, so repetition inside
// one document cannot dominate the ranking. Ties are broken by first
// encounter order across the input texts. Empty texts are skipped; the
// result may be empty.
func Extract(texts []string, minOccurrence int) []Keyword {
	if minOccurrence < 1 {
		minOccurrence = 1
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}

		seen := make(map[string]bool)
		for _, token := range Tokenize(text) {
			if seen[token] {
				continue
			}
			seen[token] = true

			if _, ok := firstSeen[token]; !ok {
				firstSeen[token] = order
				order++
			}
			counts[token]++
		}
	}

	var result []Keyword
	for term, count := range counts {
		if count >= minOccurrence {
			result = append(result, Keyword{Term: term, Count: count})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return firstSeen[result[i].Term] < firstSeen[result[j].Term]
	})

	if len(result) > MaxKeywords {
		result = result[:MaxKeywords]
	}

	return result
}

// Tokenize lowercases the text, strips non-alphanumeric characters, splits
// on whitespace, and drops short tokens and stop words. The returned slice
// preserves text order and may contain duplicates.
func Tokenize(text string) []string {
	cleaned := nonAlphanumeric.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, token := range strings.Fields(cleaned) {
		if len(token) < minTokenLength || stopWords[token] {
			continue
		}
		tokens = append(tokens, token)
	}

	return tokens
}
