package keywords

// stopWords is the set of common English words excluded from extraction.
// Short words (3 characters or fewer) are already dropped by Tokenize, so
// the entries that matter here are the longer function words.
var stopWords = buildStopWords()

func buildStopWords() map[string]bool {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "also",
		"am", "an", "and", "any", "are", "aren't", "as", "at", "back",
		"be", "because", "been", "before", "being", "below", "between",
		"both", "but", "by", "came", "can", "cannot", "come", "could",
		"couldn't", "day", "did", "didn't", "do", "does", "doesn't",
		"doing", "don't", "down", "during", "each", "even", "every",
		"few", "first", "for", "from", "further", "get", "give", "go",
		"going", "good", "got", "had", "hadn't", "has", "hasn't", "have",
		"haven't", "having", "he", "her", "here", "hers", "herself",
		"him", "himself", "his", "how", "i", "if", "in", "into", "is",
		"isn't", "it", "its", "itself", "just", "know", "like", "look",
		"made", "make", "many", "may", "me", "might", "more", "most",
		"much", "must", "my", "myself", "need", "never", "new", "no",
		"nor", "not", "now", "of", "off", "on", "once", "only", "or",
		"other", "our", "ours", "ourselves", "out", "over", "own",
		"people", "really", "said", "same", "say", "see", "she", "should",
		"shouldn't", "since", "so", "some", "still", "such", "take",
		"than", "that", "the", "their", "theirs", "them", "themselves",
		"then", "there", "these", "they", "thing", "think", "this",
		"those", "through", "time", "to", "too", "under", "until", "up",
		"us", "use", "used", "using", "very", "want", "was", "wasn't",
		"way", "we", "well", "were", "weren't", "what", "when", "where",
		"which", "while", "who", "whom", "why", "will", "with", "won't",
		"work", "would", "wouldn't", "year", "you", "your", "yours",
		"yourself", "yourselves",
	}

	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}
