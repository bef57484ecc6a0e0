package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"mentionpulse/internal/cluster"
	"mentionpulse/internal/core"
	"mentionpulse/internal/llm"
	"mentionpulse/internal/logger"
)

const (
	// aiResultCap bounds the model call cost regardless of window size.
	aiResultCap = 50
	// aiExcerptLimit truncates each result's content in the prompt.
	aiExcerptLimit = 200
)

// aiTopic is the JSON shape the model is asked to return.
type aiTopic struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Sentiment   string   `json:"sentiment"`
	Indices     []int    `json:"indices"`
	Keywords    []string `json:"keywords"`
}

// aiTopicSchema constrains the model to a JSON array of topic objects.
var aiTopicSchema = &genai.Schema{
	Type:        genai.TypeArray,
	Description: "Between 3 and 5 topic groupings",
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString, Description: "Short topic name"},
			"description": {Type: genai.TypeString, Description: "One-sentence description"},
			"sentiment": {
				Type: genai.TypeString,
				Enum: []string{"positive", "negative", "mixed", "neutral"},
			},
			"indices": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeInteger},
				Description: "1-based indices of the mentions in this topic",
			},
			"keywords": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"name", "description", "sentiment", "indices"},
	},
}

// runAIFallback asks the model to group sparse results into topics. Purely
// advisory: any model error or unparsable response is logged and yields an
// empty list, leaving the rest of the response unaffected.
func (s *Service) runAIFallback(ctx context.Context, results []core.RawResult, now time.Time) []core.TopicCluster {
	selected := results
	if len(selected) > aiResultCap {
		selected = selected[:aiResultCap]
	}

	response, err := s.ai.GenerateText(ctx, buildTopicPrompt(selected), llm.TextGenerationOptions{
		MaxTokens:      2048,
		Temperature:    0.4,
		ResponseSchema: aiTopicSchema,
	})
	if err != nil {
		logger.Warn("AI topic fallback failed, continuing with lexical topics only", "error", err.Error())
		return []core.TopicCluster{}
	}

	topics, err := parseAITopics(response)
	if err != nil {
		logger.Warn("AI topic response could not be parsed", "error", err.Error())
		return []core.TopicCluster{}
	}

	return resolveAITopics(topics, selected, now)
}

// buildTopicPrompt lists each selected result with a 1-based index so the
// model can reference mentions without echoing their content back.
func buildTopicPrompt(selected []core.RawResult) string {
	var builder strings.Builder
	builder.WriteString("You are analyzing brand mentions collected from social and review platforms.\n")
	builder.WriteString("Group the mentions below into 3-5 coherent topics.\n")
	builder.WriteString("For each topic provide: name, a one-sentence description, an overall sentiment ")
	builder.WriteString("(positive, negative, mixed, or neutral), the 1-based indices of the mentions that belong to it, ")
	builder.WriteString("and a few keywords.\n\nMENTIONS:\n")

	for i, result := range selected {
		builder.WriteString(fmt.Sprintf("%d. [%s] %s", i+1, result.Platform, result.Title))
		if excerpt := truncate(result.Content, aiExcerptLimit); excerpt != "" {
			builder.WriteString(" - ")
			builder.WriteString(excerpt)
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

// parseAITopics decodes the model's JSON, tolerating a markdown code fence
// around the payload.
func parseAITopics(response string) ([]aiTopic, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var topics []aiTopic
	if err := json.Unmarshal([]byte(cleaned), &topics); err != nil {
		return nil, fmt.Errorf("failed to decode AI topics: %w", err)
	}
	return topics, nil
}

// resolveAITopics maps the model's 1-based indices back onto the selected
// results. Indices outside [1, len(selected)] are discarded; topics left
// with no resolved members are dropped, so every surfaced cluster only
// references ids present in the original window.
func resolveAITopics(topics []aiTopic, selected []core.RawResult, now time.Time) []core.TopicCluster {
	clusters := []core.TopicCluster{}

	for _, topic := range topics {
		var members []core.RawResult
		seen := make(map[int]bool)
		for _, index := range topic.Indices {
			if index < 1 || index > len(selected) || seen[index] {
				continue
			}
			seen[index] = true
			members = append(members, selected[index-1])
		}
		if len(members) == 0 {
			continue
		}

		clusters = append(clusters, core.TopicCluster{
			Name:        topic.Name,
			Description: topic.Description,
			Keywords:    topic.Keywords,
			Platforms:   cluster.DistinctPlatforms(members),
			Results:     members,
			Sentiment:   cluster.TallySentiment(members),
			Trend:       trendFromSentiment(topic.Sentiment),
			Provenance:  core.ProvenanceAI,
		})
	}

	return clusters
}

// trendFromSentiment maps the model's sentiment label to a synthetic trend.
// The model performs no time-series reasoning, so this is a deliberate
// simplification: positive reads as rising, negative as falling.
func trendFromSentiment(sentiment string) core.Trend {
	switch strings.ToLower(sentiment) {
	case "positive":
		return core.TrendRising
	case "negative":
		return core.TrendFalling
	default:
		return core.TrendStable
	}
}

func truncate(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit])
}
