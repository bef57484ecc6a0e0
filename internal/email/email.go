// Package email renders insight responses as HTML digests. Delivery is
// someone else's job; this package only produces the body.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"mentionpulse/internal/core"
	"mentionpulse/internal/insights"
)

// DigestData is the template payload for one digest email.
type DigestData struct {
	Title        string
	Date         string
	Plan         string
	TotalResults int
	Topics       []TopicRow
	AITopics     []TopicRow
}

// TopicRow is one rendered topic line.
type TopicRow struct {
	Name      string
	Mentions  int
	Platforms []string
	Positive  int
	Negative  int
	Neutral   int
	TrendIcon string
}

var trendIcons = map[core.Trend]string{
	core.TrendRising:  "↗",
	core.TrendFalling: "↘",
	core.TrendStable:  "→",
}

var digestTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif; background-color: #f8fafc; color: #1e293b; margin: 0; padding: 24px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border: 1px solid #e2e8f0; border-radius: 8px; padding: 24px;">
    <h1 style="color: #2563eb; font-size: 20px;">{{.Title}}</h1>
    <p style="color: #64748b;">{{.Date}} &middot; {{.TotalResults}} mentions &middot; {{.Plan}} plan</p>
    {{if .Topics}}
    <h2 style="font-size: 16px;">Top topics</h2>
    {{range .Topics}}
    <div style="border-top: 1px solid #e2e8f0; padding: 12px 0;">
      <strong>{{.TrendIcon}} {{.Name}}</strong>
      <div style="color: #64748b; font-size: 13px;">
        {{.Mentions}} mentions &middot; {{range $i, $p := .Platforms}}{{if $i}}, {{end}}{{$p}}{{end}}
      </div>
      <div style="font-size: 13px;">+{{.Positive}} / -{{.Negative}} / ={{.Neutral}}</div>
    </div>
    {{end}}
    {{else}}
    <p>No topics detected in this window.</p>
    {{end}}
    {{if .AITopics}}
    <h2 style="font-size: 16px;">AI-suggested topics</h2>
    {{range .AITopics}}
    <div style="border-top: 1px solid #e2e8f0; padding: 12px 0;">
      <strong>{{.TrendIcon}} {{.Name}}</strong>
      <div style="color: #64748b; font-size: 13px;">{{.Mentions}} mentions</div>
    </div>
    {{end}}
    {{end}}
  </div>
</body>
</html>`))

// RenderDigest produces the HTML body for a digest email from one insights
// response. Single-platform topics stand in when the cross-platform list is
// empty, mirroring what the dashboard shows.
func RenderDigest(title string, resp *insights.Response, now time.Time) (string, error) {
	topics := resp.Topics
	if len(topics) == 0 {
		topics = resp.SinglePlatformTopics
	}

	data := DigestData{
		Title:        title,
		Date:         now.Format("January 2, 2006"),
		Plan:         resp.Plan,
		TotalResults: resp.TotalResults,
		Topics:       toRows(topics),
		AITopics:     toRows(resp.AITopics),
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render digest email: %w", err)
	}
	return buf.String(), nil
}

func toRows(clusters []core.TopicCluster) []TopicRow {
	rows := make([]TopicRow, 0, len(clusters))
	for _, topicCluster := range clusters {
		rows = append(rows, TopicRow{
			Name:      topicCluster.Name,
			Mentions:  len(topicCluster.Results),
			Platforms: topicCluster.Platforms,
			Positive:  topicCluster.Sentiment.Positive,
			Negative:  topicCluster.Sentiment.Negative,
			Neutral:   topicCluster.Sentiment.Neutral,
			TrendIcon: trendIcons[topicCluster.Trend],
		})
	}
	return rows
}
