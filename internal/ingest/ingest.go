// Package ingest pulls mentions from RSS/Atom sources into storage. It is a
// thin collection layer: the insight engine never sees it, only the rows it
// writes.
package ingest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"mentionpulse/internal/core"
	"mentionpulse/internal/logger"
)

// Saver is the storage surface ingestion needs.
type Saver interface {
	SaveResult(ctx context.Context, result core.RawResult) error
}

// Ingestor fetches monitor feeds and normalizes their items into results.
type Ingestor struct {
	saver   Saver
	parser  *gofeed.Parser
	timeout time.Duration
}

// NewIngestor creates an ingestor writing to the given saver.
func NewIngestor(saver Saver, timeout time.Duration) *Ingestor {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Ingestor{
		saver:   saver,
		parser:  gofeed.NewParser(),
		timeout: timeout,
	}
}

// IngestMonitor fetches the monitor's feed and stores each item as a
// normalized result. Returns how many items were processed.
func (in *Ingestor) IngestMonitor(ctx context.Context, monitor core.Monitor) (int, error) {
	if monitor.FeedURL == "" {
		return 0, fmt.Errorf("monitor %s has no feed URL", monitor.ID)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, in.timeout)
	defer cancel()

	feed, err := in.parser.ParseURLWithContext(monitor.FeedURL, fetchCtx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch feed for monitor %s: %w", monitor.ID, err)
	}

	stored := 0
	for _, item := range feed.Items {
		result, ok := normalizeItem(monitor, item)
		if !ok {
			continue
		}
		if err := in.saver.SaveResult(ctx, result); err != nil {
			return stored, err
		}
		stored++
	}

	logger.Info("feed ingested", "monitor_id", monitor.ID, "items", stored)
	return stored, nil
}

// normalizeItem converts a feed item into a RawResult. Items without a title
// are skipped.
func normalizeItem(monitor core.Monitor, item *gofeed.Item) (core.RawResult, bool) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return core.RawResult{}, false
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}
	content := CleanText(body)

	createdAt := time.Now()
	if item.PublishedParsed != nil {
		createdAt = *item.PublishedParsed
	}

	identity := item.GUID
	if identity == "" {
		identity = item.Link
	}

	return core.RawResult{
		// Deterministic id keeps re-ingestion idempotent.
		ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(monitor.ID+"|"+identity)).String(),
		MonitorID: monitor.ID,
		Title:     title,
		Content:   content,
		Platform:  platformFromURL(item.Link),
		Sentiment: Label(title + " " + content),
		SourceURL: item.Link,
		CreatedAt: createdAt,
	}, true
}

var platformHosts = map[string]core.Platform{
	"reddit.com":      core.PlatformReddit,
	"twitter.com":     core.PlatformTwitter,
	"x.com":           core.PlatformTwitter,
	"news.ycombinator.com": core.PlatformHackerNews,
	"youtube.com":     core.PlatformYouTube,
	"trustpilot.com":  core.PlatformTrustpilot,
	"play.google.com": core.PlatformGooglePlay,
	"apps.apple.com":  core.PlatformAppStore,
	"producthunt.com": core.PlatformProductHunt,
}

// platformFromURL guesses the source platform from the item link's host.
// Unknown hosts keep the bare host as the platform label.
func platformFromURL(link string) core.Platform {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return "web"
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	for suffix, platform := range platformHosts {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return platform
		}
	}
	return core.Platform(host)
}
