// Package store persists monitors, mention results, and plan assignments in
// SQLite. The insight engine only reads from it; writes happen on the
// ingestion path.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"mentionpulse/internal/core"
)

// Store represents the SQLite-backed storage layer.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new store instance with a SQLite database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "mentionpulse.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables.
func (s *Store) initialize() error {
	monitorsTable := `
	CREATE TABLE IF NOT EXISTS monitors (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT,
		feed_url TEXT,
		created_at DATETIME
	);`

	resultsTable := `
	CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		monitor_id TEXT NOT NULL,
		platform TEXT NOT NULL,
		title TEXT,
		content TEXT,
		sentiment TEXT,
		source_url TEXT,
		created_at DATETIME,
		FOREIGN KEY (monitor_id) REFERENCES monitors (id)
	);`

	plansTable := `
	CREATE TABLE IF NOT EXISTS plans (
		user_id TEXT PRIMARY KEY,
		tier TEXT NOT NULL
	);`

	indexes := `
	CREATE INDEX IF NOT EXISTS idx_results_monitor_created
	ON results (monitor_id, created_at);`

	for _, stmt := range []string{monitorsTable, resultsTable, plansTable, indexes} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddMonitor stores a monitor.
func (s *Store) AddMonitor(ctx context.Context, monitor core.Monitor) error {
	query, args, err := sq.Insert("monitors").
		Columns("id", "user_id", "name", "feed_url", "created_at").
		Values(monitor.ID, monitor.UserID, monitor.Name, monitor.FeedURL, monitor.CreatedAt).
		Suffix("ON CONFLICT(id) DO UPDATE SET name = excluded.name, feed_url = excluded.feed_url").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build monitor insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to store monitor %s: %w", monitor.ID, err)
	}
	return nil
}

// Monitors returns all monitors owned by the given user.
func (s *Store) Monitors(ctx context.Context, userID string) ([]core.Monitor, error) {
	query, args, err := sq.Select("id", "user_id", "name", "feed_url", "created_at").
		From("monitors").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build monitor query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monitors: %w", err)
	}
	defer rows.Close()

	var monitors []core.Monitor
	for rows.Next() {
		var monitor core.Monitor
		var feedURL sql.NullString
		if err := rows.Scan(&monitor.ID, &monitor.UserID, &monitor.Name, &feedURL, &monitor.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan monitor: %w", err)
		}
		monitor.FeedURL = feedURL.String
		monitors = append(monitors, monitor)
	}

	return monitors, rows.Err()
}

// MonitorIDs returns the ids of all monitors owned by the given user.
func (s *Store) MonitorIDs(ctx context.Context, userID string) ([]string, error) {
	monitors, err := s.Monitors(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(monitors))
	for _, monitor := range monitors {
		ids = append(ids, monitor.ID)
	}
	return ids, nil
}

// SaveResult stores one mention result, replacing any previous row with the
// same id so re-ingesting a feed stays idempotent.
func (s *Store) SaveResult(ctx context.Context, result core.RawResult) error {
	query, args, err := sq.Insert("results").
		Columns("id", "monitor_id", "platform", "title", "content", "sentiment", "source_url", "created_at").
		Values(result.ID, result.MonitorID, string(result.Platform), result.Title,
			result.Content, string(result.Sentiment), result.SourceURL, result.CreatedAt).
		Suffix("ON CONFLICT(id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build result insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to store result %s: %w", result.ID, err)
	}
	return nil
}

// ResultsWindow returns up to limit results for the given monitors created
// after since, newest first. Callers rely on that ordering.
func (s *Store) ResultsWindow(ctx context.Context, monitorIDs []string, since time.Time, limit int) ([]core.RawResult, error) {
	if len(monitorIDs) == 0 {
		return nil, nil
	}

	query, args, err := sq.Select("id", "monitor_id", "platform", "title", "content", "sentiment", "source_url", "created_at").
		From("results").
		Where(sq.Eq{"monitor_id": monitorIDs}).
		Where(sq.Gt{"created_at": since}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build results query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []core.RawResult
	for rows.Next() {
		var result core.RawResult
		var platform, sentiment string
		var content, sourceURL sql.NullString
		if err := rows.Scan(&result.ID, &result.MonitorID, &platform, &result.Title,
			&content, &sentiment, &sourceURL, &result.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		result.Platform = core.Platform(platform)
		result.Sentiment = core.Sentiment(sentiment)
		result.Content = content.String
		result.SourceURL = sourceURL.String
		results = append(results, result)
	}

	return results, rows.Err()
}

// SetPlan assigns a plan tier to a user.
func (s *Store) SetPlan(ctx context.Context, userID string, tier core.PlanTier) error {
	query, args, err := sq.Insert("plans").
		Columns("user_id", "tier").
		Values(userID, string(tier)).
		Suffix("ON CONFLICT(user_id) DO UPDATE SET tier = excluded.tier").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build plan insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to store plan for user %s: %w", userID, err)
	}
	return nil
}

// PlanForUser returns the user's current plan tier. Users without an
// assignment are on the free tier.
func (s *Store) PlanForUser(ctx context.Context, userID string) (core.PlanTier, error) {
	query, args, err := sq.Select("tier").
		From("plans").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build plan query: %w", err)
	}

	var tier string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&tier)
	if err == sql.ErrNoRows {
		return core.TierFree, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query plan for user %s: %w", userID, err)
	}

	return core.PlanTier(tier), nil
}
