// Package visits keeps privacy-conscious page-view counts: client IPs are
// salted and hashed before storage, and old rows are purged.
package visits

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Visit is one tracked page view before hashing.
type Visit struct {
	IP        string
	UserAgent string
	Path      string
	Filter    string
	At        time.Time
}

// Count pairs a label with how often it was seen.
type Count struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Stats aggregates visits without exposing individual rows.
type Stats struct {
	TotalVisits    int64   `json:"total_visits"`
	UniqueVisitors int64   `json:"unique_visitors"`
	VisitsToday    int64   `json:"visits_today"`
	VisitsThisWeek int64   `json:"visits_this_week"`
	TopPaths       []Count `json:"top_paths"`
	TopFilters     []Count `json:"top_filters"`
}

type Store struct {
	db   *sql.DB
	salt string
}

// New opens (or creates) the database at dbPath. An empty salt is replaced
// with a random one, so hashes only correlate within one process lifetime.
func New(dbPath, salt string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if salt == "" {
		salt, err = randomSalt()
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &Store{db: db, salt: salt}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:", "test-salt")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT NOT NULL,
		filter TEXT,
		visited_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at);
	`)
	if err != nil {
		return fmt.Errorf("create visits table: %w", err)
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

// HashIP returns the salted, truncated hash stored in place of ip.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores one visit.
func (s *Store) Record(ctx context.Context, v Visit) error {
	if v.At.IsZero() {
		v.At = time.Now()
	}
	var filter sql.NullString
	if v.Filter != "" {
		filter = sql.NullString{String: v.Filter, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visits (hashed_ip, user_agent, path, filter, visited_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.HashIP(v.IP), v.UserAgent, v.Path, filter, v.At.Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Stats summarises every stored visit relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (Stats, error) {
	var st Stats

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(DISTINCT hashed_ip) FROM visits",
	).Scan(&st.TotalVisits, &st.UniqueVisitors); err != nil {
		return Stats{}, fmt.Errorf("count visits: %w", err)
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM visits WHERE visited_at >= ?", startOfDay.Unix(),
	).Scan(&st.VisitsToday); err != nil {
		return Stats{}, fmt.Errorf("count visits today: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM visits WHERE visited_at >= ?", now.AddDate(0, 0, -7).Unix(),
	).Scan(&st.VisitsThisWeek); err != nil {
		return Stats{}, fmt.Errorf("count visits this week: %w", err)
	}

	var err error
	st.TopPaths, err = s.top(ctx, "path")
	if err != nil {
		return Stats{}, err
	}
	st.TopFilters, err = s.top(ctx, "filter")
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

// top is only called with column names from this file.
func (s *Store) top(ctx context.Context, column string) ([]Count, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %[1]s, COUNT(*) AS n FROM visits
		WHERE %[1]s IS NOT NULL AND %[1]s != ''
		GROUP BY %[1]s
		ORDER BY n DESC, %[1]s ASC
		LIMIT 5
	`, column))
	if err != nil {
		return nil, fmt.Errorf("top %s: %w", column, err)
	}
	defer rows.Close()

	counts := []Count{}
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("scan top %s: %w", column, err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Cleanup deletes visits older than cutoff and reports how many went.
func (s *Store) Cleanup(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM visits WHERE visited_at < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	return result.RowsAffected()
}

// RunCleanup purges visits older than retention once at start and then every
// interval until ctx is done.
func (s *Store) RunCleanup(ctx context.Context, retention, interval time.Duration, logger *slog.Logger) {
	purge := func() {
		n, err := s.Cleanup(ctx, time.Now().Add(-retention))
		switch {
		case err != nil && ctx.Err() == nil:
			logger.Error("visit cleanup failed", "error", err)
		case n > 0:
			logger.Info("purged old visits", "rows", n)
		}
	}

	purge()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purge()
		}
	}
}

// StartCleanup runs RunCleanup in the background. The returned stop func
// cancels the loop and waits for it to return, so the store can be closed
// right after.
func (s *Store) StartCleanup(ctx context.Context, retention, interval time.Duration, logger *slog.Logger) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.RunCleanup(ctx, retention, interval, logger)
	}()
	return func() {
		cancel()
		<-done
	}
}

func randomSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}
