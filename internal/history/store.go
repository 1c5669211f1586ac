// Package history implements the persistent review archive.
//
// It uses SQLite with FTS5 full-text search so past reviews and their
// decision records can be recalled across server restarts. The archive
// is an optional subsystem: the server runs without it when the
// database cannot be opened.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ksuarez/archadvisor/internal/review"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is stubbed in tests.
var timeNow = time.Now

// Review is one archived review run.
type Review struct {
	ID        string `json:"id"`
	Workload  string `json:"workload"`
	Pillars   string `json:"pillars"`
	Context   string `json:"context"`
	ADRCount  int    `json:"adr_count"`
	CreatedAt string `json:"created_at"`
}

// Record is one archived decision record.
type Record struct {
	ID         int64  `json:"id"`
	ReviewID   string `json:"review_id"`
	PracticeID string `json:"practice_id"`
	Title      string `json:"title"`
	Pillar     string `json:"pillar"`
	Risk       string `json:"risk"`
	Status     string `json:"status"`
	Decision   string `json:"decision"`
	CreatedAt  string `json:"created_at"`
}

// SearchResult embeds a Record with its FTS5 rank score.
type SearchResult struct {
	Record
	Rank float64 `json:"rank"`
}

// Config holds archive configuration.
type Config struct {
	// Path is the location of the database file. The parent directory
	// is created if needed.
	Path string
}

// DefaultConfig places the archive under the user's home directory.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{Path: filepath.Join(home, ".archadvisor", "history.db")}
}

// Store is the review archive backed by SQLite + FTS5.
type Store struct {
	db *sql.DB
}

// New opens the archive, creating the database and schema as needed.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	db, err := openDB("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS reviews (
			id         TEXT PRIMARY KEY,
			workload   TEXT NOT NULL,
			pillars    TEXT NOT NULL,
			context    TEXT NOT NULL,
			adr_count  INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS adrs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			review_id   TEXT NOT NULL,
			practice_id TEXT NOT NULL,
			title       TEXT NOT NULL,
			pillar      TEXT NOT NULL,
			risk        TEXT NOT NULL,
			status      TEXT NOT NULL,
			decision    TEXT NOT NULL,
			created_at  TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (review_id) REFERENCES reviews(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_adrs_review   ON adrs(review_id);
		CREATE INDEX IF NOT EXISTS idx_adrs_practice ON adrs(practice_id);
		CREATE INDEX IF NOT EXISTS idx_reviews_created ON reviews(created_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS adrs_fts USING fts5(
			title,
			decision,
			practice_id,
			pillar,
			content='adrs',
			content_rowid='id'
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordReview archives a completed session and its decision records
// in one transaction.
func (s *Store) RecordReview(sess *review.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("history: begin: %w", err)
	}
	defer tx.Rollback()

	pillars := make([]string, len(sess.Pillars))
	for i, p := range sess.Pillars {
		pillars[i] = string(p)
	}
	now := timeNow().UTC().Format(time.RFC3339)

	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO reviews (id, workload, pillars, context, adr_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Workload, strings.Join(pillars, ","), sess.Context, len(sess.ADRs), now,
	); err != nil {
		return fmt.Errorf("history: insert review: %w", err)
	}

	for _, a := range sess.ADRs {
		res, err := tx.Exec(`
			INSERT INTO adrs (review_id, practice_id, title, pillar, risk, status, decision, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			sess.ID, a.PracticeID, a.Title, string(a.Pillar), string(a.Risk),
			string(a.Status), a.Solution.Specific, now,
		)
		if err != nil {
			return fmt.Errorf("history: insert adr %s: %w", a.PracticeID, err)
		}
		rowid, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("history: adr rowid: %w", err)
		}
		if _, err := tx.Exec(`
			INSERT INTO adrs_fts (rowid, title, decision, practice_id, pillar)
			VALUES (?, ?, ?, ?, ?)`,
			rowid, a.Title, a.Solution.Specific, a.PracticeID, string(a.Pillar),
		); err != nil {
			return fmt.Errorf("history: index adr %s: %w", a.PracticeID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history: commit: %w", err)
	}
	return nil
}

// Search runs an FTS5 query over archived decision records, best
// matches first.
func (s *Store) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT a.id, a.review_id, a.practice_id, a.title, a.pillar, a.risk,
		       a.status, a.decision, a.created_at, f.rank
		FROM adrs_fts f
		JOIN adrs a ON a.id = f.rowid
		WHERE adrs_fts MATCH ?
		ORDER BY f.rank
		LIMIT ?`, ftsQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("history: search: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.ReviewID, &r.PracticeID, &r.Title, &r.Pillar,
			&r.Risk, &r.Status, &r.Decision, &r.CreatedAt, &r.Rank); err != nil {
			return nil, fmt.Errorf("history: scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Recent lists the most recently archived reviews.
func (s *Store) Recent(limit int) ([]Review, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT id, workload, pillars, context, adr_count, created_at
		FROM reviews
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.Workload, &r.Pillars, &r.Context, &r.ADRCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// ftsQuery quotes each term so user input cannot break FTS5 syntax.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, ``) + `"`
	}
	return strings.Join(terms, " ")
}
