// Package bookmark persists which sessions a consumer has
// already handled, keyed by (source, session id). The scanning
// engine never reads or writes this store; it exists for
// consumers that act on sessions and must not act twice.
package bookmark

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS bookmarks (
    source     TEXT NOT NULL,
    session_id TEXT NOT NULL,
    marked_at  INTEGER NOT NULL,
    PRIMARY KEY (source, session_id)
);
`

// Bookmark is one handled-session record.
type Bookmark struct {
	Source   string
	ID       string
	MarkedAt time.Time
}

// Store manages the sqlite-backed bookmark set.
type Store struct {
	db *sql.DB
	mu sync.Mutex // serializes writes
}

// makeDSN builds a sqlite connection string with shared pragmas.
func makeDSN(path string) string {
	params := url.Values{}
	params.Set("_journal_mode", "WAL")
	params.Set("_busy_timeout", "5000")
	params.Set("_synchronous", "NORMAL")
	return path + "?" + params.Encode()
}

// Open creates or opens the bookmark database at path,
// initializing the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", makeDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Mark records a session as handled. Marking twice is a no-op
// that keeps the original timestamp.
func (s *Store) Mark(source, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO bookmarks"+
			" (source, session_id, marked_at) VALUES (?, ?, ?)",
		source, id, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("marking %s/%s: %w", source, id, err)
	}
	return nil
}

// Unmark removes a session from the handled set.
func (s *Store) Unmark(source, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"DELETE FROM bookmarks WHERE source = ? AND session_id = ?",
		source, id,
	)
	if err != nil {
		return fmt.Errorf("unmarking %s/%s: %w", source, id, err)
	}
	return nil
}

// Seen reports whether a session was already marked.
func (s *Store) Seen(source, id string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT count(*) FROM bookmarks"+
			" WHERE source = ? AND session_id = ?",
		source, id,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking %s/%s: %w", source, id, err)
	}
	return n > 0, nil
}

// All returns every bookmark ordered by mark time descending.
func (s *Store) All() ([]Bookmark, error) {
	rows, err := s.db.Query(
		"SELECT source, session_id, marked_at FROM bookmarks" +
			" ORDER BY marked_at DESC, source, session_id",
	)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	var all []Bookmark
	for rows.Next() {
		var b Bookmark
		var markedAt int64
		if err := rows.Scan(&b.Source, &b.ID, &markedAt); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		b.MarkedAt = time.Unix(markedAt, 0)
		all = append(all, b)
	}
	return all, rows.Err()
}
