package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists issued commands and their acknowledgments in SQLite.
// A nil *Store is valid and turns every method into a no-op so callers
// never need to branch on whether journaling is enabled.
type Store struct {
	db   *sql.DB
	path string
}

// Entry is one command round trip to be recorded.
type Entry struct {
	SessionID string
	Command   string
	Response  string
	OK        bool
	Latency   time.Duration
}

// Record is a persisted journal row.
type Record struct {
	ID        int64
	SessionID string
	Command   string
	Response  string
	OK        bool
	Latency   time.Duration
	CreatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS commands (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT    NOT NULL,
    command    TEXT    NOT NULL,
    response   TEXT    NOT NULL DEFAULT '',
    ok         INTEGER NOT NULL,
    latency_ms INTEGER NOT NULL,
    created_at TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_commands_created_at ON commands(created_at);
`

// Open initializes or connects to the journal database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	dbPath := filepath.Join(dir, "journal.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Record inserts one journal entry.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if s == nil {
		return nil
	}
	ok := 0
	if entry.OK {
		ok = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO commands (session_id, command, response, ok, latency_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.SessionID, entry.Command, entry.Response, ok, entry.Latency.Milliseconds(),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record command: %w", err)
	}
	return nil
}

// Recent returns up to limit rows, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, command, response, ok, latency_ms, created_at FROM commands ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec       Record
			ok        int
			latencyMS int64
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Command, &rec.Response, &ok, &latencyMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		rec.OK = ok != 0
		rec.Latency = time.Duration(latencyMS) * time.Millisecond
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			rec.CreatedAt = parsed
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal rows: %w", err)
	}
	return records, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
