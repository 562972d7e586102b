// Package history keeps an append-only SQLite log of scenario outcomes so
// repeated suite runs against a flaky backend can be compared over time.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one recorded scenario execution.
type Entry struct {
	ID        int64
	Session   string
	Scenario  string
	Pass      bool
	Branch    string
	Errors    string
	StartedAt time.Time
	Elapsed   time.Duration
}

// Store wraps the SQLite database holding the run log.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path. Use ":memory:" for
// an ephemeral store. Pragmas and schema are applied automatically; the
// call is idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	// SQLite supports a single writer; keep one connection to avoid
	// SQLITE_BUSY under concurrent recording.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one scenario outcome.
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (session, scenario, pass, branch, errors, started_at, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Session, e.Scenario, boolToInt(e.Pass), e.Branch, e.Errors,
		e.StartedAt.UTC().Format(time.RFC3339Nano), e.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record run for %s: %w", e.Scenario, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session, scenario, pass, branch, errors, started_at, elapsed_ms
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			pass      int
			startedAt string
			elapsedMS int64
		)
		if err := rows.Scan(&e.ID, &e.Session, &e.Scenario, &pass, &e.Branch, &e.Errors, &startedAt, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		e.Pass = pass != 0
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			e.StartedAt = t
		}
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
