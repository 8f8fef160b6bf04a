// Package resultlog persists command results to a local SQLite
// database so a later `qsq history` can replay what was computed.
package resultlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS
// makes it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS results (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    command    TEXT NOT NULL,
    input      TEXT NOT NULL,
    output     TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Entry is one recorded command invocation.
type Entry struct {
	ID        int64
	Command   string
	Input     string
	Output    string
	CreatedAt time.Time
}

// Log is an append-only result log backed by SQLite.
type Log struct {
	db *sql.DB
}

// Open opens (or creates) the result log at dbPath, enables WAL mode
// and a busy timeout, and creates the schema if missing.
func Open(ctx context.Context, dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("resultlog: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and a lone pooled
	// connection keeps the PRAGMA setup consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("resultlog: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("resultlog: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("resultlog: create schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Record appends one entry.
func (l *Log) Record(ctx context.Context, command, input, output string) error {
	const q = `INSERT INTO results (command, input, output) VALUES (?, ?, ?)`
	if _, err := l.db.ExecContext(ctx, q, command, input, output); err != nil {
		return fmt.Errorf("resultlog: record %q: %w", command, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	const q = `
		SELECT id, command, input, output, created_at
		FROM results ORDER BY id DESC LIMIT ?`
	rows, err := l.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("resultlog: list recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Command, &e.Input, &e.Output, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("resultlog: scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resultlog: iterate entries: %w", err)
	}
	return out, nil
}

// Close releases the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}
