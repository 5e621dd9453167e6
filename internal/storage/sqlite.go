// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SQLITE STORE
// =============================================================================

// SQLiteStore keeps counters and an invocation log in SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string

	// now is replaced in tests.
	now func() time.Time
}

var (
	_ Store          = (*SQLiteStore)(nil)
	_ EventLister    = (*SQLiteStore)(nil)
	_ LastUsedReader = (*SQLiteStore)(nil)
	_ Located        = (*SQLiteStore)(nil)
)

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path, now: time.Now}, nil
}

// Path returns the database location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Increment adds one to tool's counter and logs an event.
func (s *SQLiteStore) Increment(ctx context.Context, tool string) (int64, error) {
	if err := checkTool(tool); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	at := s.now().UnixNano()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO usage (tool, count, last_used) VALUES (?, 1, ?)
		ON CONFLICT(tool) DO UPDATE SET count = count + 1, last_used = excluded.last_used`,
		tool, at)
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", tool, err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO events (id, tool, at) VALUES (?, ?, ?)",
		uuid.NewString(), tool, at); err != nil {
		return 0, fmt.Errorf("log event: %w", err)
	}

	var count int64
	if err := tx.QueryRowContext(ctx, "SELECT count FROM usage WHERE tool = ?", tool).Scan(&count); err != nil {
		return 0, fmt.Errorf("read count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return count, nil
}

// Counts returns every counter.
func (s *SQLiteStore) Counts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tool, count FROM usage")
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var tool string
		var n int64
		if err := rows.Scan(&tool, &n); err != nil {
			return nil, err
		}
		counts[tool] = n
	}
	return counts, rows.Err()
}

// LastUsed returns when tool last ran. ok is false if it never has.
func (s *SQLiteStore) LastUsed(ctx context.Context, tool string) (t time.Time, ok bool, err error) {
	var at int64
	err = s.db.QueryRowContext(ctx, "SELECT last_used FROM usage WHERE tool = ?", tool).Scan(&at)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(0, at), true, nil
}

// Recent returns the latest n events, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]Event, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, tool, at FROM events ORDER BY at DESC, rowid DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var at int64
		if err := rows.Scan(&e.ID, &e.Tool, &at); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Reset deletes all counters and events.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM usage", "DELETE FROM events"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset usage: %w", err)
		}
	}
	return tx.Commit()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
