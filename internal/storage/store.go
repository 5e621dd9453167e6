// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidTool is returned when a tool name is empty.
	ErrInvalidTool = errors.New("invalid tool name")

	// ErrUnknownBackend is returned by Open for an unsupported backend.
	ErrUnknownBackend = errors.New("unknown usage backend")

	// ErrCorrupt is returned when a counter file cannot be decoded.
	ErrCorrupt = errors.New("usage data corrupt")
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store counts tool invocations.
type Store interface {
	// Increment adds one to tool's counter and returns the new value.
	Increment(ctx context.Context, tool string) (int64, error)

	// Counts returns a snapshot of every counter.
	Counts(ctx context.Context) (map[string]int64, error)

	// Reset clears all counters.
	Reset(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Event is one recorded invocation.
type Event struct {
	ID   string    `json:"id"`
	Tool string    `json:"tool"`
	At   time.Time `json:"at"`
}

// EventLister is implemented by backends that keep an invocation log.
type EventLister interface {
	Recent(ctx context.Context, n int) ([]Event, error)
}

// LastUsedReader is implemented by backends that record when each tool last ran.
type LastUsedReader interface {
	LastUsed(ctx context.Context, tool string) (time.Time, bool, error)
}

// Located is implemented by backends persisted to a file.
type Located interface {
	Path() string
}

// =============================================================================
// BACKEND SELECTION
// =============================================================================

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendNone   = "none"
)

// Config selects and locates a backend.
type Config struct {
	// Backend is "file", "sqlite" or "none". Empty means "file".
	Backend string

	// Path is the counter file or database. Empty means DefaultPath(Backend).
	Path string
}

// Open returns the Store described by cfg.
func Open(cfg Config) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = BackendFile
	}

	path := cfg.Path
	if path == "" && backend != BackendNone {
		p, err := DefaultPath(backend)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch backend {
	case BackendFile:
		return NewFileStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendNone:
		return NopStore{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// DefaultPath returns ~/.toolbench/usage.json for the file backend and
// ~/.toolbench/usage.db for SQLite.
func DefaultPath(backend string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	name := "usage.json"
	if backend == BackendSQLite {
		name = "usage.db"
	}
	return filepath.Join(home, ".toolbench", name), nil
}

// =============================================================================
// NOP STORE
// =============================================================================

// NopStore discards every increment.
type NopStore struct{}

func (NopStore) Increment(ctx context.Context, tool string) (int64, error) {
	if err := checkTool(tool); err != nil {
		return 0, err
	}
	return 0, nil
}

func (NopStore) Counts(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (NopStore) Reset(ctx context.Context) error { return nil }

func (NopStore) Close() error { return nil }

// =============================================================================
// HELPERS
// =============================================================================

// ToolCount pairs a tool with its counter.
type ToolCount struct {
	Tool  string `json:"tool"`
	Count int64  `json:"count"`
}

// Sorted orders counts by descending count, then by tool name.
func Sorted(counts map[string]int64) []ToolCount {
	out := make([]ToolCount, 0, len(counts))
	for tool, n := range counts {
		out = append(out, ToolCount{Tool: tool, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tool < out[j].Tool
	})
	return out
}

func checkTool(tool string) error {
	if strings.TrimSpace(tool) == "" {
		return ErrInvalidTool
	}
	return nil
}
