// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/jeranaias/toolbench/internal/util"
)

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore keeps counters in a single JSON object on disk. Each increment is
// a read-modify-write followed by an atomic replace.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var (
	_ Store   = (*FileStore)(nil)
	_ Located = (*FileStore)(nil)
)

// NewFileStore creates a store backed by path. The file is created on the
// first increment.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the counter file location.
func (s *FileStore) Path() string {
	return s.path
}

// Increment adds one to tool's counter.
func (s *FileStore) Increment(ctx context.Context, tool string) (int64, error) {
	if err := checkTool(tool); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counts, err := s.load()
	if err != nil {
		return 0, err
	}
	counts[tool]++

	if err := s.save(counts); err != nil {
		return 0, err
	}
	return counts[tool], nil
}

// Counts returns a copy of the stored counters.
func (s *FileStore) Counts(ctx context.Context) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Reset removes the counter file.
func (s *FileStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reset usage: %w", err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() (map[string]int64, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read usage: %w", err)
	}

	counts := map[string]int64{}
	if len(data) == 0 {
		return counts, nil
	}
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return counts, nil
}

func (s *FileStore) save(counts map[string]int64) error {
	data, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFileWithDir(s.path, data, 0600, 0700); err != nil {
		return fmt.Errorf("write usage: %w", err)
	}
	return nil
}
