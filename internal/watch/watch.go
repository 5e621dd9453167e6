// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Defaults used when Options fields are zero.
const (
	DefaultDebounce    = 200 * time.Millisecond
	DefaultMinInterval = 500 * time.Millisecond
)

// ErrNoFiles is returned by New when no paths are given.
var ErrNoFiles = errors.New("no files to watch")

// Handler receives the sorted absolute paths that changed since the last call.
type Handler func(ctx context.Context, changed []string)

// Options tunes event coalescing.
type Options struct {
	// Debounce is how long a file must stay quiet before the handler runs.
	Debounce time.Duration

	// MinInterval is the minimum spacing between handler calls.
	MinInterval time.Duration

	// OnError receives watcher errors. Nil drops them.
	OnError func(error)
}

// =============================================================================
// WATCHER
// =============================================================================

// Watcher calls a Handler when any of its files is written, created or
// renamed into place.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]struct{}
	handler  Handler
	debounce time.Duration
	limiter  *rate.Limiter
	onError  func(error)

	mu      sync.Mutex
	pending map[string]time.Time
}

// New creates a Watcher for paths. Watching starts with Run.
func New(paths []string, handler Handler, opts Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	if handler == nil {
		return nil, errors.New("handler cannot be nil")
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = DefaultMinInterval
	}

	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return &Watcher{
		fs:       fsw,
		files:    files,
		handler:  handler,
		debounce: opts.Debounce,
		limiter:  rate.NewLimiter(rate.Every(opts.MinInterval), 1),
		onError:  opts.OnError,
		pending:  make(map[string]time.Time),
	}, nil
}

// Run dispatches change events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	tick := max(w.debounce/4, 10*time.Millisecond)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.notify(event.Name, time.Now())
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if w.onError != nil {
				w.onError(err)
			}

		case now := <-ticker.C:
			if changed := w.due(now); len(changed) > 0 {
				w.handler(ctx, changed)
			}
		}
	}
}

// notify records a change to path if it is one of the watched files.
func (w *Watcher) notify(path string, at time.Time) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	if _, ok := w.files[abs]; !ok {
		return
	}

	w.mu.Lock()
	w.pending[abs] = at
	w.mu.Unlock()
}

// due returns the pending files that have been quiet for the debounce delay,
// or nil if none are ready or the rate limit has not refilled yet.
func (w *Watcher) due(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, path)
		}
	}
	if len(ready) == 0 || !w.limiter.AllowN(now, 1) {
		return nil
	}

	for _, path := range ready {
		delete(w.pending, path)
	}
	sort.Strings(ready)
	return ready
}

// Files returns the watched absolute paths, sorted.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
