// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch re-runs work when input files change.
//
// A Watcher subscribes to the parent directories of a fixed set of files so
// that editors which save by renaming a temp file over the original are still
// seen. Bursts of events are coalesced by a debounce delay and the handler is
// additionally throttled by a token bucket (golang.org/x/time/rate).
//
// # Usage
//
//	w, err := watch.New([]string{"old.txt", "new.txt"}, func(ctx context.Context, changed []string) {
//	    rerun()
//	}, watch.Options{})
//	if err != nil {
//	    return err
//	}
//	return w.Run(ctx)
package watch
