// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists per-tool usage counters.
//
// Every CLI invocation increments the counter of the tool it ran. Counts are
// cosmetic analytics: the file backend only serializes writers inside one
// process, so concurrent processes may lose increments.
//
// # Backends
//
//   - FileStore: flat JSON map written atomically (default)
//   - SQLiteStore: pure Go SQLite with an event log (modernc.org/sqlite)
//   - NopStore: counting disabled
//
// Optional capabilities are discovered with type assertions: EventLister
// (Recent) and LastUsedReader (LastUsed) on SQLiteStore, Located (Path) on
// both file-backed stores.
//
// # Usage
//
//	store, err := storage.Open(storage.Config{Backend: "sqlite"})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	n, err := store.Increment(ctx, "diff")
package storage
