// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

// SchemaVersion tracks the usage database schema for migrations.
const SchemaVersion = 1

// Schema creates the usage tables. Timestamps are Unix nanoseconds.
const Schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- One row per tool
CREATE TABLE IF NOT EXISTS usage (
    tool TEXT PRIMARY KEY,
    count INTEGER NOT NULL DEFAULT 0,
    last_used INTEGER NOT NULL
) WITHOUT ROWID;

-- Invocation log
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    tool TEXT NOT NULL,
    at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_at ON events(at);
CREATE INDEX IF NOT EXISTS idx_events_tool ON events(tool);
`

// InitMetadata records the schema version.
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`
