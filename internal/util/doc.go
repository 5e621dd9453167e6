// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across toolbench.
//
// # Key Functions
//
// Text Input:
//   - ReadText, ReadTextFile: BOM-aware decoding (UTF-8, UTF-16 LE/BE)
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - TruncateWidth, PadWidth: terminal-cell aware layout (side-by-side diff columns)
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	text, err := util.ReadTextFile("data.csv")
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
