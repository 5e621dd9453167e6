// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders diff results as shareable files.
//
// # Supported Formats
//
//   - JSON: Machine-readable report with stats and every operation
//   - Markdown: Summary plus a fenced unified diff, with YAML frontmatter
//   - HTML: Self-contained page with a two-column table and embedded CSS
//   - Text: Plain unified diff suitable for patch(1)
//
// # Usage
//
//	res := diff.Compute(original, modified, diff.Options{})
//	exporter, err := export.ForFormat("html", nil)
//	path, err := export.ExportToFile(res, exporter, export.DefaultOptions())
//
// Files are written atomically as diff_<title>_<timestamp><ext>.
package export
