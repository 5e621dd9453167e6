// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"

	"github.com/jeranaias/toolbench/internal/diff"
)

// TextExporter exports diff results as a plain unified diff, suitable for patch files.
type TextExporter struct {
	options *Options
}

// NewTextExporter creates a new unified diff exporter.
func NewTextExporter(opts *Options) *TextExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TextExporter{options: opts}
}

// Export converts a diff result to unified diff text. Identical inputs produce
// an empty file.
func (e *TextExporter) Export(result *diff.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("result is nil")
	}
	return []byte(diff.FormatUnified(result.Operations, nameOr(result.OldName, "original"),
		nameOr(result.NewName, "modified"), e.options.Context)), nil
}

// FileExtension returns the file extension for unified diffs.
func (e *TextExporter) FileExtension() string {
	return ".diff"
}

// MimeType returns the MIME type for unified diffs.
func (e *TextExporter) MimeType() string {
	return "text/x-diff"
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
