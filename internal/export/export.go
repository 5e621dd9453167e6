// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/toolbench/internal/diff"
	"github.com/jeranaias/toolbench/internal/util"
)

// now is replaced in tests.
var now = time.Now

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for diff report exporters.
type Exporter interface {
	// Export renders a diff result in the target format.
	Export(result *diff.Result) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md", ".html").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// IncludeMetadata adds a header with file names, algorithm and export time.
	IncludeMetadata bool

	// Title overrides the report title. Default: "<old> vs <new>".
	Title string

	// Theme for HTML export ("light" or "dark").
	// Default: "dark"
	Theme string

	// Context is the number of unchanged lines around each change in
	// unified output.
	Context int
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		IncludeMetadata: true,
		Theme:           "dark",
		Context:         diff.DefaultContext,
	}
}

// ForFormat returns the exporter for a format name: json, markdown (md),
// html or text (txt, patch).
func ForFormat(name string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return NewJSONExporter(opts), nil
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "html":
		return NewHTMLExporter(opts), nil
	case "text", "txt", "patch", "unified":
		return NewTextExporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (supported: json, markdown, html, text)", name)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders result with exporter and writes it atomically into
// opts.OutputDir. Returns the output file path.
func ExportToFile(result *diff.Result, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if result == nil {
		return "", fmt.Errorf("export failed: result is nil")
	}

	content, err := exporter.Export(result)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	timestamp := now().Format("20060102_150405")
	filename := fmt.Sprintf("diff_%s_%s%s",
		sanitizeFilename(titleOf(result, opts)),
		timestamp,
		exporter.FileExtension(),
	)

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	outputPath := filepath.Join(dir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func titleOf(result *diff.Result, opts *Options) string {
	if opts != nil && opts.Title != "" {
		return opts.Title
	}
	oldName, newName := result.OldName, result.NewName
	if oldName == "" {
		oldName = "original"
	}
	if newName == "" {
		newName = "modified"
	}
	return oldName + " vs " + newName
}

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	s = util.TruncateRunes(s, 50)

	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune('_')
		case r < 32 || r == 127:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "report"
	}
	return b.String()
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
