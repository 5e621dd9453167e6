// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/toolbench/internal/diff"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports diff results to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a diff result to Markdown format.
func (e *MarkdownExporter) Export(result *diff.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("result is nil")
	}

	title := titleOf(result, e.options)
	var sb strings.Builder

	// YAML frontmatter with metadata
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(title)))
		if result.OldName != "" {
			sb.WriteString(fmt.Sprintf("original: %s\n", escapeYAML(result.OldName)))
		}
		if result.NewName != "" {
			sb.WriteString(fmt.Sprintf("modified: %s\n", escapeYAML(result.NewName)))
		}
		sb.WriteString(fmt.Sprintf("algorithm: %s\n", result.Algorithm))
		sb.WriteString(fmt.Sprintf("exported: %s\n", now().Format(time.RFC3339)))
		sb.WriteString("generator: toolbench\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(title)))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Result**: %s\n", result.Summary()))
	sb.WriteString(fmt.Sprintf("- **Unchanged**: %d\n", result.Stats.Equal))
	sb.WriteString(fmt.Sprintf("- **Inserted**: %d\n", result.Stats.Inserted))
	sb.WriteString(fmt.Sprintf("- **Deleted**: %d\n", result.Stats.Deleted))
	sb.WriteString(fmt.Sprintf("- **Replaced**: %d\n", result.Stats.Replaced))
	sb.WriteString("\n")

	sb.WriteString("## Changes\n\n")
	if result.Stats.Identical() {
		sb.WriteString("_No differences._\n")
	} else {
		body := diff.FormatUnified(result.Operations, nameOr(result.OldName, "original"),
			nameOr(result.NewName, "modified"), e.options.Context)
		fence := codeFence(body)
		sb.WriteString(fence + "diff\n")
		sb.WriteString(body)
		sb.WriteString(fence + "\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// codeFence returns a backtick fence longer than any backtick run in body.
func codeFence(body string) string {
	longest, run := 0, 0
	for _, r := range body {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	// Only escape characters that would break formatting in titles/headings
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML quotes a front matter value when it contains YAML syntax.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
