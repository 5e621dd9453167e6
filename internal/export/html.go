// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/jeranaias/toolbench/internal/diff"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports diff results to a self-contained HTML page with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a diff result to HTML format.
func (e *HTMLExporter) Export(result *diff.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("result is nil")
	}

	theme := e.options.Theme
	if theme != "light" {
		theme = "dark"
	}
	title := titleOf(result, e.options)

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString("    <meta name=\"generator\" content=\"toolbench\">\n")
	sb.WriteString(css)
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", theme))
	sb.WriteString("    <div class=\"container\">\n")

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(title)))
	sb.WriteString(fmt.Sprintf("            <p class=\"summary\">%s</p>\n", html.EscapeString(result.Summary())))
	if e.options.IncludeMetadata {
		sb.WriteString("            <div class=\"metadata\">\n")
		sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Algorithm:</strong> %s</span>\n", html.EscapeString(result.Algorithm)))
		sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Exported:</strong> %s</span>\n", formatTimestamp(now())))
		sb.WriteString("            </div>\n")
	}
	sb.WriteString("        </header>\n")

	sb.WriteString("        <table class=\"diff\">\n")
	sb.WriteString(fmt.Sprintf("            <thead><tr><th></th><th>%s</th><th></th><th>%s</th></tr></thead>\n",
		html.EscapeString(nameOr(result.OldName, "original")),
		html.EscapeString(nameOr(result.NewName, "modified"))))
	sb.WriteString("            <tbody>\n")
	for _, op := range result.Operations {
		sb.WriteString(renderRow(op))
	}
	sb.WriteString("            </tbody>\n")
	sb.WriteString("        </table>\n")

	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// renderRow renders one operation as a table row with a per-kind class.
func renderRow(op diff.Operation) string {
	oldNum, newNum := "", ""
	oldText, newText := "", ""

	if op.Kind != diff.Insert {
		oldNum = fmt.Sprintf("%d", op.OldIndex+1)
		oldText = html.EscapeString(op.OldLine)
	}
	if op.Kind != diff.Delete {
		newNum = fmt.Sprintf("%d", op.NewIndex+1)
		newText = html.EscapeString(op.NewLine)
	}

	return fmt.Sprintf("                <tr class=\"op-%s\"><td class=\"num\">%s</td><td class=\"old\">%s</td><td class=\"num\">%s</td><td class=\"new\">%s</td></tr>\n",
		op.Kind, oldNum, oldText, newNum, newText)
}

const css = `    <style>
        body { margin: 0; font-family: -apple-system, "Segoe UI", sans-serif; }
        .dark-theme { background: #1e1e2e; color: #cdd6f4; }
        .light-theme { background: #ffffff; color: #1e1e2e; }
        .container { max-width: 1200px; margin: 0 auto; padding: 24px; }
        .header h1 { margin: 0 0 8px; font-size: 1.4em; }
        .summary { font-family: monospace; font-size: 1.1em; }
        .meta-item { margin-right: 16px; opacity: 0.8; }
        table.diff { width: 100%; border-collapse: collapse; font-family: monospace; font-size: 13px; }
        table.diff td { padding: 1px 8px; white-space: pre-wrap; vertical-align: top; }
        table.diff td.num { width: 1%; text-align: right; opacity: 0.5; user-select: none; }
        tr.op-insert td.new, tr.op-replace td.new { background: rgba(64, 160, 43, 0.25); }
        tr.op-delete td.old, tr.op-replace td.old { background: rgba(210, 15, 57, 0.25); }
    </style>
`
