// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/toolbench/internal/diff"
)

func fixedNow(t *testing.T) {
	t.Helper()
	saved := now
	now = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }
	t.Cleanup(func() { now = saved })
}

func sampleResult() *diff.Result {
	res := diff.Compute("alpha\nbeta\ngamma", "alpha\nBETA\ngamma\ndelta", diff.Options{})
	res.OldName = "old.txt"
	res.NewName = "new.txt"
	return res
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONExporter(t *testing.T) {
	fixedNow(t)

	out, err := NewJSONExporter(nil).Export(sampleResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "old.txt vs new.txt", decoded["title"])
	assert.Equal(t, "greedy", decoded["algorithm"])
	assert.Equal(t, "+1 -0 ~1", decoded["summary"])
	assert.Equal(t, "2025-03-14T09:26:53Z", decoded["exported"])
	assert.Equal(t, "toolbench", decoded["generator"])

	ops, ok := decoded["operations"].([]any)
	require.True(t, ok)
	require.Len(t, ops, 4)
	assert.Equal(t, "replace", ops[1].(map[string]any)["kind"])
}

func TestJSONExporter_NoMetadataEmptyOps(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeMetadata = false

	out, err := NewJSONExporter(opts).Export(diff.Compute("", "", diff.Options{}))
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `"operations": []`)
	assert.NotContains(t, s, "exported")
	assert.Contains(t, s, `"title": "original vs modified"`)
}

// =============================================================================
// MARKDOWN
// =============================================================================

func TestMarkdownExporter(t *testing.T) {
	fixedNow(t)

	out, err := NewMarkdownExporter(nil).Export(sampleResult())
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "---\ntitle: old.txt vs new.txt\n"))
	assert.Contains(t, s, "exported: 2025-03-14T09:26:53Z\n")
	assert.Contains(t, s, "# old.txt vs new.txt\n")
	assert.Contains(t, s, "- **Inserted**: 1\n")
	assert.Contains(t, s, "```diff\n--- old.txt\n+++ new.txt\n")
	assert.Contains(t, s, "-beta\n+BETA\n")
}

func TestMarkdownExporter_Identical(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(diff.Compute("x", "x", diff.Options{}))
	require.NoError(t, err)
	assert.Contains(t, string(out), "_No differences._")
	assert.NotContains(t, string(out), "```")
}

func TestMarkdownExporter_FenceLongerThanContent(t *testing.T) {
	res := diff.Compute("```go", "````", diff.Options{})
	out, err := NewMarkdownExporter(nil).Export(res)
	require.NoError(t, err)
	assert.Contains(t, string(out), "`````diff\n")
}

func TestEscapeYAML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"a: b", `"a: b"`},
		{"line1\nline2", `"line1\nline2"`},
		{`say "hi"`, `"say \"hi\""`},
		{" padded", `" padded"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeYAML(tt.input))
		})
	}
}

func TestMarkdownExporter_TitleInjection(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "evil\n---\ninjected: true"

	out, err := NewMarkdownExporter(opts).Export(sampleResult())
	require.NoError(t, err)
	assert.Contains(t, string(out), `title: "evil\n---\ninjected: true"`)
	assert.NotContains(t, string(out), "\ninjected: true\n")
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `\# \*bold\* \_x\_ \[link\]`, escapeMarkdown("# *bold* _x_ [link]"))
}

// =============================================================================
// HTML
// =============================================================================

func TestHTMLExporter(t *testing.T) {
	fixedNow(t)

	out, err := NewHTMLExporter(nil).Export(sampleResult())
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
	assert.Contains(t, s, `<body class="dark-theme">`)
	assert.Contains(t, s, "<title>old.txt vs new.txt</title>")
	assert.Contains(t, s, `<tr class="op-replace">`)
	assert.Contains(t, s, `<tr class="op-insert"><td class="num"></td><td class="old"></td><td class="num">4</td><td class="new">delta</td></tr>`)
	assert.Contains(t, s, "2025-03-14 09:26:53")
}

func TestHTMLExporter_EscapesContent(t *testing.T) {
	res := diff.Compute("<b>safe</b>", "<script>alert('x')</script>", diff.Options{})
	res.OldName = `"><img src=x>`

	out, err := NewHTMLExporter(nil).Export(res)
	require.NoError(t, err)
	s := string(out)

	assert.NotContains(t, s, "<script>")
	assert.NotContains(t, s, "<img")
	assert.Contains(t, s, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;")
}

func TestHTMLExporter_Theme(t *testing.T) {
	opts := DefaultOptions()
	opts.Theme = "light"
	out, err := NewHTMLExporter(opts).Export(sampleResult())
	require.NoError(t, err)
	assert.Contains(t, string(out), `<body class="light-theme">`)

	opts.Theme = "\"><script>"
	out, err = NewHTMLExporter(opts).Export(sampleResult())
	require.NoError(t, err)
	assert.Contains(t, string(out), `<body class="dark-theme">`)
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

func TestForFormat(t *testing.T) {
	for _, name := range []string{"json", "JSON", "markdown", "md", "html", "text", "txt", "patch", "unified"} {
		_, err := ForFormat(name, nil)
		assert.NoError(t, err, name)
	}

	_, err := ForFormat("pdf", nil)
	assert.Error(t, err)
}

func TestExportToFile(t *testing.T) {
	fixedNow(t)

	opts := DefaultOptions()
	opts.OutputDir = filepath.Join(t.TempDir(), "reports")

	path, err := ExportToFile(sampleResult(), NewTextExporter(opts), opts)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(opts.OutputDir, "diff_old.txt_vs_new.txt_20250314_092653.diff"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "--- old.txt\n"))
}

func TestExportToFile_NilResult(t *testing.T) {
	_, err := ExportToFile(nil, NewJSONExporter(nil), nil)
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a vs b", "a_vs_b"},
		{"dir/file:1", "dir-file-1"},
		{"", "report"},
		{"x\x00y", "x-y"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeFilename(tt.input))
		})
	}

	long := sanitizeFilename(strings.Repeat("a", 200))
	assert.LessOrEqual(t, len(long), 50)
}
