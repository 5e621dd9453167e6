// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/toolbench/internal/diff"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports diff results to JSON format.
type JSONExporter struct {
	options *Options
}

type jsonReport struct {
	Title      string           `json:"title"`
	OldName    string           `json:"old_name,omitempty"`
	NewName    string           `json:"new_name,omitempty"`
	Algorithm  string           `json:"algorithm"`
	Summary    string           `json:"summary"`
	Stats      diff.Stats       `json:"stats"`
	Operations []diff.Operation `json:"operations"`
	Exported   string           `json:"exported,omitempty"`
	Generator  string           `json:"generator,omitempty"`
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a diff result to JSON format.
func (e *JSONExporter) Export(result *diff.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("result is nil")
	}

	report := jsonReport{
		Title:      titleOf(result, e.options),
		OldName:    result.OldName,
		NewName:    result.NewName,
		Algorithm:  result.Algorithm,
		Summary:    result.Summary(),
		Stats:      result.Stats,
		Operations: result.Operations,
	}
	if report.Operations == nil {
		report.Operations = []diff.Operation{}
	}
	if e.options.IncludeMetadata {
		report.Exported = now().Format(time.RFC3339)
		report.Generator = "toolbench"
	}

	return json.MarshalIndent(report, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
