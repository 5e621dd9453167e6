// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the home directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{
		"TOOLBENCH_DIFF_ALGORITHM", "TOOLBENCH_USAGE_BACKEND", "TOOLBENCH_USAGE_PATH",
		"TOOLBENCH_NO_HIGHLIGHT", "TOOLBENCH_THEME",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	return home
}

func writeConfig(t *testing.T, home, name, content string) string {
	t.Helper()
	dir := filepath.Join(home, ".toolbench")
	require.NoError(t, os.MkdirAll(dir, 0700))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "greedy", cfg.Diff.Algorithm)
	assert.Equal(t, 3, cfg.Diff.Context)
	assert.Equal(t, "root", cfg.Convert.XMLRoot)
	assert.Equal(t, "file", cfg.Usage.Backend)
	assert.True(t, cfg.Output.Highlight)
}

func TestLoad_NoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "config.toml", "[diff]\nalgorithm = \"lcs\"\ncontext = 5\n"},
		{"json", "config.json", `{"diff": {"algorithm": "lcs", "context": 5}}`},
		{"yaml", "config.yaml", "diff:\n  algorithm: lcs\n  context: 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			writeConfig(t, home, tt.file, tt.content)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, "lcs", cfg.Diff.Algorithm)
			assert.Equal(t, 5, cfg.Diff.Context)

			// Keys absent from the file keep their defaults
			assert.Equal(t, "root", cfg.Convert.XMLRoot)
			assert.True(t, cfg.Output.Highlight)
		})
	}
}

func TestLoad_TOMLWinsOverJSON(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "config.toml", "[output]\ntheme = \"light\"\n")
	writeConfig(t, home, "config.json", `{"output": {"theme": "dark"}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Output.Theme)

	active, err := ActivePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".toolbench", "config.toml"), active)
}

func TestLoad_BrokenFileFallsBack(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "config.toml", "[diff\nalgorithm=")

	cfg, err := Load()
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "greedy", cfg.Diff.Algorithm)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diff:\n  algorithm: myers\n  context: -1\n"), 0600))
	isolate(t)

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Equal(t, "diff.algorithm", verrs[0].Field)
	assert.Equal(t, "diff.context", verrs[1].Field)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		field  string
	}{
		{"valid default config", func(c *Config) {}, ""},
		{"unknown source format", func(c *Config) { c.Convert.DefaultFrom = "xls" }, "convert.default_from"},
		{"unknown target format", func(c *Config) { c.Convert.DefaultTo = "toml" }, "convert.default_to"},
		{"yml alias accepted", func(c *Config) { c.Convert.DefaultTo = "yml" }, ""},
		{"xml root with space", func(c *Config) { c.Convert.XMLRoot = "my root" }, "convert.xml_root"},
		{"xml root leading digit", func(c *Config) { c.Convert.XMLRoot = "1root" }, "convert.xml_root"},
		{"xml root reserved prefix", func(c *Config) { c.Convert.XMLRoot = "xmlData" }, "convert.xml_root"},
		{"xml root with dash", func(c *Config) { c.Convert.XMLRoot = "data-set" }, ""},
		{"unknown algorithm", func(c *Config) { c.Diff.Algorithm = "patience" }, "diff.algorithm"},
		{"zero context allowed", func(c *Config) { c.Diff.Context = 0 }, ""},
		{"negative context", func(c *Config) { c.Diff.Context = -2 }, "diff.context"},
		{"narrow width", func(c *Config) { c.Diff.Width = 10 }, "diff.width"},
		{"invalid color", func(c *Config) { c.Output.Color = "sometimes" }, "output.color"},
		{"invalid theme", func(c *Config) { c.Output.Theme = "solarized" }, "output.theme"},
		{"invalid backend", func(c *Config) { c.Usage.Backend = "redis" }, "usage.backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "expected ValidateErrors, got %v", err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestValidateErrors_Error(t *testing.T) {
	errs := ValidateErrors{
		{Field: "diff.context", Message: "bad"},
		{Field: "output.theme", Message: "worse"},
	}
	assert.Equal(t, "diff.context: bad; output.theme: worse", errs.Error())
	assert.Equal(t, "no validation errors", ValidateErrors{}.Error())
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TOOLBENCH_DIFF_ALGORITHM", "lcs")
	t.Setenv("TOOLBENCH_USAGE_BACKEND", "sqlite")
	t.Setenv("TOOLBENCH_USAGE_PATH", "/tmp/usage.db")
	t.Setenv("TOOLBENCH_NO_HIGHLIGHT", "true")
	t.Setenv("TOOLBENCH_THEME", "light")
	t.Setenv("NO_COLOR", "")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "lcs", cfg.Diff.Algorithm)
	assert.Equal(t, "sqlite", cfg.Usage.Backend)
	assert.Equal(t, "/tmp/usage.db", cfg.Usage.Path)
	assert.False(t, cfg.Output.Highlight)
	assert.Equal(t, "light", cfg.Output.Theme)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "config.toml", "[diff]\nalgorithm = \"lcs\"\n")
	t.Setenv("TOOLBENCH_DIFF_ALGORITHM", "greedy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "greedy", cfg.Diff.Algorithm)
}

// =============================================================================
// SAVE
// =============================================================================

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	isolate(t)

	cfg := Default()
	cfg.Diff.Algorithm = "lcs"
	cfg.Diff.Width = 120
	cfg.Output.MarkdownPreview = false

	savers := map[string]func(*Config, string) error{
		"config.toml": SaveTOML,
		"config.json": SaveJSON,
		"config.yaml": SaveYAML,
	}
	for name, save := range savers {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, save(cfg, path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			if os.PathSeparator == '/' {
				assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
			}

			loaded, err := LoadFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestSave_DefaultLocation(t *testing.T) {
	home := isolate(t)

	require.NoError(t, Save(Default()))

	data, err := os.ReadFile(filepath.Join(home, ".toolbench", "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# toolbench configuration file")
	assert.Contains(t, string(data), "[diff]")
}

// =============================================================================
// GET / SET
// =============================================================================

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("diff.algorithm")
	require.NoError(t, err)
	assert.Equal(t, "greedy", v)

	v, err = cfg.Get("output.markdown-preview")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	require.NoError(t, cfg.Set("diff.context", "7"))
	assert.Equal(t, 7, cfg.Diff.Context)

	require.NoError(t, cfg.Set("diff.ignore_trailing_space", "yes"))
	assert.True(t, cfg.Diff.IgnoreTrailingSpace)

	require.NoError(t, cfg.Set("diff.width", 100))
	assert.Equal(t, 100, cfg.Diff.Width)

	assert.Error(t, cfg.Set("diff.context", "many"))
	assert.Error(t, cfg.Set("diff.context", true))
}

func TestConfig_GetErrors(t *testing.T) {
	cfg := Default()

	for _, key := range []string{"", "nope", "diff.nope", "version.sub", "diff"} {
		_, err := cfg.Get(key)
		assert.Error(t, err, key)
	}
}

func TestGetAllKeys_Resolvable(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestConfig_String(t *testing.T) {
	cfg := Default()
	assert.Contains(t, cfg.String(), `"algorithm": "greedy"`)
	assert.Contains(t, cfg.String(), `"xml_root": "root"`)
}
