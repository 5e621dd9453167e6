// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/toolbench/internal/convert"
	"github.com/jeranaias/toolbench/internal/diff"
	"github.com/jeranaias/toolbench/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete toolbench configuration.
type Config struct {
	Version string `toml:"version" json:"version" yaml:"version"`

	Convert ConvertConfig `toml:"convert" json:"convert" yaml:"convert"`
	Diff    DiffConfig    `toml:"diff" json:"diff" yaml:"diff"`
	Output  OutputConfig  `toml:"output" json:"output" yaml:"output"`
	Usage   UsageConfig   `toml:"usage" json:"usage" yaml:"usage"`
}

// ConvertConfig holds format conversion defaults.
type ConvertConfig struct {
	// DefaultFrom and DefaultTo are used when neither a flag nor a file
	// extension names the format.
	DefaultFrom string `toml:"default_from" json:"default_from" yaml:"default_from"`
	DefaultTo   string `toml:"default_to" json:"default_to" yaml:"default_to"`

	// XMLRoot is the root element name for JSON to XML.
	XMLRoot string `toml:"xml_root" json:"xml_root" yaml:"xml_root"`
}

// DiffConfig holds diff defaults.
type DiffConfig struct {
	Algorithm           string `toml:"algorithm" json:"algorithm" yaml:"algorithm"` // greedy or lcs
	Context             int    `toml:"context" json:"context" yaml:"context"`
	IgnoreTrailingSpace bool   `toml:"ignore_trailing_space" json:"ignore_trailing_space" yaml:"ignore_trailing_space"`
	NormalizeUnicode    bool   `toml:"normalize_unicode" json:"normalize_unicode" yaml:"normalize_unicode"`

	// Width is the side-by-side layout width. 0 uses the terminal width.
	Width int `toml:"width" json:"width" yaml:"width"`
}

// OutputConfig controls terminal rendering.
type OutputConfig struct {
	Color           string `toml:"color" json:"color" yaml:"color"` // auto, always, never
	Highlight       bool   `toml:"highlight" json:"highlight" yaml:"highlight"`
	Theme           string `toml:"theme" json:"theme" yaml:"theme"` // dark or light
	MarkdownPreview bool   `toml:"markdown_preview" json:"markdown_preview" yaml:"markdown_preview"`
}

// UsageConfig selects where invocation counters are kept.
type UsageConfig struct {
	Backend string `toml:"backend" json:"backend" yaml:"backend"` // file, sqlite, none
	Path    string `toml:"path" json:"path" yaml:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Convert: ConvertConfig{
			DefaultFrom: "csv",
			DefaultTo:   "json",
			XMLRoot:     "root",
		},

		Diff: DiffConfig{
			Algorithm: "greedy",
			Context:   diff.DefaultContext,
		},

		Output: OutputConfig{
			Color:           "auto",
			Highlight:       true,
			Theme:           "dark",
			MarkdownPreview: true,
		},

		Usage: UsageConfig{
			Backend: "file",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the toolbench configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".toolbench"), nil
}

// ConfigPaths returns the candidate config files in load order.
func ConfigPaths() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.json"),
		filepath.Join(dir, "config.yaml"),
	}, nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// ActivePath returns the first existing config file, or the TOML path if none
// exists yet.
func ActivePath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return paths[0], nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the first config file found, applies
// environment overrides and validates the result. Without a file the defaults
// are used. A file that fails to decode is reported alongside the defaults.
func Load() (*Config, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return finish(Default())
	}

	for _, p := range paths {
		if _, statErr := os.Stat(p); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(p)
		if err != nil {
			def, _ := finish(Default())
			return def, err
		}
		return cfg, nil
	}

	return finish(Default())
}

// LoadFromPath loads a config file, choosing the decoder by extension
// (.json, .yaml/.yml, otherwise TOML). Keys absent from the file keep their
// default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return finish(cfg)
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadYAML decodes a YAML file into cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return fillDefaults(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := fillDefaults(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any empty string values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// Convert
	if cfg.Convert.DefaultFrom == "" {
		cfg.Convert.DefaultFrom = defaults.Convert.DefaultFrom
	}
	if cfg.Convert.DefaultTo == "" {
		cfg.Convert.DefaultTo = defaults.Convert.DefaultTo
	}
	if cfg.Convert.XMLRoot == "" {
		cfg.Convert.XMLRoot = defaults.Convert.XMLRoot
	}

	// Diff
	if cfg.Diff.Algorithm == "" {
		cfg.Diff.Algorithm = defaults.Diff.Algorithm
	}

	// Output
	if cfg.Output.Color == "" {
		cfg.Output.Color = defaults.Output.Color
	}
	if cfg.Output.Theme == "" {
		cfg.Output.Theme = defaults.Output.Theme
	}

	// Usage
	if cfg.Usage.Backend == "" {
		cfg.Usage.Backend = defaults.Usage.Backend
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with a short header.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# toolbench configuration file\n")
	buf.WriteString("# Generated by toolbench - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return write(path, buf.Bytes())
}

// SaveJSON writes cfg as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return write(path, append(data, '\n'))
}

// SaveYAML writes cfg as YAML.
func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return write(path, data)
}

func write(path string, data []byte) error {
	if err := util.AtomicWriteFileWithDir(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and returns ValidateErrors listing all problems.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Convert
	if _, err := convert.ParseFormat(c.Convert.DefaultFrom); err != nil {
		add("convert.default_from", "%v", err)
	}
	if _, err := convert.ParseFormat(c.Convert.DefaultTo); err != nil {
		add("convert.default_to", "%v", err)
	}
	if !isXMLName(c.Convert.XMLRoot) {
		add("convert.xml_root", "invalid element name '%s'", c.Convert.XMLRoot)
	}

	// Diff
	if _, err := diff.ParseAlgorithm(c.Diff.Algorithm); err != nil {
		add("diff.algorithm", "%v", err)
	}
	if c.Diff.Context < 0 || c.Diff.Context > 1000 {
		add("diff.context", "must be between 0 and 1000, got %d", c.Diff.Context)
	}
	if c.Diff.Width != 0 && c.Diff.Width < diff.MinSideBySideWidth {
		add("diff.width", "must be 0 (terminal width) or at least %d, got %d", diff.MinSideBySideWidth, c.Diff.Width)
	}

	// Output
	switch strings.ToLower(c.Output.Color) {
	case "auto", "always", "never":
	default:
		add("output.color", "invalid value '%s', must be one of: auto, always, never", c.Output.Color)
	}
	switch strings.ToLower(c.Output.Theme) {
	case "dark", "light":
	default:
		add("output.theme", "invalid theme '%s', must be one of: dark, light", c.Output.Theme)
	}

	// Usage
	switch strings.ToLower(c.Usage.Backend) {
	case "file", "sqlite", "none":
	default:
		add("usage.backend", "invalid backend '%s', must be one of: file, sqlite, none", c.Usage.Backend)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// isXMLName reports whether s is a usable element name.
func isXMLName(s string) bool {
	if s == "" || strings.HasPrefix(strings.ToLower(s), "xml") {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TOOLBENCH_DIFF_ALGORITHM: overrides diff.algorithm
//   - TOOLBENCH_USAGE_BACKEND: overrides usage.backend
//   - TOOLBENCH_USAGE_PATH: overrides usage.path
//   - TOOLBENCH_NO_HIGHLIGHT: set to "1" or "true" to disable highlighting
//   - TOOLBENCH_THEME: overrides output.theme
//   - NO_COLOR: any value forces output.color to "never"
func (c *Config) ApplyEnvOverrides() {
	if algo := os.Getenv("TOOLBENCH_DIFF_ALGORITHM"); algo != "" {
		c.Diff.Algorithm = algo
	}

	if backend := os.Getenv("TOOLBENCH_USAGE_BACKEND"); backend != "" {
		c.Usage.Backend = backend
	}

	if path := os.Getenv("TOOLBENCH_USAGE_PATH"); path != "" {
		c.Usage.Path = path
	}

	if v := os.Getenv("TOOLBENCH_NO_HIGHLIGHT"); v != "" {
		c.Output.Highlight = !(v == "1" || strings.ToLower(v) == "true")
	}

	if theme := os.Getenv("TOOLBENCH_THEME"); theme != "" {
		c.Output.Theme = theme
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Output.Color = "never"
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "diff.algorithm").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strings.ToLower(strVal))
			if err != nil {
				boolVal = strings.ToLower(strVal) == "yes"
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"convert.default_from",
		"convert.default_to",
		"convert.xml_root",
		"diff.algorithm",
		"diff.context",
		"diff.ignore_trailing_space",
		"diff.normalize_unicode",
		"diff.width",
		"output.color",
		"output.highlight",
		"output.theme",
		"output.markdown_preview",
		"usage.backend",
		"usage.path",
	}
}

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
