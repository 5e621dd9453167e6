// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for toolbench.
//
// Supports TOML, JSON and YAML configuration files, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ConvertConfig: Default formats and XML root name
//   - DiffConfig: Algorithm, context and comparison options
//   - OutputConfig: Color, highlighting and theme
//   - UsageConfig: Invocation counter backend
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TOOLBENCH_*, NO_COLOR)
//   - ~/.toolbench/config.toml
//   - ~/.toolbench/config.json
//   - ~/.toolbench/config.yaml
//   - Built-in defaults
//
// Only the first file found is read.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	algo, _ := cfg.Get("diff.algorithm")
package config
