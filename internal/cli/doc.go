// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the toolbench command tree.
//
// # Commands
//
//   - convert: Convert between CSV, TSV, JSON and YAML
//   - xml: Convert JSON to XML (to-xml) and XML to JSON (to-json)
//   - diff: Compare two texts line by line
//   - stats: Show per-tool usage counters
//   - config: Show, locate, create and edit the configuration
//   - version: Print build information
//
// # Exit Codes
//
//   - 0: success, or diff found the inputs identical
//   - 1: diff found differences, or a general error
//   - 2: invalid usage (unknown flag, wrong argument count)
//   - 3: configuration error
//   - 4: conversion failure (empty input, parse error, invalid shape, invalid XML)
//
// # Usage
//
//	func main() {
//	    cli.Execute()
//	}
package cli
