// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxInputSize caps how much text ReadText will accept (64 MiB).
const MaxInputSize = 64 << 20

// ReadText reads r as text. A UTF-8 or UTF-16 byte order mark selects the
// encoding and is stripped; input without a BOM is taken as UTF-8.
func ReadText(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	limited := io.LimitReader(r, MaxInputSize+1)

	data, err := io.ReadAll(transform.NewReader(limited, decoder))
	if err != nil {
		return "", fmt.Errorf("decode input: %w", err)
	}
	if len(data) > MaxInputSize {
		return "", fmt.Errorf("input exceeds %d bytes", MaxInputSize)
	}
	return string(data), nil
}

// ReadTextFile reads the file at path with ReadText.
func ReadTextFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	text, err := ReadText(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}
