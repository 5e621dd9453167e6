// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// newLogger returns the command logger. Output is discarded unless verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	if !verbose {
		w = io.Discard
	}
	return log.New(w, "", log.LstdFlags)
}

// logEvent writes one "EVENT | key=value ..." line. Values containing spaces
// or quotes are quoted.
func logEvent(l *log.Logger, event string, kv ...interface{}) {
	if l == nil || l.Writer() == io.Discard {
		return
	}
	l.Print(formatEvent(event, kv...))
}

func formatEvent(event string, kv ...interface{}) string {
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(event))
	sb.WriteString(" |")
	for i := 0; i+1 < len(kv); i += 2 {
		v := fmt.Sprint(kv[i+1])
		if v == "" || strings.ContainsAny(v, " \t\n\"=") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&sb, " %v=%s", kv[i], v)
	}
	return sb.String()
}
