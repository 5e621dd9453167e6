// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionInfo is the --json payload of the version command.
type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        exactArgs(0),
		Annotations: map[string]string{lenientAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if a.jsonMode {
				return NewJSONResponse("version", info).Print(a.out)
			}

			fmt.Fprintf(a.out, "%s %s\n", paint(a.color, TitleStyle, "toolbench"), info.Version)
			fmt.Fprintf(a.out, "%s%s\n", a.label("commit", 12), info.GitCommit)
			fmt.Fprintf(a.out, "%s%s\n", a.label("built", 12), info.BuildDate)
			fmt.Fprintf(a.out, "%s%s\n", a.label("go", 12), info.GoVersion)
			fmt.Fprintf(a.out, "%s%s\n", a.label("platform", 12), info.Platform)
			return nil
		},
	}
}
