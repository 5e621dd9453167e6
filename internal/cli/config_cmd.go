// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/config"
)

func configCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Show and edit toolbench configuration",
		Long: `Show and edit the toolbench configuration.

The config file is the first of ~/.toolbench/config.toml, config.json and
config.yaml that exists, or the file given with --config. Keys use dot
notation, for example diff.algorithm or output.theme.`,
	}

	c.AddCommand(
		configShowCmd(a),
		configPathCmd(a),
		configInitCmd(a),
		configGetCmd(a),
		configSetCmd(a),
	)
	return c
}

// configFile returns the file config commands read and write.
func (a *app) configFile() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	path, err := config.ActivePath()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return path, nil
}

func configShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.jsonMode {
				return NewJSONResponse("config show", a.cfg).Print(a.out)
			}

			var buf bytes.Buffer
			if err := toml.NewEncoder(&buf).Encode(a.cfg); err != nil {
				return &CommandError{Command: "config", Action: "encode", Err: err}
			}
			return a.writeOutput("config", "", buf.String(), "toml")
		},
	}
}

func configPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the config file location",
		Args:        exactArgs(0),
		Annotations: map[string]string{lenientAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.configFile()
			if err != nil {
				return err
			}
			_, statErr := os.Stat(path)
			exists := statErr == nil

			if a.jsonMode {
				return NewJSONResponse("config path", map[string]interface{}{
					"path":   path,
					"exists": exists,
				}).Print(a.out)
			}
			fmt.Fprintln(a.out, path)
			if !exists {
				fmt.Fprintln(a.errOut, paint(a.color, DimStyle, "(not created yet, run 'toolbench config init')"))
			}
			return nil
		},
	}
}

func configInitCmd(a *app) *cobra.Command {
	var force bool
	var format string

	c := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with the default settings",
		Args:        exactArgs(0),
		Annotations: map[string]string{lenientAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				dir, err := config.ConfigDir()
				if err != nil {
					return &ConfigError{Err: err}
				}
				ext, err := configExt(format)
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "config"+ext)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return usageErrorf("%s already exists (use --force to overwrite)", path)
			}

			if err := saveConfig(config.Default(), path); err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			logEvent(a.log, "config", "init", path)

			if a.jsonMode {
				return NewJSONResponse("config init", map[string]string{"path": path}).Print(a.out)
			}
			fmt.Fprintf(a.out, "%s %s\n", paint(a.color, SuccessStyle, "Created"), path)
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	c.Flags().StringVar(&format, "format", "toml", "file format: toml, json, yaml")
	return c
}

func configGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one configuration value",
		Long:  "Print one configuration value.\n\nKeys:\n  " + strings.Join(config.GetAllKeys(), "\n  "),
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return &UsageError{Err: err}
			}
			if a.jsonMode {
				return NewJSONResponse("config get", map[string]interface{}{args[0]: v}).Print(a.out)
			}
			fmt.Fprintln(a.out, v)
			return nil
		},
	}
}

func configSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "set KEY VALUE",
		Short:       "Change one configuration value in the config file",
		Long:        "Change one configuration value in the config file.\n\nKeys:\n  " + strings.Join(config.GetAllKeys(), "\n  "),
		Args:        exactArgs(2),
		Annotations: map[string]string{lenientAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configFile()
			if err != nil {
				return err
			}

			// Environment overrides must not leak into the file.
			cfg, err := loadFileOnly(path)
			if err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return &UsageError{Err: err}
			}
			if err := cfg.Validate(); err != nil {
				return &UsageError{Err: err}
			}
			if err := saveConfig(cfg, path); err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			logEvent(a.log, "config", "set", args[0], "path", path)

			if a.jsonMode {
				return NewJSONResponse("config set", map[string]string{"key": args[0], "value": args[1], "path": path}).Print(a.out)
			}
			fmt.Fprintf(a.out, "%s %s = %s\n", paint(a.color, SuccessStyle, "Set"), args[0], args[1])
			return nil
		},
	}
}

// loadFileOnly decodes path over the defaults without environment overrides.
// A missing file yields the defaults.
func loadFileOnly(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = config.LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = config.LoadYAML(cfg, path)
	default:
		err = config.LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// saveConfig writes cfg in the format matching path's extension.
func saveConfig(cfg *config.Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return config.SaveJSON(cfg, path)
	case ".yaml", ".yml":
		return config.SaveYAML(cfg, path)
	default:
		return config.SaveTOML(cfg, path)
	}
}

func configExt(format string) (string, error) {
	switch strings.ToLower(format) {
	case "toml", "":
		return ".toml", nil
	case "json":
		return ".json", nil
	case "yaml", "yml":
		return ".yaml", nil
	default:
		return "", usageErrorf("unknown config format %q (supported: toml, json, yaml)", format)
	}
}
