// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jeranaias/twin-tui/internal/config"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
		Long: "Manages the twin configuration file (~/.twin/config.toml unless\n" +
			"--config is given). Keys use dot notation, e.g. ui.theme.",
	}
	cmd.AddCommand(newConfigShowCmd(g))
	cmd.AddCommand(newConfigGetCmd(g))
	cmd.AddCommand(newConfigSetCmd(g))
	cmd.AddCommand(newConfigPathCmd(g))
	return cmd
}

func newConfigShowCmd(g *globals) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), cfg)
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of TOML")
	return cmd
}

func newConfigGetCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Print one configuration value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.GetAllKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			v, err := cfg.Get(args[0])
			if err != nil {
				return fmt.Errorf("config get: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
			return nil
		},
	}
}

func newConfigSetCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one configuration value and save it",
		Example:   "  twin config set backend.base_url http://twin.local:8000\n  twin config set ui.theme light",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.GetAllKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.writePath()
			if err != nil {
				return err
			}

			cfg := config.Default()
			if _, statErr := os.Stat(path); statErr == nil {
				if cfg, err = config.ReadFile(path); err != nil {
					return fmt.Errorf("config set: %w", err)
				}
			} else if !errors.Is(statErr, fs.ErrNotExist) {
				return fmt.Errorf("config set: %w", statErr)
			}

			if err := cfg.Set(args[0], args[1]); err != nil {
				return fmt.Errorf("config set: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config set: %w", err)
			}
			if err := config.SaveTo(cfg, path); err != nil {
				return fmt.Errorf("config set: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
			return nil
		},
	}
}

func newConfigPathCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.writePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// writePath is the file config set writes: --config, else the file in
// use, else ~/.twin/config.toml.
func (g *globals) writePath() (string, error) {
	if g.configPath != "" {
		return g.configPath, nil
	}
	if p := config.FoundPath(); p != "" {
		return p, nil
	}
	return config.ConfigPathTOML()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ",")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
