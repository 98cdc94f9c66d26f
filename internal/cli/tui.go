// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/twin-tui/internal/config"
	"github.com/jeranaias/twin-tui/internal/logging"
	"github.com/jeranaias/twin-tui/internal/ui/app"
)

func newTUICmd(g *globals) *cobra.Command {
	var inboxDir string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen interface (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inboxDir != "" {
				cfg, err := g.load()
				if err != nil {
					return err
				}
				cfg.Upload.InboxDir = inboxDir
			}
			return runTUI(cmd, g)
		},
	}
	cmd.Flags().StringVar(&inboxDir, "inbox", "", "watch a directory and upload files dropped into it")
	return cmd
}

// tuiLogPath is where the TUI logs so the alternate screen stays clean.
func tuiLogPath(cfg *config.Config) string {
	if cfg.Logging.File != "" {
		return cfg.Logging.File
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "twin.log")
	}
	return filepath.Join(dir, "twin.log")
}

func runTUI(cmd *cobra.Command, g *globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   tuiLogPath(cfg),
	})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	logger.Info("starting tui", "version", Version, "backend", cfg.Backend.BaseURL)
	configPath := g.configPath
	return app.Run(ctx, app.RunOptions{
		Config:     cfg,
		ConfigPath: configPath,
		Version:    Version,
		Logger:     logger,
	})
}
