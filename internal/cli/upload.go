// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jeranaias/twin-tui/internal/session"
	"github.com/jeranaias/twin-tui/internal/ui/components"
)

func newUploadCmd(g *globals) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:     "upload <path>...",
		Short:   "Upload documents or media into the knowledge base",
		Example: "  twin upload report.pdf notes.txt\n  twin upload ~/Pictures/cat.png",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.setupLogging(cmd.ErrOrStderr()); err != nil {
				return err
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ctrl := session.New(client,
				session.WithBaseURL(client.BaseURL()),
				session.WithLogger(g.logger),
			)
			defer ctrl.Close()

			repl := newChatREPL(ctrl, cmd.OutOrStdout(), g.cfg, raw)
			failed := 0
			for _, arg := range args {
				path, err := components.ResolveUploadPath(arg, g.cfg.Upload.Accept)
				if err != nil {
					repl.warn(err.Error())
					failed++
					continue
				}
				out, err := ctrl.SubmitFile(ctx, path)
				if err == nil {
					err = out.Err
				}
				if err != nil {
					repl.warn(fmt.Sprintf("%s: %v", filepath.Base(path), describe(client, err)))
					failed++
					continue
				}
				repl.printAll(out.Added)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d uploads failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print summaries without markdown rendering")
	return cmd
}

func newClearCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the knowledge base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.setupLogging(cmd.ErrOrStderr()); err != nil {
				return err
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			if err := client.ClearSession(cmd.Context()); err != nil {
				return fmt.Errorf("clear: %w", describe(client, err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.ClearNotice)
			return nil
		},
	}
}
