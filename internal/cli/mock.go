// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/twin-tui/internal/mockbackend"
)

func newMockBackendCmd(g *globals) *cobra.Command {
	var (
		addr    string
		latency time.Duration
	)

	cmd := &cobra.Command{
		Use:   "mock-backend",
		Short: "Serve an in-memory fake backend for local development",
		Long: "Serves /query, /upload, /clear, /dashboard and /files from memory so\n" +
			"the client can be tried without the real knowledge twin service.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.setupLogging(cmd.ErrOrStderr()); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := mockbackend.New(mockbackend.Options{Latency: latency})
			return srv.Start(ctx, mockbackend.StartOpts{Addr: addr, Out: cmd.OutOrStdout()})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address")
	cmd.Flags().DurationVar(&latency, "latency", 0, "delay added to every response")
	return cmd
}
