// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/twin-tui/internal/dashboard"
	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/ui/components"
	"github.com/jeranaias/twin-tui/internal/util"
)

func newDashboardCmd(g *globals) *cobra.Command {
	var once, asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show knowledge base statistics",
		Long: "Prints the dashboard snapshot: stats, indexed files and recent history.\n" +
			"Without --once it keeps polling at dashboard.poll_interval until Ctrl+C.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.setupLogging(cmd.ErrOrStderr()); err != nil {
				return err
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if once {
				if !asJSON {
					if err := client.Ping(cmd.Context()); err != nil {
						return fmt.Errorf("dashboard: %w", describe(client, err))
					}
					fmt.Fprintln(out, field("Backend", client.BaseURL()+" reachable"))
				}
				snap, err := client.Dashboard(cmd.Context())
				if err != nil {
					return fmt.Errorf("dashboard: %w", describe(client, err))
				}
				return printSnapshot(out, snap, asJSON)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var mu sync.Mutex
			poller := dashboard.New(client, dashboard.Options{
				Interval: g.cfg.Dashboard.PollInterval.Duration,
				OnUpdate: func(snap *model.Snapshot) {
					mu.Lock()
					defer mu.Unlock()
					if err := printSnapshot(out, snap, asJSON); err != nil {
						g.logger.Warn("print snapshot", "error", err)
					}
				},
				OnError: func(failures int) {
					mu.Lock()
					defer mu.Unlock()
					fmt.Fprintln(out, warningStyle.Render(
						fmt.Sprintf("[!] %s unavailable (%d consecutive failures)", client.BaseURL(), failures)))
				},
				Logger: g.logger,
			})
			stopPoll := poller.Start(ctx)
			<-ctx.Done()
			stopPoll()
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "fetch one snapshot and exit")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printSnapshot(w io.Writer, snap *model.Snapshot, asJSON bool) error {
	if asJSON {
		return writeJSON(w, snap)
	}

	fmt.Fprintln(w, titleStyle.Render("Knowledge Twin dashboard"))
	if !snap.FetchedAt.IsZero() {
		fmt.Fprintln(w, mutedStyle.Render("fetched "+snap.FetchedAt.Format("15:04:05")))
	}
	for _, card := range components.StatCards(snap.Stats) {
		fmt.Fprintln(w, field(card.Label, card.Value))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Top files"))
	files := snap.TopFiles(5)
	if len(files) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No files indexed yet."))
	}
	for _, f := range files {
		fmt.Fprintln(w, field(string(f.Size), f.Title+" "+mutedStyle.Render(f.Type)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Recent history"))
	if len(snap.RecentHistory) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No activity yet."))
	}
	for _, h := range snap.RecentHistory {
		speaker := twinStyle.Render(h.Speaker())
		if h.IsUser() {
			speaker = youStyle.Render(h.Speaker())
		}
		fmt.Fprintln(w, speaker+" "+util.TruncateWidth(strings.ReplaceAll(h.Content, "\n", " "), 72))
	}
	fmt.Fprintln(w)
	return nil
}

func newFilesCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List indexed documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.setupLogging(cmd.ErrOrStderr()); err != nil {
				return err
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			files, err := client.Files(cmd.Context())
			if err != nil {
				return fmt.Errorf("files: %w", describe(client, err))
			}
			return printFiles(cmd.OutOrStdout(), files, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printFiles(w io.Writer, files []model.FileDescriptor, asJSON bool) error {
	if asJSON {
		if files == nil {
			files = []model.FileDescriptor{}
		}
		return writeJSON(w, files)
	}
	if len(files) == 0 {
		fmt.Fprintln(w, components.DocumentsEmptyText)
		return nil
	}
	for _, f := range files {
		line := fmt.Sprintf("%-6s %-40s %10s  %s", string(f.ID), util.TruncateWidth(f.Title, 40), string(f.Size), f.Type)
		if len(f.Tags) > 0 {
			line += "  " + mutedStyle.Render("#"+strings.Join(f.Tags, " #"))
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, mutedStyle.Render(strconv.Itoa(len(files))+" documents"))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

