// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeranaias/twin-tui/internal/api"
)

func newAskCmd(g *globals) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask one question and print the answer",
		Long: "Sends a single question without conversation history and prints the\n" +
			"answer. Markdown is rendered when stdout is a terminal.",
		Example: "  twin ask what does the quarterly report say about churn\n" +
			"  twin ask --raw \"summarise cat.png\" > summary.md",
		Args: cobra.MinimumNArgs(1),
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
			return runAsk(ctx, cmd.OutOrStdout(), client, strings.Join(args, " "), raw, g.cfg.UI.WordWrap)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the answer without markdown rendering")
	return cmd
}

func runAsk(ctx context.Context, out io.Writer, client *api.Client, question string, raw bool, wrap int) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("ask: question is empty")
	}

	answer, err := client.SendQuery(ctx, question, nil)
	if err != nil {
		return describe(client, err)
	}

	if raw || !isTerminal(out) {
		fmt.Fprintln(out, strings.TrimRight(answer, "\n"))
		return nil
	}
	fmt.Fprint(out, renderMarkdown(answer, wrap))
	return nil
}

// renderMarkdown renders content for the terminal, falling back to the
// plain text when glamour cannot.
func renderMarkdown(content string, wrap int) string {
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
		glamour.WithEmoji(),
	)
	if err != nil {
		return content + "\n"
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content + "\n"
	}
	return rendered
}

// describe turns a client error into a message that names the backend.
func describe(client *api.Client, err error) error {
	switch {
	case api.IsNotReachable(err):
		return fmt.Errorf("backend not reachable at %s: %w", client.BaseURL(), err)
	case api.IsTimeout(err):
		return fmt.Errorf("backend at %s timed out: %w", client.BaseURL(), err)
	case api.IsCanceled(err):
		return fmt.Errorf("cancelled")
	default:
		return err
	}
}
