// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/twin-tui/internal/commands"
	"github.com/jeranaias/twin-tui/internal/config"
	"github.com/jeranaias/twin-tui/internal/export"
	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/session"
	"github.com/jeranaias/twin-tui/internal/ui/components"
)

func newChatCmd(g *globals) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start a line-mode chat session",
		Long: "Starts an interactive chat with the knowledge twin. The session keeps\n" +
			"history like the full-screen interface and understands the same slash\n" +
			"commands: /upload, /clear, /export, /help and /quit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.setupLogging(cmd.ErrOrStderr()); err != nil {
				return err
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			ctrl := session.New(client,
				session.WithBaseURL(client.BaseURL()),
				session.WithLogger(g.logger),
			)
			defer ctrl.Close()

			repl := newChatREPL(ctrl, cmd.OutOrStdout(), g.cfg, raw)
			repl.baseURL = client.BaseURL()
			return repl.run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print answers without markdown rendering")
	return cmd
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader wraps liner with a persistent history file.
type lineReader struct {
	line        *liner.State
	historyFile string
}

func newLineReader(completer *commands.Completer) *lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer.CompleteLine)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	r := &lineReader{line: line, historyFile: filepath.Join(dir, "chat_history")}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

func (r *lineReader) read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// close saves history with owner-only permissions and restores the terminal.
func (r *lineReader) close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// chatREPL drives a session controller from typed lines.
type chatREPL struct {
	ctrl     *session.Controller
	registry *commands.Registry
	out      io.Writer
	raw      bool
	wrap     int
	accept   []string
	export   *export.Options
	baseURL  string
}

func newChatREPL(ctrl *session.Controller, out io.Writer, cfg *config.Config, raw bool) *chatREPL {
	return &chatREPL{
		ctrl:     ctrl,
		registry: commands.NewRegistry(),
		out:      out,
		raw:      raw || !isTerminal(out),
		wrap:     cfg.UI.WordWrap,
		accept:   cfg.Upload.Accept,
		export:   export.DefaultOptions(),
	}
}

func (r *chatREPL) run(ctx context.Context) error {
	reader := newLineReader(commands.NewCompleter(r.registry))
	defer reader.close()

	for _, msg := range r.ctrl.Messages() {
		r.print(msg)
	}
	fmt.Fprintln(r.out, mutedStyle.Render("Type /help for commands, Ctrl+D to exit."))

	for {
		line, err := reader.read(promptStyle.Render("You> "))
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		// Ctrl+C cancels the request in flight, not the session.
		reqCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		quit := r.handle(reqCtx, line)
		stop()
		if quit {
			return nil
		}
	}
}

// handle processes one line and reports whether the session should end.
func (r *chatREPL) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if commands.IsCommand(line) {
		return r.command(ctx, line)
	}

	out, err := r.ctrl.SubmitText(ctx, line)
	if err != nil {
		r.warn(err.Error())
		return false
	}
	r.printAll(out.Added)
	return false
}

func (r *chatREPL) command(ctx context.Context, line string) bool {
	res := r.registry.Parse(line)
	if res.Error != nil {
		r.warn(res.Error.Error() + ". Type /help for commands.")
		return false
	}

	switch res.Command.Name {
	case commands.Help:
		fmt.Fprintln(r.out, r.render("**Commands**\n\n"+r.registry.HelpText()))

	case commands.Upload:
		path, err := components.ResolveUploadPath(res.RawArgs, r.accept)
		if err != nil {
			r.warn(err.Error())
			return false
		}
		fmt.Fprintln(r.out, mutedStyle.Render(session.UploadingNotice(filepath.Base(path))))
		out, err := r.ctrl.SubmitFile(ctx, path)
		if err != nil {
			r.warn(err.Error())
			return false
		}
		r.printAll(out.Added)

	case commands.Clear:
		r.ctrl.Clear(ctx)
		r.printAll(r.ctrl.Messages())

	case commands.Export:
		format, path := commands.ExportArgs(res.Args)
		opts := *r.export
		opts.Path = path
		written, err := export.Export(r.ctrl.Messages(), r.baseURL, format, &opts)
		if err != nil {
			r.warn("export failed: " + err.Error())
			return false
		}
		fmt.Fprintln(r.out, field("Exported", written))

	case commands.Quit:
		return true
	}
	return false
}

func (r *chatREPL) printAll(msgs []*model.Message) {
	for _, m := range msgs {
		r.print(m)
	}
}

func (r *chatREPL) print(m *model.Message) {
	switch {
	case m.IsFile():
		label := m.UploadLabel()
		detail := m.MimeType
		if m.PreviewPath != "" {
			detail = m.PreviewPath
		}
		fmt.Fprintf(r.out, "%s %s %s\n", twinStyle.Render("["+label+"]"), m.FileName, mutedStyle.Render(detail))
	case m.Role == model.RoleUser:
		fmt.Fprintln(r.out, youStyle.Render("You: ")+m.Content)
	case m.Role == model.RoleAssistant:
		fmt.Fprintln(r.out, twinStyle.Render("Twin:"))
		fmt.Fprintln(r.out, r.render(m.Content))
	default:
		fmt.Fprintln(r.out, warningStyle.Render(r.render(m.Content)))
	}
}

func (r *chatREPL) render(content string) string {
	if r.raw {
		return content
	}
	return strings.TrimRight(renderMarkdown(content, r.wrap), "\n")
}

func (r *chatREPL) warn(msg string) {
	fmt.Fprintln(r.out, warningStyle.Render("[!] "+msg))
}
