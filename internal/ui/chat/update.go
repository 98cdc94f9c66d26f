// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twin-tui/internal/commands"
	"github.com/jeranaias/twin-tui/internal/export"
	"github.com/jeranaias/twin-tui/internal/session"
	"github.com/jeranaias/twin-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages routed to the chat panel.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.Loading() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.Refresh()
		return cmd

	case LogChangedMsg:
		m.Refresh()
		return nil

	case QueryResolvedMsg:
		m.Refresh()
		return nil

	case UploadResolvedMsg:
		m.Refresh()
		return uploadNotice(msg)

	case ExportedMsg:
		if msg.Err != nil {
			return notice(components.ToastError, "Export failed: "+msg.Err.Error())
		}
		return notice(components.ToastSuccess, "Exported to "+msg.Path)

	case components.UploadRequestMsg:
		return m.startUpload(msg.Path)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.prompt.Active() {
		return m.prompt.Update(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.prompt.Active() {
		cmd := m.prompt.Update(msg)
		m.resizeViewport()
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Upload):
		cmd := m.prompt.Open()
		m.resizeViewport()
		return cmd

	case key.Matches(msg, m.keys.Clear):
		return clearRequest

	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		m.input.Reset()
		return m.submit(text)

	case key.Matches(msg, m.keys.Cancel):
		m.localNotice = ""
		m.Refresh()
		return nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return nil
	case key.Matches(msg, m.keys.HalfUp):
		m.viewport.HalfViewUp()
		return nil
	case key.Matches(msg, m.keys.HalfDown):
		m.viewport.HalfViewDown()
		return nil
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return nil
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit sends text as a question or runs it as a slash command.
func (m *Model) submit(text string) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	m.setNotice("", false)

	if commands.IsCommand(text) {
		return m.runCommand(text)
	}

	p, err := m.ctrl.BeginText(text)
	if err != nil {
		return m.refused(err)
	}
	m.Refresh()

	ctx := m.ctx
	return tea.Batch(
		func() tea.Msg { return QueryResolvedMsg{Outcome: p.Resolve(ctx)} },
		m.spinner.Tick,
	)
}

// startUpload validates path and sends it through the controller.
func (m *Model) startUpload(path string) tea.Cmd {
	p, err := m.ctrl.BeginFile(path)
	if err != nil {
		return m.refused(err)
	}
	m.Refresh()

	ctx := m.ctx
	return tea.Batch(
		func() tea.Msg { return UploadResolvedMsg{Name: p.Name(), Outcome: p.Resolve(ctx)} },
		m.spinner.Tick,
	)
}

func (m *Model) refused(err error) tea.Cmd {
	switch {
	case errors.Is(err, session.ErrEmpty):
		return nil
	case errors.Is(err, session.ErrBusy):
		return notice(components.ToastWarning, BusyText)
	default:
		return notice(components.ToastError, err.Error())
	}
}

// runCommand executes a slash command.
func (m *Model) runCommand(text string) tea.Cmd {
	res := m.registry.Parse(text)
	if res.Error != nil {
		m.setNotice(res.Error.Error()+". Type /help for commands.", true)
		return nil
	}

	switch res.Command.Name {
	case commands.Help:
		m.setNotice("**Commands**\n\n"+m.registry.HelpText(), false)
		return nil

	case commands.Upload:
		path, err := components.ResolveUploadPath(res.RawArgs, m.accept)
		if err != nil {
			m.setNotice(err.Error(), true)
			return nil
		}
		return m.startUpload(path)

	case commands.Clear:
		return clearRequest

	case commands.Export:
		format, path := commands.ExportArgs(res.Args)
		return m.exportCmd(format, path)

	case commands.Quit:
		return tea.Quit
	}
	return nil
}

func (m *Model) exportCmd(format, path string) tea.Cmd {
	opts := *m.exportOpts
	opts.Path = path
	msgs := m.ctrl.Messages()
	backend := m.baseURL
	return func() tea.Msg {
		out, err := export.Export(msgs, backend, format, &opts)
		return ExportedMsg{Path: out, Err: err}
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.localNotice = text
	m.noticeIsErr = isErr
	m.Refresh()
}

func clearRequest() tea.Msg {
	return components.ClearRequestMsg{}
}

func notice(kind components.ToastKind, text string) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Kind: kind, Text: text} }
}

func uploadNotice(msg UploadResolvedMsg) tea.Cmd {
	switch {
	case msg.Outcome.Stale:
		return nil
	case msg.Outcome.Err != nil:
		return notice(components.ToastError, fmt.Sprintf("Upload of %s failed", msg.Name))
	default:
		return notice(components.ToastSuccess, fmt.Sprintf("Uploaded %s", msg.Name))
	}
}
