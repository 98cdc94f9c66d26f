// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twin-tui/internal/config"
	"github.com/jeranaias/twin-tui/internal/session"
	"github.com/jeranaias/twin-tui/internal/ui/chat"
	"github.com/jeranaias/twin-tui/internal/ui/components"
	"github.com/jeranaias/twin-tui/internal/ui/panel"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
)

// Update routes a message. Key messages go to the active panel unless a
// global shortcut claims them; everything else that the chat panel owns
// goes to chat regardless of which panel is visible.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Resize(msg.Width, msg.Height)
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case DashboardMsg:
		m.syncDashboard()
		return m, nil

	case refreshedMsg:
		if msg.throttled {
			return m, m.toast(components.ToastInfo, "Refresh already in progress")
		}
		m.syncDashboard()
		return m, nil

	case chat.LogChangedMsg:
		m.syncLog()
		return m, m.chat.Update(msg)

	case chat.NoticeMsg:
		return m, m.toast(msg.Kind, msg.Text)

	case components.ToastTickMsg:
		if m.toasts.Prune() {
			return m, components.ToastTickCmd()
		}
		m.ticking = false
		return m, nil

	case components.UploadRequestMsg:
		// Uploads started from the Documents or Multimedia panels are
		// followed in chat.
		m.switcher.Select(panel.Chat)
		m.resize()
		return m, m.chat.Update(msg)

	case components.ClearRequestMsg:
		return m, m.clear()

	case ClearedMsg:
		m.syncLog()
		m.settings.SetStatus("Knowledge base cleared", true)
		return m, tea.Batch(m.chat.Update(chat.LogChangedMsg{}), m.refresh())

	case components.SettingsChangedMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case components.SaveSettingsMsg:
		return m, m.save(msg.Config)

	case SavedMsg:
		if msg.Err != nil {
			m.settings.SetStatus("Save failed: "+msg.Err.Error(), false)
			return m, m.toast(components.ToastError, "Settings not saved")
		}
		m.settings.SetStatus("Settings saved", true)
		return m, m.toast(components.ToastSuccess, "Settings saved to "+msg.Path)

	case InboxMsg:
		return m, m.inboxNotice(msg)
	}

	// Spinner ticks, query and upload outcomes and anything else flow to
	// chat so it keeps running while another panel is visible.
	if m.switcher.Active() != panel.Chat {
		if _, ok := msg.(tea.MouseMsg); ok {
			return m, m.active().Update(msg)
		}
	}
	cmd := m.chat.Update(msg)
	m.syncLog()
	return m, cmd
}

// handleKey applies global shortcuts, then forwards to the active panel.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.cancel()
		m.ctrl.Close()
		return tea.Quit
	case "ctrl+b":
		m.layout.ToggleSidebar()
		m.resize()
		return nil
	case "ctrl+r":
		return m.refresh()
	case "tab":
		m.switcher.Next()
		m.resize()
		return nil
	case "shift+tab":
		m.switcher.Prev()
		m.resize()
		return nil
	}
	if msg.Alt && len(msg.Runes) == 1 {
		if m.selectDigit(msg.Runes[0]) {
			return nil
		}
	}

	view := m.active()
	if !view.Capturing() && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		switch r := msg.Runes[0]; r {
		case 'q':
			m.quitting = true
			m.cancel()
			m.ctrl.Close()
			return tea.Quit
		case 'r':
			return m.refresh()
		default:
			if m.selectDigit(r) {
				return nil
			}
		}
	}
	return view.Update(msg)
}

// selectDigit switches to panel 1-6.
func (m *Model) selectDigit(r rune) bool {
	if r < '1' || r > '9' {
		return false
	}
	ids := panel.All()
	i := int(r - '1')
	if i >= len(ids) {
		return false
	}
	m.switcher.Select(ids[i])
	m.resize()
	return true
}

// toast queues a toast and starts the prune ticker if it is idle.
func (m *Model) toast(kind components.ToastKind, text string) tea.Cmd {
	m.toasts.Add(kind, text)
	if m.ticking {
		return nil
	}
	m.ticking = true
	return components.ToastTickCmd()
}

// refresh asks the poller for an immediate fetch.
func (m *Model) refresh() tea.Cmd {
	poller, ctx := m.poller, m.ctx
	return func() tea.Msg {
		return refreshedMsg{throttled: !poller.Refresh(ctx)}
	}
}

func (m *Model) clear() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.Clear(ctx)
		return ClearedMsg{}
	}
}

func (m *Model) save(cfg *config.Config) tea.Cmd {
	cfg = cfg.Clone()
	path := m.configPath
	return func() tea.Msg {
		if path == "" {
			path = config.FoundPath()
		}
		if path == "" {
			p, err := config.ConfigPathTOML()
			if err != nil {
				return SavedMsg{Err: err}
			}
			path = p
		}
		out, err := settingsBase(path)
		if err != nil {
			return SavedMsg{Path: path, Err: err}
		}
		out.UI.Theme = cfg.UI.Theme
		out.UI.RenderMarkdown = cfg.UI.RenderMarkdown
		out.UI.ShowRightPanel = cfg.UI.ShowRightPanel
		return SavedMsg{Path: path, Err: config.SaveTo(out, path)}
	}
}

// settingsBase returns what is on disk at path, without env or flag
// overrides, so a save only changes the fields the settings panel edits.
func settingsBase(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return config.ReadFile(path)
}

// applyConfig makes an edited configuration take effect without a restart.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	prev := m.cfg
	m.cfg = cfg.Clone()

	if cfg.UI.Theme != prev.UI.Theme {
		m.theme = styles.NewTheme(cfg.UI.Theme)
		m.chat.SetTheme(m.theme)
		m.settings.SetTheme(m.theme)
		version := m.sidebar.Version
		m.buildViews(version)
		m.syncDashboard()
		m.syncLog()
	}
	m.chat.SetRenderMarkdown(cfg.UI.RenderMarkdown)
	m.chat.SetAccept(cfg.Upload.Accept)
	m.documents.SetAccept(cfg.Upload.Accept)
	m.layout.SetShowRight(cfg.UI.ShowRightPanel)
	m.resize()
	m.log.Debug("settings applied", "theme", cfg.UI.Theme, "markdown", cfg.UI.RenderMarkdown)
}

func (m *Model) inboxNotice(msg InboxMsg) tea.Cmd {
	name := filepath.Base(msg.Path)
	switch {
	case errors.Is(msg.Err, session.ErrClosed):
		return nil
	case msg.Err != nil:
		return m.toast(components.ToastError, "Inbox: "+name+": "+msg.Err.Error())
	case msg.Outcome.Stale:
		return nil
	case msg.Outcome.Err != nil:
		return m.toast(components.ToastError, "Inbox upload failed: "+name)
	default:
		return tea.Batch(m.toast(components.ToastSuccess, "Uploaded "+name+" from inbox"), m.refresh())
	}
}
