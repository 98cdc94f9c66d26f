// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twin-tui/internal/config"
	"github.com/jeranaias/twin-tui/internal/dashboard"
	"github.com/jeranaias/twin-tui/internal/export"
	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/session"
	"github.com/jeranaias/twin-tui/internal/ui/chat"
	"github.com/jeranaias/twin-tui/internal/ui/components"
	"github.com/jeranaias/twin-tui/internal/ui/layout"
	"github.com/jeranaias/twin-tui/internal/ui/panel"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
)

// =============================================================================
// PANELS
// =============================================================================

// panelView is what every main-area panel provides.
type panelView interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Capturing() bool
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Options configures the root model.
type Options struct {
	Config *config.Config

	// ConfigPath is where "Save settings" writes. Empty means config.Save.
	ConfigPath string

	Version string
	Logger  *slog.Logger

	// Export overrides the /export defaults, for tests.
	Export *export.Options
}

// Model is the root Bubble Tea model. It owns the layout, the panel
// switcher and the chrome, and routes messages to the active panel.
type Model struct {
	cfg        *config.Config
	configPath string
	theme      *styles.Theme
	log        *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	ctrl   *session.Controller
	poller *dashboard.Poller

	layout   *layout.Controller
	switcher *panel.Switcher

	chat      *chat.Model
	documents *components.DocumentsView
	media     *components.MultimediaView
	memory    *components.MemoryView
	analytics *components.AnalyticsView
	settings  *components.SettingsView

	sidebar *components.Sidebar
	right   *components.RightPanel
	status  *components.StatusBar
	toasts  *components.ToastManager
	ticking bool

	snapshot *model.Snapshot
	online   bool
	quitting bool
}

// New creates the root model over a session controller and a dashboard
// poller. Neither is started here; see Run.
func New(ctrl *session.Controller, poller *dashboard.Poller, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	theme := styles.NewTheme(cfg.UI.Theme)

	m := &Model{
		cfg:        cfg.Clone(),
		configPath: opts.ConfigPath,
		theme:      theme,
		log:        logger.With("component", "app"),
		ctx:        ctx,
		cancel:     cancel,
		ctrl:       ctrl,
		poller:     poller,
		layout:     layout.New(cfg.UI.MobileBreakpoint, cfg.UI.ShowRightPanel),
		switcher:   panel.NewSwitcher(),
		toasts:     components.NewToastManager(),
		snapshot:   poller.Snapshot(),
		online:     true,
	}
	m.chat = chat.New(chat.Options{
		Controller:     ctrl,
		Theme:          theme,
		Accept:         cfg.Upload.Accept,
		BaseURL:        cfg.Backend.BaseURL,
		RenderMarkdown: cfg.UI.RenderMarkdown,
		Export:         opts.Export,
		Context:        ctx,
	})
	m.settings = components.NewSettingsView(theme, cfg, opts.ConfigPath)
	m.buildViews(opts.Version)
	m.syncDashboard()
	m.syncLog()
	return m
}

// buildViews creates every theme-bound view except chat and settings,
// which keep their state across theme changes.
func (m *Model) buildViews(version string) {
	m.documents = components.NewDocumentsView(m.theme, m.cfg.Upload.Accept)
	m.media = components.NewMultimediaView(m.theme)
	m.memory = components.NewMemoryView(m.theme)
	m.analytics = components.NewAnalyticsView(m.theme)
	m.sidebar = components.NewSidebar(m.theme)
	m.sidebar.Version = version
	m.right = components.NewRightPanel(m.theme)
	m.status = components.NewStatusBar(m.theme)
	m.status.BaseURL = m.cfg.Backend.BaseURL
}

// Init starts the chat input.
func (m *Model) Init() tea.Cmd {
	return m.chat.Init()
}

// Config returns the configuration currently applied.
func (m *Model) Config() *config.Config {
	return m.cfg
}

// ActivePanel returns the panel in the main area.
func (m *Model) ActivePanel() panel.ID {
	return m.switcher.Active()
}

// Snapshot returns the dashboard data being shown.
func (m *Model) Snapshot() *model.Snapshot {
	return m.snapshot
}

// Layout returns the current column split.
func (m *Model) Layout() layout.Layout {
	return m.layout.Compute()
}

// Toasts exposes the toast queue.
func (m *Model) Toasts() *components.ToastManager {
	return m.toasts
}

func (m *Model) active() panelView {
	switch m.switcher.Active() {
	case panel.Documents:
		return m.documents
	case panel.Multimedia:
		return m.media
	case panel.Memory:
		return m.memory
	case panel.Analytics:
		return m.analytics
	case panel.Settings:
		return m.settings
	default:
		return m.chat
	}
}

// syncDashboard copies the poller's state into the views.
func (m *Model) syncDashboard() {
	m.snapshot = m.poller.Snapshot()
	failures := m.poller.Failures()
	m.online = failures == 0

	m.documents.SetFiles(m.snapshot.Files)
	m.media.SetFiles(m.snapshot.Files)
	m.memory.SetHistory(m.snapshot.RecentHistory)
	m.analytics.Snapshot = m.snapshot
	m.analytics.Failures = failures
	m.analytics.LastSuccess = m.poller.LastSuccess()
	m.right.Snapshot = m.snapshot
	m.sidebar.Online = m.online
}

// syncLog copies controller state the chrome shows.
func (m *Model) syncLog() {
	msgs := m.ctrl.Messages()
	m.media.SetMessages(msgs)
	m.right.ActiveDocument = ""
	if doc := m.ctrl.ActiveDocument(); doc != nil {
		m.right.ActiveDocument = doc.FileName
	}
}

// statusNow derives the status bar state.
func (m *Model) statusNow() components.Status {
	switch {
	case m.ctrl.IsLoading():
		if last := m.ctrl.Messages(); len(last) > 0 && last[len(last)-1].Pending {
			return components.StatusUploading
		}
		return components.StatusThinking
	case !m.online:
		return components.StatusOffline
	default:
		return components.StatusReady
	}
}
