// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/twin-tui/internal/api"
	"github.com/jeranaias/twin-tui/internal/config"
	"github.com/jeranaias/twin-tui/internal/dashboard"
	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/session"
	"github.com/jeranaias/twin-tui/internal/ui/components"
	"github.com/jeranaias/twin-tui/internal/ui/panel"
)

// =============================================================================
// FIXTURES
// =============================================================================

type fakeBackend struct {
	mu     sync.Mutex
	clears int
}

func (f *fakeBackend) SendQuery(ctx context.Context, q string, h []model.HistoryEntry) (string, error) {
	return "answer", nil
}

func (f *fakeBackend) UploadPath(ctx context.Context, path string) (*api.UploadResult, error) {
	return &api.UploadResult{Summary: "Indexed.", Mime: "application/pdf"}, nil
}

func (f *fakeBackend) ClearSession(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return nil
}

// fetcher serves whatever snapshot is set; nil simulates an outage.
type fetcher struct {
	mu   sync.Mutex
	snap *model.Snapshot
}

func (f *fetcher) set(s *model.Snapshot) {
	f.mu.Lock()
	f.snap = s
	f.mu.Unlock()
}

func (f *fetcher) FetchDashboard(ctx context.Context) *model.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

type harness struct {
	m       *Model
	ctrl    *session.Controller
	poller  *dashboard.Poller
	fetch   *fetcher
	backend *fakeBackend
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := &fakeBackend{}
	ctrl := session.New(backend)
	t.Cleanup(ctrl.Close)

	f := &fetcher{}
	poller := dashboard.New(f, dashboard.Options{})

	cfg := config.Default()
	cfg.UI.Theme = "dark"
	m := New(ctrl, poller, Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Version:    "test",
	})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return &harness{m: m, ctrl: ctrl, poller: poller, fetch: f, backend: backend}
}

func sampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Stats: model.Stats{TotalQueries: 12, DocsIndexed: 2, ActiveUsers: 1, AvgLatencyMs: 30},
		RecentHistory: []model.ActivityItem{
			{Role: "user", Content: "What is in the report?"},
			{Role: "assistant", Content: "Quarterly numbers."},
		},
		Files: []model.FileDescriptor{
			{ID: "1", Title: "report.pdf", Size: "1.2 MB", Type: "pdf"},
			{ID: "2", Title: "cat.png", Size: "300 KB", Type: "image/png"},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// TESTS
// =============================================================================

func TestNew_StartsOnChat(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, panel.Chat, h.m.ActivePanel())
	assert.Equal(t, components.StatusReady, h.m.statusNow())

	view := h.m.View()
	assert.Contains(t, view, "Knowledge")
	assert.Contains(t, view, "Ready")
}

func TestPanelSwitching(t *testing.T) {
	h := newHarness(t)

	h.m.Update(key("tab"))
	assert.Equal(t, panel.Documents, h.m.ActivePanel())

	h.m.Update(key("shift+tab"))
	assert.Equal(t, panel.Chat, h.m.ActivePanel())

	// Chat captures typing, so digits go to the input.
	h.m.Update(key("3"))
	assert.Equal(t, panel.Chat, h.m.ActivePanel())

	h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("6"), Alt: true})
	assert.Equal(t, panel.Settings, h.m.ActivePanel())

	h.m.Update(key("3"))
	assert.Equal(t, panel.Multimedia, h.m.ActivePanel())
}

func TestDashboardMsg_AppliesPollerState(t *testing.T) {
	h := newHarness(t)
	snap := sampleSnapshot()
	h.fetch.set(snap)
	require.True(t, h.poller.Tick(context.Background()))

	h.m.Update(DashboardMsg{})
	assert.Same(t, snap, h.m.Snapshot())
	assert.True(t, h.m.online)

	h.m.Update(key("tab"))
	assert.Contains(t, h.m.View(), "report.pdf")
}

func TestDashboardMsg_OfflineKeepsSnapshot(t *testing.T) {
	h := newHarness(t)
	snap := sampleSnapshot()
	h.fetch.set(snap)
	h.poller.Tick(context.Background())
	h.m.Update(DashboardMsg{})

	h.fetch.set(nil)
	h.poller.Tick(context.Background())
	h.m.Update(DashboardMsg{})

	assert.Same(t, snap, h.m.Snapshot())
	assert.False(t, h.m.online)
	assert.Equal(t, components.StatusOffline, h.m.statusNow())
	assert.Contains(t, h.m.View(), "Offline")
}

func TestRefreshKey(t *testing.T) {
	h := newHarness(t)
	h.fetch.set(sampleSnapshot())

	_, cmd := h.m.Update(key("ctrl+r"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, refreshedMsg{}, msg)
	assert.False(t, msg.(refreshedMsg).throttled)

	h.m.Update(msg)
	assert.Len(t, h.m.Snapshot().Files, 2)

	// A second refresh inside the limiter window is dropped.
	_, cmd = h.m.Update(key("ctrl+r"))
	assert.True(t, cmd().(refreshedMsg).throttled)
}

func TestClearRequest(t *testing.T) {
	h := newHarness(t)

	_, cmd := h.m.Update(components.ClearRequestMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, ClearedMsg{}, cmd())
	assert.Equal(t, 1, h.backend.clears)

	msgs := h.ctrl.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, session.ClearNotice, msgs[0].Content)
}

func TestSettingsChanged(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.m.Layout().ShowRight)

	cfg := h.m.Config().Clone()
	cfg.UI.Theme = "light"
	cfg.UI.ShowRightPanel = false
	h.m.Update(components.SettingsChangedMsg{Config: cfg})

	assert.Equal(t, "light", h.m.Config().UI.Theme)
	assert.False(t, h.m.theme.IsDark)
	assert.False(t, h.m.Layout().ShowRight)
}

func TestSaveSettings(t *testing.T) {
	h := newHarness(t)
	cfg := h.m.Config().Clone()
	cfg.UI.Theme = "light"

	_, cmd := h.m.Update(components.SaveSettingsMsg{Config: cfg})
	require.NotNil(t, cmd)
	saved, ok := cmd().(SavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)

	loaded, err := config.LoadFromPath(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)

	h.m.Update(saved)
	toast, ok := h.m.Toasts().Latest()
	require.True(t, ok)
	assert.Contains(t, toast.Message, "Settings saved")
}

func TestSaveSettings_KeepsOverridesOutOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"[backend]\nbase_url = \"http://file-host:8000\"\n\n[logging]\nlevel = \"warn\"\n"), 0600))
	t.Setenv("TWIN_API_URL", "http://env-only:9999")
	t.Setenv("TWIN_LOG_LEVEL", "debug")

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "http://env-only:9999", cfg.Backend.BaseURL)

	ctrl := session.New(&fakeBackend{})
	t.Cleanup(ctrl.Close)
	m := New(ctrl, dashboard.New(&fetcher{}, dashboard.Options{}), Options{
		Config:     cfg,
		ConfigPath: path,
		Version:    "test",
	})

	edited := m.Config().Clone()
	edited.UI.Theme = "light"
	edited.UI.ShowRightPanel = false
	_, cmd := m.Update(components.SaveSettingsMsg{Config: edited})
	require.NotNil(t, cmd)
	saved, ok := cmd().(SavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)

	onDisk, err := config.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://file-host:8000", onDisk.Backend.BaseURL)
	assert.Equal(t, "warn", onDisk.Logging.Level)
	assert.Equal(t, "light", onDisk.UI.Theme)
	assert.False(t, onDisk.UI.ShowRightPanel)
}

func TestSavedMsg_Error(t *testing.T) {
	h := newHarness(t)
	h.m.Update(SavedMsg{Err: errors.New("read-only file system")})

	toast, ok := h.m.Toasts().Latest()
	require.True(t, ok)
	assert.Equal(t, components.ToastError, toast.Kind)
}

func TestQuit(t *testing.T) {
	h := newHarness(t)

	_, cmd := h.m.Update(key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, h.m.View())

	_, err := h.ctrl.BeginText("hello")
	assert.ErrorIs(t, err, session.ErrClosed)
}

func TestQuitKey_OnlyWhenNotCapturing(t *testing.T) {
	h := newHarness(t)

	h.m.Update(key("q"))
	assert.Equal(t, "q", h.m.chat.Value())
	assert.False(t, h.m.quitting)

	h.m.Update(key("tab"))
	_, cmd := h.m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestResponsiveLayout(t *testing.T) {
	h := newHarness(t)

	l := h.m.Layout()
	assert.False(t, l.IsMobile)
	assert.Positive(t, l.SidebarWidth)

	h.m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	l = h.m.Layout()
	assert.True(t, l.IsMobile)
	assert.Zero(t, l.SidebarWidth)
	assert.False(t, l.ShowRight)

	h.m.Update(key("ctrl+b"))
	assert.Positive(t, h.m.Layout().SidebarWidth)
}

func TestUploadRequest_SwitchesToChat(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))

	h.m.Update(key("tab"))
	require.Equal(t, panel.Documents, h.m.ActivePanel())

	h.m.Update(components.UploadRequestMsg{Path: path})
	assert.Equal(t, panel.Chat, h.m.ActivePanel())
	assert.True(t, h.ctrl.IsLoading())
	assert.Equal(t, components.StatusUploading, h.m.statusNow())
}

func TestInboxMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  InboxMsg
		kind components.ToastKind
		none bool
	}{
		{"uploaded", InboxMsg{Path: "/in/a.pdf"}, components.ToastSuccess, false},
		{"rejected", InboxMsg{Path: "/in/a.pdf", Err: session.ErrBusy}, components.ToastError, false},
		{"backend failed", InboxMsg{Path: "/in/a.pdf", Outcome: session.Outcome{Err: errors.New("500")}}, components.ToastError, false},
		{"stale", InboxMsg{Path: "/in/a.pdf", Outcome: session.Outcome{Stale: true}}, 0, true},
		{"closed", InboxMsg{Path: "/in/a.pdf", Err: session.ErrClosed}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.m.Update(tt.msg)

			toast, ok := h.m.Toasts().Latest()
			if tt.none {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.kind, toast.Kind)
			assert.Contains(t, toast.Message, "a.pdf")
		})
	}
}
