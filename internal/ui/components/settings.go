// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twin-tui/internal/config"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
	"github.com/jeranaias/twin-tui/internal/util"
)

// SettingsItem is one selectable row of the settings panel.
type SettingsItem int

const (
	SettingTheme SettingsItem = iota
	SettingMarkdown
	SettingRightPanel
	SettingSave
	SettingClear

	settingsCount
)

var themeCycle = []string{"auto", "dark", "light"}

// nextTheme returns the theme after current in the auto/dark/light cycle.
func nextTheme(current string) string {
	for i, t := range themeCycle {
		if t == current {
			return themeCycle[(i+1)%len(themeCycle)]
		}
	}
	return themeCycle[0]
}

// =============================================================================
// SETTINGS VIEW
// =============================================================================

// SettingsView edits a copy of the configuration. Toggles emit
// SettingsChangedMsg; saving and clearing are requested with messages so
// the owner decides how to perform them.
type SettingsView struct {
	cfg        *config.Config
	configPath string
	cursor     SettingsItem
	confirm    bool
	status     string
	statusOK   bool
	header     *Header
	width      int
	height     int
	theme      *styles.Theme
}

// NewSettingsView creates the settings panel over a clone of cfg.
func NewSettingsView(theme *styles.Theme, cfg *config.Config, configPath string) *SettingsView {
	if cfg == nil {
		cfg = config.Default()
	}
	return &SettingsView{
		cfg:        cfg.Clone(),
		configPath: configPath,
		header:     NewHeader(theme, "Settings", "Configure your knowledge twin preferences."),
		theme:      theme,
	}
}

// Config returns the edited configuration.
func (s *SettingsView) Config() *config.Config {
	return s.cfg
}

// Cursor returns the selected row.
func (s *SettingsView) Cursor() SettingsItem {
	return s.cursor
}

// SetStatus shows the result of the last save or clear.
func (s *SettingsView) SetStatus(text string, ok bool) {
	s.status = text
	s.statusOK = ok
}

// SetTheme swaps the theme after a theme change.
func (s *SettingsView) SetTheme(theme *styles.Theme) {
	s.theme = theme
	s.header.theme = theme
}

// SetSize updates the view dimensions.
func (s *SettingsView) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.header.SetWidth(width)
}

// Capturing is always false; the panel only uses single keys.
func (s *SettingsView) Capturing() bool {
	return false
}

// Update handles navigation and activation keys.
func (s *SettingsView) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch km.String() {
	case "up", "k":
		s.confirm = false
		s.cursor = (s.cursor + settingsCount - 1) % settingsCount
	case "down", "j":
		s.confirm = false
		s.cursor = (s.cursor + 1) % settingsCount
	case "esc":
		s.confirm = false
	case "enter", " ":
		return s.activate()
	}
	return nil
}

func (s *SettingsView) activate() tea.Cmd {
	switch s.cursor {
	case SettingTheme:
		s.cfg.UI.Theme = nextTheme(s.cfg.UI.Theme)
		return s.changed()
	case SettingMarkdown:
		s.cfg.UI.RenderMarkdown = !s.cfg.UI.RenderMarkdown
		return s.changed()
	case SettingRightPanel:
		s.cfg.UI.ShowRightPanel = !s.cfg.UI.ShowRightPanel
		return s.changed()
	case SettingSave:
		cfg := s.cfg.Clone()
		return func() tea.Msg { return SaveSettingsMsg{Config: cfg} }
	case SettingClear:
		if !s.confirm {
			s.confirm = true
			return nil
		}
		s.confirm = false
		return func() tea.Msg { return ClearRequestMsg{} }
	}
	return nil
}

func (s *SettingsView) changed() tea.Cmd {
	cfg := s.cfg.Clone()
	return func() tea.Msg { return SettingsChangedMsg{Config: cfg} }
}

// View renders the panel.
func (s *SettingsView) View() string {
	width := max(s.width, 30)
	var lines []string

	lines = append(lines, s.theme.SectionTitle.Render("BACKEND"))
	lines = append(lines, s.readOnly("API URL", s.cfg.Backend.BaseURL, width))
	lines = append(lines, s.readOnly("Poll interval", s.cfg.Dashboard.PollInterval.String(), width))
	lines = append(lines, s.readOnly("Compact below", strconv.Itoa(s.cfg.UI.MobileBreakpoint)+" columns", width))
	path := s.configPath
	if path == "" {
		path = "(defaults, not saved yet)"
	}
	lines = append(lines, s.readOnly("Config file", path, width))

	lines = append(lines, "", s.theme.SectionTitle.Render("APPEARANCE"))
	lines = append(lines, s.row(SettingTheme, "Theme", s.themeValue()))
	lines = append(lines, s.row(SettingMarkdown, "Render markdown", s.toggle(s.cfg.UI.RenderMarkdown)))
	lines = append(lines, s.row(SettingRightPanel, "Activity panel", s.toggle(s.cfg.UI.ShowRightPanel)))

	lines = append(lines, "", s.theme.SectionTitle.Render("DATA"))
	lines = append(lines, s.row(SettingSave, "", s.theme.Button.Render("Save settings")))
	clearLabel := "Clear knowledge base"
	if s.confirm {
		clearLabel = "Press enter again to delete all documents and history"
	}
	lines = append(lines, s.row(SettingClear, "", s.theme.ButtonDanger.Render(clearLabel)))

	if s.status != "" {
		lines = append(lines, "", styles.RenderStatus(s.statusOK, util.TruncateWidth(s.status, width-6)))
	}
	lines = append(lines, "", s.theme.Muted.Render("↑↓ select  ·  enter toggle"))

	body := lipgloss.JoinVertical(lipgloss.Left, s.header.View(), strings.Join(lines, "\n"))
	return fitHeight(body, s.height)
}

func (s *SettingsView) readOnly(label, value string, width int) string {
	l := s.theme.CardMeta.Render(util.PadRight(label, 16))
	return "  " + l + util.TruncateWidth(value, max(width-20, 8))
}

func (s *SettingsView) row(item SettingsItem, label, value string) string {
	marker := "  "
	if item == s.cursor {
		marker = s.theme.SidebarMarker.Render("▸ ")
	}
	if label == "" {
		return marker + value
	}
	return marker + util.PadRight(label, 16) + value
}

func (s *SettingsView) toggle(on bool) string {
	if on {
		return s.theme.ToggleOn.Render("[on ]")
	}
	return s.theme.ToggleOff.Render("[off]")
}

func (s *SettingsView) themeValue() string {
	parts := make([]string, len(themeCycle))
	for i, t := range themeCycle {
		if t == s.cfg.UI.Theme {
			parts[i] = s.theme.ToggleOn.Render(t)
		} else {
			parts[i] = s.theme.ToggleOff.Render(t)
		}
	}
	return strings.Join(parts, " / ")
}
