// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twin-tui/internal/ui/panel"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents what the app is doing.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusUploading
	StatusOffline
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	case StatusUploading:
		return "Uploading..."
	case StatusOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusThinking, StatusUploading:
		return styles.StatusIndicators.Pending
	case StatusOffline:
		return styles.StatusIndicators.Warning
	default:
		return "?"
	}
}

// StatusBar is the bottom line: status, backend, notice and key hints.
type StatusBar struct {
	Status  Status
	Panel   panel.ID
	BaseURL string
	Notice  string
	Compact bool
	Width   int
	theme   *styles.Theme
}

// NewStatusBar creates a StatusBar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Status: StatusReady, Width: 80, theme: theme}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// Shortcuts returns the key hints for the current panel.
func (s *StatusBar) Shortcuts() string {
	hints := []string{"tab panels", "ctrl+b menu", "ctrl+r refresh"}
	switch s.Panel {
	case panel.Chat:
		hints = append(hints, "ctrl+o upload", "ctrl+l clear")
	case panel.Documents, panel.Memory:
		hints = append(hints, "/ search")
	}
	return strings.Join(append(hints, "ctrl+c quit"), " · ")
}

// View renders the status bar.
func (s *StatusBar) View() string {
	width := max(s.Width, 20)
	inner := width - 2

	style := s.theme.StatusOnline
	if s.Status == StatusOffline {
		style = s.theme.StatusOffline
	}
	left := style.Render(s.Status.Icon() + " " + s.Status.String())
	if !s.Compact && s.BaseURL != "" {
		left += s.theme.ShortcutDesc.Render("  " + s.BaseURL)
	}
	if s.Notice != "" {
		left += "  " + s.Notice
	}

	right := ""
	if !s.Compact {
		right = s.theme.ShortcutDesc.Render(s.Shortcuts())
	} else {
		right = s.theme.ShortcutDesc.Render("tab · ctrl+b · ctrl+c")
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = inner - lipgloss.Width(left)
	}
	line := left + strings.Repeat(" ", max(gap, 0)) + right
	return s.theme.StatusBar.Width(width).MaxWidth(width).MaxHeight(1).Render(line)
}
