// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twin-tui/internal/ui/panel"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
	"github.com/jeranaias/twin-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT - panel navigation
// =============================================================================

// Sidebar lists the panels with a marker on the active one.
type Sidebar struct {
	Active  panel.ID
	Width   int
	Height  int
	Online  bool
	Version string
	theme   *styles.Theme
}

// NewSidebar creates a sidebar starting on the chat panel.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{Active: panel.Chat, Width: 24, Height: 24, theme: theme}
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// View renders the sidebar. A zero width renders nothing.
func (s *Sidebar) View() string {
	if s.Width <= 0 {
		return ""
	}
	// border (1) + horizontal padding (2)
	inner := max(s.Width-3, 4)

	var lines []string
	lines = append(lines, s.theme.Brand(), "")

	for _, id := range panel.All() {
		label := util.TruncateWidth(strconv.Itoa(int(id)+1)+" "+id.Title(), inner-2)
		if id == s.Active {
			lines = append(lines, s.theme.SidebarMarker.Render("▌")+
				s.theme.SidebarItemActive.Width(inner-1).Render(label))
		} else {
			lines = append(lines, " "+s.theme.SidebarItem.Render(label))
		}
	}

	body := strings.Join(lines, "\n")
	footer := s.footer(inner)

	// vertical padding (2)
	gap := s.Height - 2 - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	content := body + "\n" + footer

	return s.theme.Sidebar.
		Width(s.Width - 1).
		Height(max(s.Height, 1)).
		MaxHeight(s.Height).
		Render(content)
}

func (s *Sidebar) footer(width int) string {
	status := s.theme.StatusOnline.Render("● API Online")
	if !s.Online {
		status = s.theme.StatusOffline.Render("○ API Offline")
	}
	lines := []string{status}
	if s.Version != "" {
		lines = append(lines, s.theme.SidebarFooter.Render(util.TruncateWidth("twin "+s.Version, width)))
	}
	lines = append(lines, s.theme.SidebarFooter.Render(util.TruncateWidth("ctrl+b hide", width)))
	return strings.Join(lines, "\n")
}
