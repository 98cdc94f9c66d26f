// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/lipgloss"
)

// resize pushes the current layout into every view.
func (m *Model) resize() {
	l := m.layout.Compute()
	height := max(l.Height-1, 1)

	m.theme.SetSize(l.Width, l.Height)
	m.sidebar.SetSize(l.SidebarWidth, height)
	m.right.SetSize(l.RightWidth, height)
	m.status.SetWidth(l.Width)
	m.status.Compact = l.IsMobile

	mainWidth := max(l.MainWidth, 1)
	m.chat.SetSize(mainWidth, height)
	m.documents.SetSize(mainWidth, height)
	m.media.SetSize(mainWidth, height)
	m.memory.SetSize(mainWidth, height)
	m.analytics.SetSize(mainWidth, height)
	m.settings.SetSize(mainWidth, height)
}

// View renders sidebar | main | right above the status bar.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	l := m.layout.Compute()
	height := max(l.Height-1, 1)

	active := m.switcher.Active()
	m.sidebar.Active = active
	m.status.Panel = active
	m.status.Status = m.statusNow()
	m.status.Notice = ""
	if t, ok := m.toasts.Latest(); ok {
		m.status.Notice = t.Render()
	}

	main := lipgloss.NewStyle().
		Width(max(l.MainWidth, 1)).
		Height(height).
		MaxHeight(height).
		Render(m.active().View())

	cols := make([]string, 0, 3)
	if l.SidebarWidth > 0 {
		cols = append(cols, m.sidebar.View())
	}
	cols = append(cols, main)
	if l.ShowRight {
		cols = append(cols, m.right.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.status.View())
}
