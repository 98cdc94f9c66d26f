// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
	"github.com/jeranaias/twin-tui/internal/util"
)

// MemoryEmptyText is shown when there is no matching history.
const MemoryEmptyText = "No recent history yet."

// FilterHistory returns the entries whose content or role matches query.
func FilterHistory(items []model.ActivityItem, query string) []model.ActivityItem {
	if strings.TrimSpace(query) == "" {
		return items
	}
	out := make([]model.ActivityItem, 0, len(items))
	for _, it := range items {
		if util.MatchesQuery(query, it.Content, it.Speaker()) {
			out = append(out, it)
		}
	}
	return out
}

// =============================================================================
// MEMORY VIEW
// =============================================================================

// MemoryView lists the backend's recent conversation history.
type MemoryView struct {
	items     []model.ActivityItem
	search    textinput.Model
	searching bool
	viewport  viewport.Model
	header    *Header
	width     int
	height    int
	theme     *styles.Theme
}

// NewMemoryView creates the memory panel.
func NewMemoryView(theme *styles.Theme) *MemoryView {
	m := &MemoryView{
		search:   newSearchInput(theme, "Search memories..."),
		viewport: viewport.New(80, 10),
		header:   NewHeader(theme, "Memory Bank", "Long-term knowledge storage and retrieval."),
		theme:    theme,
	}
	m.refresh()
	return m
}

// SetHistory replaces the listed entries.
func (m *MemoryView) SetHistory(items []model.ActivityItem) {
	m.items = items
	m.refresh()
}

// SetSize updates the view dimensions.
func (m *MemoryView) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.search.Width = max(width-4, 10)
	m.viewport.Width = max(width, 1)
	m.viewport.Height = max(height-m.header.Height()-2, 1)
	m.refresh()
}

// Capturing reports whether the search field has focus.
func (m *MemoryView) Capturing() bool {
	return m.searching
}

// Visible returns the entries that pass the search.
func (m *MemoryView) Visible() []model.ActivityItem {
	return FilterHistory(m.items, m.search.Value())
}

// Update handles keys for the panel.
func (m *MemoryView) Update(msg tea.Msg) tea.Cmd {
	km, isKey := msg.(tea.KeyMsg)
	if m.searching {
		if isKey {
			switch km.String() {
			case "enter":
				m.searching = false
				m.search.Blur()
				return nil
			case "esc":
				m.searching = false
				m.search.Blur()
				m.search.SetValue("")
				m.refresh()
				return nil
			}
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.refresh()
		return cmd
	}

	if isKey {
		switch km.String() {
		case "/":
			m.searching = true
			return m.search.Focus()
		case "esc":
			m.search.SetValue("")
			m.refresh()
			return nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *MemoryView) refresh() {
	visible := m.Visible()
	if len(visible) == 0 {
		m.viewport.SetContent(m.theme.EmptyState.Render(MemoryEmptyText))
		return
	}
	width := max(m.width-2, 10)

	var b strings.Builder
	// newest first
	for i := len(visible) - 1; i >= 0; i-- {
		it := visible[i]
		speaker := m.theme.SpeakerTwin.Render(it.Speaker())
		if it.IsUser() {
			speaker = m.theme.SpeakerUser.Render(it.Speaker())
		}
		line := speaker + " " + clampLines(it.Content, 3, width-lipgloss.Width(speaker)-1)
		if t := it.ShortTime(); t != "" {
			line += "\n" + m.theme.CardMeta.Render(t)
		}
		b.WriteString(line + "\n\n")
	}
	m.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
}

// View renders the panel.
func (m *MemoryView) View() string {
	searchLine := m.search.View()
	if !m.searching && m.search.Value() == "" {
		searchLine = m.theme.Muted.Render("/ search  ·  ↑↓ scroll")
	}
	count := m.theme.CardMeta.Render(fmt.Sprintf("%d of %d entries", len(m.Visible()), len(m.items)))
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), searchLine, m.viewport.View(), count)
}
