// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twin-tui/internal/ui/styles"
	"github.com/jeranaias/twin-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT - panel title bar
// =============================================================================

// Header renders a panel title, a subtitle and an optional right-aligned
// badge on one row, with a divider underneath.
type Header struct {
	Title    string
	Subtitle string
	Badge    string // pre-rendered, e.g. a stale badge
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a Header.
func NewHeader(theme *styles.Theme, title, subtitle string) *Header {
	return &Header{Title: title, Subtitle: subtitle, Width: 80, theme: theme}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// Height is the number of rows View produces.
func (h *Header) Height() int {
	return 3
}

// View renders the header.
func (h *Header) View() string {
	width := max(h.Width, 20)

	title := h.theme.PanelTitle.Render(h.Title)
	badge := h.Badge
	gap := width - lipgloss.Width(title) - lipgloss.Width(badge)
	if gap < 1 {
		badge = ""
		gap = width - lipgloss.Width(title)
	}
	top := title + strings.Repeat(" ", max(gap, 0)) + badge

	sub := h.theme.PanelSubtitle.Render(util.TruncateWidth(h.Subtitle, width))
	rule := h.theme.Divider.Render(strings.Repeat("─", width))

	return lipgloss.JoinVertical(lipgloss.Left, top, sub, rule)
}
