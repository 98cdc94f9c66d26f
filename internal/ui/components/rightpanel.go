// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
)

// RecentMemoryLimit is how many history entries the right panel shows.
const RecentMemoryLimit = 5

// =============================================================================
// RIGHT PANEL - context and recent activity
// =============================================================================

// RightPanel shows the top files and the latest history from the most
// recent dashboard snapshot.
type RightPanel struct {
	Snapshot       *model.Snapshot
	ActiveDocument string
	Width          int
	Height         int
	theme          *styles.Theme
}

// NewRightPanel creates a right panel over the default snapshot.
func NewRightPanel(theme *styles.Theme) *RightPanel {
	return &RightPanel{Snapshot: model.DefaultSnapshot(), Width: 32, Height: 24, theme: theme}
}

// SetSize updates the panel dimensions.
func (r *RightPanel) SetSize(width, height int) {
	r.Width = width
	r.Height = height
}

// View renders the panel. A zero width renders nothing.
func (r *RightPanel) View() string {
	if r.Width <= 0 {
		return ""
	}
	snap := r.Snapshot
	if snap == nil {
		snap = model.DefaultSnapshot()
	}
	inner := max(r.Width-3, 8)

	var b strings.Builder
	b.WriteString(r.theme.SectionTitle.Render("CONTEXT INTELLIGENCE") + "\n")
	files := snap.TopFiles(3)
	if len(files) == 0 {
		b.WriteString(r.theme.EmptyState.Render("No files active in context.") + "\n")
	}
	for _, f := range files {
		b.WriteString(r.theme.CardTitle.Render(truncate(kindIcon(f.Type)+" "+f.Title, inner)) + "\n")
		b.WriteString(r.theme.CardMeta.Render(truncate(string(f.Size)+" • "+f.Type, inner)) + "\n")
	}
	if r.ActiveDocument != "" {
		b.WriteString(r.theme.ActiveDocument.Render(truncate("Active: "+r.ActiveDocument, inner)) + "\n")
	}

	b.WriteString("\n" + r.theme.SectionTitle.Render("RECENT MEMORY") + "\n")
	history := snap.RecentHistory
	if len(history) == 0 {
		b.WriteString(r.theme.EmptyState.Render("No recent history yet.") + "\n")
	}
	if len(history) > RecentMemoryLimit {
		history = history[len(history)-RecentMemoryLimit:]
	}
	for _, item := range history {
		b.WriteString(clampLines(item.Speaker()+" "+item.Content, 2, inner) + "\n")
		if t := item.ShortTime(); t != "" {
			b.WriteString(r.theme.CardMeta.Render(t) + "\n")
		}
	}

	return r.theme.RightPanel.
		Width(r.Width - 1).
		Render(fitHeight(b.String(), r.Height))
}
