// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
)

// StatCard is one labelled figure.
type StatCard struct {
	Label string
	Value string
}

// StatCards returns the four dashboard figures in display order.
func StatCards(s model.Stats) []StatCard {
	return []StatCard{
		{Label: "Total Queries", Value: fmtNumber(s.TotalQueries)},
		{Label: "Documents Indexed", Value: fmtNumber(s.DocsIndexed)},
		{Label: "Avg. Latency (ms)", Value: fmtLatency(s.AvgLatencyMs)},
		{Label: "Active Users", Value: fmtNumber(s.ActiveUsers)},
	}
}

// TypeCount is the number of indexed files of one type.
type TypeCount struct {
	Type  string
	Count int
}

// CountByType groups files by type, largest group first.
func CountByType(files []model.FileDescriptor) []TypeCount {
	counts := map[string]int{}
	for _, f := range files {
		t := strings.ToLower(strings.TrimSpace(f.Type))
		if t == "" {
			t = "other"
		}
		counts[t]++
	}
	out := make([]TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// =============================================================================
// ANALYTICS VIEW
// =============================================================================

// AnalyticsView renders the dashboard stats with a stale badge when the
// latest polls failed.
type AnalyticsView struct {
	Snapshot    *model.Snapshot
	Failures    int
	LastSuccess time.Time
	header      *Header
	width       int
	height      int
	theme       *styles.Theme
}

// NewAnalyticsView creates the analytics panel.
func NewAnalyticsView(theme *styles.Theme) *AnalyticsView {
	return &AnalyticsView{
		Snapshot: model.DefaultSnapshot(),
		header:   NewHeader(theme, "Analytics Dashboard", "Real-time insights into AI performance and usage."),
		theme:    theme,
	}
}

// SetSize updates the view dimensions.
func (a *AnalyticsView) SetSize(width, height int) {
	a.width = width
	a.height = height
	a.header.SetWidth(width)
}

// Capturing is always false; the panel takes no input.
func (a *AnalyticsView) Capturing() bool {
	return false
}

// Update is a no-op; the panel is redrawn from the snapshot.
func (a *AnalyticsView) Update(tea.Msg) tea.Cmd {
	return nil
}

// Stale reports whether the figures are from an older poll.
func (a *AnalyticsView) Stale() bool {
	return a.Failures > 0
}

// StaleText is the badge label, empty when fresh.
func (a *AnalyticsView) StaleText() string {
	if !a.Stale() {
		return ""
	}
	if a.Failures == 1 {
		return "STALE · 1 failed poll"
	}
	return fmt.Sprintf("STALE · %d failed polls", a.Failures)
}

// View renders the panel.
func (a *AnalyticsView) View() string {
	snap := a.Snapshot
	if snap == nil {
		snap = model.DefaultSnapshot()
	}

	a.header.Badge = ""
	if a.Stale() {
		a.header.Badge = a.theme.StaleBadge.Render(a.StaleText())
	}

	cards := StatCards(snap.Stats)
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = a.theme.StatCard.Render(
			a.theme.StatValue.Render(c.Value) + "\n" + a.theme.StatLabel.Render(c.Label))
	}
	cardW := lipgloss.Width(rendered[0]) + 1
	perRow := max(1, min(len(rendered), (a.width+1)/cardW))

	var grid []string
	for i := 0; i < len(rendered); i += perRow {
		row := rendered[i:min(i+perRow, len(rendered))]
		spaced := make([]string, 0, len(row)*2)
		for j, r := range row {
			if j > 0 {
				spaced = append(spaced, " ")
			}
			spaced = append(spaced, r)
		}
		grid = append(grid, lipgloss.JoinHorizontal(lipgloss.Top, spaced...))
	}

	parts := []string{a.header.View(), strings.Join(grid, "\n"), ""}
	parts = append(parts, a.breakdown(snap)...)

	if !a.LastSuccess.IsZero() {
		parts = append(parts, "", a.theme.CardMeta.Render("Last updated "+a.LastSuccess.Format("15:04:05")))
	}
	return fitHeight(lipgloss.JoinVertical(lipgloss.Left, parts...), a.height)
}

func (a *AnalyticsView) breakdown(snap *model.Snapshot) []string {
	lines := []string{a.theme.SectionTitle.Render("KNOWLEDGE BASE BY TYPE")}
	groups := CountByType(snap.Files)
	if len(groups) == 0 {
		return append(lines, a.theme.EmptyState.Render("Nothing indexed yet."))
	}

	total := len(snap.Files)
	barW := max(min(a.width-24, 40), 5)
	for _, g := range groups {
		label := fmt.Sprintf("%-10s %3d ", truncate(g.Type, 10), g.Count)
		lines = append(lines, label+styles.RenderProgressBar(barW, float64(g.Count)/float64(total)))
	}
	return lines
}
