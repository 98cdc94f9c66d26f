// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twin-tui/internal/util"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// fmtNumber formats a number with thousand separators.
func fmtNumber(n int) string {
	if n < 0 {
		return "-" + fmtNumber(-n)
	}
	s := strconv.Itoa(n)
	if n < 1000 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// fmtLatency renders milliseconds without a trailing ".0".
func fmtLatency(ms float64) string {
	if math.IsNaN(ms) || ms < 0 {
		ms = 0
	}
	if ms == math.Trunc(ms) {
		return fmtNumber(int(ms))
	}
	return strconv.FormatFloat(ms, 'f', 1, 64)
}

// truncate cuts s to width display cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return util.TruncateWidth(util.FirstLine(s), width)
}

// clampLines keeps at most n lines of s, each cut to width.
func clampLines(s string, n, width int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[:n]
		lines[n-1] += "…"
	}
	for i, l := range lines {
		lines[i] = util.TruncateWidth(l, width)
	}
	return strings.Join(lines, "\n")
}

// fitHeight pads or cuts rendered content to exactly h lines.
func fitHeight(s string, h int) string {
	if h <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Height(h).MaxHeight(h).Render(s)
}

// kindIcon returns a short marker for a file type.
func kindIcon(kind string) string {
	k := strings.ToLower(kind)
	switch {
	case strings.HasPrefix(k, "image"):
		return "▣"
	case strings.HasPrefix(k, "video"):
		return "▶"
	case strings.HasPrefix(k, "audio"):
		return "♪"
	default:
		return "≡"
	}
}
