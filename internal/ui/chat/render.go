// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// MARKDOWN
// =============================================================================

// markdownRenderer wraps a glamour renderer that is rebuilt whenever the
// width or style changes. When disabled, or when glamour fails, text is
// word-wrapped as is.
type markdownRenderer struct {
	style   string
	width   int
	enabled bool
	r       *glamour.TermRenderer

	// cache holds rendered output by source text; live records what was
	// rendered since the last Sweep.
	cache map[string]string
	live  map[string]struct{}
}

func newMarkdownRenderer(style string, enabled bool) *markdownRenderer {
	return &markdownRenderer{
		style:   style,
		width:   72,
		enabled: enabled,
		cache:   map[string]string{},
		live:    map[string]struct{}{},
	}
}

func (m *markdownRenderer) reset() {
	m.r = nil
	m.cache = map[string]string{}
	m.live = map[string]struct{}{}
}

// SetWidth sets the wrap width.
func (m *markdownRenderer) SetWidth(w int) {
	if w != m.width {
		m.width = w
		m.reset()
	}
}

// SetStyle sets the glamour standard style ("dark" or "light").
func (m *markdownRenderer) SetStyle(style string) {
	if style != m.style {
		m.style = style
		m.reset()
	}
}

// SetEnabled turns markdown rendering on or off.
func (m *markdownRenderer) SetEnabled(on bool) {
	if on != m.enabled {
		m.enabled = on
		m.reset()
	}
}

// Render returns text laid out for a bubble of the configured width.
// Results are cached by source text until a Sweep finds them unused.
func (m *markdownRenderer) Render(text string) string {
	m.live[text] = struct{}{}
	if out, ok := m.cache[text]; ok {
		return out
	}
	out := m.render(text)
	m.cache[text] = out
	return out
}

// Sweep drops cached output that was not rendered since the previous
// Sweep. Called after each full transcript pass, it keeps the cache to
// the messages currently on screen.
func (m *markdownRenderer) Sweep() {
	for text := range m.cache {
		if _, ok := m.live[text]; !ok {
			delete(m.cache, text)
		}
	}
	clear(m.live)
}

// Len reports the number of cached entries.
func (m *markdownRenderer) Len() int {
	return len(m.cache)
}

func (m *markdownRenderer) render(text string) string {
	if !m.enabled {
		return wrapPlain(text, m.width)
	}
	if m.r == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(m.width),
			glamour.WithEmoji(),
		)
		if err != nil {
			return wrapPlain(text, m.width)
		}
		m.r = r
	}
	out, err := m.r.Render(text)
	if err != nil {
		return wrapPlain(text, m.width)
	}
	return trimRendered(out)
}

// trimRendered drops the blank lines glamour puts around a document and
// the trailing padding on each line.
func trimRendered(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func wrapPlain(text string, width int) string {
	return lipgloss.NewStyle().Width(max(width, 1)).Render(strings.TrimSpace(text))
}

// stripEmphasis removes markdown bold markers for single-line plain text.
func stripEmphasis(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
