// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/twin-tui/internal/ui/styles"
)

// init picks a color profile for line-mode output. Colors are off when
// stdout is not a terminal or NO_COLOR is set; FORCE_COLOR turns them on.
func init() {
	lipgloss.SetColorProfile(colorProfile())
}

func colorProfile() termenv.Profile {
	if os.Getenv("FORCE_COLOR") != "" {
		return termenv.TrueColor
	}
	if os.Getenv("NO_COLOR") != "" || !IsStdoutTTY() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// isTerminal reports whether w is a terminal. Buffers used in tests
// never are.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
	labelStyle   = lipgloss.NewStyle().Foreground(styles.TextMuted).Width(18)
	valueStyle   = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	promptStyle  = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	youStyle     = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	twinStyle    = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(styles.TextMuted)
	warningStyle = lipgloss.NewStyle().Foreground(styles.Amber)
)

// RenderError renders an error line.
func RenderError(msg string) string {
	return styles.RenderError(msg)
}

func field(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
