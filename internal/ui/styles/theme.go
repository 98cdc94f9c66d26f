// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects how the background is decided.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode maps a config value to a Mode. Unknown values mean auto.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDark:
		return ModeDark
	case ModeLight:
		return ModeLight
	default:
		return ModeAuto
	}
}

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	Mode         Mode
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// FRAME
	// ==========================================================================

	App         lipgloss.Style
	Main        lipgloss.Style
	Divider     lipgloss.Style
	BrandFirst  lipgloss.Style
	BrandSecond lipgloss.Style

	// ==========================================================================
	// SIDEBAR
	// ==========================================================================

	Sidebar           lipgloss.Style
	SidebarItem       lipgloss.Style
	SidebarItemActive lipgloss.Style
	SidebarMarker     lipgloss.Style
	SidebarFooter     lipgloss.Style

	// ==========================================================================
	// PANELS AND CARDS
	// ==========================================================================

	PanelTitle    lipgloss.Style
	PanelSubtitle lipgloss.Style
	SectionTitle  lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	CardTitle     lipgloss.Style
	CardMeta      lipgloss.Style
	Tag           lipgloss.Style
	EmptyState    lipgloss.Style
	RightPanel    lipgloss.Style

	// ==========================================================================
	// CHAT
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	SpeakerUser     lipgloss.Style
	SpeakerTwin     lipgloss.Style
	FileCard        lipgloss.Style
	FileCardLabel   lipgloss.Style
	ActiveDocument  lipgloss.Style
	Spinner         lipgloss.Style
	ThinkingText    lipgloss.Style
	Disclaimer      lipgloss.Style

	// ==========================================================================
	// INPUT
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// ANALYTICS
	// ==========================================================================

	StatCard   lipgloss.Style
	StatValue  lipgloss.Style
	StatLabel  lipgloss.Style
	StaleBadge lipgloss.Style
	Badge      lipgloss.Style

	// ==========================================================================
	// SETTINGS
	// ==========================================================================

	ToggleOn     lipgloss.Style
	ToggleOff    lipgloss.Style
	Button       lipgloss.Style
	ButtonDanger lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusOnline  lipgloss.Style
	StatusOffline lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// STATUS MESSAGES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme creates a theme for the given mode ("auto", "dark" or "light").
// A forced mode also tells lipgloss which side of each AdaptiveColor to use.
func NewTheme(mode string) *Theme {
	m := ParseMode(mode)
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch m {
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		Mode:         m,
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// GlamourStyle returns the glamour standard style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

func (t *Theme) initStyles() {
	// Frame
	t.App = lipgloss.NewStyle()
	t.Main = lipgloss.NewStyle().Padding(0, 1)
	t.Divider = lipgloss.NewStyle().Foreground(Overlay)
	t.BrandFirst = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	t.BrandSecond = lipgloss.NewStyle().Bold(true).Foreground(Accent)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(1, 1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.SidebarItemActive = lipgloss.NewStyle().
		Foreground(Primary).
		Background(PrimaryDeep).
		Bold(true).
		Padding(0, 1)

	t.SidebarMarker = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	t.SidebarFooter = lipgloss.NewStyle().Foreground(TextMuted)

	// Panels
	t.PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.PanelSubtitle = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.SectionTitle = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CardSelected = t.Card.BorderForeground(Primary)
	t.CardTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.CardMeta = lipgloss.NewStyle().Foreground(TextMuted)

	t.Tag = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceBright).
		Padding(0, 1)

	t.EmptyState = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	t.RightPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	// Chat
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.SystemBubble = lipgloss.NewStyle().
		Foreground(SystemBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(SystemBubbleBorder).
		PaddingLeft(1)

	t.SpeakerUser = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	t.SpeakerTwin = lipgloss.NewStyle().Bold(true).Foreground(Accent)

	t.FileCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(FileCardBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.FileCardLabel = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	t.ActiveDocument = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.Spinner = lipgloss.NewStyle().Foreground(Accent)
	t.ThinkingText = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.Disclaimer = lipgloss.NewStyle().Foreground(TextMuted).Align(lipgloss.Center)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	t.InputPlaceholder = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	// Analytics
	t.StatCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2).
		Width(22)

	t.StatValue = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.StatLabel = lipgloss.NewStyle().Foreground(TextMuted)

	t.StaleBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Amber).
		Bold(true).
		Padding(0, 1)

	t.Badge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Emerald).
		Padding(0, 1)

	// Settings
	t.ToggleOn = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	t.ToggleOff = lipgloss.NewStyle().Foreground(TextMuted)

	t.Button = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Primary).
		Padding(0, 2)

	t.ButtonDanger = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusOnline = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.StatusOffline = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)

	t.SuccessStyle = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.WarningStyle = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.InfoStyle = lipgloss.NewStyle().Foreground(Sky).Bold(true)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// Brand renders the two-tone "KnowledgeTwin" wordmark.
func (t *Theme) Brand() string {
	return t.BrandFirst.Render("Knowledge") + t.BrandSecond.Render("Twin")
}
