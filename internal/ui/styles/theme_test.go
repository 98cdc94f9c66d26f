// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"dark", ModeDark},
		{" LIGHT ", ModeLight},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"neon", ModeAuto},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewTheme_ForcedModes(t *testing.T) {
	defer lipgloss.SetHasDarkBackground(true)

	dark := NewTheme("dark")
	if !dark.IsDark || dark.Mode != ModeDark {
		t.Errorf("dark theme: IsDark=%v Mode=%q", dark.IsDark, dark.Mode)
	}
	if dark.GlamourStyle() != "dark" {
		t.Errorf("GlamourStyle() = %q, want dark", dark.GlamourStyle())
	}

	light := NewTheme("light")
	if light.IsDark {
		t.Error("light theme should not be dark")
	}
	if light.GlamourStyle() != "light" {
		t.Errorf("GlamourStyle() = %q, want light", light.GlamourStyle())
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme("dark")
	defer lipgloss.SetHasDarkBackground(true)

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Sidebar", theme.Sidebar},
		{"SidebarItemActive", theme.SidebarItemActive},
		{"Card", theme.Card},
		{"UserBubble", theme.UserBubble},
		{"AssistantBubble", theme.AssistantBubble},
		{"SystemBubble", theme.SystemBubble},
		{"FileCard", theme.FileCard},
		{"StatCard", theme.StatCard},
		{"StaleBadge", theme.StaleBadge},
		{"StatusBar", theme.StatusBar},
	}

	for _, s := range styles {
		if !strings.Contains(s.style.Render("test"), "test") {
			t.Errorf("%s style should render its content", s.name)
		}
	}
}

func TestTheme_Brand(t *testing.T) {
	theme := NewTheme("dark")
	defer lipgloss.SetHasDarkBackground(true)

	brand := theme.Brand()
	if !strings.Contains(brand, "Knowledge") || !strings.Contains(brand, "Twin") {
		t.Errorf("Brand() = %q, want both halves of the wordmark", brand)
	}
}

func TestTheme_SetSize(t *testing.T) {
	theme := NewTheme("auto")
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize: got %dx%d", theme.Width, theme.Height)
	}
}
