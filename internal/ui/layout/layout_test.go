// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		width      int
		wantMobile bool
	}{
		{40, true},
		{99, true},
		{100, false},
		{180, false},
	}
	for _, tt := range tests {
		mobile, open := Derive(tt.width, 100)
		assert.Equal(t, tt.wantMobile, mobile, "width %d", tt.width)
		assert.Equal(t, !tt.wantMobile, open, "width %d", tt.width)
	}
}

func newController(breakpoint int, showRight bool, w, h int) *Controller {
	c := &Controller{Breakpoint: breakpoint, ShowRight: showRight}
	c.Resize(w, h)
	return c
}

func TestController_ResizeRederives(t *testing.T) {
	c := newController(100, true, 160, 40)
	assert.False(t, c.IsMobile())
	assert.True(t, c.SidebarOpen())

	c.Resize(80, 40)
	assert.True(t, c.IsMobile())
	assert.False(t, c.SidebarOpen())

	c.Resize(100, 40)
	assert.False(t, c.IsMobile())
	assert.True(t, c.SidebarOpen())
}

func TestController_ToggleUntilResize(t *testing.T) {
	c := newController(100, true, 80, 30)
	assert.True(t, c.ToggleSidebar())
	assert.True(t, c.SidebarOpen())

	c.Resize(81, 30)
	assert.False(t, c.SidebarOpen(), "resize discards the manual toggle")
}

func TestController_Compute(t *testing.T) {
	t.Run("wide shows everything", func(t *testing.T) {
		l := newController(100, true, 160, 40).Compute()
		assert.Equal(t, SidebarWidth, l.SidebarWidth)
		assert.True(t, l.ShowRight)
		assert.Equal(t, RightWidth, l.RightWidth)
		assert.Equal(t, 160-SidebarWidth-RightWidth, l.MainWidth)
		assert.Equal(t, 40, l.Height)
	})

	t.Run("mobile hides right panel and sidebar", func(t *testing.T) {
		l := newController(100, true, 70, 20).Compute()
		assert.True(t, l.IsMobile)
		assert.False(t, l.ShowRight)
		assert.Zero(t, l.SidebarWidth)
		assert.Equal(t, 70, l.MainWidth)
	})

	t.Run("right panel needs room", func(t *testing.T) {
		l := newController(100, true, 100, 20).Compute()
		assert.False(t, l.ShowRight)
		assert.Equal(t, 100-SidebarWidth, l.MainWidth)
	})

	t.Run("setting disables right panel", func(t *testing.T) {
		c := newController(100, true, 200, 20)
		c.SetShowRight(false)
		assert.False(t, c.Compute().ShowRight)
	})

	t.Run("mobile with sidebar toggled open", func(t *testing.T) {
		c := newController(100, true, 60, 20)
		c.ToggleSidebar()
		l := c.Compute()
		assert.Equal(t, SidebarWidth, l.SidebarWidth)
		assert.Equal(t, 60-SidebarWidth, l.MainWidth)
	})
}

func TestNew_DefaultsBreakpoint(t *testing.T) {
	c := New(0, true)
	assert.Equal(t, DefaultBreakpoint, c.Breakpoint)
}

func TestInitialSize_NotATerminal(t *testing.T) {
	w, h := InitialSize()
	assert.Positive(t, w)
	assert.Positive(t, h)
}
