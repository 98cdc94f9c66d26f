// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	// DefaultBreakpoint is the width in columns below which the compact
	// layout is used.
	DefaultBreakpoint = 100

	SidebarWidth = 24
	RightWidth   = 32

	// MinMainWidth is the narrowest main area the right panel may leave.
	MinMainWidth = 48

	fallbackWidth  = 80
	fallbackHeight = 24
)

// Derive returns the compact-mode and sidebar flags for a width.
// There is no hysteresis: every call is decided by width alone.
func Derive(width, breakpoint int) (isMobile, sidebarOpen bool) {
	isMobile = width < breakpoint
	return isMobile, !isMobile
}

// Layout is the column split for one frame.
type Layout struct {
	Width        int
	Height       int
	SidebarWidth int
	MainWidth    int
	RightWidth   int
	ShowRight    bool
	IsMobile     bool
	SidebarOpen  bool
}

// Controller tracks the terminal size and the sidebar state.
type Controller struct {
	Breakpoint int
	ShowRight  bool

	mu          sync.RWMutex
	width       int
	height      int
	isMobile    bool
	sidebarOpen bool
}

// New creates a controller sized from the current terminal.
func New(breakpoint int, showRight bool) *Controller {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	c := &Controller{Breakpoint: breakpoint, ShowRight: showRight}
	w, h := InitialSize()
	c.Resize(w, h)
	return c
}

// InitialSize reads the terminal size from stdout, or 80x24 when stdout
// is not a terminal.
func InitialSize() (width, height int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth, fallbackHeight
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// Resize records a new size and re-derives both flags, discarding any
// manual sidebar toggle.
func (c *Controller) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = width
	c.height = height
	c.isMobile, c.sidebarOpen = Derive(width, c.Breakpoint)
}

// ToggleSidebar flips the sidebar until the next resize.
func (c *Controller) ToggleSidebar() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sidebarOpen = !c.sidebarOpen
	return c.sidebarOpen
}

// SetShowRight enables or disables the activity panel.
func (c *Controller) SetShowRight(show bool) {
	c.mu.Lock()
	c.ShowRight = show
	c.mu.Unlock()
}

// IsMobile reports whether the compact layout is in use.
func (c *Controller) IsMobile() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isMobile
}

// SidebarOpen reports whether the sidebar is expanded.
func (c *Controller) SidebarOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sidebarOpen
}

// Compute splits the width into sidebar, main and right columns.
func (c *Controller) Compute() Layout {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l := Layout{
		Width:       c.width,
		Height:      c.height,
		IsMobile:    c.isMobile,
		SidebarOpen: c.sidebarOpen,
	}
	if c.sidebarOpen {
		l.SidebarWidth = min(SidebarWidth, c.width/2)
	}
	remaining := c.width - l.SidebarWidth

	if c.ShowRight && !c.isMobile && remaining-RightWidth >= MinMainWidth {
		l.ShowRight = true
		l.RightWidth = RightWidth
		remaining -= RightWidth
	}
	l.MainWidth = max(remaining, 0)
	return l
}
