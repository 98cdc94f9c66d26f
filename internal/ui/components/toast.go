// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twin-tui/internal/ui/styles"
)

// =============================================================================
// TOASTS - short-lived notices shown in the status bar
// =============================================================================

// ToastKind is the severity of a toast.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

const (
	DefaultToastDuration = 4 * time.Second
	ErrorToastDuration   = 8 * time.Second

	maxToasts = 5
)

// Toast is one notice.
type Toast struct {
	ID        int
	Kind      ToastKind
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the toast has outlived its duration at now.
func (t Toast) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// Render draws the toast with its status indicator.
func (t Toast) Render() string {
	switch t.Kind {
	case ToastSuccess:
		return styles.RenderSuccess(t.Message)
	case ToastWarning:
		return styles.RenderWarning(t.Message)
	case ToastError:
		return styles.RenderError(t.Message)
	default:
		return styles.RenderInfo(t.Message)
	}
}

// ToastManager keeps the newest few toasts. It is safe for concurrent use
// because the inbox watcher reports from its own goroutine.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
	now    func() time.Time
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1, now: time.Now}
}

// Add records a toast and returns its id.
func (m *ToastManager) Add(kind ToastKind, message string) int {
	d := DefaultToastDuration
	if kind == ToastError {
		d = ErrorToastDuration
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	t := Toast{ID: m.nextID, Kind: kind, Message: message, CreatedAt: m.now(), Duration: d}
	m.nextID++
	m.toasts = append([]Toast{t}, m.toasts...)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[:maxToasts]
	}
	return t.ID
}

// Latest returns the newest unexpired toast.
func (m *ToastManager) Latest() (Toast, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for _, t := range m.toasts {
		if !t.IsExpired(now) {
			return t, true
		}
	}
	return Toast{}, false
}

// Prune drops expired toasts and reports whether any remain.
func (m *ToastManager) Prune() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return len(m.toasts) > 0
}

// Len returns the number of stored toasts.
func (m *ToastManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// ToastTickMsg triggers a prune.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next prune.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}
