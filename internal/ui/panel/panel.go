// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// ID identifies one of the main views.
type ID int

const (
	Chat ID = iota
	Documents
	Multimedia
	Memory
	Analytics
	Settings

	count
)

var titles = [...]string{
	Chat:       "Chat",
	Documents:  "Documents",
	Multimedia: "Multimedia Lab",
	Memory:     "Memory",
	Analytics:  "Analytics",
	Settings:   "Settings",
}

var keys = [...]string{
	Chat:       "chat",
	Documents:  "documents",
	Multimedia: "multimedia",
	Memory:     "memory",
	Analytics:  "analytics",
	Settings:   "settings",
}

// Title returns the label shown in the sidebar.
func (id ID) Title() string {
	if !id.Valid() {
		return "Unknown"
	}
	return titles[id]
}

// String returns the lowercase key, e.g. "multimedia".
func (id ID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return keys[id]
}

// Valid reports whether id names a panel.
func (id ID) Valid() bool {
	return id >= 0 && id < count
}

// All returns every panel in sidebar order.
func All() []ID {
	ids := make([]ID, 0, count)
	for id := Chat; id < count; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ParseID accepts a key ("memory"), a title ("Multimedia Lab") or a
// 1-based position ("3").
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		id := ID(n - 1)
		if id.Valid() {
			return id, nil
		}
		return 0, fmt.Errorf("panel number %d out of range 1-%d", n, count)
	}
	for _, id := range All() {
		if strings.EqualFold(s, keys[id]) || strings.EqualFold(s, titles[id]) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown panel %q", s)
}

// Switcher holds the active panel. Switching is pure selection state.
type Switcher struct {
	mu     sync.RWMutex
	active ID
}

// NewSwitcher starts on the chat panel.
func NewSwitcher() *Switcher {
	return &Switcher{active: Chat}
}

// Active returns the selected panel.
func (s *Switcher) Active() ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Select makes id active. Invalid ids are ignored and false is returned.
func (s *Switcher) Select(id ID) bool {
	if !id.Valid() {
		return false
	}
	s.mu.Lock()
	s.active = id
	s.mu.Unlock()
	return true
}

// Next moves to the following panel, wrapping after Settings.
func (s *Switcher) Next() ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = (s.active + 1) % count
	return s.active
}

// Prev moves to the preceding panel, wrapping before Chat.
func (s *Switcher) Prev() ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = (s.active + count - 1) % count
	return s.active
}

// All returns every panel in sidebar order.
func (s *Switcher) All() []ID {
	return All()
}
