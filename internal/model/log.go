// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"sync"
)

// ErrNotPending is returned by Settle when the id does not name a pending entry.
var ErrNotPending = errors.New("no pending message with that id")

// HistoryEntry is one role-tagged turn sent to the backend with a query.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Type    string `json:"type,omitempty"`
}

// Log is the ordered, append-only chat log. Entries are only ever added at
// the end, a pending placeholder may be settled in place, and the whole log
// may be reset to a single notice. Nothing is reordered or removed on its own.
//
// Log is safe for concurrent use.
type Log struct {
	mu         sync.RWMutex
	messages   []*Message
	generation uint64
}

// NewLog creates a log seeded with the given messages.
func NewLog(seed ...*Message) *Log {
	return &Log{messages: append([]*Message(nil), seed...)}
}

// Append adds messages to the end of the log in order.
func (l *Log) Append(msgs ...*Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msgs...)
}

// AppendIf appends only while the log is still at generation gen.
// It reports whether the messages were added.
func (l *Log) AppendIf(gen uint64, msgs ...*Message) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != gen {
		return false
	}
	l.messages = append(l.messages, msgs...)
	return true
}

// Settle replaces the pending entry id with the given messages, at the
// same position. The replacement happens in one step, so readers never see
// the placeholder and its result side by side.
func (l *Log) Settle(id string, replacements ...*Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, m := range l.messages {
		if m.ID != id || !m.Pending {
			continue
		}
		out := make([]*Message, 0, len(l.messages)-1+len(replacements))
		out = append(out, l.messages[:i]...)
		out = append(out, replacements...)
		out = append(out, l.messages[i+1:]...)
		l.messages = out
		return nil
	}
	return ErrNotPending
}

// Reset replaces the entire log with a single notice and starts a new
// generation.
func (l *Log) Reset(notice *Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = []*Message{notice}
	l.generation++
}

// Generation identifies the current log lifetime; it changes on Reset.
func (l *Log) Generation() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.generation
}

// Messages returns a copy of the log in display order.
func (l *Log) Messages() []*Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*Message(nil), l.messages...)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// Last returns the newest entry, or nil for an empty log.
func (l *Log) Last() *Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.messages) == 0 {
		return nil
	}
	return l.messages[len(l.messages)-1]
}

// LastFile returns the most recent file attachment, or nil.
func (l *Log) LastFile() *Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.messages) - 1; i >= 0; i-- {
		if l.messages[i].IsFile() {
			return l.messages[i]
		}
	}
	return nil
}

// History translates the log into backend history, skipping the entry
// named by excludeID (usually the question being sent) and any pending
// placeholders.
func (l *Log) History(excludeID string) []HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	history := make([]HistoryEntry, 0, len(l.messages))
	for _, m := range l.messages {
		if m.ID == excludeID || m.Pending {
			continue
		}
		entry := HistoryEntry{Role: m.Role.WireRole(), Content: m.Content}
		if m.IsFile() {
			entry.Type = string(KindFile)
			entry.Content = m.FileName
		}
		history = append(history, entry)
	}
	return history
}
