// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/twin-tui/internal/util"
)

// =============================================================================
// DASHBOARD SNAPSHOT
// =============================================================================

// Stats are the aggregate counters shown in the analytics panel.
type Stats struct {
	TotalQueries int     `json:"total_queries"`
	DocsIndexed  int     `json:"docs_indexed"`
	ActiveUsers  int     `json:"active_users"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// ActivityItem is one entry of the server's recent conversation history.
type ActivityItem struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// IsUser reports whether the entry was written by the user.
func (a ActivityItem) IsUser() bool {
	return a.Role == string(RoleUser)
}

// Speaker returns the "You:" / "AI:" prefix used in activity lists.
func (a ActivityItem) Speaker() string {
	if a.IsUser() {
		return "You:"
	}
	return "AI:"
}

// Time parses the timestamp. The backend sends RFC 3339 but older builds
// used a bare "2006-01-02 15:04:05".
func (a ActivityItem) Time() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, a.Timestamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ShortTime returns "15:04" when the timestamp parses, else the raw value.
func (a ActivityItem) ShortTime() string {
	if t, ok := a.Time(); ok {
		return t.Local().Format("15:04")
	}
	return a.Timestamp
}

// FileDescriptor describes one indexed document.
type FileDescriptor struct {
	ID    FlexString `json:"id"`
	Title string     `json:"title"`
	Size  FileSize   `json:"size"`
	Date  string     `json:"date"`
	Tags  []string   `json:"tags"`
	Type  string     `json:"type"`
}

// IsMedia reports whether the document is an image, video or audio file.
// Type may be a short kind ("image") or a full mime type ("image/png").
func (f FileDescriptor) IsMedia() bool {
	t := strings.ToLower(f.Type)
	for _, kind := range []string{"image", "video", "audio"} {
		if t == kind || strings.HasPrefix(t, kind+"/") {
			return true
		}
	}
	return false
}

// Snapshot is the dashboard payload. It is replaced wholesale on every
// successful poll and never edited locally.
type Snapshot struct {
	Stats         Stats            `json:"stats"`
	RecentHistory []ActivityItem   `json:"recent_history"`
	Files         []FileDescriptor `json:"files"`

	// FetchedAt is set locally when the snapshot is applied.
	FetchedAt time.Time `json:"-"`
}

// DefaultSnapshot is shown until the first poll succeeds.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Stats:         Stats{ActiveUsers: 1, AvgLatencyMs: 45},
		RecentHistory: []ActivityItem{},
		Files:         []FileDescriptor{},
	}
}

// Normalize clamps negative counters to zero, replaces nil lists with
// empty ones and drops files whose id was already seen.
func (s *Snapshot) Normalize() {
	s.Stats.TotalQueries = max(s.Stats.TotalQueries, 0)
	s.Stats.DocsIndexed = max(s.Stats.DocsIndexed, 0)
	s.Stats.ActiveUsers = max(s.Stats.ActiveUsers, 0)
	s.Stats.AvgLatencyMs = max(s.Stats.AvgLatencyMs, 0)

	if s.RecentHistory == nil {
		s.RecentHistory = []ActivityItem{}
	}
	s.Files = UniqueFiles(s.Files)
}

// UniqueFiles returns files with duplicate ids removed; the first wins.
// Files without an id are kept.
func UniqueFiles(files []FileDescriptor) []FileDescriptor {
	out := make([]FileDescriptor, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		id := string(f.ID)
		if id != "" {
			if seen[id] {
				continue
			}
			seen[id] = true
		}
		out = append(out, f)
	}
	return out
}

// TopFiles returns at most n files in server order.
func (s *Snapshot) TopFiles(n int) []FileDescriptor {
	if n > len(s.Files) {
		n = len(s.Files)
	}
	return s.Files[:n]
}

// MediaFiles returns the image, video and audio documents.
func (s *Snapshot) MediaFiles() []FileDescriptor {
	var out []FileDescriptor
	for _, f := range s.Files {
		if f.IsMedia() {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// LENIENT JSON SCALARS
// =============================================================================

// FlexString accepts either a JSON string or number.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// FileSize accepts a preformatted string ("2.4 MB") or a byte count.
type FileSize string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FileSize) UnmarshalJSON(b []byte) error {
	var raw FlexString
	if err := raw.UnmarshalJSON(b); err != nil {
		return err
	}
	str := string(raw)
	if b = bytes.TrimSpace(b); len(b) > 0 && b[0] != '"' {
		if n, err := strconv.ParseFloat(str, 64); err == nil {
			str = util.HumanBytes(int64(n))
		}
	}
	*s = FileSize(str)
	return nil
}
