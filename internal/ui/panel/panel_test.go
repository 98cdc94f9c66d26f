// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitles(t *testing.T) {
	want := []string{"Chat", "Documents", "Multimedia Lab", "Memory", "Analytics", "Settings"}
	var got []string
	for _, id := range All() {
		got = append(got, id.Title())
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "Unknown", ID(42).Title())
	assert.Equal(t, "multimedia", Multimedia.String())
}

func TestSwitcher_StartsOnChat(t *testing.T) {
	assert.Equal(t, Chat, NewSwitcher().Active())
}

func TestSwitcher_Select(t *testing.T) {
	s := NewSwitcher()
	assert.True(t, s.Select(Analytics))
	assert.Equal(t, Analytics, s.Active())

	assert.False(t, s.Select(ID(-1)))
	assert.False(t, s.Select(count))
	assert.Equal(t, Analytics, s.Active())
}

func TestSwitcher_NextPrevWrap(t *testing.T) {
	s := NewSwitcher()
	assert.Equal(t, Settings, s.Prev())
	assert.Equal(t, Chat, s.Next())
	assert.Equal(t, Documents, s.Next())

	s.Select(Settings)
	assert.Equal(t, Chat, s.Next())
	assert.Len(t, s.All(), 6)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{"chat", Chat},
		{"Memory", Memory},
		{"multimedia lab", Multimedia},
		{"3", Multimedia},
		{" 6 ", Settings},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, err := ParseID(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}

	_, err := ParseID("7")
	assert.Error(t, err)
	_, err = ParseID("inbox")
	assert.Error(t, err)
}
