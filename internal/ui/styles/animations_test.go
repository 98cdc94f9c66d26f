// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
)

func TestSpinnerConfig_Duration(t *testing.T) {
	if got := BrailleSpinner.Duration(); got != time.Second/12 {
		t.Errorf("BrailleSpinner.Duration() = %v", got)
	}
	if got := (SpinnerConfig{}).Duration(); got != 100*time.Millisecond {
		t.Errorf("zero FPS should fall back to 100ms, got %v", got)
	}
}

func TestSpinnerConfig_Bubble(t *testing.T) {
	s := DotsSpinner.Bubble()
	if len(s.Frames) != len(DotsSpinner.Frames) {
		t.Errorf("Bubble() frames = %d, want %d", len(s.Frames), len(DotsSpinner.Frames))
	}
	if s.FPS != DotsSpinner.Duration() {
		t.Errorf("Bubble() FPS = %v", s.FPS)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		width   int
		percent float64
		filled  int
	}{
		{10, 0.5, 5},
		{10, 0, 0},
		{10, 1.5, 10},
		{10, -1, 0},
		{4, 0.25, 1},
	}
	for _, tt := range tests {
		bar := RenderProgressBar(tt.width, tt.percent)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("RenderProgressBar(%d, %v) filled = %d, want %d", tt.width, tt.percent, got, tt.filled)
		}
		if got := strings.Count(bar, "░"); got != tt.width-tt.filled {
			t.Errorf("RenderProgressBar(%d, %v) empty = %d", tt.width, tt.percent, got)
		}
	}
	if RenderProgressBar(0, 0.5) != "" {
		t.Error("zero width should render nothing")
	}
}
