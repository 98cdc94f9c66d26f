// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/twin-tui/internal/session"
	"github.com/jeranaias/twin-tui/internal/ui/components"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// LogChangedMsg tells the view the controller's log changed. The root model
// sends it from the controller's change hook.
type LogChangedMsg struct{}

// QueryResolvedMsg carries the outcome of a question.
type QueryResolvedMsg struct {
	Outcome session.Outcome
}

// UploadResolvedMsg carries the outcome of an upload.
type UploadResolvedMsg struct {
	Name    string
	Outcome session.Outcome
}

// ExportedMsg reports where the transcript was written.
type ExportedMsg struct {
	Path string
	Err  error
}

// =============================================================================
// NOTICES
// =============================================================================

// NoticeMsg asks the owner to show a toast.
type NoticeMsg struct {
	Kind components.ToastKind
	Text string
}
