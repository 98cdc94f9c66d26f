// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/jeranaias/twin-tui/internal/session"

// =============================================================================
// APPLICATION MESSAGES
// =============================================================================

// DashboardMsg tells the model the poller has new state. The model reads
// the snapshot back from the poller instead of carrying it here, so a late
// message can never roll the view back.
type DashboardMsg struct{}

// ClearedMsg reports that the knowledge base was cleared.
type ClearedMsg struct{}

// SavedMsg reports the outcome of writing the configuration.
type SavedMsg struct {
	Path string
	Err  error
}

// InboxMsg reports a file picked up from the watched inbox directory.
type InboxMsg struct {
	Path    string
	Outcome session.Outcome
	Err     error
}

// refreshedMsg reports a manual refresh; throttled is true when the
// request was dropped by the rate limit.
type refreshedMsg struct {
	throttled bool
}
