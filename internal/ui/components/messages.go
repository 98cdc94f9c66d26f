// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "github.com/jeranaias/twin-tui/internal/config"

// =============================================================================
// COMPONENT MESSAGES
// =============================================================================

// UploadRequestMsg asks the chat controller to upload a validated path.
type UploadRequestMsg struct {
	Path string
}

// ClearRequestMsg asks for the knowledge base to be cleared.
type ClearRequestMsg struct{}

// SettingsChangedMsg carries an edited copy of the configuration that
// should take effect immediately.
type SettingsChangedMsg struct {
	Config *config.Config
}

// SaveSettingsMsg asks for the configuration to be written to disk.
type SaveSettingsMsg struct {
	Config *config.Config
}
