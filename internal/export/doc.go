// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the chat log to a file on request (/export).
//
// # Key Types
//
//   - Transcript: the log prepared for export, placeholders removed
//   - Exporter: format interface (Markdown, JSON)
//   - Options: output location and what to include
//
// # Supported Formats
//
//   - Markdown: human-readable, YAML frontmatter, file cards as quotes
//   - JSON: every message field, machine-readable
//
// # Usage
//
//	path, err := export.Export(ctrl.Messages(), client.BaseURL(), "markdown", nil)
//
// Files land in ~/.twin/exports unless Options.Path names one.
package export
