// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across twin-tui packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: crash-safe writes used for config and transcript exports
//
// Text:
//   - TruncateWidth, PadRight, StringWidth: cell-width aware layout helpers
//   - HumanBytes: byte counts for document cards
//
// Search:
//   - FoldForSearch, MatchesQuery: case and width insensitive panel filtering
//
// # Usage
//
//	title := util.TruncateWidth(doc.Title, 24)
//	if util.MatchesQuery(query, doc.Title, strings.Join(doc.Tags, " ")) {
//	    // show the card
//	}
package util
