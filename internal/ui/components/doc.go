// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the panels and chrome of the twin TUI.

Every component takes a *styles.Theme and renders with Lip Gloss. Panels
that accept input implement Update(tea.Msg) tea.Cmd and report through
Capturing() whether keystrokes belong to a text field, so the root model
knows when single-letter shortcuts are free.

# Key Types

## Chrome

  - Sidebar (sidebar.go): panel list, brand and API status
  - RightPanel (rightpanel.go): top files and recent memory
  - Header (header.go): panel title, subtitle and badge
  - StatusBar (statusbar.go): status, backend, notices, key hints
  - ToastManager (toast.go): short-lived notices

## Panels

  - DocumentsView: searchable card grid of indexed files
  - MultimediaView: media files and this session's media uploads
  - MemoryView: searchable recent history
  - AnalyticsView: stat cards, stale badge, type breakdown
  - SettingsView: theme and display toggles, save, clear

## Messages

Panels never call the backend. They emit UploadRequestMsg,
ClearRequestMsg, SettingsChangedMsg and SaveSettingsMsg for the root
model to act on.

# Usage

	docs := components.NewDocumentsView(theme, cfg.Upload.Accept)
	docs.SetSize(l.MainWidth, height)
	docs.SetFiles(snapshot.Files)
	cmd := docs.Update(keyMsg)
	view := docs.View()
*/
package components
