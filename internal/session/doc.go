// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the chat log and turns user submissions into
// backend calls.
//
// All submissions (questions and file uploads) share one in-flight slot:
// while a request is outstanding further submissions fail with ErrBusy and
// leave the log untouched. Failures never escape as errors; they become
// fixed notices in the log.
//
// # Key Types
//
//   - Controller: the chat session (log, loading flag, in-flight requests)
//   - Backend: the subset of the API client the controller calls
//   - PendingQuery, PendingUpload: a started submission awaiting Resolve
//   - Outcome: what a resolved submission added to the log
//
// # Usage
//
// Blocking form, for the line-mode REPL:
//
//	ctrl := session.New(client, session.WithBaseURL(client.BaseURL()))
//	out, err := ctrl.SubmitText(ctx, "What does the report say?")
//
// Two-phase form, for the TUI: Begin runs on the update loop and shows
// the user's message at once, Resolve runs in a tea.Cmd:
//
//	pending, err := ctrl.BeginText(input)
//	cmd := func() tea.Msg { return resolvedMsg{pending.Resolve(ctx)} }
package session
