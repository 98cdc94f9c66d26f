// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the chat session,
// the dashboard poller and the views.
//
// # Key Types
//
//   - Message: one chat entry (text or file card), immutable once created
//   - Log: ordered, append-only chat log with in-place settling of placeholders
//   - HistoryEntry: role-tagged turn sent to the backend with a question
//   - Snapshot: dashboard payload (stats, recent history, files)
//   - FileDescriptor: one indexed document as listed by the backend
//
// # Usage
//
// Build a log and settle an upload placeholder:
//
//	log := model.NewLog(model.NewSystemMessage("# Hello!"))
//	pending := model.NewPendingMessage("📁 Uploading **cat.png**...")
//	log.Append(pending)
//	_ = log.Settle(pending.ID,
//	    model.NewFileMessage("cat.png", "image/png", true, "/tmp/cat.png"),
//	    model.NewAssistantMessage("A cat."),
//	)
//
// Translate the log into backend history:
//
//	history := log.History(question.ID)
package model
