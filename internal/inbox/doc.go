// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package inbox watches a drop directory and uploads files that appear in
// it through the chat session, as if the user had attached them.
//
// Writes are debounced so a file is only submitted once it has stopped
// changing, and submissions are throttled and queued behind any request
// already in flight.
//
// # Usage
//
//	w, err := inbox.New(ctrl, inbox.Options{Dir: "~/.twin/inbox", Accept: cfg.Upload.Accept})
//	if err != nil {
//	    return err
//	}
//	go w.Run(ctx)
package inbox
