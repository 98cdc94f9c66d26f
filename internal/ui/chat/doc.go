// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat panel of the twin TUI.

The panel shows the session controller's log as a scrolling transcript,
a spinner while a request is in flight, and an input line that takes
questions and slash commands.

# Key Components

## Model (model.go)

The Model holds the view state only. The conversation itself lives in
session.Controller; the panel re-reads it whenever the root model forwards
a LogChangedMsg.

## Update Loop (update.go)

  - enter sends the input as a question or runs a slash command
  - ctrl+o opens the upload path prompt, ctrl+l requests a clear
  - requests run in tea.Cmd goroutines and report back with
    QueryResolvedMsg and UploadResolvedMsg

## View Rendering (view.go, render.go)

  - user, assistant and system bubbles, rendered with glamour
  - file cards labelled PHOTO/VIDEO/AUDIO/DOCUMENT UPLOADED, with an
    "Active Document" marker on the newest one
  - the input box and the disclaimer line

# Usage

	view := chat.New(chat.Options{
	    Controller:     ctrl,
	    Theme:          theme,
	    BaseURL:        cfg.Backend.BaseURL,
	    RenderMarkdown: cfg.UI.RenderMarkdown,
	})
	view.SetSize(width, height)
	cmd := view.Update(msg)
*/
package chat
