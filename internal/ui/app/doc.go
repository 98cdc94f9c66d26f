// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model of the knowledge twin client.
//
// It owns the responsive layout, the panel switcher, the sidebar, the
// activity panel, the status bar and the toast queue, and it wires the
// session controller, the dashboard poller and the optional inbox watcher
// into a running program.
//
// # Key Types
//
//   - Model: root model, routes keys to the active panel
//   - Options: configuration, config path and version for the chrome
//   - RunOptions: everything Run needs to start a program
//
// # Usage
//
//	err := app.Run(ctx, app.RunOptions{Config: cfg, Version: cli.Version})
//
// Background components report through program.Send from their own
// goroutines; the model then reads state back from the controller or the
// poller, so messages never carry stale data.
package app
