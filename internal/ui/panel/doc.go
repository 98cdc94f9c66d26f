// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panel holds the set of main views and which one is active.
//
// Selecting a panel never touches the chat controller or the dashboard
// poller; views read their data when rendered.
package panel
