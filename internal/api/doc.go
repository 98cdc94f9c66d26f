// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the knowledge twin backend.
//
// The backend owns all document parsing, retrieval and generation; this
// package only moves questions, files and dashboard data across the wire.
//
// # Key Types
//
//   - Client: HTTP client for /query, /upload, /clear, /dashboard and /files
//   - ClientConfig: base URL, timeout and dashboard retry settings
//   - ClientError: typed failure (not reachable, timeout, HTTP status, ...)
//   - UploadResult: server reply to a file upload
//
// # Usage
//
//	client := api.NewClient(api.ClientConfig{BaseURL: "http://localhost:8000"})
//	answer, err := client.SendQuery(ctx, "Summarize the report", history)
//	if api.IsNotReachable(err) {
//	    // show the "couldn't reach the backend" notice
//	}
//
// Dashboard and file listings never fail loudly:
//
//	snap := client.FetchDashboard(ctx) // nil when unavailable
//	files := client.FetchFiles(ctx)    // empty when unavailable
package api
