// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mockbackend serves an in-memory stand-in for the knowledge twin
// backend. It speaks the same HTTP contract (/query, /upload, /clear,
// /dashboard, /files) with canned answers, so the client can be developed
// and tested without the real retrieval service.
//
// # Usage
//
//	srv := mockbackend.New(mockbackend.Options{})
//	ts := httptest.NewServer(srv.Handler())
//	defer ts.Close()
//
// Or run it standalone until ctx is cancelled:
//
//	err := srv.Start(ctx, mockbackend.StartOpts{Addr: ":8000", Out: os.Stdout})
package mockbackend
