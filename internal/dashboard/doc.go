// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard keeps a periodically refreshed copy of the backend's
// dashboard snapshot.
//
// Every fetch takes a sequence number; a result is applied only if it is
// newer than the last applied one, so a slow early response can never
// overwrite a fast later one. Failed fetches leave the previous snapshot
// in place.
//
// # Usage
//
//	p := dashboard.New(client, dashboard.Options{
//	    Interval: 5 * time.Second,
//	    OnUpdate: func(s *model.Snapshot) { program.Send(snapshotMsg{s}) },
//	})
//	stop := p.Start(ctx)
//	defer stop()
package dashboard
