// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"

	"github.com/jeranaias/twin-tui/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// HistoryEntry is one prior turn sent along with a question.
type HistoryEntry = model.HistoryEntry

// QueryRequest is the request body for POST /query.
type QueryRequest struct {
	Question string         `json:"question"`
	History  []HistoryEntry `json:"history"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// QueryResponse is the response from POST /query.
// Answer is a pointer so a missing field can be told apart from "".
type QueryResponse struct {
	Answer *string `json:"answer"`
}

// UploadResult is the response from POST /upload.
type UploadResult struct {
	Message string `json:"message"`
	Chunks  int    `json:"chunks"`
	Summary string `json:"summary"`
	IsMedia bool   `json:"is_media"`
	Mime    string `json:"mime"`

	// FileName is the name the file was sent as. Set locally.
	FileName string `json:"-"`
}

// errorBody is FastAPI's error envelope. Detail is a string for
// HTTPException and a list of objects for validation errors.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// message returns the detail as display text.
func (b errorBody) message() string {
	if len(b.Detail) == 0 || string(b.Detail) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Detail, &s); err == nil {
		return s
	}
	return string(b.Detail)
}
