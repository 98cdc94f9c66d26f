// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error

	// Status is the HTTP status code for ErrTypeHTTPStatus errors.
	Status int
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinels by type so a wrapped timeout still satisfies
// errors.Is(err, ErrTimeout).
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	return ok && t.Type == e.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotReachable
	ErrTypeTimeout
	ErrTypeHTTPStatus
	ErrTypeInvalidResponse
	ErrTypeCanceled
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeNotReachable:
		return "not_reachable"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeHTTPStatus:
		return "http_status"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrNotReachable = &ClientError{Type: ErrTypeNotReachable, Message: "backend is not reachable"}
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// transportError classifies an error returned by http.Client.Do.
func transportError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Message: "request canceled", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	default:
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
		}
		return &ClientError{Type: ErrTypeNotReachable, Message: "backend is not reachable", Cause: err}
	}
}

// statusError builds an HTTP status error, preferring the server's detail.
func statusError(op string, status int, detail string) error {
	msg := detail
	if msg == "" {
		msg = fmt.Sprintf("%s failed: %d %s", op, status, http.StatusText(status))
	}
	return &ClientError{Type: ErrTypeHTTPStatus, Message: msg, Status: status}
}

func invalidResponse(msg string, cause error) error {
	return &ClientError{Type: ErrTypeInvalidResponse, Message: msg, Cause: cause}
}

// =============================================================================
// HELPERS
// =============================================================================

func hasType(err error, t ErrorType) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == t
	}
	return false
}

// IsNotReachable checks if an error indicates the backend could not be reached.
func IsNotReachable(err error) bool {
	return hasType(err, ErrTypeNotReachable)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return hasType(err, ErrTypeTimeout)
}

// IsCanceled checks if the request was canceled by its context.
func IsCanceled(err error) bool {
	return hasType(err, ErrTypeCanceled)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Type == ErrTypeHTTPStatus {
		return clientErr.Status
	}
	return 0
}
