// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Twin"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// WireRole maps a chat role to the role name the backend expects in history.
// Only user turns keep their name; everything else is the model's side.
func (r Role) WireRole() string {
	if r == RoleUser {
		return "user"
	}
	return "model"
}

// Kind distinguishes plain chat text from file attachment cards.
type Kind string

const (
	KindText Kind = "text"
	KindFile Kind = "file"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat log entry. Messages are immutable once created;
// the log replaces whole entries rather than editing them.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Kind      Kind      `json:"kind"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// File attachment details (Kind == KindFile)
	FileName    string `json:"file_name,omitempty"`
	IsMedia     bool   `json:"is_media,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	PreviewPath string `json:"preview_path,omitempty"`

	// Pending marks an optimistic placeholder awaiting the server.
	Pending bool `json:"pending,omitempty"`
}

// NewMessage creates a new text message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Kind:      KindText,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// NewSystemMessage creates a new system notice.
func NewSystemMessage(content string) *Message {
	return NewMessage(RoleSystem, content)
}

// NewPendingMessage creates an optimistic user-side placeholder.
func NewPendingMessage(content string) *Message {
	msg := NewMessage(RoleUser, content)
	msg.Pending = true
	return msg
}

// NewFileMessage creates a user file attachment card. Content holds the
// file name so history and exports have something readable.
func NewFileMessage(fileName, mimeType string, isMedia bool, previewPath string) *Message {
	msg := NewMessage(RoleUser, fileName)
	msg.Kind = KindFile
	msg.FileName = fileName
	msg.MimeType = mimeType
	msg.IsMedia = isMedia
	if isMedia {
		msg.PreviewPath = previewPath
	}
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsFile reports whether the message is a file attachment card.
func (m *Message) IsFile() bool {
	return m.Kind == KindFile
}

// UploadLabel returns the card caption for a file attachment:
// PHOTO, VIDEO or DOCUMENT followed by UPLOADED.
func (m *Message) UploadLabel() string {
	switch {
	case !m.IsMedia:
		return "DOCUMENT UPLOADED"
	case strings.HasPrefix(m.MimeType, "image/"):
		return "PHOTO UPLOADED"
	case strings.HasPrefix(m.MimeType, "audio/"):
		return "AUDIO UPLOADED"
	default:
		return "VIDEO UPLOADED"
	}
}

// FormatTime returns the message time as "15:04".
func (m *Message) FormatTime() string {
	return m.Timestamp.Format("15:04")
}
