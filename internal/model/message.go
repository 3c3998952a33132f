// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the client-side data structures for the chat
// transcript. The transcript is the ordered sequence of messages the UI
// renders; ordering is insertion order and is the sole chronology signal.
package model

import (
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
		return "Assistant"
	default:
		return string(r)
	}
}

// Valid reports whether the role is one the client knows how to render.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single transcript entry. Messages are client-owned
// and transient: the server's stored turns are mapped into Messages when a
// session is loaded, and new entries are appended locally as the user chats.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// IsFallback marks a synthesized assistant message that substitutes a
	// failed reply. Rendered like any assistant message, but styled as an
	// error by the UI.
	IsFallback bool `json:"is_fallback,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// NewFallbackMessage creates the assistant-shaped error substitute that is
// appended when a chat turn fails. The user turn it answers is never rolled
// back; the transcript always receives exactly one terminal entry per send.
func NewFallbackMessage(content string) Message {
	m := NewMessage(RoleAssistant, content)
	m.IsFallback = true
	return m
}
