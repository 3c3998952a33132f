// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "encoding/json"

// =============================================================================
// RESPONSE ENVELOPE
// =============================================================================

// Envelope is the {success, message, data} wrapper every backend response
// uses. Data is decoded in a second pass once the envelope outcome is known.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// =============================================================================
// AUTH TYPES
// =============================================================================

// AuthRequest is the body for the signup and signin endpoints.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the backend's user profile record. Opaque to the client beyond
// display; always set or cleared together with the token.
type User struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Username  *string `json:"username"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// AuthData is the payload of a successful signup/signin/me response.
type AuthData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// =============================================================================
// SESSION TYPES
// =============================================================================

// Session is a server-side record binding an uploaded document to a chat
// history, addressed by its opaque SessionToken in all chat calls.
type Session struct {
	ID           int64   `json:"id"`
	Title        *string `json:"title"`
	SessionToken string  `json:"session_token"`
	DocumentID   int64   `json:"document_id"`
	UserID       int64   `json:"user_id"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`

	// Present only on the session detail endpoint.
	DocumentName string `json:"document_name,omitempty"`
	DocumentURL  string `json:"document_url,omitempty"`
}

// CreateSessionData is the payload returned after a document upload.
type CreateSessionData struct {
	DocID        int64  `json:"doc_id"`
	DocKey       string `json:"doc_key"`
	DocURL       string `json:"doc_url"`
	SessionID    int64  `json:"session_id"`
	SessionToken string `json:"session_token"`
}

// SessionChat is one stored turn within a session's history. The detail
// endpoint returns turns newest-first; callers reorder before display.
type SessionChat struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// chatRequest is the body for the chat endpoint. SessionID carries the
// session token, matching what the backend expects on the wire.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatData is the payload of a chat turn response.
type ChatData struct {
	Response string        `json:"response"`
	History  []ChatMessage `json:"history"`
}

// ChatMessage is a role/content pair as returned in chat history payloads.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionsData is the payload of the session list endpoint.
type SessionsData struct {
	Sessions []Session `json:"sessions"`
}

// SessionDetailData is the payload of the session detail endpoint.
type SessionDetailData struct {
	Chats   []SessionChat `json:"chats"`
	Session Session       `json:"session"`
}

// =============================================================================
// PAGINATION
// =============================================================================

// Page holds optional pagination parameters. Nil fields are omitted from the
// request entirely; the backend distinguishes absent parameters from zero
// values, so no defaults are ever filled in client-side.
type Page struct {
	Offset *int
	Limit  *int
}

// WithOffset returns a copy of the page with the offset set.
func (p Page) WithOffset(offset int) Page {
	p.Offset = &offset
	return p
}

// WithLimit returns a copy of the page with the limit set.
func (p Page) WithLimit(limit int) Page {
	p.Limit = &limit
	return p
}
