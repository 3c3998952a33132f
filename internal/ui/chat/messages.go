// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the chat screen.
// Messages that cross screens (session switching, sign-out) are emitted
// upward and handled by the root model.

package chat

import (
	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/session"
)

// =============================================================================
// SCREEN SWITCH MESSAGES
// =============================================================================

// ShowSessionsMsg asks the root model to open the session picker.
type ShowSessionsMsg struct{}

// ShowUploadMsg asks the root model to open the upload screen.
type ShowUploadMsg struct{}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionBoundMsg binds the chat screen to a session. History is the
// server-side transcript as returned by the API, newest first.
type SessionBoundMsg struct {
	Binding session.Binding
	History []api.SessionChat
}

// =============================================================================
// ERROR MESSAGES
// =============================================================================

// ErrorMsg surfaces a non-fatal error as a corner toast.
type ErrorMsg struct {
	Message string
}
