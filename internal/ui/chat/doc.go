// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main chat screen: a resizable split view with
// the conversation transcript and input on the left and the bound document's
// details on the right.
//
// The screen owns no network logic of its own. Sending goes through
// session.Orchestrator, which returns Bubble Tea commands; replies arrive as
// session.ReplyMsg and are folded back into the transcript, substituting a
// fallback assistant message when the request failed.
package chat
