// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the chat state machine for one document session.
//
// The Orchestrator owns the transcript and the send lifecycle: a user
// message is appended optimistically before the network call, sends are
// serialized (one in flight at a time), and every send resolves to exactly
// one terminal message, either the assistant's reply or an assistant-shaped
// fallback when the backend or the network fails. Replies that arrive after
// the orchestrator has been rebound to a different session are dropped by
// generation check.
//
// The orchestrator is not safe for concurrent use; like the transcript it
// owns, it is mutated only from the Bubble Tea update loop.
package session
