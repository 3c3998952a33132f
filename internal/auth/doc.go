// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the credential lifecycle for the docchat TUI.
//
// The credential store is the only shared mutable state in the process. It
// holds the bearer token and the signed-in user's profile, persists both
// durably (token in the OS keyring, profile in a state file), and exposes a
// tri-state loading model: route decisions made before Load() completes see
// StateNotLoaded rather than a false "signed out", which is what prevents
// the flash-redirect to the sign-in screen on startup.
//
// Sign-in and sign-up orchestration lives here too: credentials are set and
// cleared as a pair, never half-updated, and input validation runs before
// any network call is attempted.
package auth
