// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the docchat TUI.
//
// It contains:
//   - Atomic file writing used by the credential and config stores
//   - Unicode-safe string truncation used by the UI
//
// Nothing in this package may import other internal packages.
package util
