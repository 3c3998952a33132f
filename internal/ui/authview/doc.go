// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview implements the sign-in and sign-up screens. Both share a
// single form model that switches mode with Tab between submissions; field
// validation runs locally before any request is made, and credential errors
// from the server are shown inline under the form.
package authview
