// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the DocChat backend.
//
// A single Client instance mediates every backend call. It attaches the
// bearer token from the credential source to each outgoing request, and it
// intercepts 401 responses: any authenticated call that comes back
// unauthorized clears the credentials and notifies the registered handler so
// the application can drop back to the sign-in screen. The sign-in call
// itself is exempt from interception so a wrong password surfaces as a form
// error instead of a redirect loop.
//
// All responses follow the backend's {success, message, data} envelope.
// success:false is an application-level failure distinct from a transport
// failure; both are reported as errors to the caller, which decides how to
// degrade (see internal/session for the chat fallback rules).
package api
