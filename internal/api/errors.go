// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// Error variables for common backend failures.
var (
	// ErrUnauthorized indicates the backend rejected the bearer token (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates sign-in was rejected. Distinct from
	// ErrUnauthorized so the sign-in form can show a credential error
	// instead of triggering the global de-authentication path.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound indicates the addressed session or resource does not exist.
	ErrNotFound = errors.New("not found")
)

// APIError represents a failure reported by the DocChat backend, either an
// HTTP error status or a success:false envelope.
type APIError struct {
	Status  int    // HTTP status code, 0 for envelope-level failures on 200
	Message string // Human-readable message from the envelope
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("docchat api error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("docchat api error: %s", e.Message)
}

// Is supports errors.Is comparison against the sentinel errors above.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == 401
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}

// HumanMessage extracts the best available user-facing message from an
// error: the backend envelope message when present, the generic fallback
// otherwise. Used by the auth and upload forms for inline error display.
func HumanMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsApplicationError reports whether the error is a backend-reported failure
// (error envelope or HTTP error status) rather than a transport failure.
func IsApplicationError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
