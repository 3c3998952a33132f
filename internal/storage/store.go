// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable client-side key-value storage for the
// docchat TUI. It backs the credential store: the bearer token goes to the
// OS keyring when one is available, and everything else (plus the keyring
// fallback) lives in files under ~/.docchat/.
package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// Store is a durable key-value interface with explicit load/save semantics.
// Keys are short identifiers like "token" or "profile".
type Store interface {
	// Get returns the stored value, or ErrKeyNotFound.
	Get(key string) ([]byte, error)
	// Set writes the value durably before returning.
	Set(key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// ErrKeyNotFound is returned when a key has no stored value.
// Use errors.Is(err, ErrKeyNotFound) to check for this error.
var ErrKeyNotFound = &StoreError{Message: "key not found"}

// StoreError represents a storage-related error.
type StoreError struct {
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing store errors.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// DefaultDir returns the docchat data directory (~/.docchat).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".docchat"), nil
}

// sanitizeKey restricts keys to a safe filename subset.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
