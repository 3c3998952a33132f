// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/storage"
)

// Storage keys. Token and profile are keyed separately so the token can
// live in the keyring while the profile stays in the state directory.
const (
	keyToken   = "token"
	keyProfile = "profile"
)

// EnvToken overrides the stored token when set, for scripted use. An
// override is never persisted.
const EnvToken = "DOCCHAT_TOKEN"

// State is the credential store's loading state. Route guards must treat
// StateNotLoaded as distinct from signed-out to avoid deciding before
// rehydration has run.
type State int

const (
	// StateNotLoaded means Load has not completed yet.
	StateNotLoaded State = iota
	// StateSignedOut means rehydration ran and found no token.
	StateSignedOut
	// StateSignedIn means a token is present.
	StateSignedIn
)

// String returns a readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotLoaded:
		return "not-loaded"
	case StateSignedOut:
		return "signed-out"
	case StateSignedIn:
		return "signed-in"
	default:
		return "unknown"
	}
}

// Credential is the token/profile pair. Token presence is the sole
// authenticated-signal used anywhere in the client.
type Credential struct {
	Token string
	User  *api.User
}

// Store holds the process-wide credential. All mutations are synchronous
// and immediately visible to every consumer; persistence happens before the
// mutator returns.
type Store struct {
	mu     sync.RWMutex
	loaded bool
	token  string
	user   *api.User

	tokens   storage.Store
	profiles storage.Store
}

// NewStore creates a credential store over the given backends. tokens
// receives only the bearer token; profiles receives the user record.
func NewStore(tokens, profiles storage.Store) *Store {
	return &Store{tokens: tokens, profiles: profiles}
}

// Load rehydrates the credential from durable storage. Called exactly once
// at startup, before any route-guard decision. Missing keys mean signed
// out; a corrupt profile is discarded rather than fatal.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if env := os.Getenv(EnvToken); env != "" {
		s.token = env
		s.loaded = true
		return nil
	}

	tok, err := s.tokens.Get(keyToken)
	switch {
	case err == nil:
		s.token = string(tok)
	case errors.Is(err, storage.ErrKeyNotFound):
		s.token = ""
	default:
		return fmt.Errorf("failed to load token: %w", err)
	}

	raw, err := s.profiles.Get(keyProfile)
	if err == nil {
		var u api.User
		if json.Unmarshal(raw, &u) == nil {
			s.user = &u
		}
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	s.loaded = true
	return nil
}

// State returns the tri-state loading/auth state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return StateNotLoaded
	}
	if s.token == "" {
		return StateSignedOut
	}
	return StateSignedIn
}

// Get returns the current credential.
func (s *Store) Get() Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Credential{Token: s.token, User: s.user}
}

// Token returns the current bearer token, or "". Implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current profile, or nil.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetCredential sets token and profile in one assignment and persists both.
// This is the only way a successful sign-in lands: consumers can never
// observe a token without its profile or vice versa.
func (s *Store) SetCredential(token string, user *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistToken(token); err != nil {
		return err
	}
	if err := s.persistUser(user); err != nil {
		// Roll the token back so storage cannot hold a half-set credential.
		_ = s.tokens.Delete(keyToken)
		return err
	}

	s.token = token
	s.user = user
	s.loaded = true
	return nil
}

// SetToken updates only the token. Empty string clears it.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistToken(token); err != nil {
		return err
	}
	s.token = token
	return nil
}

// SetUser updates only the profile. Nil clears it.
func (s *Store) SetUser(user *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistUser(user); err != nil {
		return err
	}
	s.user = user
	return nil
}

// Clear removes both token and profile, in memory and in storage. Used on
// sign-out and by the gateway's 401 interceptor.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	s.loaded = true

	if err := s.tokens.Delete(keyToken); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if err := s.profiles.Delete(keyProfile); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil
}

// persistToken writes or deletes the stored token. Caller holds the lock.
func (s *Store) persistToken(token string) error {
	if token == "" {
		return s.tokens.Delete(keyToken)
	}
	return s.tokens.Set(keyToken, []byte(token))
}

// persistUser writes or deletes the stored profile. Caller holds the lock.
func (s *Store) persistUser(user *api.User) error {
	if user == nil {
		return s.profiles.Delete(keyProfile)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return s.profiles.Set(keyProfile, raw)
}
