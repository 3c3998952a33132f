// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	tokens, err := storage.NewFileStoreWithDir(t.TempDir())
	require.NoError(t, err)
	profiles, err := storage.NewFileStoreWithDir(t.TempDir())
	require.NoError(t, err)
	return NewStore(tokens, profiles)
}

func testUser() *api.User {
	return &api.User{ID: 1, Email: "user@example.com"}
}

func TestStore_TriState(t *testing.T) {
	store := newTestStore(t)

	// Before Load the state is explicitly "not loaded", not signed out
	assert.Equal(t, StateNotLoaded, store.State())

	require.NoError(t, store.Load())
	assert.Equal(t, StateSignedOut, store.State())

	require.NoError(t, store.SetCredential("tok-1", testUser()))
	assert.Equal(t, StateSignedIn, store.State())
}

func TestStore_SetCredentialAtomic(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Load())

	require.NoError(t, store.SetCredential("tok-1", testUser()))

	cred := store.Get()
	assert.Equal(t, "tok-1", cred.Token)
	require.NotNil(t, cred.User)
	assert.Equal(t, "user@example.com", cred.User.Email)
}

func TestStore_Rehydration(t *testing.T) {
	tokensDir, profilesDir := t.TempDir(), t.TempDir()

	tokens, err := storage.NewFileStoreWithDir(tokensDir)
	require.NoError(t, err)
	profiles, err := storage.NewFileStoreWithDir(profilesDir)
	require.NoError(t, err)

	first := NewStore(tokens, profiles)
	require.NoError(t, first.Load())
	require.NoError(t, first.SetCredential("tok-persisted", testUser()))

	// A fresh store over the same backends sees the persisted credential
	tokens2, err := storage.NewFileStoreWithDir(tokensDir)
	require.NoError(t, err)
	profiles2, err := storage.NewFileStoreWithDir(profilesDir)
	require.NoError(t, err)

	second := NewStore(tokens2, profiles2)
	assert.Equal(t, StateNotLoaded, second.State())
	require.NoError(t, second.Load())

	assert.Equal(t, StateSignedIn, second.State())
	cred := second.Get()
	assert.Equal(t, "tok-persisted", cred.Token)
	require.NotNil(t, cred.User)
	assert.Equal(t, int64(1), cred.User.ID)
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Load())
	require.NoError(t, store.SetCredential("tok-1", testUser()))

	require.NoError(t, store.Clear())

	assert.Equal(t, StateSignedOut, store.State())
	cred := store.Get()
	assert.Empty(t, cred.Token)
	assert.Nil(t, cred.User)
	assert.Empty(t, store.Token())
}

func TestStore_EnvTokenOverride(t *testing.T) {
	t.Setenv(EnvToken, "tok-from-env")

	store := newTestStore(t)
	require.NoError(t, store.Load())

	assert.Equal(t, StateSignedIn, store.State())
	assert.Equal(t, "tok-from-env", store.Token())
}

func TestStore_TokenSourceInterface(t *testing.T) {
	var _ api.TokenSource = newTestStore(t)
}
