// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package authview

import (
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/auth"
	"github.com/jeranaias/docchat-tui/internal/storage"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

const signInOK = `{
	"success": true,
	"message": "ok",
	"data": {
		"token": "tok-123",
		"user": {"id": 1, "email": "a@b.com"}
	}
}`

func newTestForm(t *testing.T, handler http.Handler) *Model {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens, err := storage.NewFileStoreWithDir(t.TempDir())
	require.NoError(t, err)
	profiles, err := storage.NewFileStoreWithDir(t.TempDir())
	require.NoError(t, err)

	creds := auth.NewStore(tokens, profiles)
	require.NoError(t, creds.Load())

	client := api.NewClient(srv.URL, creds)
	return New(styles.NewTheme(), auth.NewFlows(client, creds))
}

func typeInto(m *Model, field int, text string) {
	m.setFocus(field)
	m.updateFocused(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestForm_StartsInSignInMode(t *testing.T) {
	m := newTestForm(t, http.NotFoundHandler())
	assert.Equal(t, ModeSignIn, m.Mode())
	assert.Equal(t, 2, m.fieldCount())
}

func TestForm_ToggleMode(t *testing.T) {
	m := newTestForm(t, http.NotFoundHandler())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, ModeSignUp, m.Mode())
	assert.Equal(t, 3, m.fieldCount())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, ModeSignIn, m.Mode())
}

func TestForm_ValidationShortCircuits(t *testing.T) {
	m := newTestForm(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for an invalid form")
	}))

	typeInto(m, fieldEmail, "not-an-email")
	typeInto(m, fieldPassword, "password123")

	cmd := m.submit()
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.errText)
	assert.False(t, m.busy)
}

func TestForm_SignInSuccessEmitsSignedIn(t *testing.T) {
	m := newTestForm(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/signin", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(signInOK))
	}))

	typeInto(m, fieldEmail, "a@b.com")
	typeInto(m, fieldPassword, "password123")

	cmd := m.submit()
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	m, next := m.Update(cmd())
	require.NotNil(t, next)

	signedIn, ok := next().(SignedInMsg)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", signedIn.User.Email)
	assert.False(t, m.busy)
}

func TestForm_BadCredentialsShowInlineError(t *testing.T) {
	m := newTestForm(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success": false, "message": "invalid credentials", "data": null}`))
	}))

	typeInto(m, fieldEmail, "a@b.com")
	typeInto(m, fieldPassword, "wrongpassword")

	cmd := m.submit()
	require.NotNil(t, cmd)

	m, next := m.Update(cmd())
	assert.Nil(t, next)
	assert.NotEmpty(t, m.errText)
	assert.False(t, m.busy)
}

func TestForm_TransportErrorShowsGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())

	tokens, err := storage.NewFileStoreWithDir(t.TempDir())
	require.NoError(t, err)
	profiles, err := storage.NewFileStoreWithDir(t.TempDir())
	require.NoError(t, err)
	creds := auth.NewStore(tokens, profiles)
	require.NoError(t, creds.Load())

	client := api.NewClient(srv.URL, creds)
	m := New(styles.NewTheme(), auth.NewFlows(client, creds))

	// Kill the server so the request fails at the transport, with no
	// backend message to surface.
	srv.Close()

	typeInto(m, fieldEmail, "a@b.com")
	typeInto(m, fieldPassword, "password123")

	cmd := m.submit()
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())
	assert.Equal(t, "Something went wrong. Please try again.", m.errText)
	assert.False(t, m.busy)
}

func TestForm_KeysIgnoredWhileBusy(t *testing.T) {
	m := newTestForm(t, http.NotFoundHandler())
	m.busy = true

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Nil(t, cmd)
	assert.Equal(t, ModeSignIn, m.Mode())
}
