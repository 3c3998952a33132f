// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat-tui/internal/api"
)

// authServer returns a backend stub that answers every auth endpoint with the
// given envelope body and status.
func authServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

const signInOK = `{
	"success": true,
	"message": "signed in",
	"data": {
		"user": {"id": 7, "email": "user@example.com"},
		"token": "tok-issued"
	}
}`

func newTestFlows(t *testing.T, serverURL string) (*Flows, *Store) {
	t.Helper()
	creds := newTestStore(t)
	require.NoError(t, creds.Load())
	client := api.NewClient(serverURL, creds)
	return NewFlows(client, creds), creds
}

func TestFlows_SignInSuccessSetsCredentialPair(t *testing.T) {
	srv := authServer(t, http.StatusOK, signInOK)
	defer srv.Close()

	flows, creds := newTestFlows(t, srv.URL)

	user, err := flows.SignIn(context.Background(), "user@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	// Token and profile land together
	assert.Equal(t, StateSignedIn, creds.State())
	cred := creds.Get()
	assert.Equal(t, "tok-issued", cred.Token)
	require.NotNil(t, cred.User)
	assert.Equal(t, "user@example.com", cred.User.Email)
}

func TestFlows_SignInRejectedClearsBoth(t *testing.T) {
	srv := authServer(t, http.StatusUnauthorized, `{"success":false,"message":"invalid credentials"}`)
	defer srv.Close()

	flows, creds := newTestFlows(t, srv.URL)
	require.NoError(t, creds.SetCredential("tok-stale", testUser()))

	_, err := flows.SignIn(context.Background(), "user@example.com", "wrong-password")
	require.ErrorIs(t, err, api.ErrInvalidCredentials)

	assert.Equal(t, StateSignedOut, creds.State())
	cred := creds.Get()
	assert.Empty(t, cred.Token)
	assert.Nil(t, cred.User)
}

func TestFlows_SignInValidationShortCircuits(t *testing.T) {
	// Server that fails the test if reached: validation must run first.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failure must not reach the network")
	}))
	defer srv.Close()

	flows, _ := newTestFlows(t, srv.URL)

	_, err := flows.SignIn(context.Background(), "not-an-email", "correct-horse")
	assert.ErrorIs(t, err, ErrEmailInvalid)

	_, err = flows.SignIn(context.Background(), "user@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestFlows_SignUpSuccess(t *testing.T) {
	srv := authServer(t, http.StatusOK, signInOK)
	defer srv.Close()

	flows, creds := newTestFlows(t, srv.URL)

	user, err := flows.SignUp(context.Background(), "user@example.com", "correct-horse", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, StateSignedIn, creds.State())
}

func TestFlows_SignUpConfirmMismatch(t *testing.T) {
	flows, _ := newTestFlows(t, "http://unreachable.invalid")

	_, err := flows.SignUp(context.Background(), "user@example.com", "correct-horse", "wrong-horse")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestFlows_RestoreRefreshesProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-persisted", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "ok",
			"data": map[string]any{
				"user":  map[string]any{"id": 7, "email": "refreshed@example.com"},
				"token": "tok-persisted",
			},
		})
	}))
	defer srv.Close()

	flows, creds := newTestFlows(t, srv.URL)
	require.NoError(t, creds.SetCredential("tok-persisted", testUser()))

	user, err := flows.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refreshed@example.com", user.Email)
	assert.Equal(t, "refreshed@example.com", creds.User().Email)
}

func TestFlows_RestoreTransportFailureKeepsCredential(t *testing.T) {
	flows, creds := newTestFlows(t, "http://127.0.0.1:1")
	require.NoError(t, creds.SetCredential("tok-persisted", testUser()))

	_, err := flows.Restore(context.Background())
	require.Error(t, err)

	// A flaky network must not sign the user out
	assert.Equal(t, StateSignedIn, creds.State())
	assert.Equal(t, "tok-persisted", creds.Token())
}

func TestFlows_SignOut(t *testing.T) {
	flows, creds := newTestFlows(t, "http://unreachable.invalid")
	require.NoError(t, creds.SetCredential("tok-1", testUser()))

	require.NoError(t, flows.SignOut())
	assert.Equal(t, StateSignedOut, creds.State())
}
