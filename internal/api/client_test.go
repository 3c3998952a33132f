// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens is a TokenSource with a fixed token.
type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string { return s.token }

// clearableTokens additionally records credential wipes, standing in for the
// credential store's Clear.
type clearableTokens struct {
	staticTokens
	cleared bool
}

func (c *clearableTokens) Clear() error {
	c.token = ""
	c.cleared = true
	return nil
}

func newTestClient(serverURL, token string) (*Client, *staticTokens) {
	tokens := &staticTokens{token: token}
	return NewClient(serverURL, tokens), tokens
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"message":"ok","data":{"sessions":[]}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, "tok-123")
	_, err := client.ListSessions(context.Background(), Page{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"message":"ok","data":{"user":{"id":1,"email":"a@b.c","username":null,"created_at":"","updated_at":""},"token":"t"}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, "")
	_, err := client.SignIn(context.Background(), "a@b.c", "password1")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_UnauthorizedClearsAndNotifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"token expired","data":null}`))
	}))
	defer server.Close()

	tokens := &clearableTokens{staticTokens: staticTokens{token: "stale-token"}}
	client := NewClient(server.URL, tokens)
	notified := false
	client.OnUnauthorized(func() { notified = true })

	_, err := client.ListSessions(context.Background(), Page{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, tokens.cleared, "401 on an authenticated call must wipe the stored credential")
	assert.Empty(t, tokens.Token())
	assert.True(t, notified, "401 on an authenticated call must fire the unauthorized handler")
	assert.Contains(t, err.Error(), "token expired")
}

func TestClient_UnauthorizedClearsWithoutHandler(t *testing.T) {
	// Headless commands register no handler; the stale token must still go.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"token expired","data":null}`))
	}))
	defer server.Close()

	tokens := &clearableTokens{staticTokens: staticTokens{token: "stale-token"}}
	client := NewClient(server.URL, tokens)

	_, err := client.ListSessions(context.Background(), Page{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, tokens.cleared)
	assert.Empty(t, tokens.Token())
}

func TestClient_SignInUnauthorizedDoesNotNotify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"wrong email or password","data":null}`))
	}))
	defer server.Close()

	tokens := &clearableTokens{}
	client := NewClient(server.URL, tokens)
	notified := false
	client.OnUnauthorized(func() { notified = true })

	_, err := client.SignIn(context.Background(), "a@b.c", "wrongpass")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.False(t, tokens.cleared, "sign-in 401 must leave the credential store untouched")
	assert.False(t, notified, "sign-in 401 must not trigger the redirect path")
}

func TestClient_EnvelopeFailureIsApplicationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with success:false - an application-level failure
		w.Write([]byte(`{"success":false,"message":"document processing failed","data":null}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, "tok")
	_, err := client.Chat(context.Background(), "abc123", "hello")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, "document processing failed", apiErr.Message)
	assert.True(t, IsApplicationError(err))
}

func TestClient_ServerErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"internal error","data":null}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, "tok")
	_, err := client.ListSessions(context.Background(), Page{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestClient_TransportError(t *testing.T) {
	// Point at a closed server to force a connection error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, _ := newTestClient(server.URL, "tok")
	_, err := client.Chat(context.Background(), "abc123", "hello")
	require.Error(t, err)
	assert.False(t, IsApplicationError(err))
}

func TestHumanMessage(t *testing.T) {
	assert.Equal(t, "", HumanMessage(nil, "fallback"))
	assert.Equal(t, "bad input", HumanMessage(&APIError{Message: "bad input"}, "fallback"))
	assert.Equal(t, "fallback", HumanMessage(errors.New("dial tcp: refused"), "fallback"))
	assert.Equal(t, "fallback", HumanMessage(&APIError{Status: 500}, "fallback"))
}

func TestAPIError_Is(t *testing.T) {
	assert.ErrorIs(t, error(&APIError{Status: 401, Message: "x"}), ErrUnauthorized)
	assert.ErrorIs(t, error(&APIError{Status: 404, Message: "x"}), ErrNotFound)
	assert.NotErrorIs(t, error(&APIError{Status: 500, Message: "x"}), ErrUnauthorized)
}
