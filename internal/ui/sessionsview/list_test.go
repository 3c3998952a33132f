// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sessionsview

import (
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

const listOK = `{
	"success": true,
	"message": "ok",
	"data": {
		"sessions": [
			{"id": 1, "title": "Quarterly report", "session_token": "tok-a", "document_id": 10, "user_id": 1},
			{"id": 2, "title": null, "session_token": "tok-b", "document_id": 11, "user_id": 1}
		]
	}
}`

const detailOK = `{
	"success": true,
	"message": "ok",
	"data": {
		"session": {
			"id": 1,
			"title": "Quarterly report",
			"session_token": "tok-a",
			"document_id": 10,
			"user_id": 1,
			"document_name": "q3.pdf",
			"document_url": "http://files/q3.pdf"
		},
		"chats": [
			{"id": 2, "session_id": "tok-a", "message": "hi there", "role": "assistant"},
			{"id": 1, "session_id": "tok-a", "message": "hello", "role": "user"}
		]
	}
}`

func newTestPicker(t *testing.T, handler http.Handler) *Model {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(styles.NewTheme(), api.NewClient(srv.URL, staticToken("tok")))
}

func loadedPicker(t *testing.T, handler http.Handler) *Model {
	t.Helper()

	m := newTestPicker(t, handler)
	cmd := m.Init()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func sessionsHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/session/":
			w.Write([]byte(listOK))
		case "/api/session/tok-a":
			w.Write([]byte(detailOK))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
}

func TestPicker_LoadsSessions(t *testing.T) {
	m := loadedPicker(t, sessionsHandler(t))

	assert.False(t, m.loading)
	require.Len(t, m.sessions, 2)
	assert.Equal(t, "tok-a", m.sessions[0].SessionToken)
}

func TestPicker_LoadErrorShown(t *testing.T) {
	m := loadedPicker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	assert.False(t, m.loading)
	assert.NotEmpty(t, m.errText)
}

func TestPicker_CursorNavigation(t *testing.T) {
	m := loadedPicker(t, sessionsHandler(t))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, m.cursor)

	// Does not run past the end
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, m.cursor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, m.cursor)
}

func TestPicker_ChooseEmitsBinding(t *testing.T) {
	m := loadedPicker(t, sessionsHandler(t))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, cmd = m.Update(cmd())
	require.NotNil(t, cmd)

	chosen, ok := cmd().(ChosenMsg)
	require.True(t, ok)
	assert.Equal(t, "tok-a", chosen.Binding.Token)
	assert.Equal(t, "q3.pdf", chosen.Binding.DocumentName)
	require.Len(t, chosen.History, 2)
	assert.Equal(t, "hi there", chosen.History[0].Message)
}

func TestPicker_EscapeGoesBack(t *testing.T) {
	m := loadedPicker(t, sessionsHandler(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, BackMsg{}, cmd())
}

func TestPicker_EnterWithNoSessionsIsNoop(t *testing.T) {
	m := loadedPicker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "message": "ok", "data": {"sessions": []}}`))
	}))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}
