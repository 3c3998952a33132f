// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package uploadview

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

const createOK = `{
	"success": true,
	"message": "ok",
	"data": {
		"doc_id": 10,
		"doc_key": "docs/notes.md",
		"doc_url": "http://files/notes.md",
		"session_id": 1,
		"session_token": "sess-tok"
	}
}`

func newTestUpload(t *testing.T, handler http.Handler) *Model {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.Default(), styles.NewTheme(), api.NewClient(srv.URL, staticToken("tok")))
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestUpload_RejectsUnsupportedExtension(t *testing.T) {
	m := newTestUpload(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for a rejected file")
	}))
	m.path.SetValue(writeTempFile(t, "image.png", "not a doc"))

	cmd := m.submit()
	assert.Nil(t, cmd)
	assert.Contains(t, m.errText, "unsupported file type")
}

func TestUpload_RejectsMissingFile(t *testing.T) {
	m := newTestUpload(t, http.NotFoundHandler())
	m.path.SetValue(filepath.Join(t.TempDir(), "missing.pdf"))

	cmd := m.submit()
	assert.Nil(t, cmd)
	assert.Contains(t, m.errText, "cannot read file")
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	m := newTestUpload(t, http.NotFoundHandler())
	m.maxBytes = 4
	m.path.SetValue(writeTempFile(t, "notes.md", "more than four bytes"))

	cmd := m.submit()
	assert.Nil(t, cmd)
	assert.Contains(t, m.errText, "exceeds")
}

func TestUpload_SuccessEmitsBinding(t *testing.T) {
	m := newTestUpload(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/session/create", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "notes.md", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(createOK))
	}))
	m.path.SetValue(writeTempFile(t, "notes.md", "# notes"))

	cmd := m.submit()
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	m, next := m.Update(cmd())
	require.NotNil(t, next)

	uploaded, ok := next().(UploadedMsg)
	require.True(t, ok)
	assert.Equal(t, "sess-tok", uploaded.Binding.Token)
	assert.Equal(t, "notes.md", uploaded.Binding.DocumentName)
	assert.Equal(t, "http://files/notes.md", uploaded.Binding.DocumentURL)
	assert.False(t, m.busy)
}

func TestUpload_ServerErrorShownInline(t *testing.T) {
	m := newTestUpload(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "message": "file too large", "data": null}`))
	}))
	m.path.SetValue(writeTempFile(t, "notes.txt", "hello"))

	cmd := m.submit()
	require.NotNil(t, cmd)

	m, next := m.Update(cmd())
	assert.Nil(t, next)
	assert.NotEmpty(t, m.errText)
}

func TestUpload_EscapeGoesBack(t *testing.T) {
	m := newTestUpload(t, http.NotFoundHandler())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, BackMsg{}, cmd())
}
