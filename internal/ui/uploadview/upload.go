// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package uploadview implements the document upload screen. The user types a
// local file path; the file is vetted for type and size client-side, then
// posted as multipart form data to create a new session.
package uploadview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/session"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// allowedExtensions are the document types the backend accepts. Checked
// client-side to fail fast; the backend re-validates regardless.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".md":   true,
	".txt":  true,
}

// =============================================================================
// MESSAGES
// =============================================================================

// UploadedMsg is emitted upward when the upload succeeds and a session was
// created for the document.
type UploadedMsg struct {
	Binding session.Binding
}

// BackMsg is emitted when the user leaves without uploading.
type BackMsg struct{}

// resultMsg carries the upload outcome back into the screen.
type resultMsg struct {
	data *api.CreateSessionData
	name string
	err  error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the upload screen.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	maxBytes int64

	path textinput.Model
	busy bool

	errText string

	width  int
	height int
}

// New creates the upload screen.
func New(cfg *config.Config, theme *styles.Theme, client *api.Client) *Model {
	path := textinput.New()
	path.Placeholder = "/path/to/document.pdf"
	path.CharLimit = 1024
	path.Focus()

	return &Model{
		theme:    theme,
		client:   client,
		maxBytes: int64(cfg.Upload.MaxFileSizeMB) * 1024 * 1024,
		path:     path,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize records the terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = api.HumanMessage(msg.err, "Upload failed. Please try again.")
			return m, nil
		}
		m.errText = ""
		data := msg.data
		name := msg.name
		return m, func() tea.Msg {
			return UploadedMsg{Binding: session.Binding{
				Token:        data.SessionToken,
				DocumentName: name,
				DocumentURL:  data.DocURL,
			}}
		}

	case tea.KeyMsg:
		if m.busy {
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			return m, func() tea.Msg { return BackMsg{} }
		case tea.KeyEnter:
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

// submit vets the file and fires the upload.
func (m *Model) submit() tea.Cmd {
	path := strings.TrimSpace(m.path.Value())
	if path == "" {
		m.errText = "enter a file path"
		return nil
	}

	if err := m.vetFile(path); err != nil {
		m.errText = err.Error()
		return nil
	}

	m.busy = true
	m.errText = ""

	client := m.client
	name := filepath.Base(path)
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return resultMsg{err: fmt.Errorf("failed to open file: %w", err)}
		}
		defer f.Close()

		data, err := client.CreateSession(context.Background(), name, f)
		return resultMsg{data: data, name: name, err: err}
	}
}

// vetFile checks the extension and size before any bytes go on the wire.
func (m *Model) vetFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file type %q (use .pdf, .docx, .md, or .txt)", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if m.maxBytes > 0 && info.Size() > m.maxBytes {
		return fmt.Errorf("file exceeds the %dMB limit", m.maxBytes/(1024*1024))
	}
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.FormTitle.Render("Upload a document"))
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("File path"))
	b.WriteString("\n")
	b.WriteString(m.path.View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.theme.FormHint.Render("Uploading..."))
	} else {
		b.WriteString(m.theme.FormButtonActive.Render("Enter: upload"))
	}
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.FormError.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.FormHint.Render("Supported: .pdf .docx .md .txt  Esc: back"))

	form := m.theme.FormBox.Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
