// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sessionsview implements the session picker: a list of the user's
// existing sessions fetched from the backend. Choosing one fetches its
// detail (document info plus stored turns) and hands both to the chat
// screen as a new binding.
package sessionsview

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/session"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// listPageSize caps how many sessions one fetch requests.
const listPageSize = 50

// =============================================================================
// MESSAGES
// =============================================================================

// ChosenMsg is emitted upward when the user picks a session. History is the
// stored transcript as returned by the API, newest first.
type ChosenMsg struct {
	Binding session.Binding
	History []api.SessionChat
}

// BackMsg is emitted when the user leaves the picker without choosing.
type BackMsg struct{}

// loadedMsg delivers the session list.
type loadedMsg struct {
	sessions []api.Session
	err      error
}

// detailMsg delivers one session's detail after selection.
type detailMsg struct {
	detail *api.SessionDetailData
	err    error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the session picker.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	sessions []api.Session
	cursor   int

	loading bool
	errText string

	width  int
	height int
}

// New creates the session picker. Call Init to trigger the first fetch.
func New(theme *styles.Theme, client *api.Client) *Model {
	return &Model{
		theme:   theme,
		client:  client,
		loading: true,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// SetSize records the terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// load fetches the session list.
func (m *Model) load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		sessions, err := client.ListSessions(context.Background(), api.Page{}.WithLimit(listPageSize))
		return loadedMsg{sessions: sessions, err: err}
	}
}

// choose fetches the selected session's detail.
func (m *Model) choose(s api.Session) tea.Cmd {
	client := m.client
	token := s.SessionToken
	return func() tea.Msg {
		detail, err := client.GetSession(context.Background(), token, api.Page{})
		return detailMsg{detail: detail, err: err}
	}
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

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = api.HumanMessage(msg.err, "Could not load sessions. Please try again.")
			return m, nil
		}
		m.errText = ""
		m.sessions = msg.sessions
		if m.cursor >= len(m.sessions) {
			m.cursor = 0
		}
		return m, nil

	case detailMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = api.HumanMessage(msg.err, "Could not open the session. Please try again.")
			return m, nil
		}
		detail := msg.detail
		return m, func() tea.Msg {
			return ChosenMsg{
				Binding: session.Binding{
					Token:        detail.Session.SessionToken,
					DocumentName: detail.Session.DocumentName,
					DocumentURL:  detail.Session.DocumentURL,
				},
				History: detail.Chats,
			}
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.loading {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		return m, func() tea.Msg { return BackMsg{} }

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.sessions)-1 {
			m.cursor++
		}
		return m, nil

	case "r":
		m.loading = true
		return m, m.load()

	case "enter":
		if len(m.sessions) == 0 {
			return m, nil
		}
		m.loading = true
		return m, m.choose(m.sessions[m.cursor])
	}

	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.FormTitle.Render("Your sessions"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.theme.FormHint.Render("Loading..."))

	case m.errText != "":
		b.WriteString(m.theme.FormError.Render(m.errText))
		b.WriteString("\n\n")
		b.WriteString(m.theme.FormHint.Render("r: retry  Esc: back"))

	case len(m.sessions) == 0:
		b.WriteString(m.theme.SessionMeta.Render("No sessions yet."))
		b.WriteString("\n\n")
		b.WriteString(m.theme.FormHint.Render("Esc: back, then upload a document to start one."))

	default:
		for i, s := range m.sessions {
			b.WriteString(m.renderItem(s, i == m.cursor))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.theme.FormHint.Render("Enter: open  r: refresh  Esc: back"))
	}

	body := m.theme.SessionList.Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

// renderItem renders one list row: title (or a placeholder) and creation time.
func (m *Model) renderItem(s api.Session, selected bool) string {
	title := "Untitled session"
	if s.Title != nil && *s.Title != "" {
		title = *s.Title
	}
	title = util.TruncateWidth(util.CollapseNewlines(title), 40)

	style := m.theme.SessionItem
	prefix := "  "
	if selected {
		style = m.theme.SessionItemSelected
		prefix = "> "
	}

	line := prefix + title
	if s.CreatedAt != "" {
		line += "  " + m.theme.SessionMeta.Render(s.CreatedAt)
	}
	return style.Render(line)
}
