// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/session"
	"github.com/jeranaias/docchat-tui/internal/ui/components"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	theme *styles.Theme

	width  int
	height int

	// Conversation state lives in the orchestrator; the model only renders it.
	orchestrator *session.Orchestrator

	// Layout
	splitPane *components.SplitPane
	docPane   *components.DocPane
	statusBar *components.StatusBar

	// Components
	viewport viewport.Model
	input    textinput.Model
	thinking components.Spinner
	toasts   *components.ToastManager

	keyMap KeyMap

	// Markdown rendering of assistant replies. Nil when disabled or when the
	// renderer could not be built; callers fall back to plain text.
	markdown *glamour.TermRenderer
	useMD    bool

	userEmail string
}

// New creates a chat screen bound to the given orchestrator.
func New(cfg *config.Config, theme *styles.Theme, orch *session.Orchestrator) *Model {
	input := textinput.New()
	input.Placeholder = "Ask about the document..."
	input.CharLimit = 4000
	input.Focus()

	vp := viewport.New(0, 0)

	m := &Model{
		theme:        theme,
		orchestrator: orch,
		splitPane:    components.NewSplitPane(theme),
		docPane:      components.NewDocPane(theme),
		statusBar:    components.NewStatusBar(theme),
		viewport:     vp,
		input:        input,
		thinking:     components.NewThinkingSpinner(),
		toasts:       components.NewToastManager(),
		keyMap:       DefaultKeyMap(),
		useMD:        cfg.UI.Markdown,
	}
	m.splitPane.SetRatio(cfg.UI.SplitRatio)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetUser sets the signed-in user's email for the status bar.
func (m *Model) SetUser(email string) {
	m.userEmail = email
	m.statusBar.SetUser(email)
}

// Ratio returns the current split ratio, for persisting on exit.
func (m *Model) Ratio() int {
	return m.splitPane.Ratio()
}

// bind points the screen at a session and seeds the transcript from the
// server history. Called from Update on SessionBoundMsg.
func (m *Model) bind(msg SessionBoundMsg) {
	m.orchestrator.Bind(msg.Binding)
	m.orchestrator.SeedHistory(msg.History)

	m.docPane.SetDocument(msg.Binding.DocumentName, msg.Binding.DocumentURL)
	m.statusBar.SetDocument(msg.Binding.DocumentName)
	m.statusBar.SetStatus(components.StatusReady)

	m.refreshViewport()
	m.viewport.GotoBottom()
}

// SetSize lays out the screen for the given terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Rows: header (1) + viewport + input (3) + status bar (1)
	contentHeight := height - 5
	if contentHeight < 3 {
		contentHeight = 3
	}

	m.splitPane.SetSize(width, contentHeight)
	m.statusBar.SetWidth(width)

	chatWidth := m.splitPane.ChatWidth()
	m.viewport.Width = chatWidth
	m.viewport.Height = contentHeight - 3
	m.input.Width = chatWidth - 4

	m.docPane.SetSize(m.splitPane.DocWidth(), contentHeight)

	m.rebuildRenderer(chatWidth)
	m.refreshViewport()
}

// rebuildRenderer recreates the glamour renderer for the current chat width.
// Word wrap is baked into the renderer, so a resize needs a fresh one.
func (m *Model) rebuildRenderer(width int) {
	if !m.useMD {
		m.markdown = nil
		return
	}

	wrap := width - 6
	if wrap < 20 {
		wrap = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.markdown = nil
		return
	}
	m.markdown = r
}
