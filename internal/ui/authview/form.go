// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package authview

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/auth"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// =============================================================================
// MODES AND MESSAGES
// =============================================================================

// Mode selects between the sign-in and sign-up forms.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

// SignedInMsg is emitted upward when authentication succeeds.
type SignedInMsg struct {
	User *api.User
}

// resultMsg carries the outcome of an auth request back into the form.
type resultMsg struct {
	user *api.User
	err  error
}

// =============================================================================
// FORM MODEL
// =============================================================================

const (
	fieldEmail = iota
	fieldPassword
	fieldConfirm
)

// Model is the Bubble Tea model for the auth screen.
type Model struct {
	theme *styles.Theme
	flows *auth.Flows

	mode  Mode
	focus int
	busy  bool

	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model

	errText string

	width  int
	height int
}

// New creates the auth screen in sign-in mode.
func New(theme *styles.Theme, flows *auth.Flows) *Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 128

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '*'
	confirm.CharLimit = 128

	return &Model{
		theme:    theme,
		flows:    flows,
		email:    email,
		password: password,
		confirm:  confirm,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Mode returns the active form mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// SetSize records the terminal dimensions for centering the form.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// fieldCount returns the number of focusable fields for the current mode.
func (m *Model) fieldCount() int {
	if m.mode == ModeSignUp {
		return 3
	}
	return 2
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
			m.errText = api.HumanMessage(msg.err, "Something went wrong. Please try again.")
			return m, nil
		}
		m.errText = ""
		return m, func() tea.Msg { return SignedInMsg{User: msg.user} }

	case tea.KeyMsg:
		if m.busy {
			// Only quit gets through while a request is in flight.
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		m.setFocus((m.focus + 1) % m.fieldCount())
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus((m.focus - 1 + m.fieldCount()) % m.fieldCount())
		return m, nil

	case tea.KeyCtrlT:
		m.toggleMode()
		return m, nil

	case tea.KeyEnter:
		if m.focus < m.fieldCount()-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m, m.submit()
	}

	return m, m.updateFocused(msg)
}

// setFocus moves focus to the given field index.
func (m *Model) setFocus(index int) {
	m.focus = index
	inputs := []*textinput.Model{&m.email, &m.password, &m.confirm}
	for i, in := range inputs {
		if i == index {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// toggleMode switches between sign-in and sign-up, keeping the typed email.
func (m *Model) toggleMode() {
	if m.mode == ModeSignIn {
		m.mode = ModeSignUp
	} else {
		m.mode = ModeSignIn
		m.confirm.Reset()
	}
	m.errText = ""
	if m.focus >= m.fieldCount() {
		m.setFocus(0)
	}
}

// updateFocused forwards a message to the focused field.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldEmail:
		m.email, cmd = m.email.Update(msg)
	case fieldPassword:
		m.password, cmd = m.password.Update(msg)
	case fieldConfirm:
		m.confirm, cmd = m.confirm.Update(msg)
	}
	return cmd
}

// submit validates locally, then fires the sign-in or sign-up request.
// Validation errors short-circuit without a network round trip.
func (m *Model) submit() tea.Cmd {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	confirm := m.confirm.Value()
	mode := m.mode

	var validationErr error
	if mode == ModeSignUp {
		validationErr = auth.ValidateSignUp(email, password, confirm)
	} else {
		validationErr = auth.ValidateSignIn(email, password)
	}
	if validationErr != nil {
		m.errText = validationErr.Error()
		return nil
	}

	m.busy = true
	m.errText = ""

	flows := m.flows
	return func() tea.Msg {
		var user *api.User
		var err error
		if mode == ModeSignUp {
			user, err = flows.SignUp(context.Background(), email, password, confirm)
		} else {
			user, err = flows.SignIn(context.Background(), email, password)
		}
		return resultMsg{user: user, err: err}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	title := "Sign in to docchat"
	action := "sign in"
	toggleHint := "Ctrl+T: create an account"
	if m.mode == ModeSignUp {
		title = "Create a docchat account"
		action = "sign up"
		toggleHint = "Ctrl+T: back to sign in"
	}

	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")

	if m.mode == ModeSignUp {
		b.WriteString("\n")
		b.WriteString(m.theme.FormLabel.Render("Confirm password"))
		b.WriteString("\n")
		b.WriteString(m.confirm.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.theme.FormHint.Render("Signing in..."))
	} else {
		b.WriteString(m.theme.FormButtonActive.Render("Enter: " + action))
	}
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.FormError.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.FormHint.Render("Tab: next field  " + toggleHint))

	form := m.theme.FormBox.Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
