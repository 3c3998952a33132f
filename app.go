// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/auth"
	"github.com/jeranaias/docchat-tui/internal/cli"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/session"
	"github.com/jeranaias/docchat-tui/internal/ui/authview"
	"github.com/jeranaias/docchat-tui/internal/ui/chat"
	"github.com/jeranaias/docchat-tui/internal/ui/sessionsview"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
	"github.com/jeranaias/docchat-tui/internal/ui/uploadview"
)

// =============================================================================
// APPLICATION STATE
// =============================================================================

// appState selects which screen is active.
type appState int

const (
	stateAuth appState = iota
	stateSessions
	stateUpload
	stateChat
)

// UnauthorizedMsg is sent from the API gateway's 401 handler. Any screen may
// be active when it arrives; the app de-authenticates and swaps to the auth
// screen regardless.
type UnauthorizedMsg struct{}

// restoredMsg reports the startup token check against /auth/me.
type restoredMsg struct {
	user *api.User
	err  error
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model. It owns the screen state machine and
// routes messages to the active screen; cross-screen messages (sign-in,
// session binding, 401) are handled here.
type App struct {
	state appState

	theme *styles.Theme
	cfg   *config.Config
	env   *cli.Env

	orchestrator *session.Orchestrator

	authView     *authview.Model
	sessionsView *sessionsview.Model
	uploadView   *uploadview.Model
	chatView     *chat.Model

	width  int
	height int
}

// NewApp wires the screens together. A stored credential skips the auth
// screen optimistically; the token is verified against the backend in the
// background and a 401 bounces back to sign-in.
func NewApp(cfg *config.Config, theme *styles.Theme, env *cli.Env) *App {
	orch := session.NewOrchestrator(env.Client)

	app := &App{
		state:        stateAuth,
		theme:        theme,
		cfg:          cfg,
		env:          env,
		orchestrator: orch,
		authView:     authview.New(theme, env.Flows),
		sessionsView: sessionsview.New(theme, env.Client),
		uploadView:   uploadview.New(cfg, theme, env.Client),
		chatView:     chat.New(cfg, theme, orch),
	}

	if env.Creds.State() == auth.StateSignedIn {
		app.state = stateSessions
		if user := env.Creds.User(); user != nil {
			app.chatView.SetUser(user.Email)
		}
	}
	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if a.state == stateSessions {
		return tea.Batch(a.sessionsView.Init(), a.restore())
	}
	return a.authView.Init()
}

// restore verifies the stored token against /auth/me and refreshes the
// profile. A 401 is handled by the gateway's central interceptor; other
// failures keep the stored credential.
func (a *App) restore() tea.Cmd {
	flows := a.env.Flows
	return func() tea.Msg {
		user, err := flows.Restore(context.Background())
		return restoredMsg{user: user, err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		a.authView.SetSize(msg.Width, msg.Height)
		a.sessionsView.SetSize(msg.Width, msg.Height)
		a.uploadView.SetSize(msg.Width, msg.Height)
		a.chatView.SetSize(msg.Width, msg.Height)
		return a, nil

	case UnauthorizedMsg:
		// Central 401 policy: the gateway has already cleared the stored
		// credential; reset the session and return to sign-in. Stale
		// in-flight replies are discarded by generation.
		_ = a.env.Creds.Clear()
		a.orchestrator.Reset()
		a.state = stateAuth
		return a, a.authView.Init()

	case restoredMsg:
		if msg.err == nil && msg.user != nil {
			a.chatView.SetUser(msg.user.Email)
		}
		return a, nil

	case authview.SignedInMsg:
		if msg.User != nil {
			a.chatView.SetUser(msg.User.Email)
		}
		a.state = stateSessions
		return a, a.sessionsView.Init()

	case sessionsview.ChosenMsg:
		return a.enterChat(chat.SessionBoundMsg{Binding: msg.Binding, History: msg.History})

	case sessionsview.BackMsg:
		if a.orchestrator.State() == session.StateAwaitingUpload {
			a.state = stateUpload
			a.uploadView = uploadview.New(a.cfg, a.theme, a.env.Client)
			a.uploadView.SetSize(a.width, a.height)
			return a, a.uploadView.Init()
		}
		a.state = stateChat
		return a, nil

	case uploadview.UploadedMsg:
		return a.enterChat(chat.SessionBoundMsg{Binding: msg.Binding})

	case uploadview.BackMsg:
		if a.orchestrator.State() == session.StateAwaitingUpload {
			a.state = stateSessions
			return a, a.sessionsView.Init()
		}
		a.state = stateChat
		return a, nil

	case chat.ShowSessionsMsg:
		a.state = stateSessions
		return a, a.sessionsView.Init()

	case chat.ShowUploadMsg:
		a.state = stateUpload
		a.uploadView = uploadview.New(a.cfg, a.theme, a.env.Client)
		a.uploadView.SetSize(a.width, a.height)
		return a, a.uploadView.Init()
	}

	return a.updateActive(msg)
}

// enterChat binds the chat screen to a session and makes it active.
func (a *App) enterChat(bound chat.SessionBoundMsg) (tea.Model, tea.Cmd) {
	a.state = stateChat
	a.chatView.SetSize(a.width, a.height)

	var cmd tea.Cmd
	a.chatView, cmd = a.chatView.Update(bound)
	return a, tea.Batch(a.chatView.Init(), cmd)
}

// updateActive forwards a message to the active screen.
func (a *App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.state {
	case stateAuth:
		a.authView, cmd = a.authView.Update(msg)
	case stateSessions:
		a.sessionsView, cmd = a.sessionsView.Update(msg)
	case stateUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case stateChat:
		a.chatView, cmd = a.chatView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.state {
	case stateAuth:
		return a.authView.View()
	case stateSessions:
		return a.sessionsView.View()
	case stateUpload:
		return a.uploadView.View()
	case stateChat:
		return a.chatView.View()
	default:
		return ""
	}
}
