// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/session"
	"github.com/jeranaias/docchat-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SessionBoundMsg:
		m.bind(msg)
		return m, nil

	case session.ReplyMsg:
		return m.handleReply(msg)

	case ErrorMsg:
		m.toasts.AddError(msg.Message)
		return m, components.ToastTickCmd()

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.thinking, cmd = m.thinking.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleMouse routes mouse events: the divider drag takes priority, then the
// wheel scrolls the transcript.
func (m *Model) handleMouse(msg tea.MouseMsg) (*Model, tea.Cmd) {
	if m.splitPane.HandleMouse(msg) {
		// The ratio may have changed; re-run the layout at the same size.
		m.SetSize(m.width, m.height)
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.LineUp(3)
	case tea.MouseButtonWheelDown:
		m.viewport.LineDown(3)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Sessions):
		return m, func() tea.Msg { return ShowSessionsMsg{} }

	case key.Matches(msg, m.keyMap.Upload):
		return m, func() tea.Msg { return ShowUploadMsg{} }

	case key.Matches(msg, m.keyMap.Cancel):
		m.splitPane.CancelResize()
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.End):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the drafted message to the orchestrator. The user bubble is
// appended optimistically before the request completes.
func (m *Model) submit() (*Model, tea.Cmd) {
	sendCmd, err := m.orchestrator.Send(context.Background(), m.input.Value())
	if err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyMessage):
			return m, nil
		case errors.Is(err, session.ErrSendInFlight):
			m.toasts.AddStatus("Still waiting for a reply")
		case errors.Is(err, session.ErrNoSession):
			m.toasts.AddError("Upload a document to start chatting")
		default:
			m.toasts.AddError(api.HumanMessage(err, "Could not send the message. Please try again."))
		}
		return m, components.ToastTickCmd()
	}

	m.input.Reset()
	m.statusBar.SetStatus(components.StatusSending)
	m.refreshViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(sendCmd, m.thinking.Start())
}

// handleReply folds an assistant reply (or its fallback) into the transcript.
// Stale replies from a previous binding are dropped by the orchestrator.
func (m *Model) handleReply(msg session.ReplyMsg) (*Model, tea.Cmd) {
	reply, ok := m.orchestrator.HandleReply(msg)
	if !ok {
		return m, nil
	}

	m.thinking.Stop()
	m.statusBar.SetStatus(components.StatusReady)
	m.refreshViewport()
	m.viewport.GotoBottom()

	if reply.IsFallback && msg.Err != nil {
		m.toasts.AddError(api.HumanMessage(msg.Err, "The reply failed. Please try again."))
		return m, components.ToastTickCmd()
	}
	return m, nil
}
