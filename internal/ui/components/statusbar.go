// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/ui/styles"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusSending
	StatusLoading
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusSending:
		return "Sending..."
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
// ACCESSIBILITY: distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusSending, StatusLoading:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// Shortcut is one key hint shown on the right side of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom status line: signed-in user, bound document,
// current status, and key hints.
type StatusBar struct {
	UserEmail    string
	DocumentName string
	Status       Status
	Width        int
	Shortcuts    []Shortcut

	theme *styles.Theme
}

// NewStatusBar creates a status bar with default shortcuts.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		Shortcuts: []Shortcut{
			{Key: "enter", Desc: "send"},
			{Key: "ctrl+s", Desc: "sessions"},
			{Key: "ctrl+u", Desc: "upload"},
			{Key: "ctrl+c", Desc: "quit"},
		},
		theme: theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetUser updates the signed-in user's email.
func (s *StatusBar) SetUser(email string) {
	s.UserEmail = email
}

// SetDocument updates the bound document name.
func (s *StatusBar) SetDocument(name string) {
	s.DocumentName = name
}

// View renders the status bar.
func (s *StatusBar) View() string {
	statusStyle := s.theme.StatusOnline
	switch s.Status {
	case StatusSending, StatusLoading:
		statusStyle = s.theme.StatusBusy
	case StatusError:
		statusStyle = s.theme.StatusError
	}

	var left []string
	left = append(left, statusStyle.Render(s.Status.Icon()+" "+s.Status.String()))
	if s.UserEmail != "" {
		left = append(left, s.theme.ShortcutDesc.Render(s.UserEmail))
	}
	if s.DocumentName != "" {
		left = append(left, s.theme.ShortcutDesc.Render(util.TruncateWidth(s.DocumentName, 24)))
	}
	leftPart := strings.Join(left, s.theme.ShortcutDesc.Render("  |  "))

	var hints []string
	for _, sc := range s.Shortcuts {
		hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	rightPart := strings.Join(hints, "  ")

	gap := s.Width - lipgloss.Width(leftPart) - lipgloss.Width(rightPart) - 2
	if gap < 1 {
		// Narrow terminal: drop the hints before the status
		rightPart = ""
		gap = s.Width - lipgloss.Width(leftPart) - 2
		if gap < 0 {
			gap = 0
		}
	}

	return s.theme.StatusBar.
		Width(s.Width).
		Render(leftPart + strings.Repeat(" ", gap) + rightPart)
}
