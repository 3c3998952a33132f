// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// =============================================================================
// SPLIT PANE LAYOUT CONTROLLER
// =============================================================================

// Split ratio bounds in percent. The range is exclusive on both ends: a drag
// can approach but never reach either bound, so neither pane collapses.
const (
	SplitRatioMin     = 20
	SplitRatioMax     = 80
	DefaultSplitRatio = 50
)

// DividerWidth is the width of the draggable divider column.
const DividerWidth = 1

// SplitPane is the resizable two-pane layout controller. The left pane holds
// the chat, the right pane the document view, separated by a divider the
// user can drag with the mouse.
//
// The drag protocol is a two-state machine: idle until a press lands on the
// divider column, resizing until the button is released. While resizing,
// every pointer position maps to a candidate ratio; candidates outside the
// accepted range are ignored rather than clamped, so the divider simply
// stops tracking the pointer at the edges.
type SplitPane struct {
	width  int
	height int

	// ratio is the chat pane's share of the width in percent, always
	// strictly inside (SplitRatioMin, SplitRatioMax).
	ratio int

	// resizing is true between a press on the divider and the release.
	resizing bool

	theme *styles.Theme
}

// NewSplitPane creates a split pane with the default 50/50 ratio.
func NewSplitPane(theme *styles.Theme) *SplitPane {
	return &SplitPane{
		ratio: DefaultSplitRatio,
		theme: theme,
	}
}

// SetSize updates the layout dimensions.
func (s *SplitPane) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Ratio returns the chat pane's share of the width in percent.
func (s *SplitPane) Ratio() int {
	return s.ratio
}

// SetRatio applies a ratio if it is strictly inside the accepted range.
// Out-of-range values are ignored, not clamped: a bad value from config or
// a drag past the edge leaves the current ratio untouched.
func (s *SplitPane) SetRatio(ratio int) {
	if ratio <= SplitRatioMin || ratio >= SplitRatioMax {
		return
	}
	s.ratio = ratio
}

// IsResizing reports whether a divider drag is in progress.
func (s *SplitPane) IsResizing() bool {
	return s.resizing
}

// ChatWidth returns the chat pane width in cells.
func (s *SplitPane) ChatWidth() int {
	if s.width <= DividerWidth {
		return 0
	}
	return (s.width - DividerWidth) * s.ratio / 100
}

// DocWidth returns the document pane width in cells.
func (s *SplitPane) DocWidth() int {
	if s.width <= DividerWidth {
		return 0
	}
	return s.width - DividerWidth - s.ChatWidth()
}

// dividerX returns the divider's column position.
func (s *SplitPane) dividerX() int {
	return s.ChatWidth()
}

// =============================================================================
// MOUSE HANDLING
// =============================================================================

// HandleMouse advances the drag state machine. Returns true when the event
// was consumed by the divider, so callers can skip forwarding it to the
// panes while a resize is in progress.
func (s *SplitPane) HandleMouse(msg tea.MouseMsg) bool {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return false
		}
		// A press within one cell of the divider starts the drag; the
		// slack makes the 1-cell target reachable on fast pointers.
		if !s.resizing && abs(msg.X-s.dividerX()) <= 1 {
			s.resizing = true
			return true
		}
		return false

	case tea.MouseActionMotion:
		if !s.resizing {
			return false
		}
		s.trackPointer(msg.X)
		return true

	case tea.MouseActionRelease:
		if !s.resizing {
			return false
		}
		s.trackPointer(msg.X)
		s.resizing = false
		return true
	}

	return false
}

// trackPointer converts a pointer column to a candidate ratio and applies
// it through the same range filter as SetRatio.
func (s *SplitPane) trackPointer(x int) {
	if s.width <= 0 {
		return
	}
	s.SetRatio(x * 100 / s.width)
}

// CancelResize aborts an in-progress drag, keeping the current ratio. Used
// when the layout loses focus mid-drag.
func (s *SplitPane) CancelResize() {
	s.resizing = false
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the left pane, divider, and right pane side by side. The
// pane contents are rendered by the caller at ChatWidth/DocWidth.
func (s *SplitPane) View(left, right string) string {
	divider := s.renderDivider()
	return lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right)
}

// renderDivider draws the divider column, highlighted while dragging.
func (s *SplitPane) renderDivider() string {
	if s.height <= 0 {
		return ""
	}

	style := s.theme.DividerIdle
	if s.resizing {
		style = s.theme.DividerActive
	}

	column := strings.TrimSuffix(strings.Repeat("|\n", s.height), "\n")
	return style.Render(column)
}

// abs returns the absolute value of an int.
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
