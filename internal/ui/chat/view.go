// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	left := m.renderChatColumn()
	right := m.docPane.View()
	b.WriteString(m.splitPane.View(left, right))
	b.WriteString("\n")

	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.toasts.GetToasts(), m.width, 0)
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, stack))
		b.WriteString("\n")
	}

	b.WriteString(m.statusBar.View())

	return b.String()
}

// renderHeader renders the top line: brand on the left, document on the right.
func (m *Model) renderHeader() string {
	brand := m.theme.HeaderBrand.Render("docchat")

	doc := ""
	if name := m.orchestrator.Session().DocumentName; name != "" {
		doc = m.theme.HeaderSubtitle.Render(name)
	}

	gap := m.width - lipgloss.Width(brand) - lipgloss.Width(doc) - 2
	if gap < 1 {
		gap = 1
	}

	return m.theme.Header.Width(m.width).Render(
		brand + strings.Repeat(" ", gap) + doc,
	)
}

// renderChatColumn stacks the transcript viewport, the thinking indicator,
// and the input field into the left pane.
func (m *Model) renderChatColumn() string {
	var b strings.Builder

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.thinking.IsActive() {
		b.WriteString(m.thinking.View())
	}
	b.WriteString("\n")

	b.WriteString(m.theme.InputContainer.
		Width(m.splitPane.ChatWidth() - 2).
		Render(m.input.View()))

	return b.String()
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	width := m.viewport.Width
	if width <= 0 {
		return
	}

	transcript := m.orchestrator.Transcript()
	if transcript.IsEmpty() {
		m.viewport.SetContent(m.theme.DocPaneMeta.Render("No messages yet. Say hello!"))
		return
	}

	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = width - 2
	}

	var lines []string
	for _, msg := range transcript.Messages() {
		lines = append(lines, m.renderMessage(msg, width, bubbleWidth))
	}

	m.viewport.SetContent(strings.Join(lines, "\n\n"))
}

// renderMessage renders one transcript entry. User messages are right-aligned
// plain text; assistant messages are left-aligned and markdown-rendered when
// enabled; fallback substitutes get the warning treatment.
func (m *Model) renderMessage(msg model.Message, width, bubbleWidth int) string {
	switch {
	case msg.Role == model.RoleUser:
		bubble := m.theme.UserBubble.MaxWidth(bubbleWidth).Render(msg.Content)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)

	case msg.IsFallback:
		return m.theme.FallbackBubble.MaxWidth(bubbleWidth).Render(msg.Content)

	default:
		content := msg.Content
		if m.markdown != nil {
			if rendered, err := m.markdown.Render(msg.Content); err == nil {
				content = strings.TrimRight(rendered, "\n")
			}
		}
		return m.theme.AssistantBubble.MaxWidth(bubbleWidth).Render(content)
	}
}
