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
// DOCUMENT PANE
// =============================================================================

// DocPane renders the bound document's metadata in the right half of the
// split layout. Terminals cannot embed the document itself, so the pane
// shows the name, the session's backing URL, and a hint for opening it in
// the browser.
type DocPane struct {
	width  int
	height int

	documentName string
	documentURL  string

	theme *styles.Theme
}

// NewDocPane creates an empty document pane.
func NewDocPane(theme *styles.Theme) *DocPane {
	return &DocPane{theme: theme}
}

// SetSize updates the pane dimensions.
func (d *DocPane) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetDocument binds the pane to a document.
func (d *DocPane) SetDocument(name, url string) {
	d.documentName = name
	d.documentURL = url
}

// Clear unbinds the document.
func (d *DocPane) Clear() {
	d.documentName = ""
	d.documentURL = ""
}

// HasDocument reports whether a document is bound.
func (d *DocPane) HasDocument() bool {
	return d.documentName != "" || d.documentURL != ""
}

// View renders the pane at the configured size.
func (d *DocPane) View() string {
	if d.width <= 0 {
		return ""
	}

	inner := d.width - 3 // border column plus padding
	if inner < 1 {
		inner = 1
	}

	var b strings.Builder

	if !d.HasDocument() {
		b.WriteString(d.theme.DocPaneMeta.Render("No document loaded"))
		b.WriteString("\n\n")
		b.WriteString(d.theme.DocPaneMeta.Render("Upload a document to start a session."))
	} else {
		name := d.documentName
		if name == "" {
			name = "Document"
		}
		b.WriteString(d.theme.DocPaneTitle.Render(util.TruncateWidth(name, inner)))
		b.WriteString("\n\n")

		if d.documentURL != "" {
			b.WriteString(d.theme.DocPaneMeta.Render("Source"))
			b.WriteString("\n")
			b.WriteString(styles.RenderLink(util.TruncateWidth(d.documentURL, inner)))
			b.WriteString("\n\n")
		}

		b.WriteString(d.theme.DocPaneMeta.Render("Open the link in a browser to view"))
		b.WriteString("\n")
		b.WriteString(d.theme.DocPaneMeta.Render("the document alongside this chat."))
	}

	pane := d.theme.DocPane.
		Width(d.width).
		Height(d.height).
		Render(b.String())

	return lipgloss.PlaceVertical(d.height, lipgloss.Top, pane)
}
