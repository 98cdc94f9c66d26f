// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
	"github.com/jeranaias/twin-tui/internal/util"
)

const (
	// DocumentsEmptyText is shown when no file matches.
	DocumentsEmptyText = "No documents found. Upload one to get started!"

	docCardWidth = 30
)

// FilterFiles returns the files whose title, type, date or tags match
// every term of query. Matching ignores case and width variants.
func FilterFiles(files []model.FileDescriptor, query string) []model.FileDescriptor {
	if strings.TrimSpace(query) == "" {
		return files
	}
	out := make([]model.FileDescriptor, 0, len(files))
	for _, f := range files {
		fields := append([]string{f.Title, f.Type, f.Date}, f.Tags...)
		if util.MatchesQuery(query, fields...) {
			out = append(out, f)
		}
	}
	return out
}

// newSearchInput builds the "/" search line shared by list panels.
func newSearchInput(theme *styles.Theme, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.InputPlaceholder
	return ti
}

// =============================================================================
// DOCUMENTS VIEW
// =============================================================================

// DocumentsView is a searchable card grid of the indexed files.
type DocumentsView struct {
	files     []model.FileDescriptor
	search    textinput.Model
	searching bool
	prompt    *PathPrompt
	viewport  viewport.Model
	header    *Header
	width     int
	height    int
	theme     *styles.Theme
}

// NewDocumentsView creates the documents panel. accept is offered by the
// upload prompt.
func NewDocumentsView(theme *styles.Theme, accept []string) *DocumentsView {
	d := &DocumentsView{
		search:   newSearchInput(theme, "Search files..."),
		prompt:   NewPathPrompt(theme, "Upload:", accept),
		viewport: viewport.New(80, 10),
		header:   NewHeader(theme, "Documents", "Manage and analyze your knowledge base."),
		theme:    theme,
	}
	d.refresh()
	return d
}

// SetFiles replaces the listed files.
func (d *DocumentsView) SetFiles(files []model.FileDescriptor) {
	d.files = files
	d.refresh()
}

// SetAccept updates the upload prompt's accepted types.
func (d *DocumentsView) SetAccept(accept []string) {
	d.prompt.SetAccept(accept)
}

// SetSize updates the view dimensions.
func (d *DocumentsView) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.header.SetWidth(width)
	d.search.Width = max(width-4, 10)
	d.prompt.SetWidth(width)
	d.resizeViewport()
	d.refresh()
}

// Capturing reports whether keystrokes are going to a text field.
func (d *DocumentsView) Capturing() bool {
	return d.searching || d.prompt.Active()
}

// Query returns the current search text.
func (d *DocumentsView) Query() string {
	return d.search.Value()
}

// Visible returns the files that pass the search.
func (d *DocumentsView) Visible() []model.FileDescriptor {
	return FilterFiles(d.files, d.search.Value())
}

// Update handles keys and input for the panel.
func (d *DocumentsView) Update(msg tea.Msg) tea.Cmd {
	if d.prompt.Active() {
		cmd := d.prompt.Update(msg)
		d.resizeViewport()
		return cmd
	}

	km, isKey := msg.(tea.KeyMsg)
	if d.searching {
		if isKey {
			switch km.String() {
			case "enter":
				d.searching = false
				d.search.Blur()
				return nil
			case "esc":
				d.searching = false
				d.search.Blur()
				d.search.SetValue("")
				d.refresh()
				return nil
			}
		}
		var cmd tea.Cmd
		d.search, cmd = d.search.Update(msg)
		d.refresh()
		return cmd
	}

	if isKey {
		switch km.String() {
		case "/":
			d.searching = true
			return d.search.Focus()
		case "u":
			cmd := d.prompt.Open()
			d.resizeViewport()
			return cmd
		case "esc":
			d.search.SetValue("")
			d.refresh()
			return nil
		}
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

func (d *DocumentsView) resizeViewport() {
	reserved := d.header.Height() + 2 // search line + count line
	if d.prompt.Active() {
		reserved += 2
	}
	d.viewport.Width = max(d.width, 1)
	d.viewport.Height = max(d.height-reserved, 1)
}

func (d *DocumentsView) refresh() {
	visible := d.Visible()
	if len(visible) == 0 {
		d.viewport.SetContent(d.theme.EmptyState.Render(DocumentsEmptyText))
		return
	}

	cardW := min(docCardWidth, max(d.width, 12))
	cols := max(1, (d.width+1)/(cardW+1))

	var rows []string
	for i := 0; i < len(visible); i += cols {
		end := min(i+cols, len(visible))
		cards := make([]string, 0, cols*2)
		for j, f := range visible[i:end] {
			if j > 0 {
				cards = append(cards, " ")
			}
			cards = append(cards, d.card(f, cardW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	d.viewport.SetContent(strings.Join(rows, "\n"))
}

func (d *DocumentsView) card(f model.FileDescriptor, width int) string {
	inner := max(width-4, 4) // border + padding

	title := d.theme.CardTitle.Render(truncate(kindIcon(f.Type)+" "+f.Title, inner))
	meta := d.theme.CardMeta.Render(truncate(joinNonEmpty(" • ", string(f.Size), f.Date), inner))

	var tags []string
	used := 0
	for _, tag := range f.Tags {
		rendered := d.theme.Tag.Render(tag)
		w := lipgloss.Width(rendered) + 1
		if used+w > inner {
			break
		}
		tags = append(tags, rendered)
		used += w
	}
	tagLine := strings.Join(tags, " ")
	if tagLine == "" {
		tagLine = d.theme.CardMeta.Render(truncate(f.Type, inner))
	}

	return d.theme.Card.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, meta, tagLine))
}

// View renders the panel.
func (d *DocumentsView) View() string {
	visible := d.Visible()
	searchLine := d.search.View()
	if !d.searching && d.search.Value() == "" {
		searchLine = d.theme.Muted.Render("/ search  ·  u upload  ·  ↑↓ scroll")
	}
	count := d.theme.CardMeta.Render(fmt.Sprintf("%d of %d documents", len(visible), len(d.files)))

	parts := []string{d.header.View(), searchLine}
	if d.prompt.Active() {
		parts = append(parts, d.prompt.View())
	}
	parts = append(parts, d.viewport.View(), count)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
