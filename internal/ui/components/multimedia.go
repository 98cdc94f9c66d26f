// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
)

// MediaAccept is what the Multimedia Lab upload prompt offers.
var MediaAccept = []string{"image/*", "video/*", "audio/*"}

// MultimediaEmptyText is shown before any media has been indexed.
const MultimediaEmptyText = "No media yet. Press u to upload an image, video or audio file."

// MediaUploads returns the media attachment cards in a chat log, newest first.
func MediaUploads(msgs []*model.Message) []*model.Message {
	var out []*model.Message
	for i := len(msgs) - 1; i >= 0; i-- {
		if m := msgs[i]; m.IsFile() && m.IsMedia {
			out = append(out, m)
		}
	}
	return out
}

// =============================================================================
// MULTIMEDIA VIEW
// =============================================================================

// MultimediaView lists indexed media and this session's media uploads.
type MultimediaView struct {
	files    []model.FileDescriptor
	uploads  []*model.Message
	prompt   *PathPrompt
	viewport viewport.Model
	header   *Header
	width    int
	height   int
	theme    *styles.Theme
}

// NewMultimediaView creates the Multimedia Lab panel.
func NewMultimediaView(theme *styles.Theme) *MultimediaView {
	m := &MultimediaView{
		prompt:   NewPathPrompt(theme, "Media:", MediaAccept),
		viewport: viewport.New(80, 10),
		header:   NewHeader(theme, "Multimedia Lab", "Analyze audio, video, and images with AI."),
		theme:    theme,
	}
	m.refresh()
	return m
}

// SetFiles takes the snapshot's file list and keeps the media ones.
func (m *MultimediaView) SetFiles(files []model.FileDescriptor) {
	var media []model.FileDescriptor
	for _, f := range files {
		if f.IsMedia() {
			media = append(media, f)
		}
	}
	m.files = media
	m.refresh()
}

// SetMessages takes the chat log and keeps the media upload cards.
func (m *MultimediaView) SetMessages(msgs []*model.Message) {
	m.uploads = MediaUploads(msgs)
	m.refresh()
}

// Files returns the media files shown.
func (m *MultimediaView) Files() []model.FileDescriptor {
	return m.files
}

// SetSize updates the view dimensions.
func (m *MultimediaView) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.prompt.SetWidth(width)
	m.resizeViewport()
	m.refresh()
}

// Capturing reports whether the upload prompt has focus.
func (m *MultimediaView) Capturing() bool {
	return m.prompt.Active()
}

// Update handles keys for the panel.
func (m *MultimediaView) Update(msg tea.Msg) tea.Cmd {
	if m.prompt.Active() {
		cmd := m.prompt.Update(msg)
		m.resizeViewport()
		return cmd
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "u" {
		cmd := m.prompt.Open()
		m.resizeViewport()
		return cmd
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *MultimediaView) resizeViewport() {
	reserved := m.header.Height() + 1
	if m.prompt.Active() {
		reserved += 2
	}
	m.viewport.Width = max(m.width, 1)
	m.viewport.Height = max(m.height-reserved, 1)
}

func (m *MultimediaView) refresh() {
	width := max(m.width-2, 10)
	var b strings.Builder

	if len(m.uploads) > 0 {
		b.WriteString(m.theme.SectionTitle.Render("THIS SESSION") + "\n")
		for _, u := range m.uploads {
			line := m.theme.FileCardLabel.Render(u.UploadLabel()) + " " +
				truncate(filepath.Base(u.FileName), width-lipgloss.Width(u.UploadLabel())-1)
			b.WriteString(line + "\n")
			if u.MimeType != "" {
				b.WriteString(m.theme.CardMeta.Render("  "+u.MimeType+" · "+u.FormatTime()) + "\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.theme.SectionTitle.Render("INDEXED MEDIA") + "\n")
	if len(m.files) == 0 {
		b.WriteString(m.theme.EmptyState.Render(MultimediaEmptyText))
	}
	for _, f := range m.files {
		b.WriteString(m.theme.CardTitle.Render(truncate(kindIcon(f.Type)+" "+f.Title, width)) + "\n")
		b.WriteString(m.theme.CardMeta.Render(truncate("  "+joinNonEmpty(" • ", string(f.Size), f.Type, f.Date), width)) + "\n")
	}
	m.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
}

// View renders the panel.
func (m *MultimediaView) View() string {
	parts := []string{m.header.View()}
	if m.prompt.Active() {
		parts = append(parts, m.prompt.View())
	}
	parts = append(parts, m.viewport.View(), m.theme.Muted.Render("u upload media  ·  ↑↓ scroll"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
