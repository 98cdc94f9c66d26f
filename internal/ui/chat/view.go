// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/util"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Refresh re-reads the log and rebuilds the transcript. The view sticks to
// the bottom when it was already there or when entries were added.
func (m *Model) Refresh() {
	msgs := m.ctrl.Messages()
	follow := m.viewport.AtBottom() || len(msgs) != m.lastLen
	m.lastLen = len(msgs)

	var activeID string
	if doc := m.ctrl.ActiveDocument(); doc != nil {
		activeID = doc.ID
	}

	blocks := make([]string, 0, len(msgs)+1)
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg, msg.ID == activeID))
	}
	if m.localNotice != "" {
		blocks = append(blocks, m.renderNotice())
	}
	m.markdown.Sweep()

	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) renderMessage(msg *model.Message, active bool) string {
	switch {
	case msg.IsFile():
		return m.renderFileCard(msg, active)
	case msg.Pending:
		return m.theme.UserBubble.
			BorderForeground(m.theme.ThinkingText.GetForeground()).
			Render(m.spinner.View() + " " + m.theme.ThinkingText.Render(stripEmphasis(msg.Content)))
	}

	body := m.markdown.Render(msg.Content)
	switch msg.Role {
	case model.RoleUser:
		head := m.theme.SpeakerUser.Render(msg.Role.DisplayName()) + " " + m.theme.CardMeta.Render(msg.FormatTime())
		bubble := m.theme.UserBubble.Render(body)
		return lipgloss.JoinVertical(lipgloss.Right, head, bubble)
	case model.RoleAssistant:
		head := m.theme.SpeakerTwin.Render(msg.Role.DisplayName()) + " " + m.theme.CardMeta.Render(msg.FormatTime())
		return lipgloss.JoinVertical(lipgloss.Left, head, m.theme.AssistantBubble.Render(body))
	default:
		return m.theme.SystemBubble.Render(body)
	}
}

func (m *Model) renderFileCard(msg *model.Message, active bool) string {
	inner := max(min(m.bubbleWidth(), 48), 20)

	lines := []string{
		m.theme.FileCardLabel.Render(msg.UploadLabel()),
		m.theme.CardTitle.Render(util.TruncateWidth(msg.FileName, inner)),
	}
	meta := msg.MimeType
	if msg.PreviewPath != "" {
		meta = util.TruncateWidth(msg.PreviewPath, inner)
	}
	if meta != "" {
		lines = append(lines, m.theme.CardMeta.Render(meta))
	}
	if active {
		lines = append(lines, m.theme.ActiveDocument.Render("● Active Document"))
	}

	head := m.theme.SpeakerUser.Render(msg.Role.DisplayName()) + " " + m.theme.CardMeta.Render(msg.FormatTime())
	card := m.theme.FileCard.Width(inner + 2).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Right, head, card)
}

func (m *Model) renderNotice() string {
	if m.noticeIsErr {
		return m.theme.SystemBubble.BorderForeground(m.theme.ErrorStyle.GetForeground()).
			Render(m.theme.ErrorStyle.Render("[X] ") + m.localNotice)
	}
	return m.theme.SystemBubble.Render(m.markdown.Render(m.localNotice))
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the panel: transcript, status line, prompt, input and
// disclaimer.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	status := ""
	if m.Loading() {
		status = m.spinner.View() + " " + m.theme.ThinkingText.Render(ThinkingText)
	}

	parts := []string{m.viewport.View(), status}
	if m.prompt.Active() {
		parts = append(parts, m.prompt.View())
	}
	parts = append(parts,
		m.theme.InputContainer.Width(m.width).Render(m.input.View()),
		m.theme.Disclaimer.Width(m.width).Render(util.TruncateWidth(Disclaimer, m.width)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
