// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twin-tui/internal/commands"
	"github.com/jeranaias/twin-tui/internal/export"
	"github.com/jeranaias/twin-tui/internal/session"
	"github.com/jeranaias/twin-tui/internal/ui/components"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
)

const (
	// Placeholder is shown in the empty input line.
	Placeholder = "Ask anything..."

	// Disclaimer sits under the input line.
	Disclaimer = "Knowledge Twin can make mistakes. Verify important information."

	// ThinkingText follows the spinner while a question is in flight.
	ThinkingText = "Thinking..."

	// BusyText is shown when a submission is refused because another is
	// still in flight.
	BusyText = "Wait for the current request to finish."

	inputCharLimit = 4000
)

// DefaultAccept is what the chat upload prompt takes when no list is
// configured.
var DefaultAccept = []string{".pdf", ".txt", "image/*", "video/*", "audio/*"}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures a chat Model.
type Options struct {
	Controller     *session.Controller
	Theme          *styles.Theme
	Accept         []string
	BaseURL        string
	RenderMarkdown bool

	// Export configures /export. Nil means export.DefaultOptions().
	Export *export.Options

	// Context bounds every request started from the view.
	Context context.Context
}

// Model is the chat panel: transcript, spinner and input line. The log
// itself lives in the session controller; the view re-reads it on every
// change.
type Model struct {
	ctrl     *session.Controller
	registry *commands.Registry
	keys     KeyMap
	theme    *styles.Theme
	ctx      context.Context

	baseURL    string
	accept     []string
	exportOpts *export.Options

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	prompt   *components.PathPrompt
	markdown *markdownRenderer

	// localNotice is a view-only system line (help text, command errors).
	// It is not part of the log and is dropped on the next submission.
	localNotice string
	noticeIsErr bool

	lastLen int
	width   int
	height  int
}

// New creates the chat panel.
func New(opts Options) *Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	accept := opts.Accept
	if len(accept) == 0 {
		accept = DefaultAccept
	}
	exportOpts := opts.Export
	if exportOpts == nil {
		exportOpts = export.DefaultOptions()
	}

	input := textinput.New()
	input.Placeholder = Placeholder
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.PlaceholderStyle = theme.InputPlaceholder
	input.CharLimit = inputCharLimit
	input.Focus()

	sp := spinner.New()
	sp.Spinner = styles.BrailleSpinner.Bubble()
	sp.Style = theme.Spinner

	m := &Model{
		ctrl:       opts.Controller,
		registry:   commands.NewRegistry(),
		keys:       DefaultKeyMap(),
		theme:      theme,
		ctx:        ctx,
		baseURL:    opts.BaseURL,
		accept:     accept,
		exportOpts: exportOpts,
		viewport:   viewport.New(80, 10),
		input:      input,
		spinner:    sp,
		prompt:     components.NewPathPrompt(theme, "Upload:", accept),
		markdown:   newMarkdownRenderer(theme.GlamourStyle(), opts.RenderMarkdown),
	}
	m.Refresh()
	return m
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Capturing is always true: the chat input owns every printable key.
func (m *Model) Capturing() bool {
	return true
}

// Loading reports whether a submission is in flight.
func (m *Model) Loading() bool {
	return m.ctrl.IsLoading()
}

// Value returns the current input text.
func (m *Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the input text.
func (m *Model) SetValue(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// LocalNotice returns the view-only notice, if any.
func (m *Model) LocalNotice() string {
	return m.localNotice
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.input.Width = max(width-6, 10)
	m.prompt.SetWidth(width)
	m.markdown.SetWidth(m.bubbleWidth())
	m.resizeViewport()
	m.Refresh()
}

// SetTheme swaps the theme after a settings change.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.input.PromptStyle = theme.InputPrompt
	m.input.PlaceholderStyle = theme.InputPlaceholder
	m.spinner.Style = theme.Spinner
	m.prompt = components.NewPathPrompt(theme, "Upload:", m.accept)
	m.prompt.SetWidth(m.width)
	m.markdown.SetStyle(theme.GlamourStyle())
	m.Refresh()
}

// SetRenderMarkdown turns glamour rendering on or off.
func (m *Model) SetRenderMarkdown(on bool) {
	m.markdown.SetEnabled(on)
	m.Refresh()
}

// SetAccept updates the upload prompt's accepted types.
func (m *Model) SetAccept(accept []string) {
	if len(accept) == 0 {
		accept = DefaultAccept
	}
	m.accept = accept
	m.prompt.SetAccept(accept)
}

// bubbleWidth is the text width inside a message bubble: the main width
// minus the side margin, border and padding.
func (m *Model) bubbleWidth() int {
	return max(m.width-8, 20)
}

func (m *Model) resizeViewport() {
	m.viewport.Width = max(m.width, 1)
	m.viewport.Height = max(m.height-m.chromeHeight(), 1)
}

// chromeHeight is everything below the transcript: status line, optional
// prompt, input box (border + line) and disclaimer.
func (m *Model) chromeHeight() int {
	h := 1 + 2 + 1
	if m.prompt.Active() {
		h += 2
	}
	return h
}
