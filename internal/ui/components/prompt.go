// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twin-tui/internal/inbox"
	"github.com/jeranaias/twin-tui/internal/ui/styles"
)

// ErrNotAccepted is returned for files outside the accepted types.
var ErrNotAccepted = errors.New("file type not accepted")

// ResolveUploadPath expands "~", makes path absolute and checks that it is
// a regular file of an accepted type.
func ResolveUploadPath(path string, accept []string) (string, error) {
	path = strings.Trim(strings.TrimSpace(path), `"'`)
	if path == "" {
		return "", errors.New("no file given")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand home: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", filepath.Base(abs))
	}
	if !inbox.Accepts(abs, accept) {
		return "", fmt.Errorf("%w: %s (accepted: %s)", ErrNotAccepted, filepath.Base(abs), strings.Join(accept, " "))
	}
	return abs, nil
}

// =============================================================================
// PATH PROMPT
// =============================================================================

// PathPrompt is a one-line file path input. On enter it validates the
// path and emits an UploadRequestMsg.
type PathPrompt struct {
	input  textinput.Model
	active bool
	accept []string
	err    string
	theme  *styles.Theme
}

// NewPathPrompt creates a prompt accepting the given types.
func NewPathPrompt(theme *styles.Theme, label string, accept []string) *PathPrompt {
	ti := textinput.New()
	ti.Prompt = label + " "
	ti.Placeholder = "path/to/file"
	ti.CharLimit = 1024
	if theme == nil {
		theme = styles.NewTheme(string(styles.ModeAuto))
	}
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.InputPlaceholder
	return &PathPrompt{input: ti, accept: accept, theme: theme}
}

// SetAccept replaces the accepted types.
func (p *PathPrompt) SetAccept(accept []string) {
	p.accept = accept
}

// Accept returns the accepted types.
func (p *PathPrompt) Accept() []string {
	return p.accept
}

// SetWidth sets the input width.
func (p *PathPrompt) SetWidth(w int) {
	p.input.Width = max(w-len(p.input.Prompt)-2, 10)
}

// Open shows and focuses the prompt.
func (p *PathPrompt) Open() tea.Cmd {
	p.active = true
	p.err = ""
	p.input.SetValue("")
	return p.input.Focus()
}

// Close hides the prompt.
func (p *PathPrompt) Close() {
	p.active = false
	p.err = ""
	p.input.Blur()
}

// Active reports whether the prompt is open.
func (p *PathPrompt) Active() bool {
	return p.active
}

// Err returns the last validation error, if any.
func (p *PathPrompt) Err() string {
	return p.err
}

// Update handles keys while the prompt is open.
func (p *PathPrompt) Update(msg tea.Msg) tea.Cmd {
	if !p.active {
		return nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			p.Close()
			return nil
		case "enter":
			path, err := ResolveUploadPath(p.input.Value(), p.accept)
			if err != nil {
				p.err = err.Error()
				return nil
			}
			p.Close()
			return func() tea.Msg { return UploadRequestMsg{Path: path} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the prompt and any validation error.
func (p *PathPrompt) View() string {
	if !p.active {
		return ""
	}
	out := p.input.View()
	if p.err != "" {
		out += "\n" + styles.RenderError(p.err)
	} else if len(p.accept) > 0 {
		out += "\n" + p.theme.Muted.Render("accepted: "+strings.Join(p.accept, " ")+"  ·  esc to cancel")
	}
	return out
}
