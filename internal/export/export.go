// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/util"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is a snapshot of the chat log prepared for export.
type Transcript struct {
	Title     string           `json:"title"`
	Backend   string           `json:"backend,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Messages  []*model.Message `json:"messages"`
}

// NewTranscript builds a transcript from the log, leaving out pending
// placeholders. The title is the first question asked.
func NewTranscript(msgs []*model.Message, backend string) *Transcript {
	t := &Transcript{Title: "Knowledge Twin session", Backend: backend}
	titled := false
	for _, m := range msgs {
		if m.Pending {
			continue
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = m.Timestamp
		}
		if !titled && m.Role == model.RoleUser && !m.IsFile() {
			t.Title = util.FirstLine(m.Content)
			titled = true
		}
		t.Messages = append(t.Messages, m)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return t
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export converts a transcript to the target format and returns the content.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// Format names an export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts "markdown", "md" and "json". Empty means Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// NewExporter returns the exporter for f.
func NewExporter(f Format, opts *Options) (Exporter, error) {
	switch f {
	case FormatMarkdown:
		return NewMarkdownExporter(opts), nil
	case FormatJSON:
		return NewJSONExporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", f)
	}
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is where generated file names are placed.
	// Default: ~/.twin/exports
	OutputDir string

	// Path, when set, is the exact output file and OutputDir is ignored.
	Path string

	// IncludeMetadata includes the frontmatter and session header.
	IncludeMetadata bool

	// IncludeTimestamps includes per-message timestamps.
	IncludeTimestamps bool

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         DefaultDir(),
		IncludeMetadata:   true,
		IncludeTimestamps: true,
	}
}

// DefaultDir is ~/.twin/exports, honouring TWIN_HOME.
func DefaultDir() string {
	if home := os.Getenv("TWIN_HOME"); home != "" {
		return filepath.Join(home, "exports")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".twin", "exports")
	}
	return "exports"
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a transcript using exporter and returns the path
// written.
func ExportToFile(t *Transcript, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	outputPath := opts.Path
	if outputPath == "" {
		dir := opts.OutputDir
		if dir == "" {
			dir = DefaultDir()
		}
		filename := fmt.Sprintf("twin_%s_%s%s",
			sanitizeFilename(t.Title),
			opts.now().Format("20060102_150405"),
			exporter.FileExtension(),
		)
		outputPath = filepath.Join(dir, filename)
	} else if filepath.Ext(outputPath) == "" {
		outputPath += exporter.FileExtension()
	}

	if err := util.AtomicWriteFileWithDir(outputPath, content, 0600, 0700); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return outputPath, nil
}

// Export writes the log in the named format ("markdown" or "json").
func Export(msgs []*model.Message, backend, format string, opts *Options) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	exporter, err := NewExporter(f, opts)
	if err != nil {
		return "", err
	}
	return ExportToFile(NewTranscript(msgs, backend), exporter, opts)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	const maxLen = 50
	runes := []rune(s)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	result := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			result = append(result, '-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			result = append(result, '_')
		case r < 32 || r == 127:
			result = append(result, '-')
		default:
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "session"
	}
	return string(result)
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatShortTimestamp formats a timestamp for inline display.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
