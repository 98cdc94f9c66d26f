// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/twin-tui/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
}

func sampleLog() []*model.Message {
	return []*model.Message{
		model.NewSystemMessage("# Hello!"),
		model.NewFileMessage("cat.png", "image/png", true, "/tmp/cat.png"),
		model.NewAssistantMessage("A cat on a mat."),
		model.NewUserMessage("What colour is the cat?\nBe brief."),
		model.NewAssistantMessage("Orange."),
		model.NewPendingMessage("📁 Uploading **b.pdf**..."),
	}
}

func TestNewTranscript(t *testing.T) {
	tr := NewTranscript(sampleLog(), "http://localhost:8000")
	assert.Equal(t, "What colour is the cat?", tr.Title)
	assert.Len(t, tr.Messages, 5, "pending placeholder is left out")
	assert.False(t, tr.CreatedAt.IsZero())

	empty := NewTranscript(nil, "")
	assert.Equal(t, "Knowledge Twin session", empty.Title)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatMarkdown, "md": FormatMarkdown, "Markdown": FormatMarkdown, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("html")
	assert.Error(t, err)
}

func TestMarkdownExporter(t *testing.T) {
	opts := &Options{IncludeMetadata: true, IncludeTimestamps: false, Now: fixedClock}
	out, err := NewMarkdownExporter(opts).Export(NewTranscript(sampleLog(), "http://localhost:8000"))
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\ntitle: What colour is the cat?\n"))
	assert.Contains(t, md, "backend: \"http://localhost:8000\"")
	assert.Contains(t, md, "files: 1\n")
	assert.Contains(t, md, "### [You]\n\n> 📎 **PHOTO UPLOADED** · `cat.png` (image/png)")
	assert.Contains(t, md, "### [Twin]\n\nOrange.")
	assert.Contains(t, md, "### [System]\n\n# Hello!")
	assert.NotContains(t, md, "Uploading")
	assert.Contains(t, md, "May 6, 2025 at 7:08 AM")
}

func TestMarkdownExporter_Errors(t *testing.T) {
	e := NewMarkdownExporter(nil)
	_, err := e.Export(nil)
	assert.Error(t, err)
	_, err = e.Export(&Transcript{})
	assert.Error(t, err)
}

func TestEscapeYAML_Newline(t *testing.T) {
	assert.Equal(t, `"Test\nInjection: malicious"`, escapeYAML("Test\nInjection: malicious"))
	assert.Equal(t, "plain", escapeYAML("plain"))
}

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter(&Options{Now: fixedClock}).Export(NewTranscript(sampleLog(), ""))
	require.NoError(t, err)

	var doc struct {
		Title      string           `json:"title"`
		Messages   []*model.Message `json:"messages"`
		ExportedAt time.Time        `json:"exported_at"`
		Generator  string           `json:"generator"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "twin-tui", doc.Generator)
	assert.True(t, doc.ExportedAt.Equal(fixedClock()))
	require.Len(t, doc.Messages, 5)
	assert.Equal(t, "cat.png", doc.Messages[1].FileName)
	assert.Equal(t, model.KindFile, doc.Messages[1].Kind)
}

func TestExport_DefaultName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	opts := &Options{OutputDir: dir, IncludeMetadata: true, Now: fixedClock}

	path, err := Export(sampleLog(), "", "md", opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "twin_What_colour_is_the_cat-_20250506_070809.md"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestExport_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat")
	got, err := Export(sampleLog(), "", "json", &Options{Path: path})
	require.NoError(t, err)
	assert.Equal(t, path+".json", got)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"":                "session",
		"a/b\\c:d":        "a-b-c-d",
		"hello world\tx":  "hello_world_x",
		strings.Repeat("é", 60): strings.Repeat("é", 50),
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFilename(in))
	}
}
