// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	require.NotNil(t, r.Get("/upload"))
	assert.Equal(t, Upload, r.Get("/u").Name)
	assert.Equal(t, Help, r.Get("/?").Name)
	assert.Equal(t, Clear, r.Get("/CLEAR").Name)
	assert.Nil(t, r.Get("/model"))
}

func TestRegistry_HelpText(t *testing.T) {
	help := NewRegistry().HelpText()
	assert.Contains(t, help, "/upload <path>")
	assert.Contains(t, help, "/export [markdown|json] [path]")
	assert.Contains(t, help, "/clear")
}

func TestParse(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		input   string
		command string
		args    []string
		wantErr bool
	}{
		{"plain text", "hello there", "", nil, false},
		{"help", "/help", Help, nil, false},
		{"upload", "/upload report.pdf", Upload, []string{"report.pdf"}, false},
		{"quoted path", `/upload "my docs/q3 report.pdf"`, Upload, []string{"my docs/q3 report.pdf"}, false},
		{"upload missing path", "/upload", Upload, nil, true},
		{"export default", "/export", Export, nil, false},
		{"export format and path", "/export json out.json", Export, []string{"json", "out.json"}, false},
		{"export path only", "/export out.md", Export, []string{"out.md"}, false},
		{"unknown", "/frobnicate", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Parse(tt.input)
			if tt.command == "" && !tt.wantErr {
				assert.False(t, res.IsCommand)
				return
			}
			assert.True(t, res.IsCommand)
			if tt.wantErr {
				assert.Error(t, res.Error)
				return
			}
			require.NoError(t, res.Error)
			assert.Equal(t, tt.command, res.Command.Name)
			assert.Equal(t, len(tt.args), len(res.Args))
			for i, a := range tt.args {
				assert.Equal(t, a, res.Args[i])
			}
		})
	}
}

func TestParse_UnknownIsTyped(t *testing.T) {
	res := NewRegistry().Parse("/nope")
	assert.ErrorIs(t, res.Error, ErrUnknown)

	res = NewRegistry().Parse("/upload")
	var verr *ValidationError
	require.ErrorAs(t, res.Error, &verr)
	assert.Equal(t, "path", verr.Arg)
}

func TestParse_RawArgs(t *testing.T) {
	res := NewRegistry().Parse("/upload   a b.pdf")
	assert.Equal(t, "a b.pdf", res.RawArgs)
}

func TestSplitCommandLine(t *testing.T) {
	assert.Equal(t, []string{"/upload", "a b", "c"}, splitCommandLine(`/upload "a b" c`))
	assert.Equal(t, []string{"/x", `it's`}, splitCommandLine(`/x "it's"`))
	assert.Equal(t, []string{"/x", ""}, splitCommandLine(`/x ""`))
	assert.Empty(t, splitCommandLine("   "))
}

func TestExportArgs(t *testing.T) {
	tests := []struct {
		args   []string
		format string
		path   string
	}{
		{nil, "markdown", ""},
		{[]string{"json"}, "json", ""},
		{[]string{"MD"}, "markdown", ""},
		{[]string{"notes.json"}, "json", "notes.json"},
		{[]string{"notes.md"}, "markdown", "notes.md"},
		{[]string{"json", "x.txt"}, "json", "x.txt"},
	}
	for _, tt := range tests {
		f, p := ExportArgs(tt.args)
		assert.Equal(t, tt.format, f, "%v", tt.args)
		assert.Equal(t, tt.path, p, "%v", tt.args)
	}
}

func TestCompleter_Commands(t *testing.T) {
	c := NewCompleter(NewRegistry())

	got := c.Complete("/u")
	require.Len(t, got, 1)
	assert.Equal(t, "/upload", got[0].Value)

	assert.Len(t, c.Complete("/"), len(NewRegistry().All()))
	assert.Nil(t, c.Complete("hello"))
}

func TestCompleter_ExportFormats(t *testing.T) {
	c := NewCompleter(NewRegistry())
	c.FilesFn = func(string) []string { return nil }

	got := c.Complete("/export j")
	require.Len(t, got, 1)
	assert.Equal(t, "json", got[0].Value)
}

func TestCompleter_Files(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.pdf"), nil, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "recap.txt"), nil, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "reels"), 0700))

	c := NewCompleter(NewRegistry())
	got := c.Complete("/upload " + dir + string(filepath.Separator) + "re")
	values := make([]string, len(got))
	for i, g := range got {
		values[i] = filepath.Base(g.Value)
	}
	assert.ElementsMatch(t, []string{"report.pdf", "recap.txt", "reels"}, values)

	lines := c.CompleteLine("/upload " + filepath.Join(dir, "rep"))
	require.Len(t, lines, 1)
	assert.Equal(t, "/upload "+filepath.Join(dir, "report.pdf"), lines[0])
}
