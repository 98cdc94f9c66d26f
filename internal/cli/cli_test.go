// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/twin-tui/internal/api"
	"github.com/jeranaias/twin-tui/internal/config"
	"github.com/jeranaias/twin-tui/internal/mockbackend"
	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/session"
)

// =============================================================================
// HELPERS
// =============================================================================

// isolate keeps tests away from the developer's ~/.twin and TWIN_* shell
// variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TWIN_HOME", dir)
	for _, k := range []string{
		"TWIN_API_URL", "TWIN_TIMEOUT", "TWIN_POLL_INTERVAL", "TWIN_MOBILE_BREAKPOINT",
		"TWIN_THEME", "TWIN_INBOX_DIR", "TWIN_LOG_LEVEL", "TWIN_LOG_FILE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	config.ResetGlobalForTesting()
	t.Cleanup(config.ResetGlobalForTesting)
	return dir
}

func startBackend(t *testing.T, opts mockbackend.Options) (*mockbackend.Server, string) {
	t.Helper()
	srv := mockbackend.New(opts)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts.URL
}

// run executes the root command and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// =============================================================================
// ROOT
// =============================================================================

func TestVersionCmd(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "twin "+Version)
	assert.Contains(t, out, "commit: "+GitCommit)
}

func TestVersionCmdWithCustomValues(t *testing.T) {
	isolate(t)
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = "1.0.0", "abc123", "2026-01-01"
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "twin 1.0.0 (commit: abc123, built: 2026-01-01)")
}

func TestRootCmdHelp(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"ask", "chat", "upload", "clear", "dashboard", "files", "config", "mock-backend", "version"} {
		assert.Contains(t, out, sub)
	}
	assert.Contains(t, out, "--api-url")
}

func TestInvalidAPIURL(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "--api-url", "localhost:8000", "files")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.base_url")
}

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

func TestAskCmd(t *testing.T) {
	isolate(t)
	var got []model.HistoryEntry
	_, url := startBackend(t, mockbackend.Options{
		Answer: func(q string, h []model.HistoryEntry, active string) string {
			got = h
			return "The answer to " + q + " is **42**."
		},
	})

	out, _, err := run(t, "--api-url", url, "ask", "--raw", "life,", "the", "universe")
	require.NoError(t, err)
	assert.Equal(t, "The answer to life, the universe is **42**.\n", out)
	assert.Empty(t, got, "ask sends no history")
}

func TestAskCmd_Unreachable(t *testing.T) {
	isolate(t)
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()

	_, _, err := run(t, "--api-url", url, "ask", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
	assert.True(t, api.IsNotReachable(err))
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "ask")
	assert.Error(t, err)
}

func TestUploadCmd(t *testing.T) {
	isolate(t)
	_, url := startBackend(t, mockbackend.Options{})
	path := writeFile(t, "notes.txt", "The launch is on Friday.")

	out, _, err := run(t, "--api-url", url, "upload", path)
	require.NoError(t, err)
	assert.Contains(t, out, "DOCUMENT UPLOADED")
	assert.Contains(t, out, "notes.txt")
	assert.Contains(t, out, "indexed as 1 chunk(s)")

	out, _, err = run(t, "--api-url", url, "files", "--json")
	require.NoError(t, err)
	var files []model.FileDescriptor
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "notes.txt", files[0].Title)
}

func TestUploadCmd_PartialFailure(t *testing.T) {
	isolate(t)
	_, url := startBackend(t, mockbackend.Options{})
	good := writeFile(t, "notes.txt", "hello")
	bad := writeFile(t, "tool.exe", "MZ")

	out, _, err := run(t, "--api-url", url, "upload", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 uploads failed")
	assert.Contains(t, out, "notes.txt")
	assert.Contains(t, out, "not accepted")
}

func TestClearCmd(t *testing.T) {
	isolate(t)
	_, url := startBackend(t, mockbackend.Options{})
	_, _, err := run(t, "--api-url", url, "upload", writeFile(t, "a.txt", "alpha"))
	require.NoError(t, err)

	out, _, err := run(t, "--api-url", url, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, session.ClearNotice)

	out, _, err = run(t, "--api-url", url, "files")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents found")
}

func TestDashboardCmd_OnceJSON(t *testing.T) {
	isolate(t)
	_, url := startBackend(t, mockbackend.Options{})
	_, _, err := run(t, "--api-url", url, "ask", "--raw", "hi")
	require.NoError(t, err)

	out, _, err := run(t, "--api-url", url, "dashboard", "--once", "--json")
	require.NoError(t, err)
	var snap model.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 1, snap.Stats.TotalQueries)
	assert.NotEmpty(t, snap.RecentHistory)
}

func TestDashboardCmd_OnceText(t *testing.T) {
	isolate(t)
	_, url := startBackend(t, mockbackend.Options{})
	_, _, err := run(t, "--api-url", url, "upload", writeFile(t, "plan.txt", "ship it"))
	require.NoError(t, err)

	out, _, err := run(t, "--api-url", url, "dashboard", "--once")
	require.NoError(t, err)
	assert.Contains(t, out, "Top files")
	assert.Contains(t, out, "plan.txt")
}

func TestDashboardCmd_OnceFailure(t *testing.T) {
	isolate(t)
	srv, url := startBackend(t, mockbackend.Options{})
	srv.FailWith(500)

	_, _, err := run(t, "--api-url", url, "dashboard", "--once")
	require.Error(t, err)
	assert.Equal(t, 500, api.StatusCode(err))
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfigSetGet(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	out, _, err := run(t, "--config", path, "config", "set", "ui.theme", "light")
	require.NoError(t, err)
	assert.Contains(t, out, "ui.theme = light")

	cfg, err := config.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)

	out, _, err = run(t, "--config", path, "config", "get", "ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, _, err = run(t, "--config", path, "config", "get", "dashboard.poll_interval")
	require.NoError(t, err)
	assert.Equal(t, "5s\n", out)
}

func TestConfigSet_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	_, _, err := run(t, "--config", path, "config", "set", "ui.theme", "neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid values are not saved")
}

func TestConfigSet_KeepsEnvOutOfFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("TWIN_API_URL", "http://from-env:1")

	_, _, err := run(t, "--config", path, "config", "set", "ui.theme", "dark")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "from-env")
}

func TestConfigShowAndPath(t *testing.T) {
	dir := isolate(t)

	out, _, err := run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[backend]")
	assert.Contains(t, out, "base_url")

	out, _, err = run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), strings.TrimSpace(out))
}

// =============================================================================
// CHAT REPL
// =============================================================================

func newTestREPL(t *testing.T, url string) (*chatREPL, *bytes.Buffer) {
	t.Helper()
	client := api.NewClient(api.ClientConfig{BaseURL: url})
	ctrl := session.New(client, session.WithBaseURL(url))
	t.Cleanup(ctrl.Close)

	var out bytes.Buffer
	repl := newChatREPL(ctrl, &out, config.Default(), true)
	repl.baseURL = url
	repl.export.OutputDir = t.TempDir()
	return repl, &out
}

func TestChatREPL_Question(t *testing.T) {
	_, url := startBackend(t, mockbackend.Options{})
	repl, out := newTestREPL(t, url)

	assert.False(t, repl.handle(context.Background(), "what do you know?"))
	assert.Contains(t, out.String(), "Twin:")
	assert.Contains(t, out.String(), "I don't have any documents yet")
	assert.Equal(t, 3, repl.ctrl.Len())

	out.Reset()
	assert.False(t, repl.handle(context.Background(), "   "))
	assert.Empty(t, out.String())
	assert.Equal(t, 3, repl.ctrl.Len())
}

func TestChatREPL_BackendDown(t *testing.T) {
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()
	repl, out := newTestREPL(t, url)

	repl.handle(context.Background(), "hello")
	assert.Contains(t, out.String(), session.QueryErrorNotice(url))
}

func TestChatREPL_MediaUploadLabel(t *testing.T) {
	_, url := startBackend(t, mockbackend.Options{})
	repl, out := newTestREPL(t, url)

	path := writeFile(t, "cat.png", "\x89PNG\r\n\x1a\n0000")
	repl.handle(context.Background(), "/upload "+path)
	assert.Contains(t, out.String(), "PHOTO UPLOADED")
	assert.NotContains(t, out.String(), "MEDIA UPLOADED")
}

func TestChatREPL_Commands(t *testing.T) {
	_, url := startBackend(t, mockbackend.Options{})
	repl, out := newTestREPL(t, url)
	ctx := context.Background()

	repl.handle(ctx, "/help")
	assert.Contains(t, out.String(), "/upload")

	out.Reset()
	repl.handle(ctx, "/nope")
	assert.Contains(t, out.String(), "Type /help")

	out.Reset()
	path := writeFile(t, "notes.txt", "alpha beta")
	repl.handle(ctx, "/upload "+path)
	assert.Contains(t, out.String(), "DOCUMENT UPLOADED")
	require.NotNil(t, repl.ctrl.ActiveDocument())
	assert.Equal(t, "notes.txt", repl.ctrl.ActiveDocument().FileName)

	out.Reset()
	exportPath := filepath.Join(t.TempDir(), "chat.json")
	repl.handle(ctx, "/export json "+exportPath)
	assert.Contains(t, out.String(), exportPath)
	_, err := os.Stat(exportPath)
	assert.NoError(t, err)

	out.Reset()
	repl.handle(ctx, "/clear")
	assert.Contains(t, out.String(), session.ClearNotice)
	assert.Equal(t, 1, repl.ctrl.Len())

	assert.True(t, repl.handle(ctx, "/quit"))
	assert.True(t, repl.handle(ctx, "/q"))
}
