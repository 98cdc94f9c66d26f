// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears TWIN_*
// variables that could leak in from the developer's shell.
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
	return dir
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Dashboard.PollInterval.Duration)
	assert.Equal(t, 100, cfg.UI.MobileBreakpoint)
	assert.True(t, cfg.UI.RenderMarkdown)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, "", false},
		{"relative url", func(c *Config) { c.Backend.BaseURL = "localhost:8000" }, "backend.base_url", true},
		{"ftp url", func(c *Config) { c.Backend.BaseURL = "ftp://host" }, "backend.base_url", true},
		{"https ok", func(c *Config) { c.Backend.BaseURL = "https://twin.example.com" }, "", false},
		{"poll too fast", func(c *Config) { c.Dashboard.PollInterval = D(100 * time.Millisecond) }, "dashboard.poll_interval", true},
		{"retries", func(c *Config) { c.Dashboard.MaxRetries = 11 }, "dashboard.max_retries", true},
		{"breakpoint", func(c *Config) { c.UI.MobileBreakpoint = 10 }, "ui.mobile_breakpoint", true},
		{"theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme", true},
		{"log level", func(c *Config) { c.Logging.Level = "chatty" }, "logging.level", true},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs ValidateErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.Backend.BaseURL)
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "config.toml", "[backend]\nbase_url = \"http://twin:9000/\"\n[dashboard]\npoll_interval = \"10s\"\n"},
		{"yaml", "config.yaml", "backend:\n  base_url: http://twin:9000/\ndashboard:\n  poll_interval: 10s\n"},
		{"json", "config.json", `{"backend":{"base_url":"http://twin:9000/"},"dashboard":{"poll_interval":"10s"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0600))

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, "http://twin:9000", cfg.Backend.BaseURL, "trailing slash is migrated away")
			assert.Equal(t, 10*time.Second, cfg.Dashboard.PollInterval.Duration)
			assert.Equal(t, 100, cfg.UI.MobileBreakpoint, "unset keys keep defaults")
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[backend]\nbase_url = \"http://from-file:8000\"\n"), 0600))
	t.Setenv("TWIN_API_URL", "http://from-env:8003")
	t.Setenv("TWIN_POLL_INTERVAL", "30s")
	t.Setenv("TWIN_MOBILE_BREAKPOINT", "120")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8003", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.PollInterval.Duration)
	assert.Equal(t, 120, cfg.UI.MobileBreakpoint)
}

func TestApplyEnvFrom_InvalidValue(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnvFrom(map[string]string{"TWIN_POLL_INTERVAL": "soon"})
	assert.Error(t, err)
}

func TestLoad_InvalidFileFails(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[ui]\ntheme = \"neon\"\n"), 0600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme")
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TWIN_API_URL=http://dotenv:1\nTWIN_THEME=light\n"), 0600))
	t.Setenv("TWIN_API_URL", "http://shell:2")

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "http://shell:2", os.Getenv("TWIN_API_URL"))
	assert.Equal(t, "light", os.Getenv("TWIN_THEME"))
	os.Unsetenv("TWIN_THEME")
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}

func TestSaveTo_RoundTrip(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config"+ext)

			cfg := Default()
			cfg.UI.Theme = "light"
			cfg.Dashboard.PollInterval = D(7 * time.Second)
			require.NoError(t, SaveTo(cfg, path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

			loaded, err := LoadFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, "light", loaded.UI.Theme)
			assert.Equal(t, 7*time.Second, loaded.Dashboard.PollInterval.Duration)
		})
	}
}

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("backend.base_url", "http://other:1"))
	require.NoError(t, cfg.Set("dashboard.poll_interval", "15s"))
	require.NoError(t, cfg.Set("ui.mobile_breakpoint", "90"))
	require.NoError(t, cfg.Set("ui.render_markdown", "off"))
	require.NoError(t, cfg.Set("upload.accept", ".pdf, image/*"))

	v, err := cfg.Get("backend.base_url")
	require.NoError(t, err)
	assert.Equal(t, "http://other:1", v)
	assert.Equal(t, 15*time.Second, cfg.Dashboard.PollInterval.Duration)
	assert.Equal(t, 90, cfg.UI.MobileBreakpoint)
	assert.False(t, cfg.UI.RenderMarkdown)
	assert.Equal(t, []string{".pdf", "image/*"}, cfg.Upload.Accept)

	assert.Error(t, cfg.Set("ui.nope", "x"))
	assert.Error(t, cfg.Set("ui.mobile_breakpoint", "wide"))
	assert.Error(t, cfg.Set("dashboard.poll_interval.seconds", "1"))
	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestGetAllKeys(t *testing.T) {
	keys := GetAllKeys()
	assert.Contains(t, keys, "backend.base_url")
	assert.Contains(t, keys, "dashboard.poll_interval")
	assert.Contains(t, keys, "ui.mobile_breakpoint")
	assert.Contains(t, keys, "logging.level")

	cfg := Default()
	for _, k := range keys {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Upload.Accept[0] = ".docx"
	clone.UI.Theme = "dark"

	assert.Equal(t, ".pdf", cfg.Upload.Accept[0])
	assert.Equal(t, "auto", cfg.UI.Theme)
}

// =============================================================================
// GLOBAL
// =============================================================================

func TestConfig_GlobalInitialization(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	cfg := Global()
	require.NotNil(t, cfg)
	assert.Same(t, cfg, Global())
}

func TestConfig_SetGlobalOverwrites(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	custom := Default()
	custom.UI.Theme = "light"
	SetGlobal(custom)

	assert.Equal(t, "light", Global().UI.Theme)
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = Global().Backend.BaseURL
		}()
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
	}
	wg.Wait()
	assert.NotNil(t, Global())
}

func TestReadFile_IgnoresEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[backend]\nbase_url = \"http://from-file:8000\"\n"), 0600))
	t.Setenv("TWIN_API_URL", "http://from-env:8003")

	cfg, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-file:8000", cfg.Backend.BaseURL)
}
