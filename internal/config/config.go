// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for twin.
//
// Supports TOML, YAML and JSON configuration formats, with sensible defaults,
// .env and environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - the path given with --config
//   - ~/.twin/config.toml
//   - ~/.twin/config.yaml (or config.yml)
//   - ~/.twin/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/twin-tui/internal/util"
)

// CurrentVersion is the schema version written by Save.
const CurrentVersion = 1

// Defaults shared with packages that build their own fallbacks.
const (
	DefaultBaseURL          = "http://localhost:8000"
	DefaultTimeout          = 2 * time.Minute
	DefaultPollInterval     = 5 * time.Second
	DefaultMaxRetries       = 2
	DefaultMobileBreakpoint = 100
	DefaultWordWrap         = 80
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete twin configuration.
type Config struct {
	Version   int             `toml:"version" json:"version" yaml:"version"`
	Backend   BackendConfig   `toml:"backend" json:"backend" yaml:"backend"`
	Dashboard DashboardConfig `toml:"dashboard" json:"dashboard" yaml:"dashboard"`
	UI        UIConfig        `toml:"ui" json:"ui" yaml:"ui"`
	Upload    UploadConfig    `toml:"upload" json:"upload" yaml:"upload"`
	Logging   LoggingConfig   `toml:"logging" json:"logging" yaml:"logging"`
}

// BackendConfig holds the knowledge twin API settings.
// BaseURL is the single endpoint every request goes to.
type BackendConfig struct {
	BaseURL string   `toml:"base_url" json:"base_url" yaml:"base_url"`
	Timeout Duration `toml:"timeout" json:"timeout" yaml:"timeout"`
}

// DashboardConfig controls the background stats poller.
type DashboardConfig struct {
	PollInterval Duration `toml:"poll_interval" json:"poll_interval" yaml:"poll_interval"`
	MaxRetries   int      `toml:"max_retries" json:"max_retries" yaml:"max_retries"`
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	// MobileBreakpoint is the terminal width (columns) below which the
	// compact layout is used and the sidebar is collapsed.
	MobileBreakpoint int    `toml:"mobile_breakpoint" json:"mobile_breakpoint" yaml:"mobile_breakpoint"`
	Theme            string `toml:"theme" json:"theme" yaml:"theme"` // auto, dark, light
	RenderMarkdown   bool   `toml:"render_markdown" json:"render_markdown" yaml:"render_markdown"`
	ShowRightPanel   bool   `toml:"show_right_panel" json:"show_right_panel" yaml:"show_right_panel"`
	WordWrap         int    `toml:"word_wrap" json:"word_wrap" yaml:"word_wrap"`
}

// UploadConfig holds upload settings.
type UploadConfig struct {
	// InboxDir, when set, is watched and new files are uploaded automatically.
	InboxDir string `toml:"inbox_dir" json:"inbox_dir" yaml:"inbox_dir"`
	// Accept lists extensions (".pdf") and mime globs ("image/*") offered by the file prompt.
	Accept []string `toml:"accept" json:"accept" yaml:"accept"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string `toml:"level" json:"level" yaml:"level"`    // debug, info, warn, error
	Format string `toml:"format" json:"format" yaml:"format"` // text, json
	File   string `toml:"file" json:"file" yaml:"file"`       // empty = ~/.twin/twin.log for the TUI
}

// Duration is a time.Duration that reads and writes as "5s" in every format.
type Duration struct {
	time.Duration
}

// D wraps a time.Duration.
func D(d time.Duration) Duration { return Duration{d} }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Backend: BackendConfig{
			BaseURL: DefaultBaseURL,
			Timeout: D(DefaultTimeout),
		},
		Dashboard: DashboardConfig{
			PollInterval: D(DefaultPollInterval),
			MaxRetries:   DefaultMaxRetries,
		},
		UI: UIConfig{
			MobileBreakpoint: DefaultMobileBreakpoint,
			Theme:            "auto",
			RenderMarkdown:   true,
			ShowRightPanel:   true,
			WordWrap:         DefaultWordWrap,
		},
		Upload: UploadConfig{
			Accept: []string{".pdf", ".txt", ".md", "image/*", "video/*", "audio/*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the twin configuration directory path.
// TWIN_HOME overrides the default of ~/.twin.
func ConfigDir() (string, error) {
	if dir := os.Getenv("TWIN_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".twin"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	return configFile("config.toml")
}

func configFile(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// candidatePaths lists config files in lookup order.
func candidatePaths() []string {
	var paths []string
	for _, name := range []string{"config.toml", "config.yaml", "config.yml", "config.json"} {
		if p, err := configFile(name); err == nil {
			paths = append(paths, p)
		}
	}
	return paths
}

// FoundPath returns the config file Load would read, or "" if none exists.
func FoundPath() string {
	for _, p := range candidatePaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads KEY=VALUE pairs from .env files into the process
// environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load %s: %w", strings.Join(existing, ", "), err)
	}
	return nil
}

// Load loads configuration from the first config file found and falls back
// to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	if p := FoundPath(); p != "" {
		return LoadFromPath(p)
	}
	cfg := Default()
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. The format is
// chosen by extension (.toml, .yaml/.yml, .json).
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(cfg, path); err != nil {
		return nil, err
	}
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile decodes path onto the defaults without applying environment
// overrides. It is used when the result will be written back.
func ReadFile(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.Migrate(); err != nil {
		return nil, fmt.Errorf("config migration failed: %w", err)
	}
	cfg.SetDefaults()
	return cfg, nil
}

func finish(cfg *Config) error {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	if err := cfg.Migrate(); err != nil {
		return fmt.Errorf("config migration failed: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func decodeFile(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(cfg, path)
	case ".yaml", ".yml":
		return LoadYAML(cfg, path)
	case ".json":
		return LoadJSON(cfg, path)
	default:
		return fmt.Errorf("unsupported config format: %s", path)
	}
}

// LoadTOML decodes a TOML file onto cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadYAML decodes a YAML file onto cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file onto cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the config file currently in use, or to
// ~/.twin/config.toml when there is none.
func Save(cfg *Config) error {
	path := FoundPath()
	if path == "" {
		p, err := ConfigPathTOML()
		if err != nil {
			return err
		}
		path = p
	}
	return SaveTo(cfg, path)
}

// SaveTo writes cfg to path in the format implied by its extension.
// Files are written atomically with 0600 permissions.
func SaveTo(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var buf bytes.Buffer
		buf.WriteString("# twin configuration file\n")
		buf.WriteString("# Generated by twin - edit with care\n\n")
		if err = toml.NewEncoder(&buf).Encode(cfg); err == nil {
			data = buf.Bytes()
		}
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	default:
		return fmt.Errorf("unsupported config format: %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Backend.BaseURL); err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "backend.base_url",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", c.Backend.BaseURL),
		})
	}
	if c.Backend.Timeout.Duration < 0 {
		errs = append(errs, ValidationError{Field: "backend.timeout", Message: "must not be negative"})
	}

	if c.Dashboard.PollInterval.Duration < time.Second {
		errs = append(errs, ValidationError{
			Field:   "dashboard.poll_interval",
			Message: fmt.Sprintf("must be at least 1s, got %s", c.Dashboard.PollInterval),
		})
	}
	if c.Dashboard.MaxRetries < 0 || c.Dashboard.MaxRetries > 10 {
		errs = append(errs, ValidationError{Field: "dashboard.max_retries", Message: "must be between 0 and 10"})
	}

	if c.UI.MobileBreakpoint < 40 {
		errs = append(errs, ValidationError{
			Field:   "ui.mobile_breakpoint",
			Message: fmt.Sprintf("must be at least 40 columns, got %d", c.UI.MobileBreakpoint),
		})
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{Field: "ui.theme", Message: "must be auto, dark or light"})
	}
	if c.UI.WordWrap < 20 {
		errs = append(errs, ValidationError{Field: "ui.word_wrap", Message: "must be at least 20"})
	}

	for _, a := range c.Upload.Accept {
		if strings.TrimSpace(a) == "" {
			errs = append(errs, ValidationError{Field: "upload.accept", Message: "entries must not be empty"})
			break
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{Field: "logging.level", Message: "must be debug, info, warn or error"})
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{Field: "logging.format", Message: "must be text or json"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = d.Backend.BaseURL
	}
	if c.Backend.Timeout.Duration == 0 {
		c.Backend.Timeout = d.Backend.Timeout
	}
	if c.Dashboard.PollInterval.Duration == 0 {
		c.Dashboard.PollInterval = d.Dashboard.PollInterval
	}
	if c.UI.MobileBreakpoint == 0 {
		c.UI.MobileBreakpoint = d.UI.MobileBreakpoint
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.WordWrap == 0 {
		c.UI.WordWrap = d.UI.WordWrap
	}
	if len(c.Upload.Accept) == 0 {
		c.Upload.Accept = d.Upload.Accept
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

// Migrate upgrades configs written by older versions.
func (c *Config) Migrate() error {
	if c.Version > CurrentVersion {
		return fmt.Errorf("config version %d is newer than supported version %d", c.Version, CurrentVersion)
	}
	// Version 0 files stored the URL with a trailing slash, which doubled
	// the separator when endpoint paths were appended.
	c.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(c.Backend.BaseURL), "/")
	c.Version = CurrentVersion
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// envOverrides lists every environment variable twin reads.
// Empty or zero values mean "not set".
type envOverrides struct {
	APIURL           string        `env:"TWIN_API_URL"`
	Timeout          time.Duration `env:"TWIN_TIMEOUT"`
	PollInterval     time.Duration `env:"TWIN_POLL_INTERVAL"`
	MobileBreakpoint int           `env:"TWIN_MOBILE_BREAKPOINT"`
	Theme            string        `env:"TWIN_THEME"`
	InboxDir         string        `env:"TWIN_INBOX_DIR"`
	LogLevel         string        `env:"TWIN_LOG_LEVEL"`
	LogFile          string        `env:"TWIN_LOG_FILE"`
}

// ApplyEnvOverrides applies TWIN_* environment variables on top of cfg.
func (c *Config) ApplyEnvOverrides() error {
	return c.ApplyEnvFrom(nil)
}

// ApplyEnvFrom is ApplyEnvOverrides reading from environ instead of the
// process environment. A nil map means the process environment.
func (c *Config) ApplyEnvFrom(environ map[string]string) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return err
	}

	if o.APIURL != "" {
		c.Backend.BaseURL = o.APIURL
	}
	if o.Timeout > 0 {
		c.Backend.Timeout = D(o.Timeout)
	}
	if o.PollInterval > 0 {
		c.Dashboard.PollInterval = D(o.PollInterval)
	}
	if o.MobileBreakpoint > 0 {
		c.UI.MobileBreakpoint = o.MobileBreakpoint
	}
	if o.Theme != "" {
		c.UI.Theme = strings.ToLower(o.Theme)
	}
	if o.InboxDir != "" {
		c.Upload.InboxDir = o.InboxDir
	}
	if o.LogLevel != "" {
		c.Logging.Level = strings.ToLower(o.LogLevel)
	}
	if o.LogFile != "" {
		c.Logging.File = o.LogFile
	}
	return nil
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "backend.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.theme").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct || field.Type() == reflect.TypeOf(Duration{}) {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		if tu, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return tu.UnmarshalText([]byte(strVal))
		}
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strings.ToLower(strVal))
			if err != nil {
				switch strings.ToLower(strVal) {
				case "yes", "on":
					boolVal = true
				case "no", "off":
					boolVal = false
				default:
					return fmt.Errorf("invalid boolean value: %q", strVal)
				}
			}
			field.SetBool(boolVal)
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, item := range strings.Split(strVal, ",") {
					if item = strings.TrimSpace(item); item != "" {
						items = append(items, item)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	if d, ok := value.(time.Duration); ok && field.Type() == reflect.TypeOf(Duration{}) {
		field.Set(reflect.ValueOf(D(d)))
		return nil
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String && field.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation, using the
// TOML names.
func GetAllKeys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(Config{}), "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("toml"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct && f.Type != reflect.TypeOf(Duration{}) {
			collectKeys(f.Type, name, keys)
			continue
		}
		*keys = append(*keys, name)
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Upload.Accept = append([]string(nil), c.Upload.Accept...)
	return &clone
}

// String returns an indented JSON representation for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
