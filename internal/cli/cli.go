// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/twin-tui/internal/api"
	"github.com/jeranaias/twin-tui/internal/config"
	"github.com/jeranaias/twin-tui/internal/logging"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// globals holds the persistent flags and what they resolve to.
type globals struct {
	configPath string
	apiURL     string
	debug      bool

	cfg     *config.Config
	logger  *slog.Logger
	closeLn func() error
}

// load resolves the configuration once per invocation: .env, then the
// config file, then environment variables, then flags.
func (g *globals) load() (*config.Config, error) {
	if g.cfg != nil {
		return g.cfg, nil
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFromPath(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if g.apiURL != "" {
		cfg.Backend.BaseURL = g.apiURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--api-url: %w", err)
		}
	}
	if g.debug {
		cfg.Logging.Level = "debug"
	}
	config.SetGlobal(cfg)
	g.cfg = cfg
	return cfg, nil
}

// setupLogging installs a stderr logger for line-mode commands. Warnings
// only, unless --debug or the config asks for more.
func (g *globals) setupLogging(w io.Writer) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	level := cfg.Logging.Level
	if !g.debug && logging.ParseLevel(level) < slog.LevelWarn {
		level = "warn"
	}
	logger, closer, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
		Writer: w,
	})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	slog.SetDefault(logger)
	g.logger = logger
	g.closeLn = closer
	return nil
}

func (g *globals) close() {
	if g.closeLn != nil {
		_ = g.closeLn()
		g.closeLn = nil
	}
}

// client builds an API client from the resolved configuration.
func (g *globals) client() (*api.Client, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, err
	}
	return api.NewClient(api.ClientConfig{
		BaseURL:    cfg.Backend.BaseURL,
		Timeout:    cfg.Backend.Timeout.Duration,
		MaxRetries: cfg.Dashboard.MaxRetries,
		UserAgent:  "twin-tui/" + Version,
		Logger:     g.logger,
	}), nil
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the twin command tree. Running it without a
// subcommand starts the TUI.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "twin",
		Short: "Knowledge Twin - chat with your documents from the terminal",
		Long: "twin is a terminal client for a Knowledge Twin backend. It uploads\n" +
			"documents and media into the twin's knowledge base and answers\n" +
			"questions about them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			g.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "path to a config file (toml, yaml or json)")
	flags.StringVar(&g.apiURL, "api-url", "", "backend base URL (overrides config and TWIN_API_URL)")
	flags.BoolVar(&g.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newTUICmd(g))
	cmd.AddCommand(newAskCmd(g))
	cmd.AddCommand(newChatCmd(g))
	cmd.AddCommand(newUploadCmd(g))
	cmd.AddCommand(newClearCmd(g))
	cmd.AddCommand(newDashboardCmd(g))
	cmd.AddCommand(newFilesCmd(g))
	cmd.AddCommand(newConfigCmd(g))
	cmd.AddCommand(newMockBackendCmd(g))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "twin %s (commit: %s, built: %s)\n", Version, GitCommit, BuildDate)
		},
	}
}

// Execute runs cmd and returns the process exit code.
func Execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), RenderError(err.Error()))
		return 1
	}
	return 0
}

// Main is the program entry point.
func Main() {
	os.Exit(Execute(NewRootCmd()))
}
