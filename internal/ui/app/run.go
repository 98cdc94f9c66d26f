// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twin-tui/internal/api"
	"github.com/jeranaias/twin-tui/internal/config"
	"github.com/jeranaias/twin-tui/internal/dashboard"
	"github.com/jeranaias/twin-tui/internal/inbox"
	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/session"
	"github.com/jeranaias/twin-tui/internal/ui/chat"
)

// RunOptions configures Run.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string
	Version    string
	Logger     *slog.Logger

	// Client overrides the API client built from Config.
	Client *api.Client

	// InboxDir overrides Config.Upload.InboxDir.
	InboxDir string
}

// =============================================================================
// PROGRAM REFERENCE
// =============================================================================

// programRef hands the running program to background goroutines.
// Sends are always made from a fresh goroutine: Program.Send blocks until
// the event loop reads it, and callbacks can fire from inside Update.
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) set(p *tea.Program) {
	r.mu.Lock()
	r.p = p
	r.mu.Unlock()
}

func (r *programRef) send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p == nil {
		return
	}
	go p.Send(msg)
}

// =============================================================================
// RUN
// =============================================================================

// Run starts the full-screen client and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := opts.Client
	if client == nil {
		client = api.NewClient(api.ClientConfig{
			BaseURL:    cfg.Backend.BaseURL,
			Timeout:    cfg.Backend.Timeout.Duration,
			MaxRetries: cfg.Dashboard.MaxRetries,
			Logger:     logger,
		})
	}

	ref := &programRef{}
	ctrl := session.New(client,
		session.WithBaseURL(client.BaseURL()),
		session.WithLogger(logger),
		session.WithOnChange(func() { ref.send(chat.LogChangedMsg{}) }),
	)
	poller := dashboard.New(client, dashboard.Options{
		Interval: cfg.Dashboard.PollInterval.Duration,
		OnUpdate: func(*model.Snapshot) { ref.send(DashboardMsg{}) },
		OnError:  func(int) { ref.send(DashboardMsg{}) },
		Logger:   logger,
	})

	m := New(ctrl, poller, Options{
		Config:     cfg,
		ConfigPath: opts.ConfigPath,
		Version:    opts.Version,
		Logger:     logger,
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(runCtx),
	)
	ref.set(p)

	stop := poller.Start(runCtx)

	dir := opts.InboxDir
	if dir == "" {
		dir = cfg.Upload.InboxDir
	}
	if dir != "" {
		w, err := inbox.New(ctrl, inbox.Options{
			Dir:    dir,
			Accept: cfg.Upload.Accept,
			OnSubmit: func(path string, out session.Outcome, err error) {
				ref.send(InboxMsg{Path: path, Outcome: out, Err: err})
			},
			Logger: logger,
		})
		if err != nil {
			logger.Warn("inbox disabled", "dir", dir, "error", err)
		} else {
			defer w.Close()
			go func() {
				if err := w.Run(runCtx); err != nil && runCtx.Err() == nil {
					logger.Warn("inbox stopped", "error", err)
				}
			}()
			logger.Info("watching inbox", "dir", w.Dir())
		}
	}

	_, err := p.Run()

	// Stop background work only after the event loop has exited so that a
	// callback blocked in Send is released by the program shutting down.
	stop()
	cancel()
	ctrl.Close()
	ref.set(nil)

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
