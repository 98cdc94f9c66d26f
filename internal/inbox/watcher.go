// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package inbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/jeranaias/twin-tui/internal/session"
)

const (
	DefaultDebounce   = 500 * time.Millisecond
	DefaultSpacing    = 2 * time.Second
	DefaultBusyRetry  = time.Second
	defaultQueueDepth = 64
)

// Submitter uploads a file. *session.Controller satisfies it.
type Submitter interface {
	SubmitFile(ctx context.Context, path string) (session.Outcome, error)
}

// Options configures a Watcher.
type Options struct {
	// Dir is the directory to watch. It is created if missing.
	Dir string

	// Accept filters files; see Accepts. Empty means DefaultAccept.
	Accept []string

	// Debounce is how long a file must stay unchanged before upload.
	Debounce time.Duration

	// Spacing is the minimum time between uploads.
	Spacing time.Duration

	// BusyRetry is the wait before retrying while the session is busy.
	BusyRetry time.Duration

	// OnSubmit runs after each upload attempt.
	OnSubmit func(path string, out session.Outcome, err error)

	Logger *slog.Logger
}

// Watcher uploads files that land in a directory.
type Watcher struct {
	sub     Submitter
	opts    Options
	watcher *fsnotify.Watcher
	limiter *rate.Limiter
	log     *slog.Logger
	queue   chan string

	mu      sync.Mutex
	pending map[string]time.Time

	closeOnce sync.Once
}

// New starts watching opts.Dir. Files already present are left alone.
func New(sub Submitter, opts Options) (*Watcher, error) {
	if opts.Dir == "" {
		return nil, errors.New("inbox: directory is required")
	}
	if len(opts.Accept) == 0 {
		opts.Accept = DefaultAccept
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Spacing <= 0 {
		opts.Spacing = DefaultSpacing
	}
	if opts.BusyRetry <= 0 {
		opts.BusyRetry = DefaultBusyRetry
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(opts.Dir, 0700); err != nil {
		return nil, fmt.Errorf("inbox: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("inbox: %w", err)
	}
	if err := fsw.Add(opts.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("inbox: watch %s: %w", opts.Dir, err)
	}

	return &Watcher{
		sub:     sub,
		opts:    opts,
		watcher: fsw,
		limiter: rate.NewLimiter(rate.Every(opts.Spacing), 1),
		log:     logger.With("component", "inbox", "dir", opts.Dir),
		queue:   make(chan string, defaultQueueDepth),
		pending: make(map[string]time.Time),
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.opts.Dir
}

// Run processes events until ctx ends, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.submitLoop(ctx)
	}()
	defer wg.Wait()

	ticker := time.NewTicker(w.opts.Debounce / 4)
	defer ticker.Stop()

	w.log.Debug("inbox watching")
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.touch(event.Name)
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.forget(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() { err = w.watcher.Close() })
	return err
}

func (w *Watcher) touch(path string) {
	if ignored(path) || !Accepts(path, w.opts.Accept) {
		return
	}
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		return
	}
	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) forget(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	w.mu.Unlock()
}

// flush queues files that have been quiet for the debounce period.
func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()
	var ready []string

	w.mu.Lock()
	for path, changed := range w.pending {
		if now.Sub(changed) >= w.opts.Debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		select {
		case w.queue <- path:
		case <-ctx.Done():
			return
		default:
			w.log.Warn("inbox queue full, skipping", "file", path)
		}
	}
}

func (w *Watcher) submitLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-w.queue:
			if !w.submit(ctx, path) {
				return
			}
		}
	}
}

// submit uploads path, waiting out a busy session. It returns false when
// the loop should stop.
func (w *Watcher) submit(ctx context.Context, path string) bool {
	if err := w.limiter.Wait(ctx); err != nil {
		return false
	}
	for {
		out, err := w.sub.SubmitFile(ctx, path)
		switch {
		case errors.Is(err, session.ErrBusy):
			select {
			case <-time.After(w.opts.BusyRetry):
				continue
			case <-ctx.Done():
				return false
			}
		case errors.Is(err, session.ErrClosed):
			return false
		}

		if err == nil && out.Err != nil {
			w.log.Warn("inbox upload failed", "file", path, "error", out.Err)
		} else {
			w.log.Info("inbox upload", "file", path)
		}
		if w.opts.OnSubmit != nil {
			w.opts.OnSubmit(path, out, err)
		}
		return true
	}
}
