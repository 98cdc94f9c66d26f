// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package inbox

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/twin-tui/internal/logging"
	"github.com/jeranaias/twin-tui/internal/session"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
	busy  int // calls to answer with ErrBusy before accepting
}

func (r *recorder) SubmitFile(ctx context.Context, path string) (session.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy > 0 {
		r.busy--
		return session.Outcome{}, session.ErrBusy
	}
	r.paths = append(r.paths, path)
	return session.Outcome{}, nil
}

func (r *recorder) submitted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func fastOptions(dir string) Options {
	return Options{
		Dir:       dir,
		Debounce:  40 * time.Millisecond,
		Spacing:   time.Millisecond,
		BusyRetry: 10 * time.Millisecond,
		Logger:    logging.Discard(),
	}
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		name   string
		accept []string
		want   bool
	}{
		{"report.pdf", DefaultAccept, true},
		{"REPORT.PDF", DefaultAccept, true},
		{"notes.txt", DefaultAccept, true},
		{"cat.png", DefaultAccept, true},
		{"clip.mp4", DefaultAccept, true},
		{"song.mp3", DefaultAccept, true},
		{"archive.zip", DefaultAccept, false},
		{"script.sh", DefaultAccept, false},
		{"report.pdf", []string{"application/pdf"}, true},
		{"cat.png", []string{".pdf"}, false},
		{"anything.bin", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Accepts(tt.name, tt.accept))
		})
	}
}

func TestIgnored(t *testing.T) {
	assert.True(t, ignored("/in/.hidden.pdf"))
	assert.True(t, ignored("/in/report.pdf~"))
	assert.True(t, ignored("/in/report.pdf.crdownload"))
	assert.False(t, ignored("/in/report.pdf"))
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := New(&recorder{}, Options{})
	assert.Error(t, err)
}

func TestNew_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "inbox", "nested")
	w, err := New(&recorder{}, fastOptions(dir))
	require.NoError(t, err)
	defer w.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, w.Dir())
}

func TestWatcher_SubmitsNewFiles(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	w, err := New(rec, fastOptions(dir))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- w.Run(ctx) }()

	pdf := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.7"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.zip"), []byte("PK"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.pdf"), []byte("x"), 0600))

	require.Eventually(t, func() bool { return len(rec.submitted()) == 1 }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{pdf}, rec.submitted())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.NoError(t, w.Close(), "close is idempotent")
}

func TestWatcher_RetriesWhileBusy(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{busy: 3}
	var mu sync.Mutex
	var results []error
	opts := fastOptions(dir)
	opts.OnSubmit = func(path string, out session.Outcome, err error) {
		mu.Lock()
		results = append(results, err)
		mu.Unlock()
	}
	w, err := New(rec, opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cat.png"), []byte("png"), 0600))
	require.Eventually(t, func() bool { return len(rec.submitted()) == 1 }, 3*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []error{nil}, results, "busy attempts are not reported")
}
