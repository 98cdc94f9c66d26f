// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockbackend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeranaias/twin-tui/internal/model"
)

// chunkSize is the number of bytes per pretend index chunk.
const chunkSize = 1000

// historyLimit caps recent_history in /dashboard.
const historyLimit = 10

const startKey = "start"

// AnswerFunc produces the reply to a question. active is the most recently
// uploaded document title, or "".
type AnswerFunc func(question string, history []model.HistoryEntry, active string) string

// Options configures the fake backend.
type Options struct {
	// Latency is added before every response.
	Latency time.Duration

	// Answer overrides the canned reply.
	Answer AnswerFunc

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Server is the in-memory backend. It is safe for concurrent use.
type Server struct {
	opts Options

	mu       sync.Mutex
	files    []model.FileDescriptor
	history  []model.ActivityItem
	queries  int
	latency  []time.Duration
	nextID   int
	active   string
	failWith int
}

// New creates a server with an empty knowledge base.
func New(opts Options) *Server {
	if opts.Answer == nil {
		opts.Answer = defaultAnswer
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{opts: opts, nextID: 1}
}

// FailWith makes every endpoint answer with the given status until called
// again with 0.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// Queries returns the number of /query calls answered.
func (s *Server) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}

// =============================================================================
// SERVER
// =============================================================================

// Handler returns the gin router serving the backend routes.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.delay(), s.failure())

	router.POST("/query", s.handleQuery)
	router.POST("/upload", s.handleUpload)
	router.DELETE("/clear", s.handleClear)
	router.GET("/dashboard", s.handleDashboard)
	router.GET("/files", s.handleFiles)

	return router
}

// StartOpts holds configuration for a standalone server.
type StartOpts struct {
	Addr string
	Out  io.Writer
}

// Start serves on opts.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, opts StartOpts) error {
	if opts.Addr == "" {
		opts.Addr = ":8000"
	}

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("mock backend: %w", err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Mock backend listening on http://%s\n", ln.Addr())
	}

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mock backend: %w", err)
	}
	return nil
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) delay() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(startKey, time.Now())
		if s.opts.Latency <= 0 {
			c.Next()
			return
		}
		select {
		case <-time.After(s.opts.Latency):
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}

func (s *Server) failure() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		status := s.failWith
		s.mu.Unlock()
		if status != 0 {
			c.AbortWithStatusJSON(status, gin.H{"detail": "simulated failure"})
			return
		}
		c.Next()
	}
}
