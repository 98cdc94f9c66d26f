// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jeranaias/twin-tui/internal/api"
	"github.com/jeranaias/twin-tui/internal/model"
)

// =============================================================================
// FIXED TEXTS
// =============================================================================

const (
	// Greeting seeds every new session.
	Greeting = "# Hello!\nI'm your **Knowledge Twin**. I can help you analyze documents, generate insights, or just chat. How can I assist you today?"

	// ClearNotice replaces the log after Clear.
	ClearNotice = "🧹 Knowledge base cleared! Ready for new documents."

	// UploadFailedNotice replaces a placeholder whose upload failed.
	UploadFailedNotice = "⚠️ **Upload Failed:** Could not process the file."

	queryErrorFormat     = "⚠️ **Error:** I couldn't reach the knowledge twin backend. Is it running at %s?"
	uploadingFormat      = "📁 Uploading **%s**..."
	uploadFallbackFormat = "Successfully uploaded %s."
)

// QueryErrorNotice is the notice appended when a question fails.
func QueryErrorNotice(baseURL string) string {
	return fmt.Sprintf(queryErrorFormat, baseURL)
}

// UploadingNotice is the placeholder text shown while name uploads.
func UploadingNotice(name string) string {
	return fmt.Sprintf(uploadingFormat, name)
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmpty is returned for blank text or an empty path.
	ErrEmpty = errors.New("nothing to submit")

	// ErrBusy is returned while another submission is in flight.
	ErrBusy = errors.New("a request is already in flight")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session closed")
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Backend is the part of the API client the controller needs.
// *api.Client satisfies it.
type Backend interface {
	SendQuery(ctx context.Context, question string, history []model.HistoryEntry) (string, error)
	UploadPath(ctx context.Context, path string) (*api.UploadResult, error)
	ClearSession(ctx context.Context) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithOnChange registers fn to run after every log mutation. It is called
// without the controller lock held and may run on any goroutine.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithBaseURL sets the backend URL quoted in the query error notice.
func WithBaseURL(url string) Option {
	return func(c *Controller) { c.baseURL = url }
}

// WithLogger overrides the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller is one chat session. It is safe for concurrent use.
type Controller struct {
	backend  Backend
	baseURL  string
	onChange func()
	log      *slog.Logger

	messages *model.Log

	mu       sync.Mutex
	active   uint64 // in-flight op id; 0 when idle
	nextOp   uint64
	inflight map[uint64]context.CancelFunc
	closed   bool
}

// New creates a session seeded with the greeting.
func New(backend Backend, opts ...Option) *Controller {
	c := &Controller{
		backend:  backend,
		baseURL:  api.DefaultBaseURL,
		log:      slog.Default(),
		messages: model.NewLog(model.NewSystemMessage(Greeting)),
		inflight: make(map[uint64]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "session")
	return c
}

// Messages returns a copy of the log in display order.
func (c *Controller) Messages() []*model.Message {
	return c.messages.Messages()
}

// Len returns the number of log entries.
func (c *Controller) Len() int {
	return c.messages.Len()
}

// ActiveDocument returns the most recently uploaded file card, or nil.
func (c *Controller) ActiveDocument() *model.Message {
	return c.messages.LastFile()
}

// IsLoading reports whether a submission is in flight.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != 0
}

// Outcome describes what a resolved submission did to the log.
type Outcome struct {
	// Added holds the messages written when the request settled.
	Added []*model.Message

	// Err is the backend failure, already turned into a notice.
	Err error

	// Stale is set when the log was cleared or the session closed while
	// the request was in flight; nothing was written.
	Stale bool
}

// begin claims the in-flight slot and runs add while still holding it,
// so a concurrent Clear lands either before or after the whole step.
func (c *Controller) begin(add func(op uint64)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.active != 0 {
		return ErrBusy
	}
	c.nextOp++
	c.active = c.nextOp
	add(c.active)
	return nil
}

// track derives a cancelable context for op. ok is false when op was
// abandoned by Clear or Close before it started.
func (c *Controller) track(ctx context.Context, op uint64) (context.Context, func(), bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.active != op {
		return nil, nil, false
	}
	ctx, cancel := context.WithCancel(ctx)
	c.inflight[op] = cancel
	return ctx, cancel, true
}

// finish releases the in-flight slot and reports whether the session was
// closed meanwhile.
func (c *Controller) finish(op uint64) (closed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cancel, ok := c.inflight[op]; ok {
		cancel()
		delete(c.inflight, op)
	}
	if c.active == op {
		c.active = 0
	}
	return c.closed
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// =============================================================================
// TEXT
// =============================================================================

// PendingQuery is a question whose user message is already in the log.
type PendingQuery struct {
	c        *Controller
	op       uint64
	gen      uint64
	question *model.Message
	history  []model.HistoryEntry

	once    sync.Once
	outcome Outcome
}

// Question returns the user message that was appended.
func (p *PendingQuery) Question() *model.Message {
	return p.question
}

// BeginText appends the user's message and claims the in-flight slot.
func (c *Controller) BeginText(text string) (*PendingQuery, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmpty
	}
	var p *PendingQuery
	err := c.begin(func(op uint64) {
		msg := model.NewUserMessage(text)
		p = &PendingQuery{
			c:        c,
			op:       op,
			gen:      c.messages.Generation(),
			question: msg,
			history:  c.messages.History(""),
		}
		c.messages.Append(msg)
	})
	if err != nil {
		return nil, err
	}
	c.changed()
	return p, nil
}

// Resolve sends the question and appends the answer or the error notice.
// Calling it again returns the first outcome.
func (p *PendingQuery) Resolve(ctx context.Context) Outcome {
	p.once.Do(func() { p.outcome = p.resolve(ctx) })
	return p.outcome
}

func (p *PendingQuery) resolve(ctx context.Context) Outcome {
	c := p.c
	reqCtx, cancel, ok := c.track(ctx, p.op)
	if !ok {
		c.finish(p.op)
		return Outcome{Stale: true}
	}
	defer cancel()

	answer, err := c.backend.SendQuery(reqCtx, p.question.Content, p.history)
	if c.finish(p.op) {
		return Outcome{Err: err, Stale: true}
	}

	var reply *model.Message
	if err != nil {
		c.log.Warn("query failed", "error", err)
		reply = model.NewSystemMessage(QueryErrorNotice(c.baseURL))
	} else {
		reply = model.NewAssistantMessage(answer)
	}

	if !c.messages.AppendIf(p.gen, reply) {
		c.log.Debug("dropping reply to cleared session")
		return Outcome{Err: err, Stale: true}
	}
	c.changed()
	return Outcome{Added: []*model.Message{reply}, Err: err}
}

// SubmitText sends text and blocks until the reply is in the log.
func (c *Controller) SubmitText(ctx context.Context, text string) (Outcome, error) {
	p, err := c.BeginText(text)
	if err != nil {
		return Outcome{}, err
	}
	return p.Resolve(ctx), nil
}

// =============================================================================
// FILES
// =============================================================================

// PendingUpload is a file whose placeholder is already in the log.
type PendingUpload struct {
	c           *Controller
	op          uint64
	path        string
	name        string
	placeholder *model.Message

	once    sync.Once
	outcome Outcome
}

// Name returns the uploaded file's base name.
func (p *PendingUpload) Name() string {
	return p.name
}

// Placeholder returns the pending message standing in for the upload.
func (p *PendingUpload) Placeholder() *model.Message {
	return p.placeholder
}

// BeginFile appends the uploading placeholder and claims the in-flight slot.
func (c *Controller) BeginFile(path string) (*PendingUpload, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrEmpty
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	name := filepath.Base(path)

	var p *PendingUpload
	err := c.begin(func(op uint64) {
		p = &PendingUpload{
			c:           c,
			op:          op,
			path:        path,
			name:        name,
			placeholder: model.NewPendingMessage(UploadingNotice(name)),
		}
		c.messages.Append(p.placeholder)
	})
	if err != nil {
		return nil, err
	}
	c.changed()
	return p, nil
}

// Resolve uploads the file and settles the placeholder in place.
// Calling it again returns the first outcome.
func (p *PendingUpload) Resolve(ctx context.Context) Outcome {
	p.once.Do(func() { p.outcome = p.resolve(ctx) })
	return p.outcome
}

func (p *PendingUpload) resolve(ctx context.Context) Outcome {
	c := p.c
	reqCtx, cancel, ok := c.track(ctx, p.op)
	if !ok {
		c.finish(p.op)
		return Outcome{Stale: true}
	}
	defer cancel()

	res, err := c.backend.UploadPath(reqCtx, p.path)
	if c.finish(p.op) {
		return Outcome{Err: err, Stale: true}
	}

	var added []*model.Message
	if err != nil {
		c.log.Warn("upload failed", "file", p.name, "error", err)
		added = []*model.Message{model.NewSystemMessage(UploadFailedNotice)}
	} else {
		summary := res.Summary
		if strings.TrimSpace(summary) == "" {
			summary = fmt.Sprintf(uploadFallbackFormat, p.name)
		}
		added = []*model.Message{
			model.NewFileMessage(p.name, res.Mime, res.IsMedia, p.path),
			model.NewAssistantMessage(summary),
		}
	}

	if settleErr := c.messages.Settle(p.placeholder.ID, added...); settleErr != nil {
		c.log.Debug("dropping upload result for cleared session", "file", p.name)
		return Outcome{Err: err, Stale: true}
	}
	c.changed()
	return Outcome{Added: added, Err: err}
}

// SubmitFile uploads path and blocks until the placeholder is settled.
func (c *Controller) SubmitFile(ctx context.Context, path string) (Outcome, error) {
	p, err := c.BeginFile(path)
	if err != nil {
		return Outcome{}, err
	}
	return p.Resolve(ctx), nil
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Clear asks the backend to drop its knowledge base and resets the log to
// the clear notice. Backend errors are logged and otherwise ignored.
// Requests still in flight are cancelled and their results dropped.
func (c *Controller) Clear(ctx context.Context) {
	if err := c.backend.ClearSession(ctx); err != nil {
		c.log.Warn("clear failed", "error", err)
	}

	c.mu.Lock()
	c.abandonLocked()
	c.messages.Reset(model.NewSystemMessage(ClearNotice))
	c.mu.Unlock()

	c.changed()
}

// Close cancels every in-flight request. No further changes are made to
// the log afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.abandonLocked()
}

func (c *Controller) abandonLocked() {
	for op, cancel := range c.inflight {
		cancel()
		delete(c.inflight, op)
	}
	c.active = 0
}
