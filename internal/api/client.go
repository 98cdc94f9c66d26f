// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/twin-tui/internal/model"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	DefaultBaseURL    = "http://localhost:8000"
	DefaultTimeout    = 2 * time.Minute
	DefaultUserAgent  = "twin-tui"
	DefaultRetryDelay = 250 * time.Millisecond
)

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend root (default: http://localhost:8000)
	BaseURL string

	// Timeout bounds every request. Queries and uploads run an LLM on the
	// server, so this is generous (default: 2m).
	Timeout time.Duration

	// UserAgent header value (default: "twin-tui")
	UserAgent string

	// MaxRetries is the number of extra dashboard attempts per fetch.
	// Other calls are never retried.
	MaxRetries int

	// RetryDelay is the base backoff between dashboard attempts (default: 250ms)
	RetryDelay time.Duration

	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client

	// Logger receives request debug logs (default: slog.Default()).
	Logger *slog.Logger
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the knowledge twin backend over HTTP.
//
// The Client is safe for concurrent use.
//
// Example:
//
//	client := api.NewClient(api.ClientConfig{BaseURL: "http://localhost:8000"})
//	answer, err := client.SendQuery(ctx, "What is in the report?", nil)
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client, filling in defaults for zero values.
func NewClient(config ClientConfig) *Client {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		log:        logger.With("component", "api"),
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// CHAT
// =============================================================================

// SendQuery asks the backend a question with the prior conversation and
// returns the answer text.
func (c *Client) SendQuery(ctx context.Context, question string, history []HistoryEntry) (string, error) {
	if history == nil {
		history = []HistoryEntry{}
	}
	body, err := json.Marshal(QueryRequest{Question: question, History: history})
	if err != nil {
		return "", invalidResponse("failed to marshal request", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/query", bytes.NewReader(body), "application/json")
	if err != nil {
		return "", err
	}
	defer drainAndClose(resp.Body)

	var result QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", invalidResponse("failed to decode response", err)
	}
	if result.Answer == nil {
		return "", invalidResponse("response has no answer", nil)
	}
	return *result.Answer, nil
}

// ClearSession asks the backend to drop its knowledge base. The response
// body is ignored.
func (c *Client) ClearSession(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodDelete, "/clear", nil, "")
	if err != nil {
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// =============================================================================
// UPLOAD
// =============================================================================

// UploadPath uploads the file at path under its base name.
func (c *Client) UploadPath(ctx context.Context, path string) (*UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return c.UploadFile(ctx, filepath.Base(path), f)
}

// UploadFile streams r to the backend as the multipart field "file".
func (c *Client) UploadFile(ctx context.Context, name string, r io.Reader) (*UploadResult, error) {
	br := bufio.NewReaderSize(r, 512)
	contentType := DetectMIME(name, br)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err == nil {
			_, err = io.Copy(part, br)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	resp, err := c.do(ctx, http.MethodPost, "/upload", pr, mw.FormDataContentType())
	// Unblocks the writer goroutine if the request never consumed the body.
	pr.Close()
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, invalidResponse("failed to decode response", err)
	}
	if result.Mime == "" {
		result.Mime = contentType
	}
	result.FileName = name
	return &result, nil
}

// DetectMIME guesses a content type from the file extension, falling back
// to sniffing the first bytes of br without consuming them.
func DetectMIME(name string, br *bufio.Reader) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	if t, ok := fallbackTypes[ext]; ok {
		return t
	}
	if br != nil {
		head, _ := br.Peek(512)
		if len(head) > 0 {
			return http.DetectContentType(head)
		}
	}
	return "application/octet-stream"
}

// fallbackTypes covers upload types missing from Go's built-in table on
// hosts without /etc/mime.types.
var fallbackTypes = map[string]string{
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
	".csv":  "text/csv; charset=utf-8",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// =============================================================================
// DASHBOARD
// =============================================================================

// Dashboard fetches one snapshot and reports why it failed.
func (c *Client) Dashboard(ctx context.Context) (*model.Snapshot, error) {
	resp, err := c.do(ctx, http.MethodGet, "/dashboard", nil, "")
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	var snap model.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, invalidResponse("failed to decode dashboard", err)
	}
	snap.Normalize()
	snap.FetchedAt = time.Now()
	return &snap, nil
}

// FetchDashboard returns the latest snapshot, or nil when every attempt
// failed. It retries up to MaxRetries times with jittered backoff.
func (c *Client) FetchDashboard(ctx context.Context) *model.Snapshot {
	for attempt := 0; ; attempt++ {
		snap, err := c.Dashboard(ctx)
		if err == nil {
			return snap
		}
		if attempt >= c.config.MaxRetries || IsCanceled(err) || ctx.Err() != nil {
			c.log.Debug("dashboard fetch failed", "attempts", attempt+1, "error", err)
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.backoff(attempt)):
		}
	}
}

// backoff doubles the base delay per attempt and adds up to 100% jitter.
func (c *Client) backoff(attempt int) time.Duration {
	d := c.config.RetryDelay << attempt
	return d + time.Duration(rand.Int64N(int64(d)+1))
}

// Files lists the indexed documents.
func (c *Client) Files(ctx context.Context) ([]model.FileDescriptor, error) {
	resp, err := c.do(ctx, http.MethodGet, "/files", nil, "")
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	var files []model.FileDescriptor
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, invalidResponse("failed to decode files", err)
	}
	return model.UniqueFiles(files), nil
}

// FetchFiles lists the indexed documents, or an empty slice on failure.
func (c *Client) FetchFiles(ctx context.Context) []model.FileDescriptor {
	files, err := c.Files(ctx)
	if err != nil {
		c.log.Debug("files fetch failed", "error", err)
		return []model.FileDescriptor{}
	}
	return files
}

// Ping checks that the backend answers /dashboard.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/dashboard", nil, "")
	if err != nil {
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do sends one request. A nil error means a 2xx response whose body the
// caller must close.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to create request", Cause: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "duration", time.Since(start), "error", err)
		return nil, transportError(err)
	}
	c.log.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer drainAndClose(resp.Body)
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&eb)
		return nil, statusError(method+" "+path, resp.StatusCode, eb.message())
	}
	return resp, nil
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
