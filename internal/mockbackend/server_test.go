// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/twin-tui/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
}

func serve(t *testing.T, h http.Handler, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func uploadBody(t *testing.T, name, mime string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	header.Set("Content-Type", mime)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestQuery(t *testing.T) {
	srv := New(Options{Now: fixedNow})
	h := srv.Handler()

	rec := serve(t, h, http.MethodPost, "/query", bytes.NewBufferString(`{"question":"hi","history":[]}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["answer"], "hi")
	assert.Equal(t, 1, srv.Queries())
}

func TestQuery_MissingQuestion(t *testing.T) {
	h := New(Options{}).Handler()

	rec := serve(t, h, http.MethodPost, "/query", bytes.NewBufferString(`{"history":[]}`), "application/json")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "field required")
}

func TestUpload_Document(t *testing.T) {
	srv := New(Options{Now: fixedNow})
	h := srv.Handler()

	body, ct := uploadBody(t, "notes.pdf", "application/pdf", bytes.Repeat([]byte("x"), 2500))
	rec := serve(t, h, http.MethodPost, "/upload", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Chunks  int    `json:"chunks"`
		Summary string `json:"summary"`
		IsMedia bool   `json:"is_media"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Chunks)
	assert.False(t, resp.IsMedia)
	assert.Contains(t, resp.Summary, "notes.pdf")

	rec = serve(t, h, http.MethodGet, "/files", nil, "")
	var files []model.FileDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "notes.pdf", files[0].Title)
	assert.Equal(t, "pdf", files[0].Type)
	assert.Equal(t, "2025-03-04", files[0].Date)
}

func TestUpload_Media(t *testing.T) {
	h := New(Options{}).Handler()

	body, ct := uploadBody(t, "cat.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	rec := serve(t, h, http.MethodPost, "/upload", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_media":true`)
	assert.Contains(t, rec.Body.String(), `"mime":"image/png"`)
	assert.Contains(t, rec.Body.String(), "IMAGE LOADED")
}

func TestUpload_EmptyDocument(t *testing.T) {
	h := New(Options{}).Handler()

	body, ct := uploadBody(t, "scan.pdf", "application/pdf", nil)
	rec := serve(t, h, http.MethodPost, "/upload", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not extract text")
}

func TestDashboardAndClear(t *testing.T) {
	srv := New(Options{Now: fixedNow})
	h := srv.Handler()

	body, ct := uploadBody(t, "a.txt", "text/plain", []byte("hello"))
	serve(t, h, http.MethodPost, "/upload", body, ct)
	serve(t, h, http.MethodPost, "/query", bytes.NewBufferString(`{"question":"q"}`), "application/json")

	rec := serve(t, h, http.MethodGet, "/dashboard", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap model.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.Stats.TotalQueries)
	assert.Equal(t, 1, snap.Stats.DocsIndexed)
	require.Len(t, snap.RecentHistory, 2)
	assert.Equal(t, "user", snap.RecentHistory[0].Role)

	rec = serve(t, h, http.MethodDelete, "/clear", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, h, http.MethodGet, "/dashboard", nil, "")
	snap = model.Snapshot{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Empty(t, snap.Files)
	assert.Empty(t, snap.RecentHistory)
	assert.Equal(t, 1, snap.Stats.TotalQueries, "query count survives clear")
}

func TestFailWith(t *testing.T) {
	srv := New(Options{})
	h := srv.Handler()

	srv.FailWith(http.StatusServiceUnavailable)
	rec := serve(t, h, http.MethodGet, "/dashboard", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "simulated failure")

	srv.FailWith(0)
	rec = serve(t, h, http.MethodGet, "/dashboard", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- New(Options{}).Start(ctx, StartOpts{Addr: "127.0.0.1:0", Out: &out})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStart_BadAddr(t *testing.T) {
	err := New(Options{}).Start(context.Background(), StartOpts{Addr: "not-an-addr"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "mock backend:"))
}
