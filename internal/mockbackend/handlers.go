// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockbackend

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeranaias/twin-tui/internal/model"
	"github.com/jeranaias/twin-tui/internal/util"
)

type queryRequest struct {
	Question *string              `json:"question"`
	History  []model.HistoryEntry `json:"history"`
}

// missingField mirrors a FastAPI validation error body.
func missingField(loc ...string) gin.H {
	return gin.H{"detail": []gin.H{{
		"loc":  append([]string{"body"}, loc...),
		"msg":  "field required",
		"type": "value_error.missing",
	}}}
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if req.Question == nil {
		c.JSON(http.StatusUnprocessableEntity, missingField("question"))
		return
	}

	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	answer := s.opts.Answer(*req.Question, req.History, active)

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.opts.Now().UTC().Format(time.RFC3339)
	s.queries++
	s.history = append(s.history,
		model.ActivityItem{Role: "user", Content: *req.Question, Timestamp: now},
		model.ActivityItem{Role: "model", Content: answer, Timestamp: now},
	)
	if start, ok := c.Get(startKey); ok {
		s.latency = append(s.latency, time.Since(start.(time.Time)))
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, missingField("file"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	defer f.Close()
	size, err := io.Copy(io.Discard, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	name := fh.Filename
	mime := fh.Header.Get("Content-Type")
	kind := mediaKind(mime)

	if kind == "" && size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Could not extract text from this file. It might be an image-based PDF. Please upload a multmedia file or a text PDF."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fileType := kind
	if fileType == "" {
		fileType = strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	}
	s.files = append(s.files, model.FileDescriptor{
		ID:    model.FlexString(strconv.Itoa(s.nextID)),
		Title: name,
		Size:  model.FileSize(util.HumanBytes(size)),
		Date:  s.opts.Now().Format("2006-01-02"),
		Tags:  []string{fileType},
		Type:  fileType,
	})
	s.nextID++
	s.active = name

	if kind != "" {
		c.JSON(http.StatusOK, gin.H{
			"message":  fmt.Sprintf("Successfully processed %s", name),
			"chunks":   0,
			"summary":  fmt.Sprintf("✨ **%s LOADED!** I can now see this %s. Ask me anything about it!", strings.ToUpper(kind), kind),
			"is_media": true,
			"mime":     mime,
		})
		return
	}

	chunks := int((size + chunkSize - 1) / chunkSize)
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Successfully processed %s", name),
		"chunks":   chunks,
		"summary":  fmt.Sprintf("**%s** is indexed as %d chunk(s). Ask me anything about it.", name, chunks),
		"is_media": false,
	})
}

func (s *Server) handleClear(c *gin.Context) {
	s.mu.Lock()
	s.files = nil
	s.history = nil
	s.active = ""
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Database cleared"})
}

func (s *Server) handleDashboard(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.history
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	c.JSON(http.StatusOK, model.Snapshot{
		Stats: model.Stats{
			TotalQueries: s.queries,
			DocsIndexed:  len(s.files),
			ActiveUsers:  1,
			AvgLatencyMs: s.avgLatencyMs(),
		},
		RecentHistory: append([]model.ActivityItem{}, history...),
		Files:         append([]model.FileDescriptor{}, s.files...),
	})
}

func (s *Server) handleFiles(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, append([]model.FileDescriptor{}, s.files...))
}

// avgLatencyMs is rounded to one decimal. Callers hold s.mu.
func (s *Server) avgLatencyMs() float64 {
	if len(s.latency) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s.latency {
		total += d
	}
	ms := float64(total) / float64(len(s.latency)) / float64(time.Millisecond)
	return float64(int(ms*10+0.5)) / 10
}

// mediaKind returns "image", "video" or "audio" for media mime types.
func mediaKind(mime string) string {
	for _, kind := range []string{"image", "video", "audio"} {
		if strings.HasPrefix(mime, kind+"/") {
			return kind
		}
	}
	return ""
}

func defaultAnswer(question string, history []model.HistoryEntry, active string) string {
	if active == "" {
		return fmt.Sprintf("I don't have any documents yet, but here is my take on %q. Upload a file and I can answer from it.", question)
	}
	return fmt.Sprintf("Based on **%s** (%d earlier turns): %s", active, len(history), question)
}
