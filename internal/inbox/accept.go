// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package inbox

import (
	"path/filepath"
	"strings"

	"github.com/jeranaias/twin-tui/internal/api"
)

// DefaultAccept lists the upload types offered by the file prompt.
var DefaultAccept = []string{".pdf", ".txt", "image/*", "video/*", "audio/*"}

// Accepts reports whether name matches one of the accept patterns. A
// pattern is an extension (".pdf"), a full mime type ("application/pdf")
// or a wildcard ("image/*"). An empty list accepts everything.
func Accepts(name string, accept []string) bool {
	if len(accept) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	mimeType := api.DetectMIME(name, nil)
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	for _, pattern := range accept {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		switch {
		case pattern == "":
		case strings.HasPrefix(pattern, "."):
			if ext == pattern {
				return true
			}
		case strings.HasSuffix(pattern, "/*"):
			if strings.HasPrefix(mimeType, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		case pattern == mimeType:
			return true
		}
	}
	return false
}

// ignored reports names that are temporary or hidden: dotfiles, editor
// backups and partial downloads.
func ignored(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return true
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".part", ".crdownload", ".tmp", ".swp":
		return true
	}
	return false
}
