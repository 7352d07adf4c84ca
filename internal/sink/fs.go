// Package sink persists raw page snapshots for offline debugging.
package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/anirudhrpi/stotram-scraper/internal/scraper"
)

// FS writes one HTML artifact per adapter kind into a debug directory.
// Artifacts are advisory: callers log failures and continue.
type FS struct {
	root     string
	maxBytes int64
	logger   *zap.Logger
}

// NewFS returns a sink rooted at dir.
func NewFS(root string, maxBytes int64, logger *zap.Logger) (*FS, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create debug dir %s: %w", root, err)
	}
	if maxBytes <= 0 {
		maxBytes = 32 << 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FS{root: root, maxBytes: maxBytes, logger: logger}, nil
}

// Save writes the snapshot to page_source_<kind>.html plus the generic
// page_source.html copy, and returns the kind-specific path.
func (s *FS) Save(ctx context.Context, kind scraper.Kind, body []byte) (string, error) {
	if len(body) == 0 {
		return "", fmt.Errorf("empty page body")
	}
	if int64(len(body)) > s.maxBytes {
		return "", fmt.Errorf("page size %d exceeds max %d", len(body), s.maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context canceled: %w", err)
	}

	target := filepath.Join(s.root, fmt.Sprintf("page_source_%s.html", kind))
	if err := os.WriteFile(target, body, 0o600); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", target, err)
	}

	// The unqualified copy always reflects the adapter that won.
	generic := filepath.Join(s.root, "page_source.html")
	if err := os.WriteFile(generic, body, 0o600); err != nil {
		s.logger.Debug("failed to write generic artifact", zap.Error(err))
	}
	return target, nil
}
