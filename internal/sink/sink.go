// Package sink publishes scrape artifacts to the local filesystem for the
// static site to consume.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/upsc-samachar/pib-scraper/internal/press"
)

const (
	indexFileName = "pib_index.json"
	itemsDirName  = "items"
)

// FileSystem writes the index and per-release artifacts under a base
// directory. The index is replaced atomically so consumers never observe a
// partial file.
type FileSystem struct {
	baseDir  string
	itemsDir string
	logger   *zap.Logger
}

// NewFileSystem creates the output directories and returns a FileSystem.
func NewFileSystem(baseDir string, logger *zap.Logger) (*FileSystem, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	itemsDir := filepath.Join(baseDir, itemsDirName)
	if err := os.MkdirAll(itemsDir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directories: %w", err)
	}
	return &FileSystem{
		baseDir:  baseDir,
		itemsDir: itemsDir,
		logger:   logger,
	}, nil
}

// IndexPath returns the location of the aggregate artifact.
func (s *FileSystem) IndexPath() string {
	return filepath.Join(s.baseDir, indexFileName)
}

// WriteIndex atomically replaces the aggregate artifact.
func (s *FileSystem) WriteIndex(_ context.Context, idx press.Index) error {
	if idx.Items == nil {
		idx.Items = []press.Record{}
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	tmp := s.IndexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("write index temp file: %w", err)
	}
	if err := os.Rename(tmp, s.IndexPath()); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}

	s.logger.Info("index written",
		zap.String("path", s.IndexPath()),
		zap.Int("total", idx.Total),
	)
	return nil
}

// WriteFullText writes one per-release body artifact, keyed by id. Writes
// for different ids never conflict and rewriting the same id is idempotent.
func (s *FileSystem) WriteFullText(_ context.Context, ft press.FullText) error {
	if !press.ValidID(ft.ID) {
		return fmt.Errorf("refusing to write full text for malformed id %q", ft.ID)
	}
	data, err := json.Marshal(ft)
	if err != nil {
		return fmt.Errorf("marshal full text %s: %w", ft.ID, err)
	}
	path := filepath.Join(s.itemsDir, ft.ID+".json")
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("write full text %s: %w", ft.ID, err)
	}
	return nil
}
