package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/llm-fraud-checker/internal/core"
	"go.uber.org/zap"
)

// LocalStore writes uploads into a directory served under the static root
type LocalStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalStore creates the uploads directory if it does not exist
func NewLocalStore(dir string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStore{dir: dir, logger: logger}, nil
}

// Save writes content to dir/name and returns the path relative to the static root
func (s *LocalStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	s.logger.Debug("Stored upload", zap.String("path", target), zap.Int("size", len(content)))
	return core.UploadsPrefix + "/" + filepath.Base(name), nil
}
