package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Storage persists uploaded objects and returns their public URL.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// LocalStorage writes objects under a directory served as static files.
type LocalStorage struct {
	baseDir   string
	urlPrefix string
}

// NewLocalStorage creates baseDir if needed. urlPrefix is the public path
// baseDir is served under, e.g. /static/uploads.
func NewLocalStorage(baseDir, urlPrefix string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Save writes r to baseDir/key. The file appears under its final name only
// once fully written.
func (s *LocalStorage) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	tmp, err := os.CreateTemp(s.baseDir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.baseDir, key)); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return s.urlPrefix + "/" + key, nil
}

// PublicPrefix maps a directory below staticDir to the URL path it is served
// under by the /static route.
func PublicPrefix(staticDir, dir string) string {
	rel, err := filepath.Rel(staticDir, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "/static/uploads"
	}
	return path.Join("/static", filepath.ToSlash(rel))
}
