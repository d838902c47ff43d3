package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage is a content-addressed report archive on the local filesystem.
type LocalStorage struct {
	basePath string
	ext      string
}

// NewLocalStorage creates the archive directory. ext is appended to every
// stored file name, e.g. ".xlsx".
func NewLocalStorage(basePath, ext string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, ext: ext}, nil
}

// Put stores a report named by the SHA-256 of its content. Storing the same
// bytes twice yields the same id.
func (s *LocalStorage) Put(report io.Reader) (string, error) {
	data, err := io.ReadAll(report)
	if err != nil {
		return "", fmt.Errorf("failed to read report: %w", err)
	}

	hash := sha256.Sum256(data)
	id := hex.EncodeToString(hash[:])

	if err := os.WriteFile(s.path(id), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report to archive: %w", err)
	}
	return id, nil
}

func (s *LocalStorage) Get(id string) (io.ReadCloser, error) {
	file, err := os.Open(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("report not found: %s", id)
		}
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) GetPath(id string) (string, error) {
	return s.path(id), nil
}

func (s *LocalStorage) path(id string) string {
	return filepath.Join(s.basePath, id+s.ext)
}
