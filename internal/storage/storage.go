package storage

import (
	"io"
)

// Storage keeps finished report files addressable by id.
type Storage interface {
	// Put stores a report and returns its identifier.
	Put(report io.Reader) (string, error)
	// Get retrieves a report by its identifier.
	Get(id string) (io.ReadCloser, error)
	// GetPath returns the file path for a given report identifier.
	GetPath(id string) (string, error)
}
