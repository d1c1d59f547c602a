// Package storage provides local-disk storage for uploaded course images
package storage

import (
	"io"
	"os"
	"path/filepath"
)

// imagesSubdir is the directory under the uploads base path holding course images
const imagesSubdir = "images"

// localStorage stores image files on the local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage rooted at basePath
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// imagePath returns the on-disk path for a stored image filename
func (s *localStorage) imagePath(name string) string {
	return filepath.Join(s.basePath, imagesSubdir, name)
}

// Create creates a new image file and returns a WriteCloser
func (s *localStorage) Create(name string) (io.WriteCloser, error) {
	path := s.imagePath(name)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return os.Create(path)
}

// Delete removes a stored image file
func (s *localStorage) Delete(name string) error {
	return os.Remove(s.imagePath(name))
}
