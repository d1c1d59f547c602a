package storage

import (
	"path"

	"github.com/google/uuid"
)

// GenerateFileName generates a UUID-based filename keeping the original extension
func GenerateFileName(originalName string) string {
	newUUID := uuid.New().String()
	return newUUID + path.Ext(originalName)
}

// PublicPath returns the URL path under which a stored image is served
func PublicPath(uploadsDir, name string) string {
	return path.Join(uploadsDir, imagesSubdir, name)
}
