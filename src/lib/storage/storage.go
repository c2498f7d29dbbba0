package storage

import (
	"context"
	"io"
	"os"
)

// Backend stores uploaded CMS assets. Handlers never know which
// implementation is active.
type Backend interface {
	// Put stores the object under key and returns its public URL.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	// Remove deletes the object a previous Put returned url for.
	// Missing objects are not an error.
	Remove(ctx context.Context, url string) error
}

var backend Backend

// GetBackend picks the backend from STORAGE_BACKEND (s3 or local disk, the
// default).
func GetBackend() Backend {
	if backend != nil {
		return backend
	}
	switch os.Getenv("STORAGE_BACKEND") {
	case "s3":
		backend = NewS3Backend()
	default:
		backend = NewLocalBackend(UploadsDir())
	}
	return backend
}

func NewBackend(b Backend) {
	backend = b
}

func UploadsDir() string {
	dir := os.Getenv("UPLOADS_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}
