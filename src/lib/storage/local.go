package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"
)

// LocalBackend keeps assets on disk under dir, served by the router at
// /uploads.
type LocalBackend struct {
	dir string
}

func NewLocalBackend(dir string) *LocalBackend {
	return &LocalBackend{dir: dir}
}

func (l *LocalBackend) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", err
	}
	filePath := path.Join(l.dir, key)
	file, err := os.Create(filePath)
	if err != nil {
		log.Printf("Could not create asset file [%s]: %s\n", filePath, err.Error())
		return "", err
	}
	defer file.Close()
	if _, err := io.Copy(file, body); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s", key), nil
}

func (l *LocalBackend) Remove(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, "/uploads/")
	if key == "" || strings.Contains(key, "/") {
		return fmt.Errorf("not a locally stored asset: %s", url)
	}
	err := os.Remove(path.Join(l.dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
