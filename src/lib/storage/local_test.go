package storage

import (
	"context"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalBackendPutAndRemove(t *testing.T) {
	dir := t.TempDir()
	backend := NewLocalBackend(dir)

	url, err := backend.Put(context.Background(), "acme-1a2b.png", strings.NewReader("payload"), "image/png")
	assert.Nil(t, err)
	assert.Equal(t, "/uploads/acme-1a2b.png", url)

	content, err := os.ReadFile(path.Join(dir, "acme-1a2b.png"))
	assert.Nil(t, err)
	assert.Equal(t, "payload", string(content))

	assert.Nil(t, backend.Remove(context.Background(), url))
	_, err = os.Stat(path.Join(dir, "acme-1a2b.png"))
	assert.NotNil(t, err)

	// A second remove of the same asset is a no-op.
	assert.Nil(t, backend.Remove(context.Background(), url))
}

func TestLocalBackendRemoveRejectsForeignURLs(t *testing.T) {
	backend := NewLocalBackend(t.TempDir())
	err := backend.Remove(context.Background(), "/uploads/../etc/passwd")
	assert.NotNil(t, err)
	err = backend.Remove(context.Background(), "https://bucket.s3.amazonaws.com/key.png")
	assert.NotNil(t, err)
}
