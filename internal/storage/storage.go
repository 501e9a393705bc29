// Package storage provides the object store used for avatar uploads.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ObjectStore persists uploaded files and hands back a public URL.
type ObjectStore interface {
	Put(ctx context.Context, bucket, objectPath string, r io.Reader) (string, error)
}

// DiskStore keeps objects under a local directory, one subdirectory per
// bucket, and serves them through the server's /storage route.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore returns a store rooted at dir; public URLs are formed as
// baseURL/storage/{bucket}/{path}.
func NewDiskStore(dir, baseURL string) *DiskStore {
	return &DiskStore{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *DiskStore) Put(ctx context.Context, bucket, objectPath string, r io.Reader) (string, error) {
	clean := path.Clean("/" + objectPath)
	if clean == "/" {
		return "", fmt.Errorf("empty object path")
	}

	full := filepath.Join(s.root, bucket, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create bucket dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write object: %w", err)
	}

	return s.baseURL + "/storage/" + bucket + clean, nil
}
