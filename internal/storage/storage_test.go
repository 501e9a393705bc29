package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStorePut(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, "http://example.test/")

	url, err := store.Put(context.Background(), "avatars", "user-1-99.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "http://example.test/storage/avatars/user-1-99.png" {
		t.Errorf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "avatars", "user-1-99.png"))
	if err != nil {
		t.Fatalf("read object: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("object contents = %q", data)
	}
}

func TestDiskStorePut_SanitizesPath(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, "http://example.test")

	// Traversal segments must not escape the bucket directory.
	url, err := store.Put(context.Background(), "avatars", "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasPrefix(url, "http://example.test/storage/avatars/") {
		t.Errorf("url escaped bucket: %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "avatars", "etc", "passwd")); err != nil {
		t.Errorf("object not under bucket dir: %v", err)
	}

	if _, err := store.Put(context.Background(), "avatars", "", strings.NewReader("x")); err == nil {
		t.Error("empty path accepted")
	}
}
