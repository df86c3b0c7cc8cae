package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

type memoryBackend struct {
	objects map[string][]byte
	getErr  error
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{objects: map[string][]byte{}}
}

func (m *memoryBackend) EnsureBucket(ctx context.Context) error { return nil }

func (m *memoryBackend) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryBackend) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such object")
	}
	var reader io.Reader = bytes.NewReader(data)
	if m.getErr != nil {
		reader = io.MultiReader(bytes.NewReader(data[:len(data)/2]), failingReader{m.getErr})
	}
	return io.NopCloser(reader), nil
}

func (m *memoryBackend) Bucket() string { return "test-bucket" }

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestUploadAndDownloadSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	src := filepath.Join(dir, "clients.json")
	if err := os.WriteFile(src, []byte(`{"nextId":2,"records":[]}`), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	backend := newMemoryBackend()
	st := NewStorage(backend)

	if err := st.UploadSnapshot(ctx, "backup/clients.json", src); err != nil {
		t.Fatalf("UploadSnapshot error: %v", err)
	}

	dst := filepath.Join(dir, "restored", "clients.json")
	if err := st.DownloadSnapshot(ctx, "backup/clients.json", dst); err != nil {
		t.Fatalf("DownloadSnapshot error: %v", err)
	}

	restored, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read restored snapshot: %v", err)
	}
	if string(restored) != `{"nextId":2,"records":[]}` {
		t.Fatalf("restored content mismatch: %s", restored)
	}
}

func TestUploadSnapshot_MissingFileIsSkipped(t *testing.T) {
	t.Parallel()

	backend := newMemoryBackend()
	st := NewStorage(backend)

	err := st.UploadSnapshot(context.Background(), "backup/clients.json", filepath.Join(t.TempDir(), "clients.json"))
	if err != nil {
		t.Fatalf("UploadSnapshot error: %v", err)
	}
	if len(backend.objects) != 0 {
		t.Fatalf("expected no uploads for missing file, got %d", len(backend.objects))
	}
}

func TestDownloadSnapshot_FailedTransferLeavesTargetUntouched(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	dst := filepath.Join(dir, "clients.json")
	existing := `{"nextId":9,"records":[]}`
	if err := os.WriteFile(dst, []byte(existing), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	backend := newMemoryBackend()
	backend.objects["backup/clients.json"] = []byte(`{"nextId":2,"records":[]}`)
	backend.getErr = errors.New("connection reset")
	st := NewStorage(backend)

	if err := st.DownloadSnapshot(ctx, "backup/clients.json", dst); err == nil {
		t.Fatalf("expected error from failed transfer")
	}

	after, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(after) != existing {
		t.Fatalf("snapshot overwritten by failed transfer: %s", after)
	}

	// No temp file debris either.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the original snapshot in %s, found %d entries", dir, len(entries))
	}
}
