package storage

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	key := "results/wf-1/r0.json"
	payload := []byte(`{"match_score": 90}`)

	exists, err := store.Exists(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected key to be absent before upload")
	}

	if err := store.Upload(ctx, key, bytes.NewReader(payload), int64(len(payload)), "application/json"); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	exists, _ = store.Exists(ctx, key)
	if !exists {
		t.Error("expected key to exist after upload")
	}

	reader, err := store.Download(ctx, key)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("round trip mismatch: %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	exists, _ = store.Exists(ctx, key)
	if exists {
		t.Error("expected key gone after delete")
	}

	// Deleting a missing key is not an error.
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}
