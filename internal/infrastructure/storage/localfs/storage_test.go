package localfs

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenRoundTrip(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := storage.Save(context.Background(), "job-1_msg.txt", strings.NewReader("conteúdo")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rc, err := storage.Open(context.Background(), "job-1_msg.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "conteúdo" {
		t.Fatalf("unexpected content: %q", raw)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := storage.Save(context.Background(), "job-2_msg.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := storage.Remove(context.Background(), "job-2_msg.txt"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := storage.Remove(context.Background(), "job-2_msg.txt"); err != nil {
		t.Fatalf("Remove() on missing key error = %v", err)
	}
	if _, err := storage.Open(context.Background(), "job-2_msg.txt"); err == nil {
		t.Fatalf("expected open to fail after remove")
	}
}
