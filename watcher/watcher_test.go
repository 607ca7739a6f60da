package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDebouncedCoalescesBurst(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	path := filepath.Join(dir, "asset.txt")
	writeFile(t, path, "v1")

	d, err := NewDebounced(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewDebounced: %v", err)
	}
	defer d.Close()

	if err := d.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// an editor-style burst: several writes within the settle window
	writeFile(t, path, "v2")
	writeFile(t, path, "v3")
	writeFile(t, path, "v4")

	select {
	case got := <-d.Events():
		if got != path {
			t.Fatalf("event path = %q, want %q", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the settled notification")
	}

	// the burst must have settled into exactly one notification
	select {
	case got := <-d.Events():
		t.Fatalf("unexpected second notification for %q", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDebouncedSeparateChanges(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	path := filepath.Join(dir, "asset.txt")
	writeFile(t, path, "v1")

	d, err := NewDebounced(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewDebounced: %v", err)
	}
	defer d.Close()

	if err := d.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	for i := 0; i < 2; i++ {
		writeFile(t, path, "change")
		select {
		case <-d.Events():
		case <-time.After(3 * time.Second):
			t.Fatalf("timed out waiting for notification %d", i+1)
		}
	}
}

func TestDebouncedCloseIdempotent(t *testing.T) {
	d, err := NewDebounced(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewDebounced: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
