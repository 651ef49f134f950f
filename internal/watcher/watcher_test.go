package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	if err := os.WriteFile(path, []byte("initial\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("initial\nmore\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a watch event after writing to %s", path)
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	if err := os.WriteFile(path, []byte("initial\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	other := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(other, []byte("noise\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-w.Events():
		t.Fatalf("expected no event for an unrelated file in the same directory")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCoalescesBurstsIntoOneSignal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	if err := os.WriteFile(path, []byte("initial\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("write"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatalf("expected at least one watch event")
	}

	// Let the burst settle, drain any second signal the buffered channel
	// may already hold, then confirm nothing further is pending.
	time.Sleep(300 * time.Millisecond)
	select {
	case <-w.Events():
	default:
	}
	select {
	case <-w.Events():
		t.Fatalf("expected the burst to coalesce into at most one pending signal")
	default:
	}
}

func TestCloseStopsTheLoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	if err := os.WriteFile(path, []byte("initial\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected Events() to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected Events() to close promptly after Close")
	}
}
