package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if got := store.LastURL(); got != "" {
		t.Errorf("Expected empty LastURL, got %q", got)
	}

	url := "https://novelbin.com/b/black-tech-internet-cafe-system/chapter-6"
	if err := store.SetLastURL(url); err != nil {
		t.Fatalf("SetLastURL failed: %v", err)
	}
	if got := store.LastURL(); got != url {
		t.Errorf("Expected %q, got %q", url, got)
	}
}

func TestStorePersistence(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	store1, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	store1.SetLastURL("https://example.com/b/a/chapter-1")

	// New instance should load persisted data
	store2, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if got := store2.LastURL(); got != "https://example.com/b/a/chapter-1" {
		t.Errorf("Expected persisted URL, got %q", got)
	}
}

func TestStoreCorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	os.MkdirAll(filepath.Join(tmpDir, "novdl"), 0755)
	os.WriteFile(filepath.Join(tmpDir, "novdl", stateFileName), []byte("{not json"), 0644)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("corrupt settings should not be fatal: %v", err)
	}
	if got := store.LastURL(); got != "" {
		t.Errorf("Expected empty LastURL, got %q", got)
	}
}

func TestDirAndLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg")
	if got := Dir(); got != filepath.Join("/tmp/xdg", "novdl") {
		t.Errorf("Dir() = %q", got)
	}
	if got := LogPath(); got != filepath.Join("/tmp/xdg", "novdl", "novdl.log") {
		t.Errorf("LogPath() = %q", got)
	}
}
