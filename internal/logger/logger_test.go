package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected log file to contain an entry")
	}
}
