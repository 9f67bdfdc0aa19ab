package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskboard.log")
	logger, closer, err := New(path, "debug")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("task saved", "id", "42")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "task saved") || !strings.Contains(out, "id=42") || !strings.Contains(out, "taskboard") {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New("", "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestEmptyPathDiscards(t *testing.T) {
	logger, closer, err := New("", "")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("dropped")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	Discard().Error("also dropped")
}
