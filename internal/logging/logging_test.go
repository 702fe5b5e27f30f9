package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "logs", "tasklist.log")
	logger, cleanup, err := Setup(logPath, slog.LevelDebug, true)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	logger.Debug("task added", "id", "t_1")
	logger.Info("starting")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	got := string(content)
	if !strings.Contains(got, `"level":"DEBUG"`) {
		t.Errorf("expected DEBUG entry, got:\n%s", got)
	}
	if !strings.Contains(got, `"id":"t_1"`) {
		t.Errorf("expected id attribute, got:\n%s", got)
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "tasklist.log")
	logger, cleanup, err := Setup(logPath, slog.LevelInfo, true)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	logger.Debug("hidden")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	content, _ := os.ReadFile(logPath)
	if strings.Contains(string(content), "hidden") {
		t.Error("debug entry written at info level")
	}
}

func TestSetup_Truncates(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "tasklist.log")
	if err := os.WriteFile(logPath, []byte("old run\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, cleanup, err := Setup(logPath, slog.LevelDebug, true)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	cleanup()

	content, _ := os.ReadFile(logPath)
	if strings.Contains(string(content), "old run") {
		t.Error("log file not truncated")
	}
}

func TestSetup_Appends(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "tasklist.log")
	if err := os.WriteFile(logPath, []byte("ui run\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	logger, cleanup, err := Setup(logPath, slog.LevelDebug, false)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	logger.Info("task added")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	content, _ := os.ReadFile(logPath)
	got := string(content)
	if !strings.HasPrefix(got, "ui run\n") {
		t.Errorf("earlier entries lost:\n%s", got)
	}
	if !strings.Contains(got, "task added") {
		t.Errorf("new entry missing:\n%s", got)
	}
}
