// Package logging sets up the JSON debug log. The terminal belongs to the
// UI, so log output always goes to a file.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup creates a JSON logger writing to path. With truncate set the file
// starts empty so it reflects only the current run; otherwise entries are
// appended. The returned cleanup closes the file.
func Setup(path string, level slog.Level, truncate bool) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler), f.Close, nil
}
