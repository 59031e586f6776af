// Package logging sets up the slog file logger. The TUI owns stdout and
// stderr, so all diagnostics go to a log file under the data directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup opens (or creates) <dataDir>/riftwatch.log and returns a text
// slog.Logger writing to it, plus a close function for shutdown.
func Setup(dataDir string) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: creating %s: %w", dataDir, err)
	}

	path := filepath.Join(dataDir, "riftwatch.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: opening %s: %w", path, err)
	}

	log := slog.New(slog.NewTextHandler(f, nil))
	return log, f.Close, nil
}

// Discard returns a logger that drops every record, for tests and for
// commands that have no data directory yet.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
