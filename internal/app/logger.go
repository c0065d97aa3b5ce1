package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/sujoyonweb/blok/internal/config"
)

// NewLogger builds the process logger at the configured level.
func NewLogger(cfg config.Config, w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		Prefix:          "blok",
	})
}

// OpenLogFile opens the append-only log the TUI writes to while it owns the terminal.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
