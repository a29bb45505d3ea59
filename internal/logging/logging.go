// Package logging builds the charmbracelet/log logger used across the tool.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/config"
)

const prefix = "todo"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to w at the configured level.
func New(w io.Writer, cfg config.LogConfig) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:     level,
		Formatter: log.TextFormatter,
		Prefix:    prefix,
	}), nil
}

// Open resolves the destination from cfg: the configured file if any, else
// fallbackFile if non-empty, else stderr. The returned closer is never nil.
func Open(cfg config.LogConfig, fallbackFile string) (*log.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		path = fallbackFile
	}
	if path == "" {
		l, err := New(os.Stderr, cfg)
		return l, nopCloser{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := New(f, cfg)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	l.SetReportTimestamp(true)
	return l, f, nil
}
