package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// setupLogging installs the default slog logger. The viewer owns the
// terminal, so it logs to a file; other commands log to stderr.
func setupLogging(verbose bool, toFile bool) (io.Closer, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if toFile {
		path, err := logPath()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closer, nil
}

func logPath() (string, error) {
	base, err := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "gtui", "gtui.log"), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
