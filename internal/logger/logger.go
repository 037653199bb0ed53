package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation settings.
const (
	DefaultFileName   = "hypernate.log"
	DefaultMaxSizeMB  = 1
	DefaultMaxBackups = 2
)

// Config describes where log records go.
type Config struct {
	Dir        string // directory of the log file; empty means the executable's directory
	FileName   string
	MaxSizeMB  int
	MaxBackups int
	Level      slog.Level
	Console    io.Writer // nil disables console output
	Color      bool
}

// Path returns the log file path.
func (c Config) Path() string {
	dir := c.Dir
	if dir == "" {
		dir = DefaultDir()
	}
	name := c.FileName
	if name == "" {
		name = DefaultFileName
	}
	return filepath.Join(dir, name)
}

// DefaultDir is the directory holding the running executable, or the temp dir.
func DefaultDir() string {
	exe, err := os.Executable()
	if err != nil {
		return os.TempDir()
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// New builds a logger writing to a rotating file and, optionally, the console.
// The returned closer flushes and closes the log file.
func New(c Config) (*slog.Logger, io.Closer, error) {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	file := &lj.Logger{
		Filename:   path,
		MaxSize:    valOr(c.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: valOr(c.MaxBackups, DefaultMaxBackups),
	}
	opts := &slog.HandlerOptions{Level: c.Level}

	handlers := []slog.Handler{slog.NewTextHandler(file, opts)}
	if c.Console != nil {
		if c.Color {
			handlers = append(handlers, NewColorTextHandler(c.Console, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(c.Console, opts))
		}
	}

	return slog.New(fanout(handlers)), file, nil
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func valOr(v int, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type fanout []slog.Handler

func (handlers fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (handlers fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(handlers))
	for i, handler := range handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return next
}

func (handlers fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(handlers))
	for i, handler := range handlers {
		next[i] = handler.WithGroup(name)
	}
	return next
}
