package logger

import (
	"bytes"
	"io"
	"log/slog"
)

const colorReset = "\033[0m"

var levelColors = []struct {
	token []byte
	color string
}{
	{[]byte("level=DEBUG"), "\033[36m"}, // cyan
	{[]byte("level=INFO"), "\033[32m"},  // green
	{[]byte("level=WARN"), "\033[33m"},  // yellow
	{[]byte("level=ERROR"), "\033[31m"}, // red
}

// NewColorTextHandler returns a text handler whose level field is ANSI coloured.
func NewColorTextHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewTextHandler(colorWriter{w: w}, opts)
}

// colorWriter relies on slog.TextHandler emitting one record per Write call.
type colorWriter struct {
	w io.Writer
}

func (cw colorWriter) Write(p []byte) (int, error) {
	if _, err := cw.w.Write(colorizeLevel(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func colorizeLevel(line []byte) []byte {
	for _, level := range levelColors {
		index := bytes.Index(line, level.token)
		if index < 0 {
			continue
		}
		start := index + len("level=")
		end := index + len(level.token)
		out := make([]byte, 0, len(line)+len(level.color)+len(colorReset))
		out = append(out, line[:start]...)
		out = append(out, level.color...)
		out = append(out, line[start:end]...)
		out = append(out, colorReset...)
		return append(out, line[end:]...)
	}
	return line
}
