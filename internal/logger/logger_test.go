package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

func TestNew_WritesFileAndConsole(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	log, closer, err := New(Config{Dir: dir, Console: &console})
	require.NoError(t, err)

	log.With("component", "worker").Info("worker started", "interval", "30s")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "worker started")
	assert.Contains(t, string(content), "component=worker")
	assert.Contains(t, console.String(), "worker started")
}

func TestNew_LevelFilters(t *testing.T) {
	var console bytes.Buffer
	log, closer, err := New(Config{Dir: t.TempDir(), Console: &console, Level: slog.LevelInfo})
	require.NoError(t, err)
	defer closer.Close()

	log.Debug("nudge sent")
	log.Warn("worker did not stop within grace period")

	assert.NotContains(t, console.String(), "nudge sent")
	assert.Contains(t, console.String(), "grace period")
}

func TestNew_RotationDefaults(t *testing.T) {
	_, closer, err := New(Config{Dir: t.TempDir()})
	require.NoError(t, err)
	defer closer.Close()

	file, ok := closer.(*lj.Logger)
	require.True(t, ok)
	assert.Equal(t, DefaultMaxSizeMB, file.MaxSize)
	assert.Equal(t, DefaultMaxBackups, file.MaxBackups)
}

func TestColorTextHandler(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(NewColorTextHandler(&out, nil)).With("component", "tray")

	log.Error("event loop failed")
	assert.Contains(t, out.String(), "level=\033[31mERROR\033[0m")
	assert.Contains(t, out.String(), `msg="event loop failed"`)
	assert.Contains(t, out.String(), "component=tray")
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/var/log", "hypernate.log"), Config{Dir: "/var/log"}.Path())
	assert.Equal(t, filepath.Join("/var/log", "x.log"), Config{Dir: "/var/log", FileName: "x.log"}.Path())
	assert.NotEmpty(t, Config{}.Path())
}
