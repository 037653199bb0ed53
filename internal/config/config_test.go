package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypernate/internal/core/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envInterval, envStartOff, envIcon, envLogDir} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)

	config, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, config.Interval)
	assert.True(t, config.StartActive)
	assert.Empty(t, config.IconPath)
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "interval_seconds: 45\nstart_off: true\nicon_path: /usr/share/hypernate.png\nlog_dir: /var/tmp\n")

	config, err := Load(path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, config.Interval)
	assert.False(t, config.StartActive)
	assert.Equal(t, "/usr/share/hypernate.png", config.IconPath)
	assert.Equal(t, "/var/tmp", config.LogDir)
	assert.Equal(t, model.TaskConfig{Interval: 45 * time.Second, StartActive: false}, config.TaskConfig())
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "interval_seconds: 45\nstart_off: true\n")
	t.Setenv(envInterval, "60")
	t.Setenv(envStartOff, "false")
	t.Setenv(envIcon, "/env/icon.png")

	config, err := Load(path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, config.Interval)
	assert.True(t, config.StartActive)
	assert.Equal(t, "/env/icon.png", config.IconPath)

	interval := 120
	startOff := true
	config, err = Load(path, Overrides{IntervalSeconds: &interval, StartOff: &startOff})
	require.NoError(t, err)
	assert.Equal(t, 120*time.Second, config.Interval)
	assert.False(t, config.StartActive)
}

func TestLoad_ClampsInterval(t *testing.T) {
	clearEnv(t)

	small := 1
	config, err := Load("", Overrides{IntervalSeconds: &small})
	require.NoError(t, err)
	assert.Equal(t, model.MinInterval, config.Interval)

	zero := 0
	config, err = Load("", Overrides{IntervalSeconds: &zero})
	require.NoError(t, err)
	assert.Equal(t, model.MinInterval, config.Interval)

	negative := -10
	config, err = Load("", Overrides{IntervalSeconds: &negative})
	require.NoError(t, err)
	assert.Equal(t, model.MinInterval, config.Interval)

	config, err = Load("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultInterval, config.Interval)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeFile(t, "interval_seconds: [nope"), Overrides{})
	assert.ErrorContains(t, err, "parse config yaml")

	t.Setenv(envInterval, "soon")
	_, err = Load("", Overrides{})
	assert.ErrorContains(t, err, envInterval)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "hypernate", "config.yaml"), DefaultPath("/cfg", "Hypernate"))
}
