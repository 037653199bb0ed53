package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypernate/internal/config"
	"hypernate/internal/platform"
	"hypernate/internal/ui/notify"
)

type notification struct {
	text    string
	isError bool
}

type recordingNotifier struct {
	mu    sync.Mutex
	shown []notification
}

func (notifier *recordingNotifier) Notify(_, text string, isError bool) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.shown = append(notifier.shown, notification{text: text, isError: isError})
}

func (notifier *recordingNotifier) list() []notification {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return append([]notification(nil), notifier.shown...)
}

type runFixture struct {
	notifier *recordingNotifier
	env      environment
	trayRuns int
}

func newRunFixture(t *testing.T) *runFixture {
	t.Helper()
	t.Setenv("HYPERNATE_INTERVAL", "")
	t.Setenv("HYPERNATE_START_OFF", "")
	t.Setenv("HYPERNATE_LOG_DIR", "")

	fixture := &runFixture{notifier: &recordingNotifier{}}
	fixture.env = environment{
		notifier: fixture.notifier,
		verify:   func() error { return nil },
		acquire:  platform.AcquireSingleInstance,
		slug:     fmt.Sprintf("hypernate-run-%d", time.Now().UnixNano()),
		tray: func(config.Config, *slog.Logger, string, notify.Notifier) error {
			fixture.trayRuns++
			return nil
		},
	}
	return fixture
}

func (fixture *runFixture) run(t *testing.T) error {
	t.Helper()
	flags := &rootFlags{}
	cmd := bindRootCmd(flags)
	dir := t.TempDir()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--log-dir", dir,
	}))
	return run(cmd, flags, fixture.env)
}

func TestRun_AlreadyRunningExitsCleanly(t *testing.T) {
	fixture := newRunFixture(t)
	holder, err := platform.AcquireSingleInstance(fixture.env.slug)
	require.NoError(t, err)
	t.Cleanup(func() { _ = holder.Release() })

	require.NoError(t, fixture.run(t))

	shown := fixture.notifier.list()
	require.Len(t, shown, 1)
	assert.False(t, shown[0].isError)
	assert.Contains(t, shown[0].text, "already running")
	assert.Zero(t, fixture.trayRuns)
}

func TestRun_GuardUnavailableFails(t *testing.T) {
	fixture := newRunFixture(t)
	fixture.env.acquire = func(string) (*platform.InstanceGuard, error) {
		return nil, fmt.Errorf("%w: permission denied", platform.ErrGuardUnavailable)
	}

	err := fixture.run(t)
	require.ErrorIs(t, err, platform.ErrGuardUnavailable)

	shown := fixture.notifier.list()
	require.Len(t, shown, 1)
	assert.True(t, shown[0].isError)
	assert.Zero(t, fixture.trayRuns)
}

func TestRun_MissingDependencyFails(t *testing.T) {
	fixture := newRunFixture(t)
	fixture.env.verify = func() error {
		return &platform.MissingDependencyError{Missing: []string{"DISPLAY or WAYLAND_DISPLAY"}}
	}

	err := fixture.run(t)
	var missing *platform.MissingDependencyError
	require.ErrorAs(t, err, &missing)

	shown := fixture.notifier.list()
	require.Len(t, shown, 1)
	assert.True(t, shown[0].isError)
	assert.Contains(t, shown[0].text, "DISPLAY")
	assert.Zero(t, fixture.trayRuns)
}

func TestRun_StartsTrayAndReleasesGuard(t *testing.T) {
	fixture := newRunFixture(t)

	require.NoError(t, fixture.run(t))
	assert.Equal(t, 1, fixture.trayRuns)
	assert.Empty(t, fixture.notifier.list())

	guard, err := platform.AcquireSingleInstance(fixture.env.slug)
	require.NoError(t, err, "run must release the guard on return")
	_ = guard.Release()
}
