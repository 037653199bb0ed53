package platform

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperSlugEnv = "HYPERNATE_TEST_HOLD_SLUG"

func uniqueSlug(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("hypernate-test-%d-%d", os.Getpid(), time.Now().UnixNano())
}

func TestAcquireSingleInstance_SecondAttemptFails(t *testing.T) {
	slug := uniqueSlug(t)

	first, err := AcquireSingleInstance(slug)
	require.NoError(t, err)
	defer first.Release()

	second, err := AcquireSingleInstance(slug)
	require.ErrorIs(t, err, ErrAlreadyRunning)
	assert.NotErrorIs(t, err, ErrGuardUnavailable)
	assert.Nil(t, second)
}

func TestAcquireSingleInstance_ReacquireAfterRelease(t *testing.T) {
	slug := uniqueSlug(t)

	first, err := AcquireSingleInstance(slug)
	require.NoError(t, err)
	require.NoError(t, first.Release())

	second, err := AcquireSingleInstance(slug)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestInstanceGuard_ReleaseIsIdempotent(t *testing.T) {
	guard, err := AcquireSingleInstance(uniqueSlug(t))
	require.NoError(t, err)

	assert.NoError(t, guard.Release())
	assert.NoError(t, guard.Release())

	var nilGuard *InstanceGuard
	assert.NoError(t, nilGuard.Release())
	assert.Empty(t, nilGuard.Name())
}

func TestReleaseAll(t *testing.T) {
	slug := uniqueSlug(t)
	guard, err := AcquireSingleInstance(slug)
	require.NoError(t, err)
	assert.NotEmpty(t, guard.Name())

	ReleaseAll()

	again, err := AcquireSingleInstance(slug)
	require.NoError(t, err)
	require.NoError(t, again.Release())
	// Explicit release after the exit hook is still safe.
	assert.NoError(t, guard.Release())
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "hypernate", normalizeSlug(" hypernate "))
	assert.Equal(t, "my_app", normalizeSlug("my app"))
	assert.Equal(t, "a_b", normalizeSlug(`a\b`))
	assert.Equal(t, "app", normalizeSlug("///"))
}

// TestHelperHoldLock is run as a subprocess by TestAcquireSingleInstance_ReleasedOnAbruptExit.
func TestHelperHoldLock(t *testing.T) {
	slug := os.Getenv(helperSlugEnv)
	if slug == "" {
		t.Skip("helper process only")
	}
	if _, err := AcquireSingleInstance(slug); err != nil {
		fmt.Println("error", err)
		os.Exit(2)
	}
	fmt.Println("locked")
	time.Sleep(time.Minute)
	os.Exit(0)
}

func TestAcquireSingleInstance_ReleasedOnAbruptExit(t *testing.T) {
	slug := uniqueSlug(t)

	cmd := exec.Command(os.Args[0], "-test.run=^TestHelperHoldLock$")
	cmd.Env = append(os.Environ(), helperSlugEnv+"="+slug)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})

	line, err := bufio.NewReader(stdout).ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "locked\n", line)

	_, err = AcquireSingleInstance(slug)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, cmd.Process.Kill())
	_ = cmd.Wait()

	require.Eventually(t, func() bool {
		guard, err := AcquireSingleInstance(slug)
		if err != nil {
			return false
		}
		_ = guard.Release()
		return true
	}, 5*time.Second, 50*time.Millisecond)
}
