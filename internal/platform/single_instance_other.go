//go:build !windows

package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockDir is where lock files live. Tests may point it elsewhere.
var lockDir = os.TempDir

// acquireLock takes a non-blocking flock(2) on <tmp>/<slug>.lock.
// The file is left in place on release; removing it would let a racing
// process lock a different inode under the same path.
func acquireLock(slug string) (string, func() error, error) {
	dir := lockDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("%w: create lock dir: %v", ErrGuardUnavailable, err)
	}

	path := filepath.Join(dir, slug+".lock")
	fileLock := flock.New(path)
	locked, err := fileLock.TryLock()
	if err != nil {
		return "", nil, fmt.Errorf("%w: lock %s: %v", ErrGuardUnavailable, path, err)
	}
	if !locked {
		return "", nil, fmt.Errorf("lock %s: %w", path, ErrAlreadyRunning)
	}

	release := func() error {
		if err := fileLock.Unlock(); err != nil {
			return fmt.Errorf("unlock %s: %w", path, err)
		}
		return nil
	}
	return path, release, nil
}
