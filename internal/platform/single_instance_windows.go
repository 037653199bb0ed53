//go:build windows

package platform

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// acquireLock creates the named kernel mutex Global\<slug>_SingleInstance_Mutex.
// The mutex is created unowned: its existence is the lock, so release does not
// depend on which OS thread the goroutine happens to run on. Windows closes the
// handle when the process dies.
func acquireLock(slug string) (string, func() error, error) {
	name := `Global\` + slug + "_SingleInstance_Mutex"
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return "", nil, fmt.Errorf("%w: encode mutex name: %v", ErrGuardUnavailable, err)
	}

	handle, err := windows.CreateMutex(nil, false, namePtr)
	switch {
	case errors.Is(err, windows.ERROR_ALREADY_EXISTS):
		if handle != 0 {
			_ = windows.CloseHandle(handle)
		}
		return "", nil, fmt.Errorf("mutex %s: %w", name, ErrAlreadyRunning)
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		// Held by a process in another session.
		return "", nil, fmt.Errorf("mutex %s: %w", name, ErrAlreadyRunning)
	case err != nil:
		return "", nil, fmt.Errorf("%w: create mutex %s: %v", ErrGuardUnavailable, name, err)
	}

	release := func() error {
		if err := windows.CloseHandle(handle); err != nil {
			return fmt.Errorf("close mutex %s: %w", name, err)
		}
		return nil
	}
	return name, release, nil
}
