package platform

import (
	"errors"
	"strings"
	"sync"
)

var (
	// ErrAlreadyRunning indicates another instance already holds the lock.
	ErrAlreadyRunning = errors.New("instance already running")
	// ErrGuardUnavailable indicates the lock primitive could not be created at all.
	ErrGuardUnavailable = errors.New("instance guard unavailable")
)

// InstanceGuard holds the single-instance lock for one slug.
type InstanceGuard struct {
	slug     string
	name     string
	release  func() error
	once     sync.Once
	closeErr error
}

var (
	guardsMu sync.Mutex
	guards   = map[*InstanceGuard]struct{}{}
)

// AcquireSingleInstance takes the system-wide lock named after slug without waiting.
// It returns ErrAlreadyRunning when another holder is alive and ErrGuardUnavailable
// when the lock cannot be created.
//
// The OS drops the lock when the process dies, so a crash never leaves a stale holder.
// Acquired guards are also tracked process-wide for ReleaseAll.
func AcquireSingleInstance(slug string) (*InstanceGuard, error) {
	slug = normalizeSlug(slug)
	name, release, err := acquireLock(slug)
	if err != nil {
		return nil, err
	}

	guard := &InstanceGuard{slug: slug, name: name, release: release}
	guardsMu.Lock()
	guards[guard] = struct{}{}
	guardsMu.Unlock()
	return guard, nil
}

// Release frees the lock. Calling it more than once is a no-op.
func (guard *InstanceGuard) Release() error {
	if guard == nil {
		return nil
	}
	guard.once.Do(func() {
		guardsMu.Lock()
		delete(guards, guard)
		guardsMu.Unlock()
		if guard.release != nil {
			guard.closeErr = guard.release()
		}
	})
	return guard.closeErr
}

// Name returns the OS-level lock name or path.
func (guard *InstanceGuard) Name() string {
	if guard == nil {
		return ""
	}
	return guard.name
}

// ReleaseAll releases every guard acquired by this process.
// It is meant for exit paths that bypass deferred calls.
func ReleaseAll() {
	guardsMu.Lock()
	held := make([]*InstanceGuard, 0, len(guards))
	for guard := range guards {
		held = append(held, guard)
	}
	guardsMu.Unlock()

	for _, guard := range held {
		_ = guard.Release()
	}
}

func normalizeSlug(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	normalized := strings.Trim(b.String(), "_-.")
	if normalized == "" {
		return "app"
	}
	return normalized
}
