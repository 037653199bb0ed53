// Package power keeps the OS from sleeping while nudging is on.
// It complements the mouse nudge: the nudge resets idle timers, the
// inhibitor covers sleep policies that ignore synthetic input.
package power

// Inhibitor prevents the system from sleeping while held.
type Inhibitor interface {
	// Start begins inhibiting sleep. An error means the platform mechanism
	// is unavailable; callers log it and carry on.
	Start() error

	// Stop releases the inhibition. Safe to call multiple times.
	Stop()
}

// New returns the inhibitor for the current platform.
func New(who string) Inhibitor {
	return newInhibitor(who)
}
