package model

import "time"

const (
	// DefaultInterval is the nudge interval used when none is configured.
	DefaultInterval = 30 * time.Second
	// MinInterval is the floor applied to any configured interval.
	MinInterval = 5 * time.Second
)

// TaskConfig defines how the background nudge task runs.
type TaskConfig struct {
	Interval    time.Duration
	StartActive bool
}

// DefaultTaskConfig returns the startup defaults.
func DefaultTaskConfig() TaskConfig {
	return TaskConfig{
		Interval:    DefaultInterval,
		StartActive: true,
	}
}

// ClampInterval raises any interval below floor, zero and negative included, to floor.
func ClampInterval(interval, floor time.Duration) time.Duration {
	if interval < floor {
		return floor
	}
	return interval
}
