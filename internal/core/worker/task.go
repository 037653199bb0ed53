package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"hypernate/internal/core/model"
)

// ErrShutdownTimeout indicates the loop did not exit within the grace period.
var ErrShutdownTimeout = errors.New("worker shutdown timed out")

const (
	defaultSlice       = time.Second
	defaultGracePeriod = 2 * time.Second
)

// Action performs one anti-idle nudge.
type Action interface {
	Nudge() error
}

// ActionFunc adapts a function to Action.
type ActionFunc func() error

// Nudge calls fn.
func (fn ActionFunc) Nudge() error {
	return fn()
}

// Options contains runtime knobs for Task. Zero values select defaults.
type Options struct {
	// Slice is the sleep granularity between stop checks.
	Slice time.Duration
	// GracePeriod bounds how long Stop waits for the loop to exit.
	GracePeriod time.Duration
	// MinInterval is the floor applied to the configured interval.
	MinInterval time.Duration
	Logger      *slog.Logger
}

// Task runs an Action on a fixed interval on its own goroutine.
//
// The active flag is written by UI callbacks and read by the loop once per
// cycle. A toggle takes effect no later than the next cycle.
type Task struct {
	interval time.Duration
	options  Options
	action   Action
	logger   *slog.Logger

	active   atomic.Bool
	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// New creates a Task. The interval is clamped to Options.MinInterval.
func New(interval time.Duration, startActive bool, action Action, options Options) *Task {
	if options.Slice <= 0 {
		options.Slice = defaultSlice
	}
	if options.GracePeriod <= 0 {
		options.GracePeriod = defaultGracePeriod
	}
	if options.MinInterval <= 0 {
		options.MinInterval = model.MinInterval
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	task := &Task{
		interval: model.ClampInterval(interval, options.MinInterval),
		options:  options,
		action:   action,
		logger:   logger.With("component", "worker"),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	task.active.Store(startActive)
	return task
}

// Interval returns the effective interval after clamping.
func (task *Task) Interval() time.Duration {
	return task.interval
}

// Start launches the loop goroutine.
//
// Start must be called exactly once. A second call is a programming error and
// panics. A Task that has been stopped must not be started.
func (task *Task) Start() {
	if !task.started.CompareAndSwap(false, true) {
		panic("worker: Start called more than once")
	}
	task.logger.Info("worker started", "interval", task.interval, "active", task.active.Load())
	go task.run()
}

// Stop signals the loop to exit and waits up to the grace period.
// It always returns; ErrShutdownTimeout reports a loop that did not exit in time.
func (task *Task) Stop() error {
	task.stopOnce.Do(func() {
		close(task.stopCh)
	})
	if !task.started.Load() {
		return nil
	}

	timer := time.NewTimer(task.options.GracePeriod)
	defer timer.Stop()

	select {
	case <-task.done:
		return nil
	case <-timer.C:
		task.logger.Warn("worker did not stop within grace period", "grace", task.options.GracePeriod)
		return fmt.Errorf("stop worker: %w", ErrShutdownTimeout)
	}
}

// SetActive enables or disables nudging.
func (task *Task) SetActive(active bool) {
	task.active.Store(active)
}

// Toggle flips the active flag and returns the new value.
func (task *Task) Toggle() bool {
	for {
		current := task.active.Load()
		if task.active.CompareAndSwap(current, !current) {
			return !current
		}
	}
}

// Active reports whether nudging is enabled.
func (task *Task) Active() bool {
	return task.active.Load()
}

func (task *Task) run() {
	defer close(task.done)

	ticker := time.NewTicker(task.options.Slice)
	defer ticker.Stop()

	remaining := task.interval
	for {
		select {
		case <-task.stopCh:
			return
		case <-ticker.C:
			remaining -= task.options.Slice
			if remaining > 0 {
				continue
			}
			remaining = task.interval
			task.cycle()
		}
	}
}

func (task *Task) cycle() {
	if task.stopping() || !task.active.Load() {
		return
	}
	task.nudge()
}

func (task *Task) stopping() bool {
	select {
	case <-task.stopCh:
		return true
	default:
		return false
	}
}

// nudge never lets a failing action escape the loop.
func (task *Task) nudge() {
	defer func() {
		if recovered := recover(); recovered != nil {
			task.logger.Info("nudge panicked", "panic", recovered)
		}
	}()

	if err := task.action.Nudge(); err != nil {
		task.logger.Info("nudge failed", "error", err)
		return
	}
	task.logger.Debug("nudge sent")
}
