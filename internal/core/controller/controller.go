package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

var (
	// ErrPresentation indicates the UI event loop failed to start or crashed.
	ErrPresentation = errors.New("presentation layer failed")
	// ErrNotInitializing indicates Run was called on a controller that already ran.
	ErrNotInitializing = errors.New("controller is not initializing")
)

// Task is the background nudge task owned by the controller.
type Task interface {
	Start()
	Stop() error
	Toggle() bool
	Active() bool
}

// EventLoop is the presentation layer's blocking event loop.
type EventLoop interface {
	Run()
	Quit()
}

// Notifier shows best-effort user-facing messages.
type Notifier interface {
	Notify(title, text string, isError bool)
}

// SleepInhibitor keeps the OS awake while the task is active.
type SleepInhibitor interface {
	Start() error
	Stop()
}

// Options configures a Controller.
type Options struct {
	AppName   string
	OpenLog   func() error
	Notifier  Notifier
	Inhibitor SleepInhibitor
	Logger    *slog.Logger
}

// Controller coordinates the nudge task with the tray event loop.
type Controller struct {
	task     Task
	loop     EventLoop
	options  Options
	logger   *slog.Logger
	state    atomic.Int32
	doneOnce sync.Once
	done     chan struct{}
}

// New creates a controller in StateInitializing.
func New(task Task, loop EventLoop, options Options) *Controller {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if options.Notifier == nil {
		options.Notifier = nopNotifier{}
	}
	if options.Inhibitor == nil {
		options.Inhibitor = nopInhibitor{}
	}
	return &Controller{
		task:    task,
		loop:    loop,
		options: options,
		logger:  logger.With("component", "controller"),
		done:    make(chan struct{}),
	}
}

// Run starts the task and blocks in the event loop until it exits.
// A panic escaping the event loop is reported and returned as ErrPresentation.
func (controller *Controller) Run() (err error) {
	if !controller.transition(StateInitializing, StateRunning) {
		if controller.State() == StateTerminated {
			return nil
		}
		return fmt.Errorf("run controller: %w", ErrNotInitializing)
	}

	controller.task.Start()
	active := controller.task.Active()
	controller.holdAwake(active)
	controller.logger.Info("controller running", "active", active)

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", ErrPresentation, recovered)
			controller.logger.Error("event loop failed", "error", err)
			controller.options.Notifier.Notify(controller.options.AppName, fmt.Sprintf("Tray failed to start: %v", recovered), true)
		}
		controller.finish()
	}()

	controller.loop.Run()
	return nil
}

// HandleToggle flips the task's active flag and returns the new state.
func (controller *Controller) HandleToggle() bool {
	active := controller.task.Toggle()
	if controller.State() == StateRunning {
		controller.holdAwake(active)
	}
	controller.logger.Info("toggled", "active", active)
	return active
}

// HandleOpenLog opens the log file and reports a failure to the user.
func (controller *Controller) HandleOpenLog() {
	if controller.options.OpenLog == nil {
		return
	}
	if err := controller.options.OpenLog(); err != nil {
		controller.logger.Warn("open log failed", "error", err)
		// Native dialogs can be modal; the menu callback must return.
		go controller.options.Notifier.Notify(controller.options.AppName, "Failed to open log file.", true)
	}
}

// HandleQuit stops the task and then asks the event loop to exit.
// Only the first call has an effect.
func (controller *Controller) HandleQuit() {
	if controller.transition(StateInitializing, StateTerminated) {
		controller.logger.Info("quit before start")
		controller.markDone()
		return
	}
	if !controller.transition(StateRunning, StateStopping) {
		return
	}

	controller.logger.Info("quitting")
	controller.stopTask()
	controller.loop.Quit()
	controller.markTerminated()
}

// Status returns a non-blocking snapshot.
func (controller *Controller) Status() Status {
	return Status{
		State:  controller.State(),
		Active: controller.task.Active(),
	}
}

// State returns the current lifecycle state.
func (controller *Controller) State() State {
	return State(controller.state.Load())
}

// Done is closed once the controller reaches StateTerminated.
func (controller *Controller) Done() <-chan struct{} {
	return controller.done
}

// finish runs after the event loop returns, however it returned.
func (controller *Controller) finish() {
	if controller.transition(StateRunning, StateStopping) {
		controller.stopTask()
		controller.markTerminated()
		return
	}
	// HandleQuit is completing on another goroutine.
	<-controller.done
}

func (controller *Controller) stopTask() {
	if err := controller.task.Stop(); err != nil {
		controller.logger.Warn("task stop", "error", err)
	}
	controller.options.Inhibitor.Stop()
}

// holdAwake follows the task's active flag. A missing inhibitor is not fatal.
func (controller *Controller) holdAwake(active bool) {
	if !active {
		controller.options.Inhibitor.Stop()
		return
	}
	if err := controller.options.Inhibitor.Start(); err != nil {
		controller.logger.Info("sleep inhibitor unavailable", "error", err)
	}
}

func (controller *Controller) markTerminated() {
	controller.state.Store(int32(StateTerminated))
	controller.markDone()
	controller.logger.Info("controller terminated")
}

func (controller *Controller) markDone() {
	controller.doneOnce.Do(func() {
		close(controller.done)
	})
}

func (controller *Controller) transition(from, to State) bool {
	return controller.state.CompareAndSwap(int32(from), int32(to))
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, bool) {}

type nopInhibitor struct{}

func (nopInhibitor) Start() error { return nil }
func (nopInhibitor) Stop()        {}
