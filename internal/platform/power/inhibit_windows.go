//go:build windows

package power

import (
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sys/windows"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

var procSetThreadExecutionState = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadExecutionState")

// windowsInhibitor holds the execution state on a locked OS thread,
// because SetThreadExecutionState applies to the calling thread only.
type windowsInhibitor struct {
	mu      sync.Mutex
	release chan struct{}
	stopped chan struct{}
}

func newInhibitor(string) Inhibitor {
	return &windowsInhibitor{}
}

func (inhibitor *windowsInhibitor) Start() error {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()

	if inhibitor.release != nil {
		return nil
	}
	if err := procSetThreadExecutionState.Find(); err != nil {
		return err
	}

	release := make(chan struct{})
	stopped := make(chan struct{})
	started := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(stopped)

		previous, _, _ := procSetThreadExecutionState.Call(uintptr(esContinuous | esSystemRequired | esDisplayRequired))
		if previous == 0 {
			started <- errors.New("start inhibitor: SetThreadExecutionState failed")
			return
		}
		started <- nil

		<-release
		procSetThreadExecutionState.Call(uintptr(esContinuous))
	}()

	if err := <-started; err != nil {
		return err
	}
	inhibitor.release = release
	inhibitor.stopped = stopped
	return nil
}

func (inhibitor *windowsInhibitor) Stop() {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()

	if inhibitor.release == nil {
		return
	}
	close(inhibitor.release)
	<-inhibitor.stopped
	inhibitor.release = nil
	inhibitor.stopped = nil
}
