//go:build darwin

package power

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
)

type darwinInhibitor struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

func newInhibitor(string) Inhibitor {
	return &darwinInhibitor{}
}

func (inhibitor *darwinInhibitor) Start() error {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()

	if inhibitor.cmd != nil {
		return nil
	}

	path, err := exec.LookPath("caffeinate")
	if err != nil {
		return fmt.Errorf("start inhibitor: caffeinate not found: %w", err)
	}

	// -i idle sleep, -s system sleep on AC, -w exit with this process.
	cmd := exec.Command(path, "-is", "-w", strconv.Itoa(os.Getpid()))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start inhibitor: %w", err)
	}
	go func() { _ = cmd.Wait() }()

	inhibitor.cmd = cmd
	return nil
}

func (inhibitor *darwinInhibitor) Stop() {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()

	if inhibitor.cmd != nil && inhibitor.cmd.Process != nil {
		_ = inhibitor.cmd.Process.Kill()
	}
	inhibitor.cmd = nil
}
