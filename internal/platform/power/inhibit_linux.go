//go:build linux

package power

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"
)

type linuxInhibitor struct {
	who string
	mu  sync.Mutex
	cmd *exec.Cmd
}

func newInhibitor(who string) Inhibitor {
	return &linuxInhibitor{who: who}
}

func (inhibitor *linuxInhibitor) Start() error {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()

	if inhibitor.cmd != nil {
		return nil
	}

	path, err := exec.LookPath("systemd-inhibit")
	if err != nil {
		return fmt.Errorf("start inhibitor: systemd-inhibit not found: %w", err)
	}

	cmd := exec.Command(path,
		"--what=idle:sleep",
		"--who="+inhibitor.who,
		"--why=Keeping the session awake",
		"sleep", "infinity",
	)
	// The child dies with us, so a crash never leaves the inhibition behind.
	cmd.SysProcAttr = &syscall.SysProcAttr{Pdeathsig: syscall.SIGTERM}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start inhibitor: %w", err)
	}
	go func() { _ = cmd.Wait() }()

	inhibitor.cmd = cmd
	return nil
}

func (inhibitor *linuxInhibitor) Stop() {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()

	if inhibitor.cmd != nil && inhibitor.cmd.Process != nil {
		_ = inhibitor.cmd.Process.Kill()
	}
	inhibitor.cmd = nil
}

func (inhibitor *linuxInhibitor) held() bool {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()
	return inhibitor.cmd != nil
}
