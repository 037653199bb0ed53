// Package notify shows short user-facing messages through the desktop's
// native dialog or notification facility, falling back to the console.
package notify

import (
	"fmt"
	"io"
	"os"
)

// Notifier shows a best-effort message. Implementations never fail.
type Notifier interface {
	Notify(title, text string, isError bool)
}

// Native delivers messages through the OS and prints them when that fails.
type Native struct {
	stdout io.Writer
	stderr io.Writer
	show   func(title, text string, isError bool) error
}

// New returns a Native notifier writing its console fallback to stdout/stderr.
func New(stdout, stderr io.Writer) *Native {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Native{stdout: stdout, stderr: stderr, show: showNative}
}

// Notify implements Notifier.
func (native *Native) Notify(title, text string, isError bool) {
	if err := native.tryShow(title, text, isError); err != nil {
		native.console(title, text, isError)
	}
}

func (native *Native) tryShow(title, text string, isError bool) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("notify: %v", recovered)
		}
	}()
	if native.show == nil {
		return fmt.Errorf("notify: no native backend")
	}
	return native.show(title, text, isError)
}

func (native *Native) console(title, text string, isError bool) {
	out := native.stdout
	if isError {
		out = native.stderr
	}
	_, _ = fmt.Fprintf(out, "[%s] %s\n", title, text)
}
