//go:build !linux && !darwin && !windows

package notify

import "errors"

func showNative(string, string, bool) error {
	return errors.New("notify: unsupported platform")
}
