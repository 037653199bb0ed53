//go:build linux

package notify

import (
	"context"
	"os/exec"
	"time"
)

func showNative(title, text string, isError bool) error {
	icon := "dialog-information"
	if isError {
		icon = "dialog-error"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "notify-send", "-i", icon, title, text).Run()
}
