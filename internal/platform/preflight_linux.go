//go:build linux

package platform

import "os"

var lookupEnv = os.Getenv

func missingDependencies(getenv func(string) string) []string {
	var missing []string
	if getenv("DISPLAY") == "" && getenv("WAYLAND_DISPLAY") == "" {
		missing = append(missing, "graphical session (DISPLAY or WAYLAND_DISPLAY)")
	}
	return missing
}
