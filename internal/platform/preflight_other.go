//go:build !linux

package platform

import "os"

var lookupEnv = os.Getenv

// Windows and macOS always run with a desktop session when a user is logged in.
func missingDependencies(func(string) string) []string {
	return nil
}
