package platform

import (
	"fmt"
	"strings"
)

// MissingDependencyError lists runtime prerequisites that are not available.
type MissingDependencyError struct {
	Missing []string
}

func (err *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %s", strings.Join(err.Missing, ", "))
}

// VerifyEnvironment checks that the session can host a tray icon and accept
// synthetic input. It returns *MissingDependencyError when something is absent.
func VerifyEnvironment() error {
	missing := missingDependencies(lookupEnv)
	if len(missing) == 0 {
		return nil
	}
	return &MissingDependencyError{Missing: missing}
}
