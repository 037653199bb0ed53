//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

func showNative(title, text string, isError bool) error {
	kind := "informational"
	if isError {
		kind = "critical"
	}
	script := fmt.Sprintf(`display alert "%s" message "%s" as %s`, quoteScript(title), quoteScript(text), kind)
	return exec.Command("osascript", "-e", script).Run()
}

// quoteScript escapes a value for an AppleScript string literal.
func quoteScript(value string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
}
