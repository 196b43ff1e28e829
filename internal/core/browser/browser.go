// Package browser opens files in the user's default browser.
package browser

import (
	"os/exec"
	"runtime"
)

// Open launches the platform opener for path. The command is started,
// not waited on; browsers outlive us.
func Open(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
