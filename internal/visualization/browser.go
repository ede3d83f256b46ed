package visualization

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open shows a rendered file or URL with the platform's default viewer.
// It supports Linux (xdg-open), macOS (open), and Windows (cmd start).
func Open(target string) error {
	cmd, err := viewerCommand(runtime.GOOS, target)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func viewerCommand(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "linux":
		return exec.Command("xdg-open", target), nil
	case "darwin":
		return exec.Command("open", target), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
