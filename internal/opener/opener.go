// Package opener hands URLs and file paths to the operating system's
// default handler.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener launches the viewer for a target. An explicit command from the
// global config takes precedence over the platform default.
type Opener struct {
	command string
}

// New returns an opener. command may be empty to use the platform
// default.
func New(command string) *Opener {
	return &Opener{command: command}
}

// Open hands target to the viewer without waiting for it to exit.
func (o *Opener) Open(target string) error {
	cmd, err := o.openCommand(target)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	return nil
}

func (o *Opener) openCommand(target string) (*exec.Cmd, error) {
	if o.command != "" {
		return exec.Command(o.command, target), nil
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
