package bypass

import (
	"fmt"
	"os/exec"
)

// StartMirror launches the scrcpy screen mirroring utility as a detached
// process. The mirroring session outlives the current run and is not
// coordinated with it.
func StartMirror(serial string) error {
	path, err := exec.LookPath("scrcpy")
	if err != nil {
		return fmt.Errorf("scrcpy not found: %w", err)
	}

	var args []string
	if serial != "" {
		args = append(args, "-s", serial)
	}

	// Stdout and stderr are discarded
	cmd := exec.Command(path, args...)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch scrcpy: %w", err)
	}

	// Detach from the process
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("detach from scrcpy: %w", err)
	}

	return nil
}
