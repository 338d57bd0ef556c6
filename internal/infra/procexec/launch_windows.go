//go:build windows

package procexec

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// SpawnLauncher runs the downstream program as a child and waits. Windows
// has no real exec, so termination signals are ignored in this process;
// the console delivers them to the child too, which stays the one that
// reacts while we stick around to report its exit code.
type SpawnLauncher struct{}

func NewLauncher() Launcher {
	return SpawnLauncher{}
}

func (SpawnLauncher) Launch(argv []string) (int, error) {
	signal.Ignore(os.Interrupt, syscall.SIGTERM)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("run %s: %w", argv[0], err)
	}
	return 0, nil
}
