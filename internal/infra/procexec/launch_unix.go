//go:build !windows

package procexec

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// ExecLauncher replaces the current process with the downstream program.
// Streams, environment, and exit status all belong to the replacement; a
// return from Launch means the exec itself failed.
type ExecLauncher struct{}

func NewLauncher() Launcher {
	return ExecLauncher{}
}

func (ExecLauncher) Launch(argv []string) (int, error) {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return 1, fmt.Errorf("locate %s: %w", argv[0], err)
	}

	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return 1, fmt.Errorf("exec %s: %w", argv[0], err)
	}
	// Unreachable: a successful exec does not return.
	return 0, nil
}
