package procexec

import "os/exec"

// Launcher hands control to the downstream program. On platforms with a real
// exec the call never returns on success; elsewhere it returns the child's
// exit code.
type Launcher interface {
	Launch(argv []string) (int, error)
}

// PathLookup resolves binaries on the ambient PATH.
type PathLookup struct{}

func (PathLookup) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
