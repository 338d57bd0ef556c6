package launch

import (
	"path/filepath"
	"runtime"
)

// EnvUsePy3 forces the python 3 runtime variant when set to "true".
const EnvUsePy3 = "RECIPES_USE_PY3"

// entryPoint is the engine's entry point relative to the engine checkout.
var entryPoint = []string{"recipe_engine", "main.py"}

// Service plans the downstream invocation: which runtime variant runs the
// engine and with what argument vector.
type Service struct {
	lookup Lookup
}

func NewService(lookup Lookup) *Service {
	return &Service{lookup: lookup}
}

// CheckRequired verifies the binaries every bootstrap needs before any
// manifest or checkout work happens.
func (s *Service) CheckRequired() error {
	for _, name := range []string{"git", "cipd"} {
		if err := s.check(binaryName(name)); err != nil {
			return err
		}
	}
	return nil
}

// Plan assembles the final argument vector for the engine at enginePath,
// forwarding args. usePy3 selects the python 3 variant; the chosen variant
// must be on PATH or planning fails.
func (s *Service) Plan(enginePath string, usePy3 bool, args []string) ([]string, error) {
	variant := "vpython"
	if usePy3 {
		variant = "vpython3"
	}
	variant = binaryName(variant)

	if err := s.check(variant); err != nil {
		return nil, err
	}

	main := filepath.Join(append([]string{enginePath}, entryPoint...)...)
	argv := make([]string, 0, len(args)+3)
	argv = append(argv, variant, "-u", main)
	argv = append(argv, args...)
	return argv, nil
}

func (s *Service) check(name string) error {
	if _, err := s.lookup.LookPath(name); err != nil {
		return &RequiredBinaryNotFoundError{Binary: name}
	}
	return nil
}

// binaryName appends the batch suffix on Windows, where the depot tools
// wrappers are .bat shims.
func binaryName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".bat"
	}
	return base
}
