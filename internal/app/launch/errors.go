package launch

import "fmt"

// RequiredBinaryNotFoundError is the one handled, non-crashing failure: a
// binary the bootstrap cannot work without is missing from PATH.
type RequiredBinaryNotFoundError struct {
	Binary string
}

func (e *RequiredBinaryNotFoundError) Error() string {
	return fmt.Sprintf("Required binary is not found on PATH: %s", e.Binary)
}
