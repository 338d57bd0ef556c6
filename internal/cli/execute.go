package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	launchapp "github.com/codecompany/recipeboot/internal/app/launch"
)

// Execute runs the bootstrap and returns the process exit code: the
// downstream engine's own code after a spawn-style handoff, 1 with a plain
// message when a required binary is missing, and a normalized error code for
// everything else. On platforms with a real exec a successful run never gets
// back here.
func Execute() int {
	exitCode := 0
	cmd := newRootCmd(&exitCode)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		var notFound *launchapp.RequiredBinaryNotFoundError
		if errors.As(err, &notFound) {
			fmt.Println(notFound.Error())
			return 1
		}
		exitErr := NormalizeError(err)
		_ = writeCLIError(cmd.ErrOrStderr(), exitErr)
		return exitErr.Code
	}
	return exitCode
}
