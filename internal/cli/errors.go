package cli

import (
	"errors"
	"fmt"
	"io"

	checkoutapp "github.com/codecompany/recipeboot/internal/app/checkout"
	manifestapp "github.com/codecompany/recipeboot/internal/app/manifest"
	"github.com/codecompany/recipeboot/internal/app/paths"
)

type ErrorKind string

const (
	KindInternal   ErrorKind = "internal"
	KindValidation ErrorKind = "validation"
)

const (
	ExitInternal = 1
	ExitInvalid  = 2
)

type ExitError struct {
	Code    int
	Kind    ErrorKind
	Message string
	Err     error
}

func (e ExitError) Error() string {
	return errorMessage(e)
}

func NormalizeError(err error) ExitError {
	if err == nil {
		return ExitError{Code: 0}
	}
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code == 0 {
			exitErr.Code = ExitInternal
		}
		return exitErr
	}

	var malformed *manifestapp.MalformedManifestError
	switch {
	case errors.As(err, &malformed),
		errors.Is(err, paths.ErrManifestPathRequired),
		errors.Is(err, checkoutapp.ErrRepoRootRequired),
		errors.Is(err, checkoutapp.ErrInvalidFileURL):
		return ExitError{Code: ExitInvalid, Kind: KindValidation, Err: err}
	default:
		return ExitError{Code: ExitInternal, Kind: KindInternal, Err: err}
	}
}

func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return NormalizeError(err).Code
}

func writeCLIError(w io.Writer, exitErr ExitError) error {
	if exitErr.Code == 0 {
		return nil
	}
	prefix := "Error"
	if exitErr.Kind != "" {
		prefix = fmt.Sprintf("Error (%s)", exitErr.Kind)
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", prefix, errorMessage(exitErr))
	return err
}

func errorMessage(exitErr ExitError) string {
	if exitErr.Message != "" {
		return exitErr.Message
	}
	if exitErr.Err != nil {
		return exitErr.Err.Error()
	}
	return "unknown error"
}
