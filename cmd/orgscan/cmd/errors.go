package cmd

import (
	"errors"
	"fmt"

	"github.com/corey/orgscan/internal/app"
)

// Process exit codes.
const (
	exitOK         = 0
	exitViolations = 1 // scan --fail-on-violation found something
	exitFailure    = 2 // configuration or runtime error
	exitMismatch   = 3 // --verify disagreement
)

// scanExit is returned to signal a specific exit code without an error
// message, e.g. when violations were found and reported.
type scanExit struct{ code int }

func (e scanExit) Error() string {
	switch e.code {
	case exitOK, exitViolations:
		return ""
	default:
		return fmt.Sprintf("scan failed (exit %d)", e.code)
	}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var se scanExit
	if errors.As(err, &se) {
		return se.code
	}
	if errors.Is(err, app.ErrVerifyMismatch) {
		return exitMismatch
	}
	return exitFailure
}
