package pipeline

import "fmt"

// Process exit codes. They are stable so scripts can branch on them.
const (
	ExitOK      = 0
	ExitSetup   = 1
	ExitUsage   = 2
	ExitFetch   = 3
	ExitConvert = 4
)

// ExitError carries the exit code for a failed run.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
