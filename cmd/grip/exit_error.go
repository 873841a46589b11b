// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"grip-cli/pkg/types"
)

// ExitError signals a specific exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Silent reports whether the error should produce no output of its own.
// A child process that exited non-zero already wrote its diagnostics to
// the inherited streams; repeating anything here would double-report.
func (e *ExitError) Silent() bool {
	return e.Err == nil
}
