// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"fmt"

	"grip-cli/pkg/types"
)

type (
	// NotFoundError reports a command that is neither a builtin nor a
	// discoverable plugin. Suggestion carries the nearest known command
	// name when one is close enough, otherwise it is empty.
	NotFoundError struct {
		Name       string
		Suggestion string
	}

	// LaunchError reports a plugin that resolved during discovery but
	// failed to spawn (permissions, the file disappearing, OS error).
	LaunchError struct {
		Path string
		Err  error
	}

	// ExitStatusError reports a child that ran and exited non-zero. The
	// message is deliberately empty-handed: the child already wrote its
	// own diagnostics to the inherited streams.
	ExitStatusError struct {
		Code types.ExitCode
	}

	// SignalError reports a child terminated by a signal.
	SignalError struct {
		Signal int
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("No such subcommand\n\n\tDid you mean `%s`?\n", e.Suggestion)
	}
	return "No such subcommand"
}

// ExitCode returns the exit code for an unknown command.
func (e *NotFoundError) ExitCode() types.ExitCode { return types.CodeNotFound }

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("subcommand failed to run: %v", e.Err)
}

// Unwrap returns the underlying spawn error.
func (e *LaunchError) Unwrap() error { return e.Err }

// ExitCode returns the exit code for a failed launch.
func (e *LaunchError) ExitCode() types.ExitCode { return types.CodeNotFound }

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode passes the child's code through verbatim.
func (e *ExitStatusError) ExitCode() types.ExitCode { return e.Code }

// Error implements the error interface.
func (e *SignalError) Error() string {
	return fmt.Sprintf("subcommand failed with signal: %d", e.Signal)
}

// ExitCode mirrors the signal number.
func (e *SignalError) ExitCode() types.ExitCode { return types.ExitCode(e.Signal) }
