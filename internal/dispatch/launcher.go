// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"grip-cli/pkg/types"
)

// ErrNoSuchSubcommand marks a launch failure caused by the executable not
// existing at spawn time (it raced away after discovery, or was never there).
var ErrNoSuchSubcommand = errors.New("no such subcommand")

// OutcomeKind discriminates the four possible terminations of a plugin launch.
type OutcomeKind int

const (
	// OutcomeSuccess means the child exited normally with code 0.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeExit means the child exited normally with a non-zero code.
	OutcomeExit
	// OutcomeSignaled means the child was terminated by a signal.
	OutcomeSignaled
	// OutcomeLaunchFailed means the child never ran (missing executable,
	// permissions, or another OS-level spawn error).
	OutcomeLaunchFailed
)

type (
	// Outcome is the result of exactly one subprocess invocation.
	Outcome struct {
		Kind OutcomeKind
		// Code is the child's exit code; meaningful for OutcomeExit.
		Code types.ExitCode
		// Signal is the terminating signal number; meaningful for OutcomeSignaled.
		Signal int
		// Err describes the spawn failure; meaningful for OutcomeLaunchFailed.
		Err error
	}

	// Launcher spawns plugin executables with the parent's standard streams.
	// The zero value inherits os.Stdin/os.Stdout/os.Stderr.
	Launcher struct {
		// Stdin, Stdout, Stderr override the inherited streams (tests).
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// ExitCode maps the outcome to the dispatcher's own exit code: 0 on
// success, the child's code verbatim, the signal number for a signaled
// child, and 127 when the launch itself failed.
func (o Outcome) ExitCode() types.ExitCode {
	switch o.Kind {
	case OutcomeExit:
		return o.Code
	case OutcomeSignaled:
		return types.ExitCode(o.Signal)
	case OutcomeLaunchFailed:
		return types.CodeNotFound
	default:
		return 0
	}
}

// Run spawns executable with args, streaming the parent's stdio directly to
// the child (no capturing, no buffering), and blocks until the child
// terminates. Exactly one Outcome is produced per call.
func (l *Launcher) Run(ctx context.Context, executable string, args []string) Outcome {
	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Stdin = l.stdin()
	cmd.Stdout = l.stdout()
	cmd.Stderr = l.stderr()

	err := cmd.Run()
	if err == nil {
		return Outcome{Kind: OutcomeSuccess}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if sig, ok := terminatingSignal(exitErr); ok {
			return Outcome{Kind: OutcomeSignaled, Signal: sig}
		}
		return Outcome{Kind: OutcomeExit, Code: types.ExitCode(exitErr.ExitCode())}
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return Outcome{Kind: OutcomeLaunchFailed, Err: ErrNoSuchSubcommand}
	}
	return Outcome{Kind: OutcomeLaunchFailed, Err: err}
}

func (l *Launcher) stdin() io.Reader {
	if l.Stdin != nil {
		return l.Stdin
	}
	return os.Stdin
}

func (l *Launcher) stdout() io.Writer {
	if l.Stdout != nil {
		return l.Stdout
	}
	return os.Stdout
}

func (l *Launcher) stderr() io.Writer {
	if l.Stderr != nil {
		return l.Stderr
	}
	return os.Stderr
}
