// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package dispatch

import (
	"os/exec"
	"syscall"
)

// terminatingSignal extracts the signal number when the child was killed by
// a signal rather than exiting normally.
func terminatingSignal(exitErr *exec.ExitError) (int, bool) {
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return 0, false
	}
	return int(status.Signal()), true
}
