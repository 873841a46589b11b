// SPDX-License-Identifier: MPL-2.0

//go:build windows

package dispatch

import "os/exec"

// terminatingSignal never reports a signal on Windows; process termination
// always surfaces as an exit code there.
func terminatingSignal(*exec.ExitError) (int, bool) {
	return 0, false
}
