// SPDX-License-Identifier: MPL-2.0

// grip is a plugin-extensible package manager front-end: subcommands are
// either builtins or external grip-<command> executables discovered on the
// search path.
package main

import cmd "grip-cli/cmd/grip"

func main() {
	cmd.Execute()
}
