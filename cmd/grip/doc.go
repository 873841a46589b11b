// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the grip CLI: the root command, the builtin
// subcommands, and the glue that routes everything else to external
// plugin executables.
package cmd
