// SPDX-License-Identifier: MPL-2.0

// Package discovery locates external plugin subcommands.
//
// Plugins are standalone executables named grip-<command> (plus the platform
// executable suffix) installed in one of the ordered search directories:
// the sibling lib directory of the running binary, the binary's own
// directory, and every entry of $PATH in order.
//
// Search order matters for execution — Resolve returns the first match —
// but not for listing, where every directory is scanned and the results are
// unioned and sorted. A partially broken environment (unreadable
// directories, missing PATH) is normal, not an error: such directories
// simply contribute nothing.
package discovery
