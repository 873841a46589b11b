// SPDX-License-Identifier: MPL-2.0

// Package dispatch implements the command-resolution engine: the builtin
// registry, nearest-match suggestions for unknown commands, plugin
// subprocess launching with exit/signal propagation, and the glue that
// routes an invocation to the right one.
//
// Resolution order is fixed: builtins are consulted before plugin
// discovery, so a builtin always wins a name collision. Exactly one
// outcome is produced per invocation.
package dispatch
