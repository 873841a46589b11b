// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared test helpers: environment manipulation
// (MustSetenv, SetHomeDir), directory operations (MustChdir, MustMkdirAll),
// and fake plugin executables (WriteExecutable).
package testutil
