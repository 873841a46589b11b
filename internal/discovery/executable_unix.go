// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package discovery

import "io/fs"

// isExecutable is the default executable predicate on POSIX platforms:
// a regular file with at least one execute permission bit set.
func isExecutable(_ string, info fs.FileInfo) bool {
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
