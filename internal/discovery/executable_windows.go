// SPDX-License-Identifier: MPL-2.0

//go:build windows

package discovery

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// isExecutable is the default executable predicate on Windows: a regular
// file with the .exe extension. Permission bits carry no meaning here.
func isExecutable(path string, info fs.FileInfo) bool {
	return info.Mode().IsRegular() && strings.EqualFold(filepath.Ext(path), ".exe")
}
