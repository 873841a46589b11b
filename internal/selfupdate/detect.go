// SPDX-License-Identifier: MPL-2.0

package selfupdate

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	homebrewMacARM   = "/opt/homebrew/"
	homebrewMacIntel = "/usr/local/Cellar/"
	homebrewLinux    = "/home/linuxbrew/.linuxbrew/"

	// scriptInstallDir is where the install script drops the binary.
	scriptInstallDir = "/.local/bin/"

	// releaseModulePath confirms a go-install origin via build info.
	releaseModulePath = "github.com/grip-sh/grip"

	// InstallMethodUnknown means a manual download or an unrecognized
	// layout. In-place replacement is still attempted on non-Windows.
	InstallMethodUnknown InstallMethod = iota
	// InstallMethodScript means the shell install script placed the
	// binary under ~/.local/bin.
	InstallMethodScript
	// InstallMethodHomebrew defers upgrades to brew.
	InstallMethodHomebrew
	// InstallMethodGoInstall defers upgrades to go install.
	InstallMethodGoInstall
)

// installMethodHint is injected via -ldflags by packaging pipelines and
// overrides all detection heuristics.
var installMethodHint string

// readBuildInfo is a seam for debug.ReadBuildInfo.
var readBuildInfo = debug.ReadBuildInfo

// InstallMethod says how the running binary got onto this system, which
// decides whether an upgrade is applied in place or deferred to the
// managing package manager.
type InstallMethod int

func (m InstallMethod) String() string {
	switch m {
	case InstallMethodScript:
		return "script"
	case InstallMethodHomebrew:
		return "homebrew"
	case InstallMethodGoInstall:
		return "goinstall"
	default:
		return "unknown"
	}
}

// Managed reports whether upgrades belong to an external package manager.
func (m InstallMethod) Managed() bool {
	return m == InstallMethodHomebrew || m == InstallMethodGoInstall
}

// DetectInstallMethod classifies execPath. The ldflags hint wins outright;
// after that come Homebrew prefixes, GOPATH/bin (confirmed against build
// info so a hand-copied binary in GOPATH/bin does not count), and the
// install script's directory.
func DetectInstallMethod(execPath string) InstallMethod {
	if installMethodHint != "" {
		return parseMethodHint(installMethodHint)
	}

	if strings.Contains(execPath, homebrewMacARM) ||
		strings.Contains(execPath, homebrewMacIntel) ||
		strings.Contains(execPath, homebrewLinux) {
		return InstallMethodHomebrew
	}

	if inGOPATHBin(execPath) && builtFromReleaseModule() {
		return InstallMethodGoInstall
	}

	if strings.Contains(execPath, scriptInstallDir) {
		return InstallMethodScript
	}

	return InstallMethodUnknown
}

func parseMethodHint(hint string) InstallMethod {
	switch strings.ToLower(hint) {
	case "homebrew":
		return InstallMethodHomebrew
	case "goinstall":
		return InstallMethodGoInstall
	case "script":
		return InstallMethodScript
	default:
		return InstallMethodUnknown
	}
}

// inGOPATHBin checks the path against $GOPATH/bin, defaulting to ~/go
// like the toolchain does. The separator suffix keeps /home/u/gobin from
// matching /home/u/go/bin.
func inGOPATHBin(execPath string) bool {
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return false
		}
		gopath = filepath.Join(home, "go")
	}

	binDir := filepath.Clean(filepath.Join(gopath, "bin"))
	clean := filepath.Clean(execPath)
	return clean == binDir || strings.HasPrefix(clean, binDir+string(filepath.Separator))
}

func builtFromReleaseModule() bool {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return false
	}
	return strings.Contains(info.Path, releaseModulePath)
}
