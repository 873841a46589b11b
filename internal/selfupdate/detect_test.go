// SPDX-License-Identifier: MPL-2.0

package selfupdate

import (
	"path/filepath"
	"runtime/debug"
	"testing"

	"grip-cli/internal/testutil"
)

func TestDetectInstallMethod_Homebrew(t *testing.T) {
	paths := []string{
		"/opt/homebrew/bin/grip",
		"/usr/local/Cellar/grip/1.0.0/bin/grip",
		"/home/linuxbrew/.linuxbrew/bin/grip",
	}
	for _, p := range paths {
		if got := DetectInstallMethod(p); got != InstallMethodHomebrew {
			t.Errorf("DetectInstallMethod(%q) = %v, want homebrew", p, got)
		}
	}
}

func TestDetectInstallMethod_Script(t *testing.T) {
	p := filepath.Join("/home/dev", ".local", "bin", "grip")
	if got := DetectInstallMethod(p); got != InstallMethodScript {
		t.Errorf("DetectInstallMethod(%q) = %v, want script", p, got)
	}
}

func TestDetectInstallMethod_GoInstall(t *testing.T) {
	gopath := t.TempDir()
	t.Cleanup(testutil.MustSetenv(t, "GOPATH", gopath))

	original := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Path: releaseModulePath}, true
	}
	t.Cleanup(func() { readBuildInfo = original })

	p := filepath.Join(gopath, "bin", "grip")
	if got := DetectInstallMethod(p); got != InstallMethodGoInstall {
		t.Errorf("DetectInstallMethod(%q) = %v, want goinstall", p, got)
	}
}

func TestDetectInstallMethod_GoInstallHomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Cleanup(testutil.MustSetenv(t, "GOPATH", ""))

	original := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Path: releaseModulePath}, true
	}
	t.Cleanup(func() { readBuildInfo = original })

	// With GOPATH unset the toolchain default ~/go applies.
	p := filepath.Join(home, "go", "bin", "grip")
	if got := DetectInstallMethod(p); got != InstallMethodGoInstall {
		t.Errorf("DetectInstallMethod(%q) = %v, want goinstall", p, got)
	}
}

func TestDetectInstallMethod_GOPATHWithoutBuildInfo(t *testing.T) {
	gopath := t.TempDir()
	t.Cleanup(testutil.MustSetenv(t, "GOPATH", gopath))

	original := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Path: "example.com/something-else"}, true
	}
	t.Cleanup(func() { readBuildInfo = original })

	// A binary merely sitting in GOPATH/bin is not a go-install.
	p := filepath.Join(gopath, "bin", "grip")
	if got := DetectInstallMethod(p); got == InstallMethodGoInstall {
		t.Errorf("DetectInstallMethod(%q) = goinstall, want heuristic rejection", p)
	}
}

func TestDetectInstallMethod_Hint(t *testing.T) {
	original := installMethodHint
	t.Cleanup(func() { installMethodHint = original })

	tests := []struct {
		hint string
		want InstallMethod
	}{
		{"homebrew", InstallMethodHomebrew},
		{"GoInstall", InstallMethodGoInstall},
		{"script", InstallMethodScript},
		{"garbage", InstallMethodUnknown},
	}
	for _, tt := range tests {
		installMethodHint = tt.hint
		if got := DetectInstallMethod("/opt/homebrew/bin/grip"); got != tt.want {
			t.Errorf("hint %q: DetectInstallMethod() = %v, want %v", tt.hint, got, tt.want)
		}
	}
}

func TestInstallMethod_Managed(t *testing.T) {
	if !InstallMethodHomebrew.Managed() || !InstallMethodGoInstall.Managed() {
		t.Error("homebrew and goinstall must be managed")
	}
	if InstallMethodScript.Managed() || InstallMethodUnknown.Managed() {
		t.Error("script and unknown must not be managed")
	}
}

func TestInstallMethod_String(t *testing.T) {
	if got := InstallMethodHomebrew.String(); got != "homebrew" {
		t.Errorf("String() = %q, want homebrew", got)
	}
	if got := InstallMethod(42).String(); got != "unknown" {
		t.Errorf("String() on out-of-range value = %q, want unknown", got)
	}
}
