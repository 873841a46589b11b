// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"grip-cli/internal/lockfile"
	"grip-cli/internal/pkgid"
	"grip-cli/internal/testutil"
)

const testManifest = `[package]
name = "widget"
version = "0.3.1"
`

const testLock = `version = 1

[[package]]
name = "widget"
version = "0.3.1"

[[package]]
name = "serde"
version = "1.0.219"
source = "registry+https://packages.example.com/index"
`

// writeProject lays out a grip project in a fresh temp dir and returns the
// manifest path.
func writeProject(t *testing.T, withLock bool) string {
	t.Helper()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "grip.toml")
	if err := os.WriteFile(manifestPath, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if withLock {
		if err := os.WriteFile(filepath.Join(dir, "grip.lock"), []byte(testLock), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return manifestPath
}

func runPkgid(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	pkgidCmd.SetOut(&out)
	pkgidCmd.SetErr(&out)
	pkgidCmd.SetArgs(args)
	t.Cleanup(func() {
		pkgidCmd.SetOut(nil)
		pkgidCmd.SetErr(nil)
		pkgidCmd.SetArgs(nil)
		pkgidManifestPath = ""
	})
	err := pkgidCmd.Execute()
	return out.String(), err
}

func TestPkgidCmd_ProjectID(t *testing.T) {
	isolate(t)
	manifestPath := writeProject(t, true)

	out, err := runPkgid(t, "--manifest-path", manifestPath)
	if err != nil {
		t.Fatalf("pkgid returned error: %v", err)
	}
	if got, want := strings.TrimSpace(out), "widget@0.3.1"; got != want {
		t.Errorf("pkgid output = %q, want %q", got, want)
	}
}

func TestPkgidCmd_SpecifierWithSource(t *testing.T) {
	isolate(t)
	manifestPath := writeProject(t, true)

	out, err := runPkgid(t, "--manifest-path", manifestPath, "serde")
	if err != nil {
		t.Fatalf("pkgid serde returned error: %v", err)
	}
	want := "registry+https://packages.example.com/index#serde@1.0.219"
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("pkgid output = %q, want %q", got, want)
	}
}

func TestPkgidCmd_MissingLockfile(t *testing.T) {
	isolate(t)
	manifestPath := writeProject(t, false)

	_, err := runPkgid(t, "--manifest-path", manifestPath)
	if !errors.Is(err, pkgid.ErrMissingLockfile) {
		t.Errorf("pkgid without lockfile error = %v, want ErrMissingLockfile", err)
	}
}

func TestPkgidCmd_WalksUpFromWorkingDirectory(t *testing.T) {
	isolate(t)
	manifestPath := writeProject(t, true)
	nested := filepath.Join(filepath.Dir(manifestPath), "src", "deep")
	testutil.MustMkdirAll(t, nested)
	t.Cleanup(testutil.MustChdir(t, nested))

	out, err := runPkgid(t)
	if err != nil {
		t.Fatalf("pkgid from nested dir returned error: %v", err)
	}
	if got, want := strings.TrimSpace(out), "widget@0.3.1"; got != want {
		t.Errorf("pkgid output = %q, want %q", got, want)
	}
}

func TestVerifyCmd(t *testing.T) {
	isolate(t)
	manifestPath := writeProject(t, true)
	t.Cleanup(testutil.MustChdir(t, filepath.Dir(manifestPath)))

	var out bytes.Buffer
	verifyCmd.SetOut(&out)
	t.Cleanup(func() { verifyCmd.SetOut(nil) })

	if err := verifyCmd.Execute(); err != nil {
		t.Fatalf("verify returned error: %v", err)
	}
	got := strings.TrimSpace(out.String())
	if want := "widget@0.3.1: 2 packages verified"; got != want {
		t.Errorf("verify output = %q, want %q", got, want)
	}
}

func TestVerifyCmd_DanglingDependency(t *testing.T) {
	isolate(t)
	manifestPath := writeProject(t, false)
	dir := filepath.Dir(manifestPath)
	broken := `version = 1

[[package]]
name = "widget"
version = "0.3.1"
dependencies = ["ghost"]
`
	if err := os.WriteFile(filepath.Join(dir, "grip.lock"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(testutil.MustChdir(t, dir))

	var out bytes.Buffer
	verifyCmd.SetOut(&out)
	verifyCmd.SetErr(&out)
	t.Cleanup(func() {
		verifyCmd.SetOut(nil)
		verifyCmd.SetErr(nil)
	})

	if err := verifyCmd.Execute(); !errors.Is(err, lockfile.ErrDanglingDependency) {
		t.Errorf("verify on broken lock = %v, want ErrDanglingDependency", err)
	}
}

func TestLocateProjectCmd(t *testing.T) {
	isolate(t)
	manifestPath := writeProject(t, false)
	t.Cleanup(testutil.MustChdir(t, filepath.Dir(manifestPath)))

	var out bytes.Buffer
	locateProjectCmd.SetOut(&out)
	locateProjectCmd.SetArgs(nil)
	t.Cleanup(func() { locateProjectCmd.SetOut(nil) })

	if err := locateProjectCmd.Execute(); err != nil {
		t.Fatalf("locate-project returned error: %v", err)
	}
	got := strings.TrimSpace(out.String())
	wantResolved, err := filepath.EvalSymlinks(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	gotResolved, err := filepath.EvalSymlinks(got)
	if err != nil {
		t.Fatalf("locate-project printed %q: %v", got, err)
	}
	if gotResolved != wantResolved {
		t.Errorf("locate-project = %q, want %q", gotResolved, wantResolved)
	}
}

func TestLocateProjectCmd_NotFound(t *testing.T) {
	isolate(t)
	t.Cleanup(testutil.MustChdir(t, t.TempDir()))

	var out bytes.Buffer
	locateProjectCmd.SetOut(&out)
	locateProjectCmd.SetErr(&out)
	t.Cleanup(func() {
		locateProjectCmd.SetOut(nil)
		locateProjectCmd.SetErr(nil)
	})

	err := locateProjectCmd.Execute()
	if !errors.Is(err, pkgid.ErrManifestNotFound) {
		t.Errorf("locate-project outside a project error = %v, want ErrManifestNotFound", err)
	}
}
