// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"grip-cli/internal/issue"
)

func TestLoad_Defaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.HTTP.Proxy != "" {
		t.Errorf("default proxy = %q, want empty", cfg.HTTP.Proxy)
	}
	if cfg.HTTP.TimeoutSeconds != 30 {
		t.Errorf("default timeout = %d, want 30", cfg.HTTP.TimeoutSeconds)
	}
	if cfg.UI.Verbose {
		t.Error("default verbose = true, want false")
	}
}

func TestLoad_FromConfigFile(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	contents := "[http]\nproxy = \"http://proxy.corp:3128\"\ntimeout_seconds = 10\n\n[ui]\nverbose = true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.HTTP.Proxy != "http://proxy.corp:3128" {
		t.Errorf("proxy = %q, want %q", cfg.HTTP.Proxy, "http://proxy.corp:3128")
	}
	if cfg.HTTP.TimeoutSeconds != 10 {
		t.Errorf("timeout = %d, want 10", cfg.HTTP.TimeoutSeconds)
	}
	if !cfg.UI.Verbose {
		t.Error("verbose = false, want true")
	}
}

func TestLoad_ExplicitFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[http]\nproxy = \"http://other:8080\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	SetConfigFilePathOverride(path)
	t.Cleanup(Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.HTTP.Proxy != "http://other:8080" {
		t.Errorf("proxy = %q, want %q", cfg.HTTP.Proxy, "http://other:8080")
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.toml"))
	t.Cleanup(Reset)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() with missing --config file should fail")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should be an ActionableError, got %T", err)
	}
	if !ae.HasSuggestions() {
		t.Error("missing-file error should carry suggestions")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load() with invalid TOML should fail")
	}
}

func TestGenerateTOML_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HTTP.Proxy = "http://proxy.corp:3128"

	out, err := GenerateTOML(cfg)
	if err != nil {
		t.Fatalf("GenerateTOML() returned error: %v", err)
	}
	if !strings.Contains(out, "proxy = 'http://proxy.corp:3128'") && !strings.Contains(out, `proxy = "http://proxy.corp:3128"`) {
		t.Errorf("GenerateTOML() missing proxy entry:\n%s", out)
	}
	if !strings.Contains(out, "[http]") || !strings.Contains(out, "[ui]") {
		t.Errorf("GenerateTOML() missing sections:\n%s", out)
	}
}

func TestConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want override %q", got, dir)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "grip")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	cfg := DefaultConfig()
	cfg.HTTP.Proxy = "http://proxy.corp:3128"
	cfg.UI.Verbose = true

	path, err := Save(cfg)
	if err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	wantPath, err := FilePath()
	if err != nil {
		t.Fatalf("FilePath() returned error: %v", err)
	}
	if path != wantPath {
		t.Errorf("Save() path = %q, want %q", path, wantPath)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Save() left no file at %s: %v", path, err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() returned error: %v", err)
	}
	if loaded.HTTP.Proxy != cfg.HTTP.Proxy {
		t.Errorf("loaded proxy = %q, want %q", loaded.HTTP.Proxy, cfg.HTTP.Proxy)
	}
	if !loaded.UI.Verbose {
		t.Error("loaded verbose = false, want true")
	}
}

func TestEnsureConfigDir_CreatesMissingParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "grip")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() returned error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("config dir missing after EnsureConfigDir(): %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}

	// Idempotent on an existing directory.
	if err := EnsureConfigDir(); err != nil {
		t.Errorf("EnsureConfigDir() on existing dir returned error: %v", err)
	}
}
