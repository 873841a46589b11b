// SPDX-License-Identifier: MPL-2.0

// Package lockfile reads a project's dependency snapshot from grip.lock.
//
// The snapshot is a previously persisted resolution of the dependency
// graph. This package only queries it; nothing here ever mutates or
// rewrites the lock file.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"grip-cli/internal/depgraph"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the lock file's name, expected beside the manifest.
const FileName = "grip.lock"

var (
	// ErrInvalidSpec is the sentinel error for malformed package specifiers.
	ErrInvalidSpec = errors.New("invalid package specifier")
	// ErrNoMatch is the sentinel error when no package matches a specifier.
	ErrNoMatch = errors.New("no matching package")
	// ErrAmbiguous is the sentinel error when a specifier matches several packages.
	ErrAmbiguous = errors.New("ambiguous package specifier")
	// ErrDanglingDependency is the sentinel error for a recorded dependency
	// that names no package in the snapshot.
	ErrDanglingDependency = errors.New("dangling dependency")
)

type (
	// Package is one resolved dependency in the snapshot.
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
		// Source identifies where the package came from (registry or VCS
		// URL). Empty for path dependencies.
		Source string `toml:"source,omitempty"`
		// Dependencies lists the names of packages this one depends on,
		// as recorded when the snapshot was written.
		Dependencies []string `toml:"dependencies,omitempty"`
	}

	// Snapshot is an immutable view of the resolved dependency graph.
	Snapshot struct {
		packages []Package
	}

	// InvalidSpecError reports a specifier the grammar cannot parse.
	InvalidSpecError struct {
		Spec   string
		Reason string
	}

	// NoMatchError reports a specifier matching nothing in the snapshot.
	NoMatchError struct {
		Spec string
	}

	// AmbiguousError reports a specifier matching more than one package.
	AmbiguousError struct {
		Spec       string
		Candidates []Package
	}

	// lockFile is the on-disk TOML shape of grip.lock.
	lockFile struct {
		Version  int       `toml:"version"`
		Packages []Package `toml:"package"`
	}
)

// Load reads and parses the lock file at path. A missing file surfaces as
// an error satisfying errors.Is(err, fs.ErrNotExist) so callers can decide
// how loudly to report it.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lf lockFile
	if err := toml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse lock file %s: %w", path, err)
	}

	return &Snapshot{packages: lf.Packages}, nil
}

// Packages returns a copy of the snapshot's package list.
func (s *Snapshot) Packages() []Package {
	out := make([]Package, len(s.packages))
	copy(out, s.packages)
	return out
}

// Verify checks the internal consistency of the snapshot: every recorded
// dependency must name a package present in the snapshot, and the recorded
// graph must be acyclic. A healthy snapshot returns the package names in
// dependency-first build order.
func (s *Snapshot) Verify() ([]string, error) {
	g := depgraph.New()
	for _, pkg := range s.packages {
		g.AddPackage(pkg.Name)
	}

	var dangling []string
	for _, pkg := range s.packages {
		for _, dep := range pkg.Dependencies {
			if !g.Contains(dep) {
				dangling = append(dangling, fmt.Sprintf("%s -> %s", pkg.Name, dep))
				continue
			}
			g.AddDependency(pkg.Name, dep)
		}
	}
	if len(dangling) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDanglingDependency, strings.Join(dangling, ", "))
	}

	return g.BuildOrder()
}

// Query resolves a package-identifier specifier against the snapshot.
// The grammar is "name" or "name@version". A bare name must identify
// exactly one package; when several versions of the same name are present,
// the version must be given.
func (s *Snapshot) Query(spec string) (Package, error) {
	name, version, err := parseSpec(spec)
	if err != nil {
		return Package{}, err
	}

	var matches []Package
	for _, pkg := range s.packages {
		if pkg.Name != name {
			continue
		}
		if version != "" && pkg.Version != version {
			continue
		}
		matches = append(matches, pkg)
	}

	switch len(matches) {
	case 0:
		return Package{}, &NoMatchError{Spec: spec}
	case 1:
		return matches[0], nil
	default:
		return Package{}, &AmbiguousError{Spec: spec, Candidates: matches}
	}
}

// parseSpec splits "name[@version]" and validates both halves.
func parseSpec(spec string) (name, version string, err error) {
	name = spec
	if at := strings.IndexByte(spec, '@'); at >= 0 {
		name, version = spec[:at], spec[at+1:]
		if version == "" {
			return "", "", &InvalidSpecError{Spec: spec, Reason: "empty version after '@'"}
		}
	}
	if name == "" {
		return "", "", &InvalidSpecError{Spec: spec, Reason: "empty package name"}
	}
	return name, version, nil
}

// Error implements the error interface.
func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid package specifier %q: %s", e.Spec, e.Reason)
}

// Unwrap returns ErrInvalidSpec for errors.Is() compatibility.
func (e *InvalidSpecError) Unwrap() error { return ErrInvalidSpec }

// Error implements the error interface.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("package %q not found in the dependency snapshot", e.Spec)
}

// Unwrap returns ErrNoMatch for errors.Is() compatibility.
func (e *NoMatchError) Unwrap() error { return ErrNoMatch }

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "specifier %q matches multiple packages:", e.Spec)
	for _, pkg := range e.Candidates {
		fmt.Fprintf(&sb, "\n  %s@%s", pkg.Name, pkg.Version)
	}
	return sb.String()
}

// Unwrap returns ErrAmbiguous for errors.Is() compatibility.
func (e *AmbiguousError) Unwrap() error { return ErrAmbiguous }
