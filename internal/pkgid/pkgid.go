// SPDX-License-Identifier: MPL-2.0

// Package pkgid resolves package-identifier specifiers against a project's
// dependency snapshot. The actual matching lives in the lockfile
// collaborator; this package owns manifest loading, the missing-lock-file
// policy, and the specifier-form rendering of the result.
package pkgid

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"grip-cli/internal/issue"
	"grip-cli/internal/lockfile"

	"github.com/pelletier/go-toml/v2"
)

const (
	// ManifestFileName is the project manifest's name.
	ManifestFileName = "grip.toml"
)

// ErrMissingLockfile is the sentinel error for a project without a grip.lock.
var ErrMissingLockfile = errors.New("lock file missing")

// ErrManifestNotFound is the sentinel error when no manifest exists in the
// start directory or any of its ancestors.
var ErrManifestNotFound = errors.New("manifest not found")

type (
	// PackageID is a fully qualified package identifier.
	PackageID struct {
		Name    string
		Version string
		// Source is empty for the project itself and for path dependencies.
		Source string
	}

	// manifest is the on-disk TOML shape of grip.toml, reduced to the
	// fields this package needs.
	manifest struct {
		Package struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"package"`
	}
)

// Spec renders the identifier in specifier form: "name@version", prefixed
// with "source#" when the source is known.
func (id PackageID) Spec() string {
	if id.Source != "" {
		return fmt.Sprintf("%s#%s@%s", id.Source, id.Name, id.Version)
	}
	return fmt.Sprintf("%s@%s", id.Name, id.Version)
}

// LocateManifest walks upward from startDir looking for grip.toml and
// returns its absolute path.
func LocateManifest(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", issue.NewErrorContext().
				WithOperation("locate project").
				WithResource(startDir).
				WithSuggestion("Run inside a grip project, or create one with 'grip new'").
				Wrap(ErrManifestNotFound).
				BuildError()
		}
		dir = parent
	}
}

// Resolve loads the project rooted at manifestPath's directory and returns
// the fully qualified identifier for spec. With an empty spec it returns
// the project's own identifier. The dependency snapshot must already exist
// as a lock file beside the manifest; its absence is a reported error, not
// a trigger for resolution.
func Resolve(manifestPath, spec string) (PackageID, error) {
	project, err := loadManifest(manifestPath)
	if err != nil {
		return PackageID{}, err
	}

	lockPath := filepath.Join(filepath.Dir(manifestPath), lockfile.FileName)
	snapshot, err := lockfile.Load(lockPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return PackageID{}, issue.NewErrorContext().
				WithOperation("load dependency snapshot").
				WithResource(lockPath).
				WithSuggestion("A grip.lock must exist for this command").
				WithSuggestion("Run 'grip generate-lockfile' to create one").
				Wrap(ErrMissingLockfile).
				BuildError()
		}
		return PackageID{}, issue.WrapWithOperation(err, "load dependency snapshot")
	}

	if spec == "" {
		return project, nil
	}

	pkg, err := snapshot.Query(spec)
	if err != nil {
		return PackageID{}, err
	}
	return PackageID{Name: pkg.Name, Version: pkg.Version, Source: pkg.Source}, nil
}

// loadManifest reads the project's own identifier out of grip.toml.
func loadManifest(manifestPath string) (PackageID, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return PackageID{}, issue.NewErrorContext().
			WithOperation("load manifest").
			WithResource(manifestPath).
			WithSuggestion("Check that the path points at a grip.toml").
			Wrap(err).
			BuildError()
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return PackageID{}, issue.NewErrorContext().
			WithOperation("parse manifest").
			WithResource(manifestPath).
			WithSuggestion("Check that the file contains valid TOML syntax").
			Wrap(err).
			BuildError()
	}

	if m.Package.Name == "" || m.Package.Version == "" {
		return PackageID{}, issue.NewErrorContext().
			WithOperation("parse manifest").
			WithResource(manifestPath).
			WithSuggestion("The [package] table must define both name and version").
			Wrap(fmt.Errorf("incomplete package table")).
			BuildError()
	}

	return PackageID{Name: m.Package.Name, Version: m.Package.Version}, nil
}
