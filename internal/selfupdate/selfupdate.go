// SPDX-License-Identifier: MPL-2.0

package selfupdate

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"grip-cli/internal/platform"

	"golang.org/x/mod/semver"
)

// maxBinaryBytes bounds the extracted binary (500 MB) so a crafted
// archive cannot decompress without limit.
const maxBinaryBytes = 500 << 20

// digestsAssetName is the artifact carrying the release's SHA256 sums.
const digestsAssetName = "checksums.txt"

var (
	// ErrInvalidVersion is the sentinel error for a malformed version.
	ErrInvalidVersion = errors.New("invalid semantic version")
	// ErrAssetNotFound is the sentinel error for a release missing an
	// expected artifact.
	ErrAssetNotFound = errors.New("release asset not found")

	// Seams for os.Executable and filepath.EvalSymlinks.
	osExecutable = os.Executable
	evalSymlinks = filepath.EvalSymlinks
)

type (
	// Check is the outcome of comparing the running binary against a
	// release. Target is nil when nothing applicable is available.
	Check struct {
		CurrentVersion string
		LatestVersion  string
		Target         *Release
		Method         InstallMethod
		Message        string
	}

	// Updater composes release lookup, install detection, and digest
	// verification into the upgrade flow.
	Updater struct {
		client  *Client
		version string
	}

	// UpdaterOption configures an Updater during construction.
	UpdaterOption func(*Updater)
)

// WithClient overrides the release client.
func WithClient(c *Client) UpdaterOption {
	return func(u *Updater) { u.client = c }
}

// NewUpdater creates an Updater for the currently running version.
func NewUpdater(currentVersion string, opts ...UpdaterOption) *Updater {
	u := &Updater{version: currentVersion}
	for _, opt := range opts {
		opt(u)
	}
	if u.client == nil {
		u.client = NewClient()
	}
	return u
}

// Available reports whether the check found an applicable upgrade.
func (c *Check) Available() bool { return c.Target != nil }

// Check compares the running version against the latest stable release,
// or against targetVersion when given. Managed installs short-circuit
// with package-manager guidance and never touch the network.
func (u *Updater) Check(ctx context.Context, targetVersion string) (*Check, error) {
	execPath, err := resolveExecPath()
	if err != nil {
		return nil, fmt.Errorf("resolving executable path: %w", err)
	}

	method := DetectInstallMethod(execPath)
	if method.Managed() {
		return &Check{
			CurrentVersion: u.version,
			Method:         method,
			Message:        managedMessage(method, execPath),
		}, nil
	}

	var release *Release
	if targetVersion != "" {
		tag, err := normalizeVersion(targetVersion)
		if err != nil {
			return nil, err
		}
		release, err = u.client.ByTag(ctx, tag)
		if err != nil {
			return nil, err
		}
	} else {
		release, err = u.client.Latest(ctx)
		if err != nil {
			return nil, err
		}
	}

	current, err := normalizeVersion(u.version)
	if err != nil {
		return nil, fmt.Errorf("current version: %w", err)
	}
	target, err := normalizeVersion(release.TagName)
	if err != nil {
		return nil, fmt.Errorf("release version: %w", err)
	}

	if semver.Compare(current, target) >= 0 {
		msg := "Already up to date."
		if semver.Prerelease(current) != "" {
			msg = fmt.Sprintf("Running pre-release %s (ahead of %s).", u.version, release.TagName)
		}
		return &Check{
			CurrentVersion: u.version,
			LatestVersion:  release.TagName,
			Method:         method,
			Message:        msg,
		}, nil
	}

	return &Check{
		CurrentVersion: u.version,
		LatestVersion:  release.TagName,
		Target:         release,
		Method:         method,
		Message:        fmt.Sprintf("Upgrade available: %s -> %s", u.version, release.TagName),
	}, nil
}

// Apply downloads the release archive, verifies it against the published
// digests, and replaces the running binary with os.Rename. All temp files
// live in the binary's directory so the final rename stays on one
// filesystem and is atomic.
func (u *Updater) Apply(ctx context.Context, release *Release) error {
	if release == nil {
		return errors.New("release must not be nil")
	}

	execPath, err := resolveExecPath()
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}

	// Windows locks a running binary, so in-place replacement only works
	// when a packaging pipeline arranged for it.
	if runtime.GOOS == platform.Windows && DetectInstallMethod(execPath) == InstallMethodUnknown {
		return errors.New("in-place upgrade is not supported for manual installations on Windows; download the new release from the releases page")
	}

	archiveName := fmt.Sprintf("grip_%s_%s_%s.tar.gz",
		strings.TrimPrefix(release.TagName, "v"), runtime.GOOS, runtime.GOARCH)

	archiveAsset, err := findAsset(release.Assets, archiveName)
	if err != nil {
		return err
	}
	digestsAsset, err := findAsset(release.Assets, digestsAssetName)
	if err != nil {
		return err
	}

	// Fetch the small digests file first so a bad archive is rejected
	// before the large download is even attempted on mismatch.
	digestsBody, err := u.client.Download(ctx, digestsAsset.DownloadURL)
	if err != nil {
		return fmt.Errorf("downloading digests: %w", err)
	}
	defer digestsBody.Close()

	digests, err := ParseDigests(digestsBody)
	if err != nil {
		return fmt.Errorf("parsing digests: %w", err)
	}
	expected, ok := digests[archiveName]
	if !ok {
		return fmt.Errorf("%s: %w", archiveName, ErrDigestMissing)
	}

	targetDir := filepath.Dir(execPath)

	archivePath, err := u.downloadTo(ctx, archiveAsset.DownloadURL, targetDir)
	if err != nil {
		return fmt.Errorf("downloading archive: %w", err)
	}
	defer os.Remove(archivePath)

	if err := VerifyFile(archivePath, expected); err != nil {
		return err
	}

	newBinary, err := extractBinary(archivePath, targetDir)
	if err != nil {
		return err
	}

	replaced := false
	defer func() {
		if !replaced {
			os.Remove(newBinary)
		}
	}()

	info, err := os.Stat(execPath)
	if err != nil {
		return fmt.Errorf("reading current binary permissions: %w", err)
	}
	if err := os.Chmod(newBinary, info.Mode()); err != nil {
		return fmt.Errorf("setting binary permissions: %w", err)
	}

	if err := os.Rename(newBinary, execPath); err != nil {
		return fmt.Errorf("replacing binary: %w", err)
	}
	replaced = true

	return nil
}

// downloadTo streams url into a temp file inside dir and returns its path.
func (u *Updater) downloadTo(ctx context.Context, url, dir string) (_ string, err error) {
	body, err := u.client.Download(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(dir, "grip-download-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if closeErr := tmp.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err := io.Copy(tmp, body); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing download: %w", err)
	}
	return tmp.Name(), nil
}

// extractBinary pulls the grip binary out of the tar.gz archive into a
// temp file beside the target. Entries are matched by base name so both
// flat and nested archive layouts work.
func extractBinary(archivePath, targetDir string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("reading archive: %w", err)
	}
	defer gz.Close()

	binaryName := "grip" + platform.ExeSuffix()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading archive entry: %w", err)
		}
		if filepath.Base(hdr.Name) != binaryName {
			continue
		}

		tmp, err := os.CreateTemp(targetDir, "grip-upgrade-*")
		if err != nil {
			return "", fmt.Errorf("creating temp binary: %w", err)
		}
		if _, err := io.Copy(tmp, io.LimitReader(tr, maxBinaryBytes)); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", fmt.Errorf("extracting binary: %w", err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			return "", fmt.Errorf("extracting binary: %w", err)
		}
		return tmp.Name(), nil
	}

	return "", fmt.Errorf("binary %q missing from %s: %w", binaryName, archivePath, ErrAssetNotFound)
}

func resolveExecPath() (string, error) {
	p, err := osExecutable()
	if err != nil {
		return "", err
	}
	return evalSymlinks(p)
}

func findAsset(assets []Asset, name string) (*Asset, error) {
	for i := range assets {
		if assets[i].Name == name {
			return &assets[i], nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrAssetNotFound)
}

func managedMessage(method InstallMethod, execPath string) string {
	switch method {
	case InstallMethodHomebrew:
		return fmt.Sprintf("Detected Homebrew installation at %s\n\nTo upgrade, run:\n  brew upgrade grip", execPath)
	case InstallMethodGoInstall:
		return fmt.Sprintf("Detected go install at %s\n\nTo upgrade, run:\n  go install %s@latest", execPath, releaseModulePath)
	default:
		return ""
	}
}

// normalizeVersion forces the "v" prefix the semver package requires and
// validates the result.
func normalizeVersion(v string) (string, error) {
	norm := v
	if !strings.HasPrefix(norm, "v") {
		norm = "v" + norm
	}
	if !semver.IsValid(norm) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, v)
	}
	return norm, nil
}
