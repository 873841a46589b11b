// SPDX-License-Identifier: MPL-2.0

package selfupdate

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrDigestMismatch is the sentinel error for a failed verification.
	ErrDigestMismatch = errors.New("digest mismatch")
	// ErrDigestMissing is the sentinel error for an artifact absent from
	// the published digest list.
	ErrDigestMissing = errors.New("artifact not listed in digests")
)

// DigestMismatchError carries both hashes of a failed verification and
// unwraps to ErrDigestMismatch.
type DigestMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *DigestMismatchError) Error() string {
	return fmt.Sprintf("digest verification failed for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

func (e *DigestMismatchError) Unwrap() error { return ErrDigestMismatch }

// ParseDigests reads sha256sum output ("<hex>  <filename>" per line) into
// a filename-to-digest map. Blank and unparseable lines are skipped; an
// input with no usable entry at all is an error.
func ParseDigests(r io.Reader) (map[string]string, error) {
	digests := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		digest, filename, ok := strings.Cut(line, "  ")
		filename = strings.TrimSpace(filename)
		if !ok || filename == "" || !isHexDigest(digest) {
			continue
		}
		digests[filename] = strings.ToLower(digest)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading digests: %w", err)
	}
	if len(digests) == 0 {
		return nil, errors.New("no usable digest entries")
	}
	return digests, nil
}

// VerifyFile hashes the file at path and compares it with expected.
func VerifyFile(path, expected string) error {
	actual, err := hashFile(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, expected) {
		return &DigestMismatchError{
			Path:     path,
			Expected: strings.ToLower(expected),
			Actual:   actual,
		}
	}
	return nil
}

// hashFile streams the file through SHA256 and returns the lowercase hex
// digest.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func isHexDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
