// SPDX-License-Identifier: MPL-2.0

// Package selfupdate upgrades the grip binary in place. It talks to the
// GitHub Releases API for version metadata, detects how grip was installed
// so managed installs defer to their package manager, verifies downloads
// against the published SHA256 digests, and swaps the binary atomically.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"grip-cli/internal/fetch"

	"golang.org/x/mod/semver"
)

// maxMetadataBytes caps release metadata responses (10 MB). A hostile or
// broken server must not be able to balloon memory through a JSON body.
const maxMetadataBytes = 10 << 20

// ErrReleaseNotFound is the sentinel error for a tag with no release.
var ErrReleaseNotFound = errors.New("release not found")

type (
	// Release is one published release with its downloadable artifacts.
	Release struct {
		TagName    string
		Prerelease bool
		Draft      bool
		Assets     []Asset
	}

	// Asset is a single downloadable artifact of a release.
	Asset struct {
		Name        string
		DownloadURL string
		Size        int64
	}

	// RateLimitError reports an exhausted API quota.
	RateLimitError struct {
		ResetAt time.Time
	}

	// wireRelease and wireAsset mirror the GitHub Releases API JSON.
	wireRelease struct {
		TagName    string      `json:"tag_name"`
		Prerelease bool        `json:"prerelease"`
		Draft      bool        `json:"draft"`
		Assets     []wireAsset `json:"assets"`
	}

	wireAsset struct {
		Name        string `json:"name"`
		DownloadURL string `json:"browser_download_url"`
		Size        int64  `json:"size"`
	}

	// Client fetches release metadata and artifacts.
	Client struct {
		httpClient *http.Client
		baseURL    string
		owner      string
		repo       string
		userAgent  string
		token      string
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("release API rate limit exceeded, resets at %s", e.ResetAt.UTC().Format("15:04 UTC"))
}

// WithHTTPClient overrides the HTTP client. The default comes from the
// process-wide transport configuration.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.httpClient = c }
}

// WithBaseURL points the client at a different API endpoint, mainly for
// test servers.
func WithBaseURL(base string) ClientOption {
	return func(cl *Client) { cl.baseURL = strings.TrimRight(base, "/") }
}

// WithToken attaches a personal access token to API requests for the
// higher authenticated rate limit.
func WithToken(token string) ClientOption {
	return func(cl *Client) { cl.token = token }
}

// WithRepo overrides the release repository.
func WithRepo(owner, repo string) ClientOption {
	return func(cl *Client) {
		cl.owner = owner
		cl.repo = repo
	}
}

// NewClient creates a release client for grip's canonical repository.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   "https://api.github.com",
		owner:     "grip-sh",
		repo:      "grip",
		userAgent: "grip/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = fetch.Client()
	}
	return c
}

// Latest returns the highest stable release. Drafts and pre-releases are
// filtered out before comparison.
func (c *Client) Latest(ctx context.Context) (*Release, error) {
	listURL := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=30", c.baseURL, c.owner, c.repo)

	resp, err := c.get(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}
	defer resp.Body.Close()

	if err := rateLimited(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing releases: unexpected status %d", resp.StatusCode)
	}

	var raw []wireRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetadataBytes)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}

	var stable []Release
	for _, wr := range raw {
		if wr.Draft || wr.Prerelease {
			continue
		}
		stable = append(stable, toRelease(wr))
	}
	if len(stable) == 0 {
		return nil, fmt.Errorf("no stable release published: %w", ErrReleaseNotFound)
	}

	// Highest semver first. Invalid tags sink to the end.
	slices.SortStableFunc(stable, func(a, b Release) int {
		return semver.Compare(b.TagName, a.TagName)
	})

	return &stable[0], nil
}

// ByTag returns the release published under the given tag.
func (c *Client) ByTag(ctx context.Context, tag string) (*Release, error) {
	tagURL := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.baseURL, c.owner, c.repo, tag)

	resp, err := c.get(ctx, tagURL)
	if err != nil {
		return nil, fmt.Errorf("fetching release %s: %w", tag, err)
	}
	defer resp.Body.Close()

	if err := rateLimited(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("release %s: %w", tag, ErrReleaseNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching release %s: unexpected status %d", tag, resp.StatusCode)
	}

	var wr wireRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetadataBytes)).Decode(&wr); err != nil {
		return nil, fmt.Errorf("fetching release %s: %w", tag, err)
	}
	r := toRelease(wr)
	return &r, nil
}

// Download streams the artifact at rawURL. The caller owns the returned
// body and must close it.
func (c *Client) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", redact(rawURL), err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("downloading %s: unexpected status %d", redact(rawURL), resp.StatusCode)
	}
	return resp.Body, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	// The token stays on the API host. Artifact downloads can redirect to
	// a CDN that must never see it.
	if c.token != "" && sameHost(req.URL, c.baseURL) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpClient.Do(req)
}

// rateLimited turns an exhausted X-RateLimit-Remaining header into a
// RateLimitError. Absent or malformed headers are ignored.
func rateLimited(resp *http.Response) error {
	remaining, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	if err != nil || remaining > 0 {
		return nil
	}
	resetUnix, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	return &RateLimitError{ResetAt: time.Unix(resetUnix, 0)}
}

func toRelease(wr wireRelease) Release {
	assets := make([]Asset, 0, len(wr.Assets))
	for _, wa := range wr.Assets {
		assets = append(assets, Asset(wa))
	}
	return Release{
		TagName:    wr.TagName,
		Prerelease: wr.Prerelease,
		Draft:      wr.Draft,
		Assets:     assets,
	}
}

func sameHost(reqURL *url.URL, baseURL string) bool {
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(reqURL.Host, base.Host)
}

// redact strips query and fragment so URLs are safe to put in errors.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
