// SPDX-License-Identifier: MPL-2.0

// Package fetch is the narrow collaborator through which registry and
// version-control subcommands perform network I/O. The dispatcher never
// fetches anything itself; it only decides, once at startup, which
// transport this package hands out.
//
// RegisterTransport is process-wide mutable state written at most once,
// before any network use. That ordering is a contract on the caller
// (transport.Init runs before any dispatch branch), not a runtime check.
package fetch

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single fetch request when the configuration does
// not say otherwise.
const DefaultTimeout = 30 * time.Second

var (
	transport http.RoundTripper = http.DefaultTransport
	timeout                     = DefaultTimeout
)

// RegisterTransport installs the transport used for all subsequent network
// operations in the process. Must be called before any fetch, and never
// concurrently with one; calling it twice is a contract violation.
func RegisterTransport(rt http.RoundTripper) {
	if rt == nil {
		return
	}
	transport = rt
}

// SetTimeout overrides the per-request timeout.
func SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	timeout = d
}

// Transport returns the currently registered transport.
func Transport() http.RoundTripper {
	return transport
}

// Client returns an HTTP client backed by the registered transport.
// Collaborators must obtain clients here rather than using http.Default*
// so the startup proxy decision applies to them.
func Client() *http.Client {
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// Reset restores the default transport and timeout. Test use only.
func Reset() {
	transport = http.DefaultTransport
	timeout = DefaultTimeout
}
