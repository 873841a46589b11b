// SPDX-License-Identifier: MPL-2.0

// Package transport performs the one-time, proxy-aware network transport
// bootstrap. It runs before any subcommand dispatch so that every
// collaborator doing network I/O afterwards sees the same transport.
package transport

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"grip-cli/internal/config"
	"grip-cli/internal/fetch"

	"github.com/charmbracelet/log"
)

// Init registers a proxy-capable transport with the fetch collaborator when
// (and only when) the configuration names a proxy. Without one this is a
// no-op and collaborators keep the default transport.
//
// Init must be called exactly once per process, before any dispatch branch
// that might touch the network, and never concurrently with an in-flight
// network operation. That ordering is the caller's responsibility.
//
// A proxy URL that fails to parse degrades silently to the default
// transport: network features still work, just without the proxy.
func Init(cfg *config.Config, logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg == nil || cfg.HTTP.Proxy == "" {
		return
	}

	proxyURL, err := url.Parse(cfg.HTTP.Proxy)
	if err != nil || proxyURL.Scheme == "" || proxyURL.Host == "" {
		logger.Debug("ignoring unusable proxy URL", "proxy", cfg.HTTP.Proxy, "error", err)
		return
	}

	fetch.RegisterTransport(&http.Transport{
		Proxy:             http.ProxyURL(proxyURL),
		ForceAttemptHTTP2: true,
	})

	if cfg.HTTP.TimeoutSeconds > 0 {
		fetch.SetTimeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)
	}

	logger.Debug("registered proxy transport", "proxy", proxyURL.Redacted())
}
