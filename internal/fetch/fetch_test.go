// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"net/http"
	"testing"
	"time"
)

type markerTransport struct{}

func (markerTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, http.ErrUseLastResponse
}

func TestRegisterTransport(t *testing.T) {
	t.Cleanup(Reset)

	if Transport() != http.DefaultTransport {
		t.Fatal("initial transport should be http.DefaultTransport")
	}

	marker := markerTransport{}
	RegisterTransport(marker)

	if Transport() != http.RoundTripper(marker) {
		t.Error("Transport() should return the registered transport")
	}
	if Client().Transport != http.RoundTripper(marker) {
		t.Error("Client() should be backed by the registered transport")
	}
}

func TestRegisterTransport_NilIgnored(t *testing.T) {
	t.Cleanup(Reset)

	RegisterTransport(nil)
	if Transport() != http.DefaultTransport {
		t.Error("nil registration should keep the default transport")
	}
}

func TestSetTimeout(t *testing.T) {
	t.Cleanup(Reset)

	SetTimeout(5 * time.Second)
	if got := Client().Timeout; got != 5*time.Second {
		t.Errorf("Client().Timeout = %v, want 5s", got)
	}

	// Non-positive values keep the current timeout.
	SetTimeout(0)
	if got := Client().Timeout; got != 5*time.Second {
		t.Errorf("Client().Timeout after SetTimeout(0) = %v, want 5s", got)
	}
}
