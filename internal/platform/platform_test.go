// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"testing"
)

func TestExeSuffix(t *testing.T) {
	got := ExeSuffix()
	if runtime.GOOS == Windows {
		if got != ".exe" {
			t.Errorf("ExeSuffix() = %q, want %q on Windows", got, ".exe")
		}
		return
	}
	if got != "" {
		t.Errorf("ExeSuffix() = %q, want empty on %s", got, runtime.GOOS)
	}
}

func TestIsWindowsReservedName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "CON", want: true},
		{name: "con", want: true},
		{name: "con.exe", want: true},
		{name: "COM1", want: true},
		{name: "build", want: false},
		{name: "console", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWindowsReservedName(tt.name); got != tt.want {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
