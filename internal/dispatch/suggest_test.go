// SPDX-License-Identifier: MPL-2.0

package dispatch

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "", b: "", want: 0},
		{a: "build", b: "build", want: 0},
		{a: "", b: "abc", want: 3},
		{a: "abc", b: "", want: 3},
		{a: "biuld", b: "build", want: 2},
		{a: "buil", b: "build", want: 1},
		{a: "builds", b: "build", want: 1},
		{a: "bench", b: "build", want: 4},
		{a: "kitten", b: "sitting", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := editDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	commands := []string{"bench", "build", "clean", "doc", "new", "run", "test", "update"}

	tests := []struct {
		name    string
		unknown string
		want    string
		found   bool
	}{
		{name: "transposition", unknown: "biuld", want: "build", found: true},
		{name: "missing letter", unknown: "buil", want: "build", found: true},
		{name: "exactly too far", unknown: "xyzzyplugh", want: "", found: false},
		{name: "close to test", unknown: "tset", want: "test", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Suggest(tt.unknown, commands)
			if found != tt.found || got != tt.want {
				t.Errorf("Suggest(%q) = (%q, %v), want (%q, %v)", tt.unknown, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestSuggest_TieBreaksOnFirstEncountered(t *testing.T) {
	// "aab" and "abb" are both distance 1 from "ab"; first wins.
	got, found := Suggest("ab", []string{"aab", "abb"})
	if !found || got != "aab" {
		t.Errorf("Suggest(ab) = (%q, %v), want first-encountered (aab, true)", got, found)
	}
}

func TestSuggest_ThresholdIsStrict(t *testing.T) {
	// Distance exactly 4 must not be suggested.
	if got, found := Suggest("aaaa", []string{"bbbb"}); found {
		t.Errorf("Suggest(aaaa) = (%q, true), want no suggestion at distance 4", got)
	}
	// Distance 3 qualifies.
	if _, found := Suggest("aaaa", []string{"abbb"}); !found {
		t.Error("Suggest(aaaa) with candidate at distance 3 should find a suggestion")
	}
}

func TestSuggest_NoCandidates(t *testing.T) {
	if got, found := Suggest("anything", nil); found {
		t.Errorf("Suggest with no candidates = (%q, true), want none", got)
	}
}
