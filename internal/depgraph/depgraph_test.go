// SPDX-License-Identifier: MPL-2.0

package depgraph

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildOrder(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *Graph)
		want  []string
	}{
		{
			name:  "empty graph",
			build: func(*Graph) {},
			want:  nil,
		},
		{
			name: "single package",
			build: func(g *Graph) {
				g.AddPackage("widget")
			},
			want: []string{"widget"},
		},
		{
			name: "linear chain",
			build: func(g *Graph) {
				g.AddDependency("app", "serde")
				g.AddDependency("serde", "serde-core")
			},
			want: []string{"serde-core", "serde", "app"},
		},
		{
			name: "diamond keeps insertion order within a level",
			build: func(g *Graph) {
				g.AddDependency("app", "left")
				g.AddDependency("app", "right")
				g.AddDependency("left", "base")
				g.AddDependency("right", "base")
			},
			want: []string{"base", "left", "right", "app"},
		},
		{
			name: "isolated package alongside a chain",
			build: func(g *Graph) {
				g.AddDependency("app", "serde")
				g.AddPackage("loner")
			},
			want: []string{"serde", "loner", "app"},
		},
		{
			name: "duplicate edges do not duplicate output",
			build: func(g *Graph) {
				g.AddDependency("app", "serde")
				g.AddDependency("app", "serde")
			},
			want: []string{"serde", "app"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			tt.build(g)

			got, err := g.BuildOrder()
			if err != nil {
				t.Fatalf("BuildOrder() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildOrder() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildOrder_Cycle(t *testing.T) {
	g := New()
	g.AddDependency("a", "b")
	g.AddDependency("b", "c")
	g.AddDependency("c", "a")
	g.AddPackage("unrelated")

	_, err := g.BuildOrder()

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("BuildOrder() error = %v, want *CycleError", err)
	}
	if len(cycleErr.Cycle) == 0 {
		t.Error("CycleError.Cycle is empty, want the participating packages")
	}
	for _, name := range cycleErr.Cycle {
		if name == "unrelated" {
			t.Errorf("CycleError.Cycle contains %q, which is not on the cycle", name)
		}
	}
}

func TestBuildOrder_SelfDependency(t *testing.T) {
	g := New()
	g.AddDependency("narcissus", "narcissus")

	_, err := g.BuildOrder()
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("BuildOrder() error = %v, want *CycleError", err)
	}
}

func TestContains(t *testing.T) {
	g := New()
	g.AddDependency("app", "serde")

	if !g.Contains("app") || !g.Contains("serde") {
		t.Error("Contains() = false for added packages")
	}
	if g.Contains("ghost") {
		t.Error("Contains(ghost) = true, want false")
	}
}
