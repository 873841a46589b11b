// SPDX-License-Identifier: MPL-2.0

// Package depgraph models the dependency relationships recorded in a
// project's lock file as a directed graph. It answers two questions about
// a snapshot: is the recorded graph acyclic, and in what order could the
// packages be built.
package depgraph

import (
	"fmt"
	"strings"
)

type (
	// CycleError reports that the recorded dependencies contain a cycle.
	// Cycle holds enough of the participating package names to identify
	// the problem, not necessarily the full cycle.
	CycleError struct {
		Cycle []string
	}

	// Graph is a directed graph over package names. An edge from A to B
	// records that A is a dependency of B, so A must be built first.
	Graph struct {
		// dependents maps a package to the packages that depend on it.
		dependents map[string][]string
		// order tracks first-insertion order for deterministic output.
		order []string
		seen  map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		dependents: make(map[string][]string),
		seen:       make(map[string]bool),
	}
}

// AddPackage records a package with no edges yet. Adding a package twice
// is a no-op.
func (g *Graph) AddPackage(name string) {
	if g.seen[name] {
		return
	}
	g.seen[name] = true
	g.order = append(g.order, name)
}

// AddDependency records that pkg depends on dep. Both packages are added
// implicitly when not yet present.
func (g *Graph) AddDependency(pkg, dep string) {
	g.AddPackage(dep)
	g.AddPackage(pkg)
	g.dependents[dep] = append(g.dependents[dep], pkg)
}

// Contains reports whether name was added to the graph.
func (g *Graph) Contains(name string) bool {
	return g.seen[name]
}

// BuildOrder returns the packages in an order where every dependency
// precedes its dependents, computed with Kahn's algorithm. Packages at the
// same depth keep their insertion order, so the result is deterministic.
// A cyclic graph yields a CycleError.
func (g *Graph) BuildOrder() ([]string, error) {
	if len(g.order) == 0 {
		return nil, nil
	}

	pending := make(map[string]int, len(g.order))
	for _, name := range g.order {
		pending[name] = 0
	}
	for _, dependents := range g.dependents {
		for _, d := range dependents {
			pending[d]++
		}
	}

	queue := make([]string, 0, len(g.order))
	for _, name := range g.order {
		if pending[name] == 0 {
			queue = append(queue, name)
		}
	}

	var result []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, name)

		for _, d := range g.dependents[name] {
			pending[d]--
			if pending[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(result) != len(g.order) {
		// Everything still pending sits on a cycle or downstream of one.
		var cycle []string
		for _, name := range g.order {
			if pending[name] > 0 {
				cycle = append(cycle, name)
			}
		}
		return nil, &CycleError{Cycle: cycle}
	}

	return result, nil
}
