// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"fmt"
	"sort"

	"grip-cli/pkg/types"
)

type (
	// Handler runs a builtin command with a freshly allocated argument list.
	Handler func(ctx context.Context, args []string) error

	// Builtin binds a command name to its in-process handler and usage text.
	Builtin struct {
		// Name is the normalized (hyphen-separated) command name.
		Name types.CommandName
		// Usage is the one-line usage text shown in help and listings.
		Usage string
		// Run executes the builtin.
		Run Handler
	}

	// Registry is the closed set of builtin commands. It is constructed
	// once at startup, before argument parsing, and never mutated after.
	Registry struct {
		byName map[types.CommandName]*Builtin
	}
)

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[types.CommandName]*Builtin)}
}

// Register adds a builtin to the registry. Registering an invalid name, a
// nil handler, or a name twice is a programming error and panics: the
// builtin set is static and exhaustive, so a collision can never be a
// legitimate runtime condition.
func (r *Registry) Register(b Builtin) {
	if ok, errs := b.Name.IsValid(); !ok {
		panic(fmt.Sprintf("dispatch: registering builtin: %v", errs[0]))
	}
	if b.Run == nil {
		panic(fmt.Sprintf("dispatch: builtin %q has no handler", b.Name))
	}
	if _, exists := r.byName[b.Name]; exists {
		panic(fmt.Sprintf("dispatch: builtin %q registered twice", b.Name))
	}
	registered := b
	r.byName[b.Name] = &registered
}

// Lookup returns the builtin for name, or false when name is not a builtin.
func (r *Registry) Lookup(name types.CommandName) (*Builtin, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// Names returns every builtin command name, sorted lexicographically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
