// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"io"
	"strings"

	"grip-cli/internal/discovery"
	"grip-cli/pkg/types"

	"github.com/charmbracelet/log"
)

// Dispatcher routes a command invocation to a builtin handler or an
// external plugin executable. Builtins always win a name collision.
type Dispatcher struct {
	builtins *Registry
	finder   *discovery.Finder
	launcher *Launcher
	logger   *log.Logger
}

// New creates a Dispatcher. A nil launcher gets the stdio-inheriting
// default; a nil logger is silenced.
func New(builtins *Registry, finder *discovery.Finder, launcher *Launcher, logger *log.Logger) *Dispatcher {
	if launcher == nil {
		launcher = &Launcher{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		builtins: builtins,
		finder:   finder,
		launcher: launcher,
		logger:   logger,
	}
}

// InstalledCommands returns the union of builtin names and discovered
// plugins, deduplicated and sorted. The set is recomputed on every call:
// search directories may change between invocations.
func (d *Dispatcher) InstalledCommands() []string {
	return d.finder.List(d.builtins.Names())
}

// RenderInstalled renders the command listing for --list.
func (d *Dispatcher) RenderInstalled() string {
	var sb strings.Builder
	sb.WriteString("Installed Commands:\n")
	for _, name := range d.InstalledCommands() {
		sb.WriteString("    ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Dispatch resolves name and runs it with args. Builtins run in-process
// with a freshly allocated argument list; everything else goes through
// plugin discovery and a blocking subprocess launch. The returned error is
// nil on success, or exactly one of NotFoundError, LaunchError,
// ExitStatusError, SignalError, or the builtin's own error.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args []string) error {
	if builtin, ok := d.builtins.Lookup(types.CommandName(name)); ok {
		d.logger.Debug("dispatching builtin", "command", name)
		fresh := make([]string, len(args))
		copy(fresh, args)
		return builtin.Run(ctx, fresh)
	}

	path, ok := d.finder.Resolve(name)
	if !ok {
		suggestion, _ := Suggest(name, d.InstalledCommands())
		return &NotFoundError{Name: name, Suggestion: suggestion}
	}

	d.logger.Debug("dispatching plugin", "command", name, "path", path)
	outcome := d.launcher.Run(ctx, path, args)
	switch outcome.Kind {
	case OutcomeExit:
		return &ExitStatusError{Code: outcome.Code}
	case OutcomeSignaled:
		return &SignalError{Signal: outcome.Signal}
	case OutcomeLaunchFailed:
		if errors.Is(outcome.Err, ErrNoSuchSubcommand) {
			return &NotFoundError{Name: name}
		}
		return &LaunchError{Path: path, Err: outcome.Err}
	default:
		return nil
	}
}
