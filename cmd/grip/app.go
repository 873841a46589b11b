// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"grip-cli/internal/discovery"
	"grip-cli/internal/dispatch"
	"grip-cli/internal/transport"
	"grip-cli/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// appLogger returns the logger for verbose dispatch diagnostics.
// Without --verbose all diagnostics are discarded.
func appLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "grip",
	})
	logger.SetLevel(log.DebugLevel)
	return logger
}

// newDispatcher wires the builtin registry, plugin discovery, and the
// subprocess launcher into a Dispatcher.
func newDispatcher() *dispatch.Dispatcher {
	logger := appLogger()
	finder := discovery.New(discovery.WithLogger(logger))
	return dispatch.New(newBuiltinRegistry(), finder, &dispatch.Launcher{}, logger)
}

// runRoot is the dispatch entry point: it bootstraps the network
// transport, handles --list, and routes everything else to a builtin or a
// plugin executable.
func runRoot(cmd *cobra.Command, args []string) error {
	// The transport decision must land before any dispatch branch that
	// could touch the network.
	transport.Init(loadedCfg, appLogger())

	d := newDispatcher()

	if listInstalled {
		if _, err := io.WriteString(cmd.OutOrStdout(), d.RenderInstalled()); err != nil {
			return err
		}
		return nil
	}

	if len(args) == 0 {
		return cmd.Help()
	}

	return toExitError(d.Dispatch(cmd.Context(), args[0], args[1:]))
}

// newBuiltinRegistry constructs the closed set of builtin commands.
// Each cobra-backed builtin executes standalone with a freshly allocated
// argument list, so its flag parsing never sees the outer invocation.
func newBuiltinRegistry() *dispatch.Registry {
	r := dispatch.NewRegistry()
	for _, c := range []*cobra.Command{
		versionCmd,
		pkgidCmd,
		locateProjectCmd,
		configCmd,
		verifyCmd,
		selfUpdateCmd,
	} {
		registerCobraBuiltin(r, c)
	}
	r.Register(dispatch.Builtin{
		Name:  "help",
		Usage: "grip help [<command>]",
		Run:   runHelpBuiltin,
	})
	return r
}

// registerCobraBuiltin adapts a standalone cobra command into a registry entry.
func registerCobraBuiltin(r *dispatch.Registry, c *cobra.Command) {
	r.Register(dispatch.Builtin{
		Name:  types.NormalizeCommandName(c.Name()),
		Usage: c.UseLine(),
		Run: func(ctx context.Context, args []string) error {
			c.SetArgs(args)
			return c.ExecuteContext(ctx)
		},
	})
}

// runHelpBuiltin implements 'grip help [<command>]': with no argument it
// shows the root help, otherwise it re-dispatches the named command with
// --help so plugins render their own usage.
func runHelpBuiltin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return rootCmd.Help()
	}
	return toExitError(newDispatcher().Dispatch(ctx, args[0], []string{"--help"}))
}

// toExitError converts dispatch-layer errors into ExitError values so the
// process exits with the mandated code: the child's own code verbatim
// (silently), the signal number for a signaled child, and 127 for unknown
// commands and failed launches. Builtin errors pass through untouched.
func toExitError(err error) error {
	if err == nil {
		return nil
	}

	var exitStatus *dispatch.ExitStatusError
	if errors.As(err, &exitStatus) {
		return &ExitError{Code: exitStatus.ExitCode()}
	}

	var signaled *dispatch.SignalError
	if errors.As(err, &signaled) {
		return &ExitError{Code: signaled.ExitCode(), Err: signaled}
	}

	var notFound *dispatch.NotFoundError
	if errors.As(err, &notFound) {
		return &ExitError{Code: notFound.ExitCode(), Err: notFound}
	}

	var launch *dispatch.LaunchError
	if errors.As(err, &launch) {
		return &ExitError{Code: launch.ExitCode(), Err: launch}
	}

	return err
}
