// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"grip-cli/internal/config"
	"grip-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// listInstalled lists all installed commands instead of dispatching
	listInstalled bool

	// loadedCfg holds the configuration loaded by initRootConfig.
	loadedCfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "grip <command> [<args>...]",
		Short: "A plugin-extensible package manager",
		Long: TitleStyle.Render("grip") + SubtitleStyle.Render(" - A plugin-extensible package manager") + `

grip dispatches every subcommand either to a builtin handler or to an
external plugin executable named grip-<command> installed on the search
path. Builtins always win a name collision.

` + SubtitleStyle.Render("Some common grip commands are:") + `
` + commonCommandsHelp() + `
See 'grip help <command>' for more information on a specific command.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// commonCommandsHelp renders the well-known subcommands for the root help
// text, with the names styled like every other command reference.
func commonCommandsHelp() string {
	commands := []struct{ name, desc string }{
		{"build", "Compile the current project"},
		{"clean", "Remove the target directory"},
		{"new", "Create a new grip project"},
		{"run", "Build and execute the current project"},
		{"test", "Run the tests"},
		{"update", "Update dependencies listed in grip.lock"},
	}

	var sb strings.Builder
	for _, c := range commands {
		fmt.Fprintf(&sb, "  %s  %s\n", CmdStyle.Render(fmt.Sprintf("%-10s", c.name)), c.desc)
	}
	return sb.String()
}

func init() {
	cobra.OnInitialize(initRootConfig)

	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle (runRoot transitively references rootCmd).
	rootCmd.RunE = runRoot

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <config-dir>/grip/config.toml)")
	rootCmd.Flags().BoolVar(&listInstalled, "list", false, "list installed commands")

	// Flags after the subcommand name belong to the subcommand.
	rootCmd.Flags().SetInterspersed(false)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and translates the result into the
// process's own exit behavior. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(renderError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// renderError writes the single user-facing error report for a failed
// invocation. Silent exit errors (a child's own non-zero exit) produce
// nothing: the child already reported to the inherited streams.
func renderError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Silent() {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("error: ")+formatErrorForDisplay(err, verbose))
}

// initRootConfig reads in the config file and GRIP_* env variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		// Surface config loading errors without aborting the invocation.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	loadedCfg = cfg
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
