// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"grip-cli/internal/selfupdate"

	"github.com/spf13/cobra"
)

var (
	selfUpdateCheckOnly bool
	selfUpdateVersion   string
)

// selfUpdateCmd upgrades the grip binary in place from the published
// releases. Managed installs (Homebrew, go install) are detected and told
// to use their package manager instead.
var selfUpdateCmd = &cobra.Command{
	Use:           "self-update",
	Short:         "Update grip to the latest release",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var opts []selfupdate.ClientOption
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			opts = append(opts, selfupdate.WithToken(token))
		}
		return runSelfUpdate(cmd.Context(), cmd.OutOrStdout(),
			selfUpdateUpdater(opts...), selfUpdateVersion, selfUpdateCheckOnly)
	},
}

// selfUpdateUpdater builds the updater for the running binary. The version
// comparison needs the bare ldflags value; the decorated string from
// getVersionString is not valid semver input.
func selfUpdateUpdater(opts ...selfupdate.ClientOption) *selfupdate.Updater {
	return selfupdate.NewUpdater(Version,
		selfupdate.WithClient(selfupdate.NewClient(opts...)))
}

// runSelfUpdate is the update flow, separated from cobra so tests can
// inject an updater pointed at a test server.
func runSelfUpdate(ctx context.Context, out io.Writer, updater *selfupdate.Updater, target string, checkOnly bool) error {
	check, err := updater.Check(ctx, target)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, check.Message)
	if !check.Available() || checkOnly {
		return nil
	}

	if err := updater.Apply(ctx, check.Target); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated to %s\n", check.Target.TagName)
	return nil
}

func init() {
	selfUpdateCmd.Flags().BoolVar(&selfUpdateCheckOnly, "check", false, "only check for a newer release, do not install it")
	selfUpdateCmd.Flags().StringVar(&selfUpdateVersion, "version", "", "update to a specific release instead of the latest")
}
