// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"grip-cli/internal/lockfile"
	"grip-cli/internal/pkgid"

	"github.com/spf13/cobra"
)

// verifyCmd checks the project's manifest and dependency snapshot for
// internal consistency: the manifest must parse, every recorded
// dependency must resolve inside the snapshot, and the recorded graph
// must be acyclic.
var verifyCmd = &cobra.Command{
	Use:           "verify",
	Short:         "Check the project manifest and lock file for consistency",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		manifestPath, err := pkgid.LocateManifest(wd)
		if err != nil {
			return err
		}

		// Resolve with an empty spec to force manifest and lock file
		// validation through the same path pkgid uses.
		id, err := pkgid.Resolve(manifestPath, "")
		if err != nil {
			return err
		}

		snapshot, err := lockfile.Load(filepath.Join(filepath.Dir(manifestPath), lockfile.FileName))
		if err != nil {
			return err
		}

		order, err := snapshot.Verify()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d packages verified\n", id.Spec(), len(order))
		return nil
	},
}
