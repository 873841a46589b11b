// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"grip-cli/internal/pkgid"

	"github.com/spf13/cobra"
)

var pkgidManifestPath string

// pkgidCmd resolves a package-identifier specifier against the project's
// dependency snapshot and prints the fully qualified identifier.
var pkgidCmd = &cobra.Command{
	Use:   "pkgid [<spec>]",
	Short: "Print a fully qualified package specification",
	Long: `Print a fully qualified package specification.

Given a specifier like 'serde' or 'serde@1.0.219', resolves it against the
packages in grip.lock and prints the exact name, version, and source.
With no specifier, prints the identifier of the current project itself.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestPath := pkgidManifestPath
		if manifestPath == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			manifestPath, err = pkgid.LocateManifest(wd)
			if err != nil {
				return err
			}
		}

		spec := ""
		if len(args) == 1 {
			spec = args[0]
		}

		id, err := pkgid.Resolve(manifestPath, spec)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), id.Spec())
		return nil
	},
}

func init() {
	pkgidCmd.Flags().StringVar(&pkgidManifestPath, "manifest-path", "", "path to grip.toml (default: walk up from the working directory)")
}
