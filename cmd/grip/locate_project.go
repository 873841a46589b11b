// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"grip-cli/internal/pkgid"

	"github.com/spf13/cobra"
)

// locateProjectCmd prints the path of the manifest governing the working
// directory, found by walking up the directory tree.
var locateProjectCmd = &cobra.Command{
	Use:           "locate-project",
	Short:         "Print the path of the project manifest",
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

		fmt.Fprintln(cmd.OutOrStdout(), manifestPath)
		return nil
	},
}
