// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"grip-cli/internal/config"

	"github.com/spf13/cobra"
)

var configInit bool

// configCmd shows the effective configuration after file and environment
// overlays, rendered as TOML. With --init it writes that configuration to
// the default config file instead.
var configCmd = &cobra.Command{
	Use:           "config",
	Short:         "Show the effective configuration",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadedCfg
		if cfg == nil {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
		}

		if configInit {
			path, err := config.Save(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		}

		out, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "write the effective configuration to the default config file")
}
