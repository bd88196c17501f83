package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/sqlcraft/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if verbose > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.Short())
	},
}
