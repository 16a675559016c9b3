package main

import (
	"fmt"

	"github.com/marcus/notecards/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "notecards version %s\n", version.Effective(Version))
			if verbose {
				method := version.DetectInstallMethod()
				fmt.Fprintf(out, "installed via: %s\n", method)
				fmt.Fprintf(out, "upgrade with:  %s\n", version.UpgradeHint(method))
			}
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also show install method and how to upgrade")
	return cmd
}
