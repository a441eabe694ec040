package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/flossdex/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of flossctl",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flossctl version %s (commit %s, built %s)\n",
				cmd.Root().Version, version.Commit, version.Date)
		},
	}
}
