package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPaletteCmd(g *globalFlags) *cobra.Command {
	var (
		filter string
		random bool
	)

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "List palette flosses",
		Long: `List the flosses of the palette, optionally only those whose name or description contains --filter,
or a single floss picked at random with --random.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := g.openClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			flosses := client.Palette().Filter(filter)
			if random {
				flosses = flosses[:0]
				if f, ok := client.Palette().Random(); ok {
					flosses = append(flosses, f)
				}
			}
			if len(flosses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No flosses match.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tHEX\tDESCRIPTION")
			for _, f := range flosses {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Hex, f.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "case-insensitive text to match in name or description")
	cmd.Flags().BoolVar(&random, "random", false, "print one floss picked at random")
	cmd.MarkFlagsMutuallyExclusive("filter", "random")
	return cmd
}
