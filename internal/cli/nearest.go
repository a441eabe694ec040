package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	flossdex "github.com/kailas-cloud/flossdex/pkg/sdk"
)

type nearestFlags struct {
	allowed    []string
	collection string
	maxBlend   int
	limit      int
	countOnly  bool
}

func newNearestCmd(g *globalFlags) *cobra.Command {
	f := &nearestFlags{}

	cmd := &cobra.Command{
		Use:   "nearest <target>",
		Short: "Find the flosses and blends closest to a target floss",
		Long: `Rank every single floss and every blend of up to --max-blend flosses by their
CIEDE2000 distance to the target floss, and print the --limit best of each size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.openClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			target, err := client.Palette().Lookup(args[0])
			if err != nil {
				return err //nolint:wrapcheck // already names the floss
			}

			opts := f.options(cmd)
			if f.countOnly {
				n, err := client.CandidateCount(cmd.Context(), target.Name, opts...)
				if err != nil {
					return err //nolint:wrapcheck // SDK errors are already prefixed
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d candidates\n", n)
				return nil
			}

			res, err := client.Nearest(cmd.Context(), target.Name, opts...)
			if err != nil {
				return err //nolint:wrapcheck // SDK errors are already prefixed
			}
			return printNearest(cmd.OutOrStdout(), target, res)
		},
	}

	fl := cmd.Flags()
	fl.StringSliceVarP(&f.allowed, "allowed", "a", nil, "only combine these flosses (comma separated)")
	fl.StringVarP(&f.collection, "collection", "c", "", "only combine the flosses of this stored collection")
	fl.IntVarP(&f.maxBlend, "max-blend", "b", 2, "largest number of flosses in a blend")
	fl.IntVarP(&f.limit, "limit", "n", 12, "results per blend size")
	fl.BoolVar(&f.countOnly, "count", false, "only print how many blends would be scored")
	cmd.MarkFlagsMutuallyExclusive("allowed", "collection")
	return cmd
}

func (f *nearestFlags) options(cmd *cobra.Command) []flossdex.NearestOption {
	opts := []flossdex.NearestOption{flossdex.MaxBlendSize(f.maxBlend), flossdex.Limit(f.limit)}
	if cmd.Flags().Changed("allowed") {
		opts = append(opts, flossdex.WithAllowed(f.allowed...))
	}
	if f.collection != "" {
		opts = append(opts, flossdex.InCollection(f.collection))
	}
	return opts
}

func printNearest(w io.Writer, target flossdex.Floss, res flossdex.NearestResult) error {
	fmt.Fprintf(w, "Target: %s %s (%s)\n", target.Name, target.Description, target.Hex)

	for _, g := range res.Groups {
		if g.BlendSize == 1 {
			fmt.Fprintln(w, "\nSingle flosses:")
		} else {
			fmt.Fprintf(w, "\nBlends of %d:\n", g.BlendSize)
		}
		if len(g.Neighbors) == 0 {
			fmt.Fprintln(w, "  (none)")
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for i, n := range g.Neighbors {
			fmt.Fprintf(tw, "  %d.\t%s\tΔE %.2f\n", i+1, n.Name, n.Distance)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}
	return nil
}
