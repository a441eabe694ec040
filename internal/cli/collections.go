package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCollectionsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection", "col"},
		Short:   "Manage stored floss collections",
		Long: `Manage named floss collections. Without --valkey or --redis collections live
only as long as the command, so these are mostly useful against a server.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := g.openClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			cols, err := client.Collections().List(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // SDK errors are already prefixed
			}
			if len(cols) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No collections.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFLOSSES\tREVISION")
			for _, c := range cols {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", c.Name, len(c.FlossNames), c.Revision)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <name> <floss+floss+...>",
		Short: "Create a collection from a shared floss list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.openClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			col, err := client.Collections().Import(cmd.Context(), args[0], args[1])
			if err != nil {
				return err //nolint:wrapcheck // SDK errors are already prefixed
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d flosses: %s\n",
				col.Name, len(col.FlossNames), strings.Join(col.FlossNames, ", "))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <name>",
		Short: "Print the shared floss list of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.openClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			shared, err := client.Collections().Export(cmd.Context(), args[0])
			if err != nil {
				return err //nolint:wrapcheck // SDK errors are already prefixed
			}
			fmt.Fprintln(cmd.OutOrStdout(), shared)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.openClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Collections().Delete(cmd.Context(), args[0]); err != nil {
				return err //nolint:wrapcheck // SDK errors are already prefixed
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	})

	return cmd
}
