package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewKeysCmd creates the keys command.
func NewKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [prefix]",
		Short: "List the stored keys with their size and last write",
		Long: `Keys lists the raw entries of the gtcidash database. It is meant for
inspecting the on-disk state, for example legacy edit_<section> keys.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			return withApp(cmd, func(a *app) error {
				entries, err := a.db.Entries(cmd.Context(), prefix)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KEY\tBYTES\tUPDATED")
				for _, e := range entries {
					updated := "-"
					if !e.UpdatedAt.IsZero() {
						updated = e.UpdatedAt.Local().Format(time.DateTime)
					}
					fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Key, e.Size, updated)
				}
				return tw.Flush()
			})
		},
	}
}
