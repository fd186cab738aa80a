package main

import (
	"fmt"
	"strconv"

	"github.com/nao1215/gtcidash/internal/model"
	"github.com/spf13/cobra"
)

// NewIndicatorCmd creates the indicator command group.
func NewIndicatorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indicator",
		Short: "List or edit the detailed indicators",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List indicators with their values and ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				ratings := a.dash.Ratings()
				for _, ind := range a.dash.Indicators().Indicators() {
					rating := "-"
					if r, ok := ratings[ind.RatingKey()]; ok {
						rating = r.String()
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d  %-26s %6s  %-8s %s\n",
						ind.ID, ind.Name, model.FormatValue(ind.Value), rating, ind.Description)
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "edit <id> <value>",
		Short: "Set the value of an indicator",
		Long: `Edit sets the value of one indicator. A value that is not a number is
ignored and the previous value is kept.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid indicator id %q: %w", args[0], err)
			}
			return withApp(cmd, func(a *app) error {
				applied, err := a.dash.Indicators().Set(cmd.Context(), id, args[1])
				if err != nil {
					return err
				}
				if !applied {
					fmt.Fprintf(cmd.OutOrStdout(), "%q is not a number; indicator %d unchanged\n", args[1], id)
					return nil
				}
				a.printNotice(cmd.OutOrStdout())
				return nil
			})
		},
	})
	return cmd
}
