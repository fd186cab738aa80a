package main

import (
	"fmt"
	"strings"

	"github.com/nao1215/gtcidash/internal/model"
	"github.com/spf13/cobra"
)

// NewRateCmd creates the rate command group.
func NewRateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Manage item ratings",
		Long: fmt.Sprintf(`Ratings classify a dashboard item as one of: %s.
Setting "unset" (or "select") removes the rating.

Examples:
  # Rate the first indicator
  gtcidash rate set indicator-1 critical

  # Remove the rating
  gtcidash rate set indicator-1 unset`, strings.Join(model.RatingLabels(), ", ")),
	}
	cmd.AddCommand(newRateSetCmd())
	cmd.AddCommand(newRateShowCmd())
	return cmd
}

func newRateSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <item-id> <rating>",
		Short: "Replace the rating of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := model.ParseRating(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				if err := a.dash.SetRating(cmd.Context(), args[0], rating); err != nil {
					return err
				}
				if rating.IsSet() {
					fmt.Fprintf(cmd.OutOrStdout(), "Rated %s as %s\n", args[0], rating)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared rating of %s\n", args[0])
				}
				return nil
			})
		},
	}
}

func newRateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [item-id]",
		Short: "Show one rating or all ratings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				out := cmd.OutOrStdout()
				ratings := a.dash.Ratings()
				if len(args) == 1 {
					fmt.Fprintln(out, ratings[args[0]])
					return nil
				}
				if len(ratings) == 0 {
					fmt.Fprintln(out, "No ratings")
					return nil
				}
				for _, id := range ratings.Keys() {
					fmt.Fprintf(out, "%s: %s\n", id, ratings[id])
				}
				return nil
			})
		},
	}
}
