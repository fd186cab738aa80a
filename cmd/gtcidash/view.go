package main

import (
	"fmt"

	"github.com/nao1215/gtcidash/internal/model"
	"github.com/spf13/cobra"
)

// NewViewCmd creates the view command group.
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show or select the active dashboard tab",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <view>",
		Short: "Select the active tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := model.ParseView(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				if err := a.dash.SetActiveView(cmd.Context(), v); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Active view: %s\n", v)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List the tabs and mark the active one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				active := a.dash.ActiveView()
				for _, v := range model.Views() {
					mark := " "
					if v == active {
						mark = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %-15s %s\n", mark, v, v.Title())
				}
				return nil
			})
		},
	})
	return cmd
}
