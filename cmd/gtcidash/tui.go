package main

import (
	"github.com/nao1215/gtcidash/internal/tui"
	"github.com/spf13/cobra"
)

// NewTUICmd creates the tui command.
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive terminal dashboard.

Keys:
  tab / shift+tab   switch tabs
  j / k             move the selection
  e                 edit the scorecard or the selected indicator
  1-4 / 0           rate the selected indicator / clear its rating
  n                 edit the note of the current tab
  c                 edit the content of the current tab
  s                 save a snapshot
  enter / d         load / delete the selected snapshot
  q                 quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				return tui.Run(cmd.Context(), a.dash, a.relay)
			})
		},
	}
}
