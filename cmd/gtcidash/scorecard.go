package main

import (
	"errors"
	"fmt"

	"github.com/nao1215/gtcidash/internal/model"
	"github.com/spf13/cobra"
)

// errNoFields is returned when scorecard edit is run without any field flag.
var errNoFields = errors.New("no scorecard field given")

// NewScorecardCmd creates the scorecard command group.
func NewScorecardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scorecard",
		Short: "Show or edit the headline scorecard",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the scorecard values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				for _, f := range a.dash.Scorecard().Fields() {
					fmt.Fprintf(cmd.OutOrStdout(), "%-15s %-18s %s\n", f.ID, f.Label, model.FormatValue(f.Value))
				}
				return nil
			})
		},
	})
	cmd.AddCommand(newScorecardEditCmd())
	return cmd
}

func newScorecardEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit --<field>=<value>...",
		Short: "Change one or more scorecard values",
		Long: `Edit replaces scorecard values. All given values are validated together;
if any is invalid nothing is saved.

Examples:
  gtcidash scorecard edit --overallRank=41 --globalTCI=64.1`,
		Args: cobra.NoArgs,
		RunE: runScorecardEditCmd,
	}
	for _, f := range model.DefaultScorecard().Fields() {
		cmd.Flags().String(f.ID, "", f.Label)
	}
	return cmd
}

// runScorecardEditCmd executes the scorecard edit command.
func runScorecardEditCmd(cmd *cobra.Command, _ []string) error {
	inputs := map[string]string{}
	for _, key := range model.ScorecardKeys() {
		if !cmd.Flags().Changed(key) {
			continue
		}
		raw, err := cmd.Flags().GetString(key)
		if err != nil {
			return err
		}
		inputs[key] = raw
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: use one of --%s", errNoFields, model.ScorecardKeys()[0])
	}

	return withApp(cmd, func(a *app) error {
		editor := a.dash.Scorecard()
		editor.ToggleEdit()
		for key, raw := range inputs {
			if err := editor.UpdateBuffer(key, raw); err != nil {
				editor.Discard()
				return err
			}
		}
		if err := editor.Commit(cmd.Context()); err != nil {
			editor.Discard()
			return err
		}
		a.printNotice(cmd.OutOrStdout())
		return nil
	})
}
