package main

import (
	"fmt"
	"os"

	"github.com/nao1215/gtcidash/internal/report"
	"github.com/spf13/cobra"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace notes, ratings and snapshots with an exported document",
		Long: `Import reads a JSON document written by "gtcidash export" (or by the
browser dashboard) and replaces the current notes, ratings and snapshots
with its contents. Scorecard, indicator and section data are not touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer f.Close()

			doc, err := report.Import(f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			return withApp(cmd, func(a *app) error {
				if err := a.dash.Import(cmd.Context(), doc); err != nil {
					return err
				}
				a.printNotice(cmd.OutOrStdout())
				fmt.Fprintf(cmd.OutOrStdout(), "%d notes, %d ratings, %d snapshots\n",
					len(doc.Notes), len(doc.Ratings), len(doc.Snapshots))
				return nil
			})
		},
	}
}
