package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for gtcidash.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gtcidash",
		Short: "Persistent analyst state for the GTCI dashboard",
		Long: `gtcidash stores the analyst state of a Global Talent Competitiveness Index
dashboard: notes per section, ratings per item, named snapshots, edited
scorecard and indicator values, and section content.

Every change is written through to a local SQLite database immediately.
Use "gtcidash tui" for the interactive dashboard or the subcommands below
for scripting.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("config", "",
		"Configuration file path (default: .gtcidash in current or home directory)")
	cmd.PersistentFlags().String("db-dir", "",
		"Directory of the gtcidash database (default: XDG data directory)")
	cmd.PersistentFlags().Bool("log-content", false,
		"Include note and section text in verbose logs")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewNoteCmd())
	cmd.AddCommand(NewRateCmd())
	cmd.AddCommand(NewViewCmd())
	cmd.AddCommand(NewSnapshotCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewScorecardCmd())
	cmd.AddCommand(NewIndicatorCmd())
	cmd.AddCommand(NewSectionCmd())
	cmd.AddCommand(NewTUICmd())
	cmd.AddCommand(NewKeysCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
