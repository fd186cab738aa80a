package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewNoteCmd creates the note command group.
func NewNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage section notes",
		Long: `Notes are free-form text attached to a dashboard section.
They are captured by snapshots and included in exports.

Examples:
  # Write the note of the overview section
  gtcidash note set overview "Rank slipped two places"

  # Show all notes
  gtcidash note show`,
	}
	cmd.AddCommand(newNoteSetCmd())
	cmd.AddCommand(newNoteShowCmd())
	return cmd
}

func newNoteSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <section-id> <text>...",
		Short: "Replace the note of a section",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				text := strings.Join(args[1:], " ")
				if err := a.dash.SetNote(cmd.Context(), args[0], text); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Note saved for %s\n", args[0])
				return nil
			})
		},
	}
}

func newNoteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [section-id]",
		Short: "Show one note or all notes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				out := cmd.OutOrStdout()
				notes := a.dash.Notes()
				if len(args) == 1 {
					text, ok := notes[args[0]]
					if !ok {
						return fmt.Errorf("no note for section %q", args[0])
					}
					fmt.Fprintln(out, text)
					return nil
				}
				if len(notes) == 0 {
					fmt.Fprintln(out, "No notes")
					return nil
				}
				for _, id := range notes.Keys() {
					fmt.Fprintf(out, "%s: %s\n", id, notes[id])
				}
				return nil
			})
		},
	}
}
