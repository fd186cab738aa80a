package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewSnapshotCmd creates the snapshot command group.
func NewSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save, list, restore and delete named snapshots",
		Long: `A snapshot is a named copy of all notes, all ratings and the active tab.
Loading a snapshot replaces the current notes, ratings and tab with its copy.

Examples:
  gtcidash snapshot save "Before budget review"
  gtcidash snapshot list
  gtcidash snapshot load 1760870400000
  gtcidash snapshot delete 1760870400000`,
	}
	cmd.AddCommand(newSnapshotSaveCmd())
	cmd.AddCommand(newSnapshotListCmd())
	cmd.AddCommand(newSnapshotLoadCmd())
	cmd.AddCommand(newSnapshotDeleteCmd())
	return cmd
}

// parseSnapshotID parses a snapshot id argument.
func parseSnapshotID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snapshot id %q: %w", s, err)
	}
	return id, nil
}

func newSnapshotSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>...",
		Short: "Save the current notes, ratings and tab",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				snap, err := a.dash.SaveSnapshot(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				a.printNotice(cmd.OutOrStdout())
				fmt.Fprintf(cmd.OutOrStdout(), "id: %d\n", snap.ID)
				return nil
			})
		},
	}
}

func newSnapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				out := cmd.OutOrStdout()
				snaps := a.dash.Snapshots()
				if len(snaps) == 0 {
					fmt.Fprintln(out, "No snapshots")
					return nil
				}
				for _, s := range snaps {
					fmt.Fprintf(out, "%d\t%s\t%s\t%d notes, %d ratings, view %s\n",
						s.ID, s.Name, s.Timestamp, len(s.Notes), len(s.Ratings), s.ActiveView)
				}
				return nil
			})
		},
	}
}

func newSnapshotLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <id>",
		Short: "Replace the current notes, ratings and tab with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSnapshotID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				snap, err := a.dash.LoadSnapshot(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded snapshot %q\n", snap.Name)
				return nil
			})
		},
	}
}

func newSnapshotDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSnapshotID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				removed, err := a.dash.DeleteSnapshot(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(cmd.OutOrStdout(), "No snapshot with id %d\n", id)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %d\n", id)
				return nil
			})
		},
	}
}
