package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewSectionCmd creates the section command group.
func NewSectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Edit or show free-form section content",
		Long: `Section content is longer text attached to a dashboard section, kept
separately from notes. It is not captured by snapshots.`,
	}

	edit := &cobra.Command{
		Use:   "edit <section-id> <text>...",
		Short: "Replace the content of a section",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := cmd.Flags().GetString("title")
			if err != nil {
				return err
			}
			if title == "" {
				title = args[0]
			}
			return withApp(cmd, func(a *app) error {
				session, err := a.dash.Sections().Open(cmd.Context(), args[0], title)
				if err != nil {
					return err
				}
				if err := session.SetText(strings.Join(args[1:], " ")); err != nil {
					return err
				}
				if err := session.Save(cmd.Context()); err != nil {
					_ = session.Cancel()
					return err
				}
				a.printNotice(cmd.OutOrStdout())
				return nil
			})
		},
	}
	edit.Flags().String("title", "", "Title shown above the editor (default: the section id)")
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:   "show [section-id]",
		Short: "Show one section or list all sections with content",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				out := cmd.OutOrStdout()
				sections := a.dash.Sections()
				if len(args) == 1 {
					fmt.Fprintln(out, sections.Display(args[0]))
					return nil
				}
				ids := sections.IDs()
				if len(ids) == 0 {
					fmt.Fprintln(out, "No section content")
					return nil
				}
				for _, id := range ids {
					rec, _ := sections.Record(id)
					first, _, _ := strings.Cut(rec.Content, "\n")
					fmt.Fprintf(out, "%s: %s\n", id, first)
				}
				return nil
			})
		},
	})
	return cmd
}
