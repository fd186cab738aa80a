package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nao1215/gtcidash/internal/report"
	"github.com/spf13/cobra"
)

// stdoutPath selects standard output as the export destination.
const stdoutPath = "-"

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes, ratings and snapshots",
		Long: `Export writes the notes, ratings and snapshots as a document that
"gtcidash import" can read back. The JSON document has exactly the keys
version, notes, ratings, snapshots and exportDate.

Markdown and text formats add the scorecard and indicator values and are
meant for reading, not for import.

Without -o, JSON is written to the configured export file
(gtci-dashboard-data.json by default) and other formats to stdout.

Examples:
  gtcidash export
  gtcidash export -o - --pretty
  gtcidash export --markdown -o report.md
  gtcidash export --format text`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Write to the specified file path, or - for stdout")
	cmd.Flags().String("format", string(report.FormatJSON),
		"Output format: json, markdown or text")
	cmd.Flags().BoolP("markdown", "m", false,
		"Shorthand for --format markdown")
	cmd.Flags().Bool("pretty", false,
		"Indent JSON output")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if boolFlag(cmd, "markdown") {
		if cmd.Flags().Changed("format") && format != report.FormatMarkdown {
			return fmt.Errorf("conflicting formats: --markdown and --format %s", format)
		}
		format = report.FormatMarkdown
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	return withApp(cmd, func(a *app) error {
		if outputPath == "" && format == report.FormatJSON {
			outputPath = a.cfg.ExportFile
		}
		pretty := a.cfg.PrettyExport || boolFlag(cmd, "pretty")

		write := func(w io.Writer) error {
			writer, err := report.NewWriter(format, w, pretty)
			if err != nil {
				return err
			}
			if _, err := writer.Write(a.dash.Report(a.dash.Now())); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			return nil
		}

		toFile := outputPath != "" && outputPath != stdoutPath
		if !toFile {
			if err := write(cmd.OutOrStdout()); err != nil {
				return err
			}
		} else {
			if err := ensureParentDir(outputPath); err != nil {
				return err
			}
			f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			if err := writeAndClose(f, write); err != nil {
				return err
			}
		}

		a.logger.Info("exported dashboard data", "format", string(format), "output", outputPath)
		if toFile {
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outputPath)
		}
		return nil
	})
}

// writeAndClose runs write against wc and closes it. A close error is
// returned when write succeeded, since buffered data may not have reached
// the file.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
