package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/gtcidash/internal/model"
)

// SimpleWriter outputs a human-readable text summary.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and is easy to pipe to
// files or other tools. The terminal UI does the colored rendering.
type SimpleWriter struct {
	baseWriter

	// verbose includes note texts instead of note counts.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose includes full note texts in the output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeScorecard(&sb, report)
	w.writeIndicators(&sb, report)
	w.writeAnnotations(&sb, report)
	w.writeSnapshots(&sb, report)
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *Report) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      GTCI DASHBOARD SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	view := report.ActiveView
	if view == "" {
		view = model.DefaultView
	}
	fmt.Fprintf(sb, "Export Date:  %s\n", orDash(report.ExportDate))
	fmt.Fprintf(sb, "Active View:  %s\n\n", view.Title())
}

func writeRule(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeScorecard(sb *strings.Builder, report *Report) {
	writeRule(sb, "SCORECARD")
	for _, f := range report.Scorecard.Fields() {
		fmt.Fprintf(sb, "  %-18s %8s\n", f.Label, model.FormatValue(f.Value))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeIndicators(sb *strings.Builder, report *Report) {
	if len(report.Indicators) == 0 {
		return
	}
	writeRule(sb, "INDICATORS")
	for _, ind := range report.Indicators {
		rating := ""
		if r := report.Ratings[ind.RatingKey()]; r.IsSet() {
			rating = "[" + strings.ToUpper(r.String()) + "]"
		}
		fmt.Fprintf(sb, "  %d. %-28s %6s  %s\n", ind.ID, ind.Name, model.FormatValue(ind.Value), rating)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeAnnotations(sb *strings.Builder, report *Report) {
	writeRule(sb, "ANNOTATIONS")

	counts := ratingCounts(report.Ratings)
	for _, r := range setRatings() {
		fmt.Fprintf(sb, "  %-10s %d\n", strings.ToUpper(r.String())+":", counts[r])
	}
	fmt.Fprintf(sb, "  %-10s %d\n\n", "NOTES:", len(report.Notes))

	if !w.verbose {
		return
	}
	for _, id := range report.Notes.Keys() {
		fmt.Fprintf(sb, "  [%s]\n", id)
		for _, line := range strings.Split(report.Notes[id], "\n") {
			fmt.Fprintf(sb, "    %s\n", line)
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSnapshots(sb *strings.Builder, report *Report) {
	writeRule(sb, "SNAPSHOTS")
	if len(report.Snapshots) == 0 {
		sb.WriteString("  No snapshots saved\n\n")
		return
	}
	for _, s := range report.Snapshots {
		fmt.Fprintf(sb, "  * %s (%s)\n", s.Name, orDash(s.Timestamp))
		fmt.Fprintf(sb, "    id %d, %d notes, %d ratings, view %s\n",
			s.ID, len(s.Notes), len(s.Ratings), s.ActiveView)
	}
	sb.WriteString("\n")
}
