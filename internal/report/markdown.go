package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/gtcidash/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for sharing an analysis with people who do not
// run the dashboard.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation instead of text templates, so table escaping and GitHub
// alerts come from one place.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeScorecard(md, report)
	w.writeIndicators(md, report)
	w.writeRatings(md, report)
	w.writeNotes(md, report)
	w.writeSnapshots(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and export information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *Report) {
	md.H1("GTCI Dashboard Report")
	md.PlainText("")

	view := report.ActiveView
	if view == "" {
		view = model.DefaultView
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Export Date", orDash(report.ExportDate)},
			{"Active View", view.Title()},
			{"Schema Version", strconv.Itoa(report.Version)},
		},
	})
	md.PlainText("")
}

// writeScorecard writes the headline numbers.
func (w *MarkdownWriter) writeScorecard(md *markdown.Markdown, report *Report) {
	md.H2("Scorecard")
	md.PlainText("")

	fields := report.Scorecard.Fields()
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f.Label, model.FormatValue(f.Value), f.Description})
	}
	md.Table(markdown.TableSet{
		Header:    []string{"Metric", "Value", "Description"},
		Rows:      rows,
		Alignment: []markdown.TableAlignment{markdown.AlignLeft, markdown.AlignRight, markdown.AlignLeft},
	})
	md.PlainText("")
}

// writeIndicators writes the detailed indicators with their ratings.
func (w *MarkdownWriter) writeIndicators(md *markdown.Markdown, report *Report) {
	md.H2("Detailed Indicators")
	md.PlainText("")

	if len(report.Indicators) == 0 {
		md.PlainText("No indicators.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Indicators))
	for _, ind := range report.Indicators {
		rating := "-"
		if r := report.Ratings[ind.RatingKey()]; r.IsSet() {
			rating = r.Title()
		}
		rows = append(rows, []string{
			strconv.Itoa(ind.ID),
			ind.Name,
			model.FormatValue(ind.Value),
			rating,
		})
	}
	md.Table(markdown.TableSet{
		Header:    []string{"ID", "Indicator", "Value", "Rating"},
		Rows:      rows,
		Alignment: []markdown.TableAlignment{markdown.AlignRight, markdown.AlignLeft, markdown.AlignRight, markdown.AlignLeft},
	})
	md.PlainText("")
}

// writeRatings writes the rating distribution and an alert for critical items.
func (w *MarkdownWriter) writeRatings(md *markdown.Markdown, report *Report) {
	md.H2("Ratings")
	md.PlainText("")

	if len(report.Ratings) == 0 {
		md.PlainText("No items rated yet.")
		md.PlainText("")
		return
	}

	counts := ratingCounts(report.Ratings)
	rows := make([][]string, 0, len(report.Ratings))
	for _, item := range report.Ratings.Keys() {
		rows = append(rows, []string{cell(item), report.Ratings[item].Title()})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Item", "Rating"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, counts)

	switch {
	case counts[model.RatingCritical] > 0:
		md.Cautionf("%d item(s) rated critical.", counts[model.RatingCritical])
	case counts[model.RatingConcern] > 0:
		md.Warningf("%d item(s) rated as a concern.", counts[model.RatingConcern])
	default:
		md.Tip("No critical or concerning items.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the rating distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts map[model.Rating]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Rating Distribution"),
		piechart.WithShowData(true),
	)
	for _, r := range setRatings() {
		if counts[r] > 0 {
			chart.LabelAndIntValue(r.Title(), uint64(counts[r]))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeNotes writes every note under its section id.
func (w *MarkdownWriter) writeNotes(md *markdown.Markdown, report *Report) {
	md.H2("Notes")
	md.PlainText("")

	keys := report.Notes.Keys()
	written := 0
	for _, id := range keys {
		text := report.Notes[id]
		if text == "" {
			continue
		}
		md.H3(sectionTitle(id))
		md.PlainText("")
		md.Blockquote(text)
		md.PlainText("")
		written++
	}
	if written == 0 {
		md.PlainText("No notes yet.")
		md.PlainText("")
	}
}

// writeSnapshots writes the snapshot list.
func (w *MarkdownWriter) writeSnapshots(md *markdown.Markdown, report *Report) {
	md.H2("Snapshots")
	md.PlainText("")

	if len(report.Snapshots) == 0 {
		md.Note("No snapshots saved yet.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Snapshots))
	for _, s := range report.Snapshots {
		rows = append(rows, []string{
			cell(s.Name),
			orDash(cell(s.Timestamp)),
			strconv.Itoa(len(s.Notes)),
			strconv.Itoa(len(s.Ratings)),
			s.ActiveView.Title(),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Name", "Saved", "Notes", "Ratings", "View"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, s := range report.Snapshots {
		if len(s.Notes) == 0 {
			continue
		}
		items := make([]string, 0, len(s.Notes))
		for _, id := range s.Notes.Keys() {
			items = append(items, sectionTitle(id)+": "+truncateString(s.Notes[id], 80))
		}
		md.Details(s.Name, markdown.NewMarkdown(io.Discard).BulletList(items...).String())
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by gtcidash*")
}

// sectionTitle renders a section id as a heading. Known dashboard views
// use their tab title.
func sectionTitle(id string) string {
	if v, err := model.ParseView(id); err == nil {
		return v.Title()
	}
	return id
}

// cell makes user text safe inside a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
