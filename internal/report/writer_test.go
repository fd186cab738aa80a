package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/gtcidash/internal/model"
)

var exportTime = time.Date(2026, 10, 19, 8, 15, 30, 123_000_000, time.UTC)

// createTestReport creates a report for testing.
func createTestReport() *Report {
	notes := model.Notes{
		"overview": "Rank improved by three places.",
		"reforms":  "Visa fast track\nTax credit",
	}
	ratings := model.Ratings{
		"indicator-1": model.RatingCritical,
		"indicator-3": model.RatingStrength,
		"pillars":     model.RatingConcern,
	}
	snapshots := []model.Snapshot{
		{
			ID:         1760861730000,
			Name:       "Q3 Review",
			Timestamp:  "10/19/2026, 8:15:30 AM",
			Notes:      model.Notes{"overview": "first draft"},
			Ratings:    model.Ratings{},
			ActiveView: model.ViewBudget,
		},
	}
	return &Report{
		Document:   Build(notes, ratings, snapshots, exportTime),
		Scorecard:  model.DefaultScorecard(),
		Indicators: model.DefaultIndicators(),
		ActiveView: model.ViewIndicators,
	}
}

// TestBuild tests the export document shape.
func TestBuild(t *testing.T) {
	t.Parallel()

	notes := model.Notes{"a": "1"}
	ratings := model.Ratings{"b": model.RatingMonitor}
	doc := Build(notes, ratings, nil, exportTime)

	if doc.Version != DocumentVersion {
		t.Errorf("got version %d, expected %d", doc.Version, DocumentVersion)
	}
	if doc.ExportDate != "2026-10-19T08:15:30.123Z" {
		t.Errorf("got export date %q", doc.ExportDate)
	}

	notes["a"] = "changed"
	if doc.Notes["a"] != "1" {
		t.Error("document aliases the live notes map")
	}
}

// TestFormatExportDate tests that non-UTC times are converted.
func TestFormatExportDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("JST", 9*60*60)
	got := FormatExportDate(time.Date(2026, 1, 2, 9, 0, 0, 0, loc))
	if got != "2026-01-02T00:00:00.000Z" {
		t.Errorf("got %q", got)
	}
}

// TestJSONWriter tests the JSON export output.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("top-level keys are exactly the export keys", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		var top map[string]json.RawMessage
		if err := json.Unmarshal(buf.Bytes(), &top); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		want := []string{"exportDate", "notes", "ratings", "snapshots", "version"}
		if len(top) != len(want) {
			t.Errorf("got %d keys, expected %d: %s", len(top), len(want), buf.String())
		}
		for _, k := range want {
			if _, ok := top[k]; !ok {
				t.Errorf("missing key %q", k)
			}
		}
		if strings.Contains(buf.String(), "Talent Availability") {
			t.Error("indicators must not be part of the export document")
		}
	})

	t.Run("empty state writes empty collections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteDocument(Document{Version: 1, ExportDate: "x"}); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		want := `{"version":1,"notes":{},"ratings":{},"snapshots":[],"exportDate":"x"}` + "\n"
		if buf.String() != want {
			t.Errorf("got %s, expected %s", buf.String(), want)
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"notes\": {") {
			t.Errorf("expected indented output, got %s", buf.String())
		}
	})

	t.Run("custom indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent(">", "\t")).Write(createTestReport()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "\n>\t\"version\": 1") {
			t.Errorf("expected prefixed tab indentation, got %s", buf.String())
		}
	})
}

// TestExportImportRoundTrip tests that an export reads back to the same state.
func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	r := createTestReport()
	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf).Write(r); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	doc, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !doc.Notes.Equal(r.Notes) {
		t.Errorf("notes differ: %v vs %v", doc.Notes, r.Notes)
	}
	if !doc.Ratings.Equal(r.Ratings) {
		t.Errorf("ratings differ: %v vs %v", doc.Ratings, r.Ratings)
	}
	if len(doc.Snapshots) != 1 || doc.Snapshots[0].Name != "Q3 Review" || doc.Snapshots[0].ActiveView != model.ViewBudget {
		t.Errorf("snapshots differ: %+v", doc.Snapshots)
	}
	if doc.ExportDate != r.ExportDate {
		t.Errorf("got export date %q", doc.ExportDate)
	}
}

// TestImport tests validation of imported documents.
func TestImport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "browser export without version",
			input: `{"notes":{"overview":"x"},"ratings":{"indicator-1":"monitor"},"snapshots":[{"id":1,"name":"a","timestamp":"t","notes":{},"ratings":{},"activeTab":"budget"}],"exportDate":"2024-01-01T00:00:00.000Z"}`,
		},
		{
			name:    "newer version",
			input:   `{"version":2,"notes":{},"ratings":{},"snapshots":[]}`,
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "invalid rating label",
			input:   `{"version":1,"notes":{},"ratings":{"x":"excellent"},"snapshots":[]}`,
			wantErr: model.ErrInvalidRating,
		},
		{
			name:    "not JSON",
			input:   `gtci`,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "duplicate snapshot ids",
			input:   `{"version":1,"snapshots":[{"id":1,"name":"a"},{"id":1,"name":"b"}]}`,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "unnamed snapshot",
			input:   `{"version":1,"snapshots":[{"id":1,"name":""}]}`,
			wantErr: ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Import(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got error %v, expected %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Import failed: %v", err)
			}
			if doc.Notes == nil || doc.Ratings == nil {
				t.Error("imported maps must not be nil")
			}
			if doc.Snapshots[0].ActiveView != model.ViewBudget {
				t.Errorf("legacy activeTab not honored: %+v", doc.Snapshots[0])
			}
		})
	}
}

// TestMarkdownWriter tests Markdown report output.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewMarkdownWriter(&buf).Write(createTestReport())
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero byte count")
	}

	output := buf.String()
	expected := []string{
		"# GTCI Dashboard Report",
		"| Active View | Indicators |",
		"## Scorecard",
		"| Global TCI Score | 63.2 |",
		"## Detailed Indicators",
		"| 1 | Talent Availability | 68 | Critical |",
		"## Ratings",
		"```mermaid",
		"Rating Distribution",
		"[!CAUTION]",
		"### Overview",
		"> Rank improved by three places.",
		"> Tax credit",
		"## Snapshots",
		"| Q3 Review | 10/19/2026, 8:15:30 AM | 1 | 0 | Budget |",
		"Report generated by gtcidash",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q\n%s", want, output)
		}
	}
}

// TestMarkdownWriterEmpty tests Markdown output without annotations.
func TestMarkdownWriterEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := &Report{
		Document:  Build(nil, nil, nil, exportTime),
		Scorecard: model.DefaultScorecard(),
	}
	if _, err := NewMarkdownWriter(&buf).Write(r); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"No items rated yet.", "No notes yet.", "No snapshots saved yet.", "| Active View | Overview |"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q\n%s", want, output)
		}
	}
}

// TestSimpleWriter tests the plain-text summary.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		output := buf.String()
		for _, want := range []string{
			"GTCI DASHBOARD SUMMARY",
			"Active View:  Indicators",
			"Talent Availability",
			"[CRITICAL]",
			"CRITICAL:  1",
			"NOTES:     2",
			"* Q3 Review (10/19/2026, 8:15:30 AM)",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
		if strings.Contains(output, "Visa fast track") {
			t.Error("note texts should only be shown in verbose mode")
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestReport()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "    Visa fast track\n    Tax credit") {
			t.Errorf("expected indented note lines\n%s", buf.String())
		}
	})
}

// TestParseFormat tests format name parsing.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "json", want: FormatJSON},
		{input: "Markdown", want: FormatMarkdown},
		{input: "md", want: FormatMarkdown},
		{input: " text ", want: FormatText},
		{input: "txt", want: FormatText},
		{input: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = (%q, %v), expected %q", tt.input, got, err, tt.want)
		}
	}
}

// TestNewWriter tests the writer factory.
func TestNewWriter(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		w, err := NewWriter(f, &bytes.Buffer{}, true)
		if err != nil || w == nil {
			t.Errorf("NewWriter(%q) = (%v, %v)", f, w, err)
		}
	}
	if _, err := NewWriter("pdf", &bytes.Buffer{}, false); err == nil {
		t.Error("expected error for unknown format")
	}
}

// TestTruncateString tests rune-aware truncation.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"análisis detallado", 8, "análi..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, expected %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

// TestCell tests escaping of table cells.
func TestCell(t *testing.T) {
	t.Parallel()

	if got := cell("a|b\n c"); got != `a\|b c` {
		t.Errorf("got %q", got)
	}
}
