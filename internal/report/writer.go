package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/gtcidash/internal/model"
)

// Report is everything a writer can render: the export document plus the
// current metrics and view.
type Report struct {
	Document

	// Scorecard is the committed scorecard.
	Scorecard model.Scorecard

	// Indicators is the committed indicator list.
	Indicators []model.Indicator

	// ActiveView is the selected dashboard tab.
	ActiveView model.View
}

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the same
// API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *Report) (int, error)
}

// Format selects a Writer implementation.
type Format string

const (
	// FormatJSON writes the re-importable export document.
	FormatJSON Format = "json"
	// FormatMarkdown writes a Markdown report.
	FormatMarkdown Format = "markdown"
	// FormatText writes a plain-text summary.
	FormatText Format = "text"
)

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatMarkdown, FormatText}
}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatMarkdown, FormatText:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, markdown or text)", s)
	}
}

// NewWriter returns the writer for format. pretty only affects JSON.
func NewWriter(format Format, output io.Writer, pretty bool) (Writer, error) {
	switch format {
	case FormatJSON:
		if pretty {
			return NewJSONWriter(output, WithPrettyPrint()), nil
		}
		return NewJSONWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatText:
		return NewSimpleWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// ratingCounts counts set ratings per rating value.
func ratingCounts(r model.Ratings) map[model.Rating]int {
	counts := make(map[model.Rating]int, 4)
	for _, rating := range r {
		if rating.IsSet() {
			counts[rating]++
		}
	}
	return counts
}

// setRatings lists the set rating values in severity order.
func setRatings() []model.Rating {
	return []model.Rating{model.RatingCritical, model.RatingConcern, model.RatingMonitor, model.RatingStrength}
}

// orDash returns s, or "-" when s is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
