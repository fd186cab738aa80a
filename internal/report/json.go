package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/gtcidash/internal/model"
)

// JSONWriter outputs the export document in JSON format.
// The output is the file format read back by Import.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because the document must round-trip through the same
// encoder the storage layer uses, and map keys come out sorted.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the export document of report.
// The metrics in report are not part of the export format and are ignored.
func (w *JSONWriter) Write(report *Report) (int, error) {
	return w.WriteDocument(report.Document)
}

// WriteDocument outputs doc.
func (w *JSONWriter) WriteDocument(doc Document) (int, error) {
	// Empty collections are written as {} and [], never null.
	if doc.Notes == nil {
		doc.Notes = model.Notes{}
	}
	if doc.Ratings == nil {
		doc.Ratings = model.Ratings{}
	}
	if doc.Snapshots == nil {
		doc.Snapshots = []model.Snapshot{}
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(doc, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
