package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nao1215/gtcidash/internal/model"
)

// DocumentVersion is the schema version written into exported documents.
const DocumentVersion = 1

// DefaultFileName is the file name suggested for exports.
const DefaultFileName = "gtci-dashboard-data.json"

// ExportDateLayout is the ISO 8601 UTC layout of Document.ExportDate.
const ExportDateLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrUnsupportedVersion is returned when importing a document written
	// by a newer schema version.
	ErrUnsupportedVersion = errors.New("export document has unsupported version")

	// ErrInvalidDocument is returned when an import cannot be decoded.
	ErrInvalidDocument = errors.New("invalid export document")
)

// Document is the export file format.
type Document struct {
	// Version is the schema version. Documents exported by the browser
	// dashboard have no version and decode as 0.
	Version int `json:"version"`

	// Notes is the notes map at export time.
	Notes model.Notes `json:"notes"`

	// Ratings is the ratings map at export time.
	Ratings model.Ratings `json:"ratings"`

	// Snapshots is the full snapshot list in creation order.
	Snapshots []model.Snapshot `json:"snapshots"`

	// ExportDate is the export time in ISO 8601 UTC with milliseconds.
	ExportDate string `json:"exportDate"`
}

// Build assembles an export document. The inputs are deep-copied, so the
// document stays valid when the live state changes afterwards.
func Build(notes model.Notes, ratings model.Ratings, snapshots []model.Snapshot, now time.Time) Document {
	return Document{
		Version:    DocumentVersion,
		Notes:      notes.Clone(),
		Ratings:    ratings.Clone(),
		Snapshots:  model.CloneSnapshots(snapshots),
		ExportDate: FormatExportDate(now),
	}
}

// FormatExportDate renders t the way ExportDate expects it.
func FormatExportDate(t time.Time) string {
	return t.UTC().Format(ExportDateLayout)
}

// rawDocument mirrors Document with ratings kept as labels, so Import can
// report the offending item instead of dropping it.
type rawDocument struct {
	Version    int               `json:"version"`
	Notes      model.Notes       `json:"notes"`
	Ratings    map[string]string `json:"ratings"`
	Snapshots  []model.Snapshot  `json:"snapshots"`
	ExportDate string            `json:"exportDate"`
}

// Import decodes an export document.
//
// Top-level ratings must use valid labels; the first invalid item is
// reported as an error wrapping model.ErrInvalidRating. Ratings inside
// snapshots are decoded leniently, as when loading them from storage.
func Import(r io.Reader) (Document, error) {
	var raw rawDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if raw.Version > DocumentVersion {
		return Document{}, fmt.Errorf("%w: %d (expected at most %d)", ErrUnsupportedVersion, raw.Version, DocumentVersion)
	}

	ratings, rejected := model.RatingsFromLabels(raw.Ratings)
	if len(rejected) > 0 {
		item := rejected[0]
		return Document{}, fmt.Errorf("%w: item %q has label %q", model.ErrInvalidRating, item, raw.Ratings[item])
	}

	doc := Document{
		Version:    raw.Version,
		Notes:      raw.Notes.Clone(),
		Ratings:    ratings,
		Snapshots:  make([]model.Snapshot, 0, len(raw.Snapshots)),
		ExportDate: raw.ExportDate,
	}
	seen := make(map[int64]bool, len(raw.Snapshots))
	for i, s := range raw.Snapshots {
		if s.Name == "" {
			return Document{}, fmt.Errorf("%w: snapshot %d has no name", ErrInvalidDocument, i)
		}
		if seen[s.ID] {
			return Document{}, fmt.Errorf("%w: duplicate snapshot id %d", ErrInvalidDocument, s.ID)
		}
		seen[s.ID] = true
		if s.ActiveView == "" {
			s.ActiveView = model.DefaultView
		}
		doc.Snapshots = append(doc.Snapshots, s.Clone())
	}
	return doc, nil
}
