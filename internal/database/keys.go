package database

// Storage keys. Together with the shapes documented on each component they
// form the on-disk schema.
//
// The browser dashboard kept the same three collections in localStorage as
// gtciNotes, gtciRatings and gtciSnapshots. Those keys are never read here:
// browser data comes in through an exported document (gtcidash import),
// whose notes, ratings and snapshots fields map onto KeyNotes, KeyRatings
// and KeySnapshots.
const (
	// KeyNotes holds map[sectionID]text.
	KeyNotes = "notes"

	// KeyRatings holds map[itemID]ratingLabel.
	KeyRatings = "ratings"

	// KeySnapshots holds the snapshot list.
	KeySnapshots = "snapshots"

	// KeyScorecard holds the scorecard values.
	KeyScorecard = "scorecard_data"

	// KeyIndicators holds the indicator list.
	KeyIndicators = "indicators_data"

	// KeySections holds map[sectionID]section record.
	KeySections = "sections"

	// KeyActiveView holds the selected dashboard tab.
	KeyActiveView = "active_view"

	// LegacySectionPrefix prefixes the plain-text section keys written by the
	// original edit modal ("edit_<sectionID>"). They are only read.
	LegacySectionPrefix = "edit_"
)
