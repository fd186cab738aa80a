package annotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nao1215/gtcidash/internal/database"
	"github.com/nao1215/gtcidash/internal/model"
)

// Store is the live notes and ratings state with write-through persistence.
type Store struct {
	mu      sync.Mutex
	db      database.Store
	notes   model.Notes
	ratings model.Ratings
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty Store backed by db. Call Load to hydrate it.
func New(db database.Store, opts ...Option) *Store {
	s := &Store{
		db:      db,
		notes:   model.Notes{},
		ratings: model.Ratings{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads notes and ratings from the database.
//
// Missing keys leave the maps empty. Corrupt values are logged and replaced
// by empty maps. Rating entries whose label is not part of the enum are
// dropped with a warning.
func (s *Store) Load(ctx context.Context) error {
	notes := model.Notes{}
	if _, err := database.GetJSON(ctx, s.db, database.KeyNotes, &notes); err != nil {
		if !errors.Is(err, database.ErrCorrupt) {
			return fmt.Errorf("failed to load notes: %w", err)
		}
		s.logger.Warn("stored notes are corrupt, starting empty", "error", err)
		notes = model.Notes{}
	}

	labels := map[string]string{}
	if _, err := database.GetJSON(ctx, s.db, database.KeyRatings, &labels); err != nil {
		if !errors.Is(err, database.ErrCorrupt) {
			return fmt.Errorf("failed to load ratings: %w", err)
		}
		s.logger.Warn("stored ratings are corrupt, starting empty", "error", err)
		labels = map[string]string{}
	}
	ratings, rejected := model.RatingsFromLabels(labels)
	for _, item := range rejected {
		s.logger.Warn("dropping stored rating with unknown label", "item", item, "label", labels[item])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
	s.ratings = ratings
	return nil
}

// SetNote replaces the note of sectionID and writes the notes through.
// An empty text is stored as an empty note.
func (s *Store) SetNote(ctx context.Context, sectionID, text string) error {
	if sectionID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.notes.Clone()
	next[sectionID] = text
	if err := database.SetJSON(ctx, s.db, database.KeyNotes, next); err != nil {
		return fmt.Errorf("failed to save note %q: %w", sectionID, err)
	}
	s.notes = next
	s.logger.Debug("note saved", "section", sectionID, "note", text)
	return nil
}

// SetRating replaces the rating of itemID and writes the ratings through.
// RatingUnset removes the item.
func (s *Store) SetRating(ctx context.Context, itemID string, rating model.Rating) error {
	if itemID == "" {
		return ErrEmptyID
	}
	if !rating.Valid() {
		return fmt.Errorf("%w: %d", model.ErrInvalidRating, int(rating))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.ratings.Clone()
	if rating.IsSet() {
		next[itemID] = rating
	} else {
		delete(next, itemID)
	}
	if err := database.SetJSON(ctx, s.db, database.KeyRatings, next); err != nil {
		return fmt.Errorf("failed to save rating %q: %w", itemID, err)
	}
	s.ratings = next
	s.logger.Debug("rating saved", "item", itemID, "rating", rating.String())
	return nil
}

// Replace overwrites both maps and writes both through in one batch.
// Memory changes only when both keys were stored.
func (s *Store) Replace(ctx context.Context, notes model.Notes, ratings model.Ratings) error {
	b := database.NewBatch()
	s.StageReplace(b, notes, ratings)
	if err := b.Commit(ctx, s.db); err != nil {
		return fmt.Errorf("failed to save notes and ratings: %w", err)
	}
	return nil
}

// StageReplace adds both maps to b. The live maps are swapped when b
// commits. It is used when restoring a snapshot or importing an export
// document together with other keys.
func (s *Store) StageReplace(b *database.Batch, notes model.Notes, ratings model.Ratings) {
	nextNotes := notes.Clone()
	nextRatings := make(model.Ratings, len(ratings))
	for item, rating := range ratings {
		if rating.IsSet() && rating.Valid() {
			nextRatings[item] = rating
		}
	}

	b.PutJSON(database.KeyNotes, nextNotes)
	b.PutJSON(database.KeyRatings, nextRatings)
	b.OnCommit(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.notes = nextNotes
		s.ratings = nextRatings
	})
}

// Notes returns a copy of the notes map.
func (s *Store) Notes() model.Notes {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Clone()
}

// Ratings returns a copy of the ratings map.
func (s *Store) Ratings() model.Ratings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratings.Clone()
}

// Note returns the note of sectionID.
func (s *Store) Note(sectionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.notes[sectionID]
	return text, ok
}

// Rating returns the rating of itemID, RatingUnset when none is stored.
func (s *Store) Rating(itemID string) model.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratings[itemID]
}
