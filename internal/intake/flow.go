package intake

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/services"
	"github.com/desertthunder/mvk/internal/shared"
)

// AddFunc receives every finished entry. It is wired to the collection store.
type AddFunc func(entry models.MovieEntry) error

// Flow performs the side effects of movie intake.
type Flow struct {
	db         services.MovieDatabase
	onAddMovie AddFunc
	logger     *log.Logger
}

// NewFlow creates a [Flow]. db may be nil when no movie database credential is configured, in which case search is
// unavailable. A nil logger discards output.
func NewFlow(db services.MovieDatabase, onAddMovie AddFunc, logger *log.Logger) *Flow {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Flow{db: db, onAddMovie: onAddMovie, logger: logger}
}

// CanSearch reports whether a movie database is available.
func (f *Flow) CanSearch() bool {
	return f.db != nil
}

// Search returns the movies matching query.
//
// Queries of two UTF-16 code units or fewer return an empty result without contacting the movie database.
func (f *Flow) Search(ctx context.Context, query string) ([]models.SuggestedMovie, error) {
	if !IsSearchable(query) {
		return []models.SuggestedMovie{}, nil
	}
	if f.db == nil {
		return nil, shared.ErrMissingCredentials
	}

	results, err := f.db.SearchMovies(ctx, query)
	if err != nil {
		f.logger.Debug("search failed", "query", query, "error", err)
		return nil, err
	}
	if results == nil {
		results = []models.SuggestedMovie{}
	}

	f.logger.Debug("search completed", "query", query, "results", len(results))
	return results, nil
}

// Resolve fetches the credits of movie and normalizes it into a collection entry without submitting it.
func (f *Flow) Resolve(ctx context.Context, movie models.SuggestedMovie) (models.MovieEntry, error) {
	if f.db == nil {
		return models.MovieEntry{}, shared.ErrMissingCredentials
	}
	if movie.ID == 0 {
		return models.MovieEntry{}, shared.ErrMissingMovieID
	}

	credits, err := f.db.GetCredits(ctx, movie.ID)
	if err != nil {
		return models.MovieEntry{}, err
	}

	return EntryFromSuggestion(movie, credits)
}

// SelectSuggestion resolves movie and submits the result through OnAddMovie, bypassing any draft.
func (f *Flow) SelectSuggestion(ctx context.Context, movie models.SuggestedMovie) (models.MovieEntry, error) {
	entry, err := f.Resolve(ctx, movie)
	if err != nil {
		return models.MovieEntry{}, err
	}

	if err := f.submit(entry); err != nil {
		return models.MovieEntry{}, err
	}

	f.logger.Info("added suggested movie", "id", movie.ID, "title", entry.Title)
	return entry, nil
}

// SubmitManual submits the draft of s as-is.
//
// On success the draft is cleared and the panel closed. When OnAddMovie fails the session is left untouched.
func (f *Flow) SubmitManual(s *Session) (models.MovieEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.panel != PanelEditing {
		return models.MovieEntry{}, shared.ErrPanelClosed
	}

	entry := copyEntry(s.draft)
	if err := f.submit(entry); err != nil {
		return models.MovieEntry{}, err
	}

	s.draft = models.MovieEntry{}
	s.panel = PanelClosed

	f.logger.Info("added movie", "session", s.ID, "title", entry.Title)
	return entry, nil
}

// Select resolves and submits movie for s. On success the search box of s is cleared.
func (f *Flow) Select(ctx context.Context, s *Session, movie models.SuggestedMovie) (models.MovieEntry, error) {
	entry, err := f.SelectSuggestion(ctx, movie)
	if err != nil {
		return entry, err
	}
	s.ClearSearch()
	return entry, nil
}

func (f *Flow) submit(entry models.MovieEntry) error {
	if f.onAddMovie == nil {
		return nil
	}
	if err := f.onAddMovie(entry); err != nil {
		return fmt.Errorf("failed to add movie: %w", err)
	}
	return nil
}
