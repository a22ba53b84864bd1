package intake

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/shared"
)

// PanelState is the visibility of the add panel.
type PanelState int

const (
	PanelClosed PanelState = iota
	PanelEditing
)

func (p PanelState) String() string {
	switch p {
	case PanelEditing:
		return "editing"
	default:
		return "closed"
	}
}

// SearchState is the search sub-state of a session.
type SearchState int

const (
	SearchIdle SearchState = iota
	SearchSearching
)

func (s SearchState) String() string {
	switch s {
	case SearchSearching:
		return "searching"
	default:
		return "idle"
	}
}

// Field names accepted by [Session.SetField].
const (
	FieldTitle    = "title"
	FieldDirector = "director"
	FieldYear     = "year"
	FieldRating   = "rating"
)

// Session holds the state of one add-panel interaction.
type Session struct {
	ID string

	mu          sync.Mutex
	panel       PanelState
	search      SearchState
	draft       models.MovieEntry
	query       string
	suggestions []models.SuggestedMovie
}

// NewSession creates a closed session with an empty draft.
func NewSession() *Session {
	return &Session{ID: shared.GenerateID(), suggestions: []models.SuggestedMovie{}}
}

// Open shows the add panel. Opening an already open panel keeps the draft.
func (s *Session) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = PanelEditing
}

// Cancel hides the add panel and discards the draft.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = PanelClosed
	s.draft = models.MovieEntry{}
}

// Panel returns the add panel state.
func (s *Session) Panel() PanelState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

// SetField merges a single field into the draft, overwriting any previous value.
//
// Title, director and year are free text. A rating value is parsed as an integer and stored with [Session.SetRating];
// an empty rating clears it.
func (s *Session) SetField(field, value string) (models.MovieEntry, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case FieldTitle:
		return s.update(func(d *models.MovieEntry) { d.Title = value }), nil
	case FieldDirector:
		return s.update(func(d *models.MovieEntry) { d.Director = value }), nil
	case FieldYear:
		return s.update(func(d *models.MovieEntry) { d.Year = value }), nil
	case FieldRating:
		value = strings.TrimSpace(value)
		if value == "" {
			return s.update(func(d *models.MovieEntry) { d.Rating = nil }), nil
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return s.Draft(), fmt.Errorf("%w: rating %q is not a number", shared.ErrInvalidInput, value)
		}
		return s.SetRating(n)
	default:
		return s.Draft(), fmt.Errorf("%w: unknown field %q", shared.ErrInvalidArgument, field)
	}
}

// SetRating stores a 0-5 rating on the draft without scaling.
func (s *Session) SetRating(n int) (models.MovieEntry, error) {
	if n < 0 || n > 5 {
		return s.Draft(), fmt.Errorf("%w: rating must be between 0 and 5, got %d", shared.ErrInvalidInput, n)
	}
	return s.update(func(d *models.MovieEntry) { d.Rating = models.IntPtr(n) }), nil
}

// Draft returns a copy of the draft entry.
func (s *Session) Draft() models.MovieEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEntry(s.draft)
}

func (s *Session) update(fn func(*models.MovieEntry)) models.MovieEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.draft)
	return copyEntry(s.draft)
}

// SetQuery records the search text and reports whether it should be searched.
//
// A short query clears the suggestions and leaves the session idle. Otherwise the session enters the searching state
// until [Session.ApplySuggestions] is called.
func (s *Session) SetQuery(query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
	if !IsSearchable(query) {
		s.suggestions = []models.SuggestedMovie{}
		s.search = SearchIdle
		return false
	}
	s.search = SearchSearching
	return true
}

// ApplySuggestions replaces the suggestion list and returns the session to idle.
// Results are applied in arrival order; a slow earlier search may overwrite a newer one.
func (s *Session) ApplySuggestions(results []models.SuggestedMovie) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if results == nil {
		results = []models.SuggestedMovie{}
	}
	s.suggestions = results
	s.search = SearchIdle
}

// ClearSearch empties the query and suggestions.
func (s *Session) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.suggestions = []models.SuggestedMovie{}
	s.search = SearchIdle
}

func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Session) SearchState() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// Suggestions returns a copy of the current suggestion list.
func (s *Session) Suggestions() []models.SuggestedMovie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SuggestedMovie{}, s.suggestions...)
}

func copyEntry(e models.MovieEntry) models.MovieEntry {
	if e.ID != nil {
		e.ID = models.Int64Ptr(*e.ID)
	}
	if e.Rating != nil {
		e.Rating = models.IntPtr(*e.Rating)
	}
	return e
}
