package intake

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf16"

	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/shared"
)

const (
	// MinQueryLength is the longest query that is never sent to the movie database.
	MinQueryLength = 2

	directorJob = "Director"
)

// IsSearchable reports whether query is long enough to search for.
// Length is counted in UTF-16 code units, so characters outside the BMP count twice.
func IsSearchable(query string) bool {
	return queryLength(query) > MinQueryLength
}

func queryLength(query string) int {
	n := 0
	for _, r := range query {
		n += utf16.RuneLen(r)
	}
	return n
}

// DirectorFrom returns the name of the first crew member whose job is exactly "Director".
func DirectorFrom(credits *models.Credits) (string, error) {
	if credits == nil {
		return "", shared.ErrDirectorNotFound
	}
	for _, member := range credits.Crew {
		if member.Job == directorJob {
			return member.Name, nil
		}
	}
	return "", fmt.Errorf("%w: movie %d", shared.ErrDirectorNotFound, credits.ID)
}

// ReleaseYear returns the part of a release date before the first '-'.
//
// "1999-03-19" yields "1999"; an empty date yields "".
func ReleaseYear(date string) string {
	year, _, _ := strings.Cut(date, "-")
	return year
}

// ConvertRating maps a 0-10 vote average onto the 0-5 collection scale, rounding half away from zero.
func ConvertRating(voteAverage float64) int {
	return int(math.Round(voteAverage / 10 * 5))
}

// EntryFromSuggestion builds the collection entry for movie using its credits.
func EntryFromSuggestion(movie models.SuggestedMovie, credits *models.Credits) (models.MovieEntry, error) {
	director, err := DirectorFrom(credits)
	if err != nil {
		return models.MovieEntry{}, err
	}

	return models.MovieEntry{
		ID:       models.Int64Ptr(movie.ID),
		Title:    movie.Title,
		Director: director,
		Year:     ReleaseYear(movie.ReleaseDate),
		Rating:   models.IntPtr(ConvertRating(movie.VoteAverage)),
	}, nil
}

// IsAlreadyInCollection reports whether some entry in collection has the same id as movie.
// Manually entered movies carry no id and never match.
func IsAlreadyInCollection(movie models.SuggestedMovie, collection models.Collection) bool {
	for _, entry := range collection {
		if entry.ID != nil && *entry.ID == movie.ID {
			return true
		}
	}
	return false
}

// HideCollected returns the suggestions not yet in collection, preserving order.
func HideCollected(suggestions []models.SuggestedMovie, collection models.Collection) []models.SuggestedMovie {
	visible := make([]models.SuggestedMovie, 0, len(suggestions))
	for _, movie := range suggestions {
		if !IsAlreadyInCollection(movie, collection) {
			visible = append(visible, movie)
		}
	}
	return visible
}
