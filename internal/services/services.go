// package services defines interface MovieDatabase for interacting with movie metadata HTTP APIs
//
// TMDB
package services

import (
	"context"

	"github.com/desertthunder/mvk/internal/models"
)

// MovieDatabase defines the movie metadata operations used by the intake flow and the bulk importer.
type MovieDatabase interface {
	// SearchMovies returns the raw search results for query.
	// Returns an empty slice when the response carries no results.
	SearchMovies(ctx context.Context, query string) ([]models.SuggestedMovie, error)

	// GetCredits retrieves the cast and crew of a movie.
	GetCredits(ctx context.Context, movieID int64) (*models.Credits, error)

	// Name returns the name of the service (e.g., "TMDB")
	Name() string
}
