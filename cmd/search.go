package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/mvk/internal/formatter"
	"github.com/desertthunder/mvk/internal/intake"
	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the movie database and, with --pick, adds one of the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	flow, err := r.intakeFlow()
	if err != nil {
		return err
	}
	if !flow.CanSearch() {
		return fmt.Errorf("%w: set tmdb.api_key or TMDB_API_KEY to enable search", shared.ErrMissingCredentials)
	}
	if !intake.IsSearchable(query) {
		return fmt.Errorf("%w: query must be longer than %d characters", shared.ErrInvalidArgument, intake.MinQueryLength)
	}

	r.logger.Debug("searching", "query", query)

	results, err := flow.Search(ctx, query)
	if err != nil {
		return err
	}

	snapshot := r.library.Snapshot()
	if !cmd.Bool("all") {
		results = intake.HideCollected(results, snapshot)
	}

	pick := int(cmd.Int("pick"))
	if pick == 0 {
		if cmd.Bool("json") {
			return r.writeJSON(results, cmd.Bool("pretty"))
		}
		return r.printSuggestions(results, snapshot)
	}

	if pick < 0 || pick > len(results) {
		return fmt.Errorf("%w: --pick must be between 1 and %d", shared.ErrInvalidFlag, len(results))
	}

	movie := results[pick-1]
	if intake.IsAlreadyInCollection(movie, snapshot) {
		return r.writePlain("• %s is already in the collection\n", movie.Title)
	}

	entry, err := flow.SelectSuggestion(ctx, movie)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entry, cmd.Bool("pretty"))
	}
	return r.writePlain("✓ Added %s\n", describe(entry))
}

func (r *Runner) printSuggestions(results []models.SuggestedMovie, snapshot models.Collection) error {
	if len(results) == 0 {
		return r.writePlain("No results\n")
	}

	for i, movie := range results {
		rating := intake.ConvertRating(movie.VoteAverage)
		line := fmt.Sprintf("%d. %s", i+1, movie.Title)
		if year := intake.ReleaseYear(movie.ReleaseDate); year != "" {
			line += fmt.Sprintf(" (%s)", year)
		}
		line += " " + formatter.Stars(&rating)
		if intake.IsAlreadyInCollection(movie, snapshot) {
			line += " [in collection]"
		}
		if err := r.writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
