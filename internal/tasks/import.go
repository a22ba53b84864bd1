package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/mvk/internal/intake"
	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/shared"
	"golang.org/x/time/rate"
)

// Resolver turns a title into a collection entry. Implemented by [intake.Flow].
type Resolver interface {
	Search(ctx context.Context, query string) ([]models.SuggestedMovie, error)
	Resolve(ctx context.Context, movie models.SuggestedMovie) (models.MovieEntry, error)
}

// Target receives imported entries. Implemented by collection.Library.
type Target interface {
	Snapshot() models.Collection
	AddMovie(entry models.MovieEntry) error
}

// Status is the outcome of importing a single title.
type Status int

// A dry run ends with StatusResolved; StatusSkipped marks movies already in the collection.
const (
	StatusResolved Status = iota
	StatusAdded
	StatusSkipped
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusAdded:
		return "added"
	case StatusSkipped:
		return "skipped"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	default:
		return ""
	}
}

// ItemResult is the outcome of importing one [Item].
type ItemResult struct {
	Item   Item
	Entry  *models.MovieEntry
	Status Status
	Error  error
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Total    int
	Added    int
	Skipped  int
	NotFound int
	Failed   int
	Results  []ItemResult // In input order
}

// ImportOpts configures a bulk import.
type ImportOpts struct {
	NumWorkers int     // Concurrent resolvers (default: 4, max: 10)
	RateLimit  float64 // Movie database requests per second (default: 4)
	DryRun     bool    // Resolve titles without adding them
}

// Importer adds many titles to a collection.
type Importer struct {
	resolver Resolver
	target   Target
}

// NewImporter creates an [Importer].
func NewImporter(resolver Resolver, target Target) *Importer {
	return &Importer{resolver: resolver, target: target}
}

// Run resolves items concurrently and adds the results in input order.
//
// Resolution failures are recorded per item. A storage failure while adding stops the import and is returned
// together with the partial result.
func (im *Importer) Run(ctx context.Context, prog chan<- ProgressUpdate, items []Item, opts ImportOpts) (*ImportResult, error) {
	if im.resolver == nil {
		return nil, fmt.Errorf("%w: movie database not initialized", shared.ErrServiceUnavailable)
	}
	if im.target == nil && !opts.DryRun {
		return nil, fmt.Errorf("%w: collection not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 4.0
	}

	sendProgress(prog, readInputUpdate(len(items)))

	results := make([]ItemResult, len(items))
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan int, len(items))
	for i := range items {
		jobs <- i
	}
	close(jobs)

	done := make(chan int, len(items))

	var wg sync.WaitGroup
	for range min(opts.NumWorkers, max(len(items), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = im.resolve(ctx, limiter, items[i])
				done <- i
			}
		}()
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	completed := 0
	for i := range done {
		completed++
		sendProgress(prog, resolvedUpdate(completed, len(items), results[i]))
	}

	result := &ImportResult{Total: len(items), Results: results}
	if err := ctx.Err(); err != nil {
		result.tally()
		return result, err
	}

	if opts.DryRun {
		result.tally()
		return result, nil
	}

	for i := range results {
		res := &results[i]
		if res.Status != StatusResolved {
			continue
		}

		if res.Entry.HasID() && intake.IsAlreadyInCollection(models.SuggestedMovie{ID: *res.Entry.ID}, im.target.Snapshot()) {
			res.Status = StatusSkipped
			sendProgress(prog, skippedUpdate(i+1, len(results), *res))
			continue
		}

		if err := im.target.AddMovie(*res.Entry); err != nil {
			res.Status = StatusFailed
			res.Error = err
			result.tally()
			return result, err
		}

		res.Status = StatusAdded
		sendProgress(prog, addedUpdate(i+1, len(results), *res))
	}

	result.tally()
	return result, nil
}

func (im *Importer) resolve(ctx context.Context, limiter *rate.Limiter, item Item) ItemResult {
	res := ItemResult{Item: item, Status: StatusFailed}

	if err := limiter.Wait(ctx); err != nil {
		res.Error = err
		return res
	}

	suggestions, err := im.resolver.Search(ctx, item.Title)
	if err != nil {
		res.Error = err
		return res
	}

	movie, ok := BestMatch(suggestions, item.Year)
	if !ok {
		res.Status = StatusNotFound
		res.Error = fmt.Errorf("%w: %q", shared.ErrNoMatch, item.Title)
		return res
	}

	if err := limiter.Wait(ctx); err != nil {
		res.Error = err
		return res
	}

	entry, err := im.resolver.Resolve(ctx, movie)
	if err != nil {
		res.Error = err
		return res
	}

	res.Entry = &entry
	res.Status = StatusResolved
	res.Error = nil
	return res
}

// BestMatch picks the first suggestion released in year, or the first suggestion when year is empty or unmatched.
func BestMatch(suggestions []models.SuggestedMovie, year string) (models.SuggestedMovie, bool) {
	if len(suggestions) == 0 {
		return models.SuggestedMovie{}, false
	}
	if year != "" {
		for _, movie := range suggestions {
			if intake.ReleaseYear(movie.ReleaseDate) == year {
				return movie, true
			}
		}
	}
	return suggestions[0], true
}

func (r *ImportResult) tally() {
	r.Added, r.Skipped, r.NotFound, r.Failed = 0, 0, 0, 0
	for _, res := range r.Results {
		switch res.Status {
		case StatusAdded:
			r.Added++
		case StatusSkipped:
			r.Skipped++
		case StatusNotFound:
			r.NotFound++
		case StatusFailed:
			r.Failed++
		}
	}
}
