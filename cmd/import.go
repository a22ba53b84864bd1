package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mvk/internal/shared"
	"github.com/desertthunder/mvk/internal/tasks"
	"github.com/urfave/cli/v3"
)

type importSummary struct {
	Total    int            `json:"total"`
	Added    int            `json:"added"`
	Skipped  int            `json:"skipped"`
	NotFound int            `json:"not_found"`
	Failed   int            `json:"failed"`
	Items    []importedItem `json:"items"`
}

type importedItem struct {
	Line   int    `json:"line"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Match  string `json:"match,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Import resolves every title in a file against the movie database and adds the matches.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file", shared.ErrMissingArgument)
	}

	flow, err := r.intakeFlow()
	if err != nil {
		return err
	}
	if !flow.CanSearch() {
		return fmt.Errorf("%w: set tmdb.api_key or TMDB_API_KEY to import titles", shared.ErrMissingCredentials)
	}

	items, err := tasks.ReadImportFile(path)
	if err != nil {
		return err
	}

	rateLimit := cmd.Float("rate")
	if rateLimit <= 0 {
		rateLimit = r.config.Import.RateLimit
	}
	opts := tasks.ImportOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  rateLimit,
		DryRun:     cmd.Bool("dry-run"),
	}

	logger := shared.WithLogger(r.logger, "file", path)
	logger.Info("importing titles", "count", len(items), "dry_run", opts.DryRun)

	asJSON := cmd.Bool("json")
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if asJSON {
				logger.Debug(update.Message, "phase", update.Phase)
				continue
			}
			switch update.Phase {
			case tasks.ReadInput:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ResolveMovies:
				r.writePlain("🔍 %s\n", update.Message)
			case tasks.AddMovies:
				r.writePlain("➕ %s\n", update.Message)
			}
		}
	}()

	result, err := tasks.NewImporter(flow, r.library).Run(ctx, progressCh, items, opts)
	close(progressCh)
	<-done

	if result == nil {
		return err
	}

	if asJSON {
		if werr := r.writeJSON(summarize(result), true); werr != nil {
			return werr
		}
		return err
	}

	if err != nil {
		logger.Error("import stopped", "error", err)
	}

	r.writePlainln("Import complete")
	r.writePlain("  Titles:    %d\n", result.Total)
	if opts.DryRun {
		r.writePlain("  Resolved:  %d (dry run)\n", result.Total-result.NotFound-result.Failed)
	} else {
		r.writePlain("  Added:     %d\n", result.Added)
		r.writePlain("  Skipped:   %d\n", result.Skipped)
	}
	r.writePlain("  Not found: %d\n", result.NotFound)
	r.writePlain("  Failed:    %d\n", result.Failed)

	return err
}

func summarize(result *tasks.ImportResult) importSummary {
	summary := importSummary{
		Total:    result.Total,
		Added:    result.Added,
		Skipped:  result.Skipped,
		NotFound: result.NotFound,
		Failed:   result.Failed,
		Items:    make([]importedItem, 0, len(result.Results)),
	}

	for _, res := range result.Results {
		item := importedItem{Line: res.Item.Line, Title: res.Item.Title, Status: res.Status.String()}
		if res.Entry != nil {
			item.Match = res.Entry.Title
			if res.Entry.Year != "" {
				item.Match += " (" + res.Entry.Year + ")"
			}
		}
		if res.Error != nil {
			item.Error = res.Error.Error()
		}
		summary.Items = append(summary.Items, item)
	}
	return summary
}
