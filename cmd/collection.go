package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/mvk/internal/collection"
	"github.com/desertthunder/mvk/internal/formatter"
	"github.com/desertthunder/mvk/internal/intake"
	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/services"
	"github.com/desertthunder/mvk/internal/shared"
	"github.com/urfave/cli/v3"
)

// openBrowser is replaced in tests.
var openBrowser = shared.OpenBrowser

// List prints the collection as a table on a terminal and as numbered lines otherwise.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.openLibrary()
	if err != nil {
		return err
	}

	filter := cmd.String("filter")
	items := collection.Filter(lib.Snapshot(), filter)

	if cmd.Bool("json") {
		subset := make(models.Collection, len(items))
		for _, item := range items {
			subset[item.Key] = item.Entry
		}
		return r.writeJSON(models.Record{Movies: subset}, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		if filter != "" {
			return r.writePlain("No movies match %q\n", filter)
		}
		return r.writePlain("%s\n", formatter.EmptyMessage)
	}

	if r.isTerminal() {
		return r.writePlain("%s\n", formatter.ExportToTable(items))
	}

	for _, item := range items {
		if err := r.writePlain("%s\n", formatter.Line(item)); err != nil {
			return err
		}
	}
	return nil
}

// Add submits a manually entered movie through an intake session.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	flow, err := r.intakeFlow()
	if err != nil {
		return err
	}

	session := intake.NewSession()
	session.Open()

	for field, value := range map[string]string{
		intake.FieldTitle:    cmd.String("title"),
		intake.FieldDirector: cmd.String("director"),
		intake.FieldYear:     cmd.String("year"),
	} {
		if _, err := session.SetField(field, strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	if cmd.IsSet("rating") {
		if _, err := session.SetRating(int(cmd.Int("rating"))); err != nil {
			return fmt.Errorf("%w: rating must be between 0 and 5", shared.ErrInvalidFlag)
		}
	}

	entry, err := flow.SubmitManual(session)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Added %s\n", describe(entry))
}

// Open launches the movie database page of a collected movie.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.StringArg("key")
	if arg == "" {
		return fmt.Errorf("%w: key", shared.ErrMissingArgument)
	}
	key, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("%w: key must be a number, got %q", shared.ErrInvalidArgument, arg)
	}

	lib, err := r.openLibrary()
	if err != nil {
		return err
	}

	entry, err := collection.Find(lib.Snapshot(), key)
	if err != nil {
		return err
	}
	if !entry.HasID() {
		return fmt.Errorf("%w: %s was added by hand", shared.ErrMissingMovieID, entry.Title)
	}

	url := services.MovieURL(*entry.ID)
	if err := openBrowser(url); err != nil {
		r.writePlain("Open %s in your browser\n", url)
		return err
	}

	return r.writePlain("Opened %s\n", url)
}

// Export writes the collection in the requested format to a file or stdout.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	lib, err := r.openLibrary()
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" || output == "-" {
		data, err := formatter.Export(lib.Snapshot(), format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			r.output.Write([]byte("\n"))
		}
		return nil
	}

	path, err := formatter.WriteExport(lib.Snapshot(), format, output)
	if err != nil {
		return err
	}

	r.logger.Info("exported collection", "format", format, "path", path, "movies", lib.Len())
	return r.writePlain("✓ Exported %d movies to %s\n", lib.Len(), path)
}

// describe renders an entry for confirmation messages.
func describe(entry models.MovieEntry) string {
	var b strings.Builder
	if entry.Title == "" {
		b.WriteString("(untitled)")
	} else {
		b.WriteString(entry.Title)
	}
	if entry.Year != "" {
		fmt.Fprintf(&b, " (%s)", entry.Year)
	}
	if entry.Director != "" {
		fmt.Fprintf(&b, " - Directed by %s", entry.Director)
	}
	if entry.Rating != nil {
		fmt.Fprintf(&b, " %s", formatter.Stars(entry.Rating))
	}
	return b.String()
}
