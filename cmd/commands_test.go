package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/shared"
	"github.com/desertthunder/mvk/internal/storage"
	tu "github.com/desertthunder/mvk/internal/testing"
)

func matrixDB() *tu.MockMovieDatabase {
	return &tu.MockMovieDatabase{
		Results: map[string][]models.SuggestedMovie{
			"matrix": {
				{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", VoteAverage: 8.2},
				{ID: 604, Title: "The Matrix Reloaded", ReleaseDate: "2003-05-15", VoteAverage: 7.0},
			},
			"alien": {
				{ID: 348, Title: "Alien", ReleaseDate: "1979-05-25", VoteAverage: 8.1},
			},
		},
		Credits: map[int64]*models.Credits{
			603: {ID: 603, Crew: []models.CrewMember{{Job: "Producer", Name: "Joel Silver"}, {Job: "Director", Name: "Lana Wachowski"}}},
			604: {ID: 604, Crew: []models.CrewMember{{Job: "Director", Name: "Lilly Wachowski"}}},
			348: {ID: 348, Crew: []models.CrewMember{{Job: "Director", Name: "Ridley Scott"}}},
		},
	}
}

func storedRecord(t *testing.T, backend storage.Backend) models.Record {
	t.Helper()

	raw, ok, err := backend.GetItem(shared.DefaultConfig().Storage.Key)
	if err != nil || !ok {
		t.Fatalf("expected stored record, ok=%v err=%v", ok, err)
	}
	var record models.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		t.Fatalf("stored record is not JSON: %v", err)
	}
	return record
}

func TestListCommand(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		runner, output, _ := newTestRunner(t, nil)
		if err := runApp(runner, "list"); err != nil {
			t.Fatalf("list error = %v", err)
		}
		if got := strings.TrimSpace(output.String()); got != "No movies in collection, please add." {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("lines in key order", func(t *testing.T) {
		runner, output, _ := newTestRunner(t, nil)
		if err := runApp(runner, "add", "--title", "Alien", "--director", "Ridley Scott", "--year", "1979", "--rating", "4"); err != nil {
			t.Fatalf("add error = %v", err)
		}
		if err := runApp(runner, "add", "--title", "Heat"); err != nil {
			t.Fatalf("add error = %v", err)
		}
		output.Reset()

		if err := runApp(runner, "list"); err != nil {
			t.Fatalf("list error = %v", err)
		}
		want := "1. Alien (1979) - Directed by Ridley Scott [4/5]\n2. Heat\n"
		if output.String() != want {
			t.Errorf("list output = %q, want %q", output.String(), want)
		}
	})

	t.Run("filter and json", func(t *testing.T) {
		runner, output, _ := newTestRunner(t, nil)
		runApp(runner, "add", "--title", "Alien", "--director", "Ridley Scott")
		runApp(runner, "add", "--title", "Heat", "--director", "Michael Mann")
		output.Reset()

		if err := runApp(runner, "list", "--filter", "mann", "--json"); err != nil {
			t.Fatalf("list error = %v", err)
		}
		var record models.Record
		if err := json.Unmarshal(output.Bytes(), &record); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(record.Movies) != 1 || record.Movies[2].Title != "Heat" {
			t.Errorf("unexpected filtered record %+v", record.Movies)
		}

		output.Reset()
		if err := runApp(runner, "list", "--filter", "zzzz"); err != nil {
			t.Fatalf("list error = %v", err)
		}
		if !strings.Contains(output.String(), `No movies match "zzzz"`) {
			t.Errorf("unexpected output %q", output.String())
		}
	})
}

func TestAddCommand(t *testing.T) {
	t.Run("persists the entry", func(t *testing.T) {
		runner, output, backend := newTestRunner(t, nil)
		if err := runApp(runner, "add", "--title", "Alien", "--year", "1979", "--rating", "5"); err != nil {
			t.Fatalf("add error = %v", err)
		}
		if !strings.Contains(output.String(), "✓ Added Alien (1979) ★★★★★") {
			t.Errorf("unexpected output %q", output.String())
		}

		record := storedRecord(t, backend)
		entry, ok := record.Movies[1]
		if !ok {
			t.Fatalf("expected key 1, got %+v", record.Movies)
		}
		if entry.Title != "Alien" || entry.Year != "1979" || entry.Rating == nil || *entry.Rating != 5 {
			t.Errorf("unexpected entry %+v", entry)
		}
		if entry.ID != nil {
			t.Error("manual entries carry no id")
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, nil)
		err := runApp(runner, "add", "--title", "Alien", "--rating", "7")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("fields are optional", func(t *testing.T) {
		runner, output, backend := newTestRunner(t, nil)
		if err := runApp(runner, "add", "--year", "1979"); err != nil {
			t.Fatalf("add error = %v", err)
		}
		if !strings.Contains(output.String(), "✓ Added (untitled) (1979)") {
			t.Errorf("unexpected output %q", output.String())
		}

		entry := storedRecord(t, backend).Movies[1]
		if entry.Title != "" || entry.Year != "1979" {
			t.Errorf("unexpected entry %+v", entry)
		}
	})

	t.Run("storage failure leaves the collection unchanged", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, nil)
		failing := &tu.FailingStorage{WriteErr: errors.New("disk full")}
		runner.backend = failing

		err := runApp(runner, "add", "--title", "Alien")
		if !errors.Is(err, shared.ErrStorageWrite) {
			t.Fatalf("expected ErrStorageWrite, got %v", err)
		}
		if runner.library.Len() != 0 {
			t.Errorf("expected empty collection, got %d", runner.library.Len())
		}
	})
}

func TestSearchCommand(t *testing.T) {
	t.Run("requires credentials", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, nil)
		err := runApp(runner, "search", "matrix")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("short queries never reach the movie database", func(t *testing.T) {
		db := matrixDB()
		runner, _, _ := newTestRunner(t, db)

		err := runApp(runner, "search", "ma")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if calls := db.SearchCalls(); len(calls) != 0 {
			t.Errorf("expected no search calls, got %v", calls)
		}
	})

	t.Run("prints suggestions", func(t *testing.T) {
		runner, output, _ := newTestRunner(t, matrixDB())
		if err := runApp(runner, "search", "matrix"); err != nil {
			t.Fatalf("search error = %v", err)
		}

		want := "1. The Matrix (1999) ★★★★☆\n2. The Matrix Reloaded (2003) ★★★★☆\n"
		if output.String() != want {
			t.Errorf("search output = %q, want %q", output.String(), want)
		}
	})

	t.Run("pick adds the normalized movie", func(t *testing.T) {
		db := matrixDB()
		runner, output, backend := newTestRunner(t, db)

		if err := runApp(runner, "search", "--pick", "1", "matrix"); err != nil {
			t.Fatalf("search error = %v", err)
		}
		if !strings.Contains(output.String(), "✓ Added The Matrix (1999) - Directed by Lana Wachowski ★★★★☆") {
			t.Errorf("unexpected output %q", output.String())
		}

		entry := storedRecord(t, backend).Movies[1]
		if entry.ID == nil || *entry.ID != 603 {
			t.Errorf("expected id 603, got %+v", entry)
		}
		if entry.Director != "Lana Wachowski" || entry.Year != "1999" || *entry.Rating != 4 {
			t.Errorf("unexpected entry %+v", entry)
		}
		if calls := db.CreditsCalls(); len(calls) != 1 || calls[0] != 603 {
			t.Errorf("expected one credits call for 603, got %v", calls)
		}
	})

	t.Run("collected movies are hidden unless --all", func(t *testing.T) {
		runner, output, _ := newTestRunner(t, matrixDB())
		if err := runApp(runner, "search", "--pick", "1", "matrix"); err != nil {
			t.Fatalf("search error = %v", err)
		}
		output.Reset()

		if err := runApp(runner, "search", "matrix"); err != nil {
			t.Fatalf("search error = %v", err)
		}
		if strings.Contains(output.String(), "The Matrix (1999)") {
			t.Errorf("collected movie should be hidden: %q", output.String())
		}

		output.Reset()
		if err := runApp(runner, "search", "--all", "matrix"); err != nil {
			t.Fatalf("search error = %v", err)
		}
		if !strings.Contains(output.String(), "The Matrix (1999) ★★★★☆ [in collection]") {
			t.Errorf("expected collected marker: %q", output.String())
		}

		output.Reset()
		if err := runApp(runner, "search", "--all", "--pick", "1", "matrix"); err != nil {
			t.Fatalf("search error = %v", err)
		}
		if !strings.Contains(output.String(), "already in the collection") {
			t.Errorf("unexpected output %q", output.String())
		}
		if runner.library.Len() != 1 {
			t.Errorf("expected no duplicate, got %d movies", runner.library.Len())
		}
	})

	t.Run("pick out of range", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, matrixDB())
		err := runApp(runner, "search", "--pick", "9", "matrix")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("json output", func(t *testing.T) {
		runner, output, _ := newTestRunner(t, matrixDB())
		if err := runApp(runner, "search", "--json", "alien"); err != nil {
			t.Fatalf("search error = %v", err)
		}

		var results []models.SuggestedMovie
		if err := json.Unmarshal(output.Bytes(), &results); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(results) != 1 || results[0].ID != 348 {
			t.Errorf("unexpected results %+v", results)
		}
	})

	t.Run("movie database errors are returned", func(t *testing.T) {
		db := matrixDB()
		db.SearchErr = shared.ErrAPIRequest
		runner, _, _ := newTestRunner(t, db)

		if err := runApp(runner, "search", "matrix"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestOpenCommand(t *testing.T) {
	orig := openBrowser
	t.Cleanup(func() { openBrowser = orig })

	var opened []string
	openBrowser = func(url string) error {
		opened = append(opened, url)
		return nil
	}

	runner, output, _ := newTestRunner(t, matrixDB())
	if err := runApp(runner, "search", "--pick", "1", "matrix"); err != nil {
		t.Fatalf("search error = %v", err)
	}
	if err := runApp(runner, "add", "--title", "Home Video"); err != nil {
		t.Fatalf("add error = %v", err)
	}
	output.Reset()

	t.Run("opens the movie page", func(t *testing.T) {
		if err := runApp(runner, "open", "1"); err != nil {
			t.Fatalf("open error = %v", err)
		}
		if len(opened) != 1 || opened[0] != "https://www.themoviedb.org/movie/603" {
			t.Errorf("unexpected opened urls %v", opened)
		}
	})

	t.Run("manual entries have no page", func(t *testing.T) {
		if err := runApp(runner, "open", "2"); !errors.Is(err, shared.ErrMissingMovieID) {
			t.Errorf("expected ErrMissingMovieID, got %v", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		if err := runApp(runner, "open", "42"); !errors.Is(err, shared.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound, got %v", err)
		}
	})

	t.Run("key must be numeric", func(t *testing.T) {
		if err := runApp(runner, "open", "one"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestExportCommand(t *testing.T) {
	runner, output, _ := newTestRunner(t, nil)
	if err := runApp(runner, "add", "--title", "Alien", "--director", "Ridley Scott", "--year", "1979"); err != nil {
		t.Fatalf("add error = %v", err)
	}

	t.Run("csv to stdout", func(t *testing.T) {
		output.Reset()
		if err := runApp(runner, "export", "--format", "csv"); err != nil {
			t.Fatalf("export error = %v", err)
		}
		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if len(lines) != 2 || lines[0] != "Key,ID,Title,Director,Year,Rating" {
			t.Errorf("unexpected csv %q", output.String())
		}
		if !strings.HasPrefix(lines[1], "1,,Alien,Ridley Scott,1979") {
			t.Errorf("unexpected row %q", lines[1])
		}
	})

	t.Run("markdown to file", func(t *testing.T) {
		output.Reset()
		path := filepath.Join(t.TempDir(), "out", "movies.md")
		if err := runApp(runner, "export", "--format", "markdown", "--output", path); err != nil {
			t.Fatalf("export error = %v", err)
		}

		tu.AssertDirExists(t, filepath.Dir(path))
		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "# Movie Collection") || !strings.Contains(content, "## 1. Alien") {
			t.Errorf("unexpected markdown %q", content)
		}
		if !strings.Contains(output.String(), "Exported 1 movies to "+path) {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("json round trips the record", func(t *testing.T) {
		output.Reset()
		if err := runApp(runner, "export", "--format", "json", "--output", "-"); err != nil {
			t.Fatalf("export error = %v", err)
		}
		var record models.Record
		if err := json.Unmarshal(output.Bytes(), &record); err != nil {
			t.Fatalf("export is not JSON: %v", err)
		}
		if record.Movies[1].Title != "Alien" {
			t.Errorf("unexpected record %+v", record)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := runApp(runner, "export", "--format", "xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestImportCommand(t *testing.T) {
	writeList := func(t *testing.T) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "watched.txt")
		content := "# watched in 2024\nThe Matrix (1999)\n\nAlien\nNo Such Movie\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	db := matrixDB()
	db.Results["The Matrix"] = db.Results["matrix"]
	db.Results["Alien"] = db.Results["alien"]

	t.Run("adds matches in file order", func(t *testing.T) {
		runner, output, backend := newTestRunner(t, db)
		if err := runApp(runner, "import", "--rate", "1000", writeList(t)); err != nil {
			t.Fatalf("import error = %v", err)
		}

		record := storedRecord(t, backend)
		if len(record.Movies) != 2 {
			t.Fatalf("expected 2 movies, got %+v", record.Movies)
		}
		if record.Movies[1].Title != "The Matrix" || record.Movies[2].Title != "Alien" {
			t.Errorf("unexpected order %+v", record.Movies)
		}
		out := output.String()
		if !strings.Contains(out, "Added:     2") || !strings.Contains(out, "Not found: 1") {
			t.Errorf("unexpected summary %q", out)
		}
	})

	t.Run("dry run adds nothing", func(t *testing.T) {
		runner, output, backend := newTestRunner(t, db)
		if err := runApp(runner, "import", "--rate", "1000", "--dry-run", "--json", writeList(t)); err != nil {
			t.Fatalf("import error = %v", err)
		}

		if _, ok, _ := backend.GetItem(shared.DefaultConfig().Storage.Key); ok {
			t.Error("dry run should not write the collection")
		}

		var summary importSummary
		if err := json.Unmarshal(output.Bytes(), &summary); err != nil {
			t.Fatalf("output is not JSON: %v (%q)", err, output.String())
		}
		if summary.Total != 3 || summary.NotFound != 1 || summary.Added != 0 {
			t.Errorf("unexpected summary %+v", summary)
		}
		if summary.Items[0].Status != "resolved" || summary.Items[0].Match != "The Matrix (1999)" {
			t.Errorf("unexpected first item %+v", summary.Items[0])
		}
	})

	t.Run("requires credentials", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, nil)
		if err := runApp(runner, "import", writeList(t)); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("missing file argument", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, db)
		if err := runApp(runner, "import"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestSetupCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	t.Setenv("MVK_STORAGE_PATH", filepath.Join(dir, "data", "mvk.db"))
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("TMDB_ACCESS_TOKEN", "")

	runner, output, _ := newTestRunner(t, nil)
	runner.config = nil
	runner.backend = nil

	if err := runApp(runner, "--config", configPath, "setup"); err != nil {
		t.Fatalf("setup error = %v", err)
	}

	tu.AssertFileExists(t, configPath)
	tu.AssertFileExists(t, filepath.Join(dir, "data", "mvk.db"))

	out := output.String()
	if !strings.Contains(out, "✓ Created config: "+configPath) {
		t.Errorf("expected created message, got %q", out)
	}
	if !strings.Contains(out, "Movies: 0") || !strings.Contains(out, "Search is disabled") {
		t.Errorf("unexpected setup output %q", out)
	}

	output.Reset()
	runner2, output2, _ := newTestRunner(t, nil)
	runner2.config = nil
	runner2.backend = nil
	if err := runApp(runner2, "--config", configPath, "setup"); err != nil {
		t.Fatalf("second setup error = %v", err)
	}
	if !strings.Contains(output2.String(), "Using existing config") {
		t.Errorf("expected existing config message, got %q", output2.String())
	}
}
