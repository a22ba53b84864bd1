package tasks

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mvk/internal/shared"
)

func TestParseLines(t *testing.T) {
	input := `# watchlist
The Matrix (1999)

Heat
  Ronin  
(1984)
`
	items, err := ParseLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseLines() error = %v", err)
	}

	want := []Item{
		{Line: 2, Title: "The Matrix", Year: "1999"},
		{Line: 4, Title: "Heat"},
		{Line: 5, Title: "Ronin"},
		{Line: 6, Title: "(1984)"},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %+v", len(want), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestParseCSV(t *testing.T) {
	t.Run("export layout", func(t *testing.T) {
		input := "Key,ID,Title,Director,Year,Rating\n1,603,The Matrix,Lana Wachowski,1999,4\n2,,Heat,,,\n3,,,,2001,\n"
		items, err := ParseCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ParseCSV() error = %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %+v", items)
		}
		if items[0].Title != "The Matrix" || items[0].Year != "1999" || items[0].Line != 2 {
			t.Errorf("unexpected first item %+v", items[0])
		}
		if items[1].Title != "Heat" || items[1].Year != "" {
			t.Errorf("unexpected second item %+v", items[1])
		}
	})

	t.Run("missing title column", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("Name,Year\nHeat,1995\n"))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		items, err := ParseCSV(strings.NewReader(""))
		if err != nil || len(items) != 0 {
			t.Errorf("expected no items, got %v, %v", items, err)
		}
	})
}

func TestParseRecord(t *testing.T) {
	input := `{"movies":{"2":{"title":"Heat","year":"1995"},"1":{"id":603,"title":"The Matrix"},"3":{"rating":2}}}`
	items, err := ParseRecord(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRecord() error = %v", err)
	}
	if len(items) != 2 || items[0].Title != "The Matrix" || items[1].Year != "1995" {
		t.Errorf("unexpected items %+v", items)
	}

	if _, err := ParseRecord(strings.NewReader("[")); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReadImportFile(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"list.txt":  "Heat (1995)\n",
		"list.csv":  "Title,Year\nHeat,1995\n",
		"list.json": `{"movies":{"1":{"title":"Heat","year":"1995"}}}`,
		"watchlist": "Heat (1995)\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		items, err := ReadImportFile(path)
		if err != nil {
			t.Fatalf("ReadImportFile(%s) error = %v", name, err)
		}
		if len(items) != 1 || items[0].Title != "Heat" || items[0].Year != "1995" {
			t.Errorf("ReadImportFile(%s) = %+v", name, items)
		}
	}

	if _, err := ReadImportFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
