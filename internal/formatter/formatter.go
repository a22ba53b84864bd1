// package formatter renders a movie collection in various formats (table, CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/mvk/internal/collection"
	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/shared"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// EmptyMessage is shown in place of an empty collection.
const EmptyMessage = "No movies in collection, please add."

// Format is an export format.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatTable, FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// ParseFormat resolves a format name. "markdown" and "text" are accepted aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, name)
	}
}

// Stars renders a 0-5 rating as filled and empty stars. An unset rating renders as "-".
func Stars(rating *int) string {
	if rating == nil {
		return "-"
	}
	n := min(max(*rating, 0), 5)
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func ratingValue(rating *int) string {
	if rating == nil {
		return ""
	}
	return strconv.Itoa(*rating)
}

func idValue(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

// ExportToTable renders items as a rounded table with columns: #, Title, Year, Director, Rating
func ExportToTable(items []collection.Item) string {
	if len(items) == 0 {
		return EmptyMessage
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"#", "Title", "Year", "Director", "Rating"})

	for _, item := range items {
		tw.AppendRow(table.Row{
			item.Key,
			item.Entry.Title,
			item.Entry.Year,
			item.Entry.Director,
			Stars(item.Entry.Rating),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// ExportToCSV converts items to CSV format with columns: Key, ID, Title, Director, Year, Rating
func ExportToCSV(items []collection.Item) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Key", "ID", "Title", "Director", "Year", "Rating"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		record := []string{
			strconv.Itoa(item.Key),
			idValue(item.Entry.ID),
			item.Entry.Title,
			item.Entry.Director,
			item.Entry.Year,
			ratingValue(item.Entry.Rating),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts items to a Markdown document, one card per movie
func ExportToMarkdown(items []collection.Item) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Movie Collection\n\n")
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(items)))

	if len(items) == 0 {
		buf.WriteString(EmptyMessage + "\n")
		return buf.Bytes(), nil
	}

	for _, item := range items {
		e := item.Entry
		buf.WriteString(fmt.Sprintf("## %d. %s\n\n", item.Key, e.Title))
		buf.WriteString(fmt.Sprintf("%s\n\n", Stars(e.Rating)))
		if e.Year != "" {
			buf.WriteString(fmt.Sprintf("- **Year**: %s\n", e.Year))
		}
		if e.Director != "" {
			buf.WriteString(fmt.Sprintf("- **Directed by**: %s\n", e.Director))
		}
		if e.HasID() {
			buf.WriteString(fmt.Sprintf("- **TMDB**: %d\n", *e.ID))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts items to plain text format
func ExportToText(items []collection.Item) ([]byte, error) {
	var buf bytes.Buffer

	if len(items) == 0 {
		buf.WriteString(EmptyMessage + "\n")
		return buf.Bytes(), nil
	}

	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(items)))
	for _, item := range items {
		buf.WriteString(Line(item) + "\n")
	}

	return buf.Bytes(), nil
}

// Line renders a single entry as "key. Title (Year) - Directed by Director [rating]".
func Line(item collection.Item) string {
	var b strings.Builder
	e := item.Entry

	fmt.Fprintf(&b, "%d. %s", item.Key, e.Title)
	if e.Year != "" {
		fmt.Fprintf(&b, " (%s)", e.Year)
	}
	if e.Director != "" {
		fmt.Fprintf(&b, " - Directed by %s", e.Director)
	}
	if e.Rating != nil {
		fmt.Fprintf(&b, " [%d/5]", *e.Rating)
	}
	return b.String()
}

// ExportToJSON serializes c in the persisted record shape {"movies": {...}}.
func ExportToJSON(c models.Collection, pretty bool) ([]byte, error) {
	if c == nil {
		c = models.Collection{}
	}
	return shared.MarshalJSON(models.Record{Movies: c}, pretty)
}

// Export renders c in the given format.
func Export(c models.Collection, format Format) ([]byte, error) {
	items := collection.List(c)

	switch format {
	case FormatTable:
		return []byte(ExportToTable(items) + "\n"), nil
	case FormatCSV:
		return ExportToCSV(items)
	case FormatMarkdown:
		return ExportToMarkdown(items)
	case FormatText:
		return ExportToText(items)
	case FormatJSON:
		return ExportToJSON(c, true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// DefaultFilename returns the export filename used when no output path is given.
func DefaultFilename(format Format) string {
	if format == FormatTable {
		return "movies.txt"
	}
	return "movies." + string(format)
}

// WriteExport renders c and writes it to path, creating parent directories.
//
// Defaults to [DefaultFilename] when path is empty.
func WriteExport(c models.Collection, format Format, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(format)
	}

	data, err := Export(c, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}
