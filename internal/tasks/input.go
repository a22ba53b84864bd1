package tasks

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/desertthunder/mvk/internal/collection"
	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/shared"
)

// Item is one title requested for import.
type Item struct {
	Line  int    // 1-based source line, 0 when unknown
	Title string // Title used as the search query
	Year  string // Optional release year used to pick among results
}

var trailingYear = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)

// ReadImportFile reads titles from path.
//
// .csv files need a Title column and may carry a Year column (as written by the CSV export).
// .json files use the collection record shape. Anything else is read as one title per line,
// with an optional trailing "(YYYY)".
func ReadImportFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f)
	case ".json":
		return ParseRecord(f)
	default:
		return ParseLines(f)
	}
}

// ParseLines reads one title per line. Blank lines and lines starting with '#' are skipped.
func ParseLines(r io.Reader) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		item := Item{Line: line, Title: text}
		if m := trailingYear.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
			item.Title = strings.TrimSpace(m[1])
			item.Year = m[2]
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read titles: %w", err)
	}
	return items, nil
}

// ParseCSV reads titles from a CSV document with a header row.
func ParseCSV(r io.Reader) ([]Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	titleCol, yearCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "title":
			titleCol = i
		case "year":
			yearCol = i
		}
	}
	if titleCol < 0 {
		return nil, fmt.Errorf("%w: CSV has no Title column", shared.ErrInvalidInput)
	}

	var items []Item
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if titleCol >= len(record) || strings.TrimSpace(record[titleCol]) == "" {
			continue
		}

		item := Item{Line: line, Title: strings.TrimSpace(record[titleCol])}
		if yearCol >= 0 && yearCol < len(record) {
			item.Year = strings.TrimSpace(record[yearCol])
		}
		items = append(items, item)
	}
	return items, nil
}

// ParseRecord reads titles from a JSON collection record in key order.
func ParseRecord(r io.Reader) ([]Item, error) {
	var record models.Record
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: failed to decode collection record: %v", shared.ErrInvalidInput, err)
	}

	var items []Item
	for _, it := range collection.List(record.Movies) {
		if strings.TrimSpace(it.Entry.Title) == "" {
			continue
		}
		items = append(items, Item{Title: it.Entry.Title, Year: it.Entry.Year})
	}
	return items, nil
}
