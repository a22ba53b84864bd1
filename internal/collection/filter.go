package collection

import (
	"strings"

	"github.com/desertthunder/mvk/internal/models"
	"github.com/sahilm/fuzzy"
)

// searchable adapts a key-ordered item slice to [fuzzy.Source], matching on "title director".
type searchable []Item

func (s searchable) String(i int) string {
	e := s[i].Entry
	if e.Director == "" {
		return e.Title
	}
	return e.Title + " " + e.Director
}

func (s searchable) Len() int { return len(s) }

// Filter returns the entries fuzzy-matching pattern against title and director, best match first.
// An empty pattern returns [List] unchanged.
func Filter(c models.Collection, pattern string) []Item {
	items := List(c)
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return items
	}

	matches := fuzzy.FindFrom(pattern, searchable(items))
	out := make([]Item, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}
