package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mvk/internal/collection"
	"github.com/desertthunder/mvk/internal/formatter"
	"github.com/desertthunder/mvk/internal/intake"
	"github.com/desertthunder/mvk/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [collection.Item] to implement [list.Item].
type movieItem struct {
	item collection.Item
}

func (i movieItem) FilterValue() string {
	return strings.TrimSpace(i.item.Entry.Title + " " + i.item.Entry.Director)
}

func (i movieItem) Title() string {
	if i.item.Entry.Year == "" {
		return i.item.Entry.Title
	}
	return fmt.Sprintf("%s (%s)", i.item.Entry.Title, i.item.Entry.Year)
}

func (i movieItem) Description() string {
	desc := styles.star.Render(formatter.Stars(i.item.Entry.Rating))
	if i.item.Entry.Director != "" {
		desc = fmt.Sprintf("%s • Directed by %s", desc, i.item.Entry.Director)
	}
	return desc
}

func movieItems(items []collection.Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = movieItem{item: it}
	}
	return out
}

// suggestionLabel renders a search result as "Title (Year) ★★★★☆".
func suggestionLabel(movie models.SuggestedMovie) string {
	label := movie.Title
	if year := intake.ReleaseYear(movie.ReleaseDate); year != "" {
		label = fmt.Sprintf("%s (%s)", label, year)
	}
	return label + " " + styles.star.Render(formatter.Stars(models.IntPtr(intake.ConvertRating(movie.VoteAverage))))
}
