package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#01B4E4", "#90CEA1", "#FF4F4F", "#F5C518", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	star     lipgloss.Style
	help     lipgloss.Style
	selected lipgloss.Style
	panel    lipgloss.Style
}

// NewPalette builds a [Palette] from accent, success, error, rating and muted colors.
func NewPalette(accent, success, failure, rating, muted string) *Palette {
	return &Palette{
		title:    NewBold(accent).MarginBottom(1),
		ok:       NewBold(success),
		err:      NewBold(failure),
		star:     NewStyle(rating),
		help:     NewEm(muted),
		selected: NewBold(accent),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(1, 2),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
