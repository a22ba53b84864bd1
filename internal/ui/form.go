package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mvk/internal/formatter"
	"github.com/desertthunder/mvk/internal/intake"
	"github.com/desertthunder/mvk/internal/models"
)

// formFields lists the text inputs of the add panel in focus order. The rating control follows them.
var formFields = []string{intake.FieldTitle, intake.FieldDirector, intake.FieldYear}

var formLabels = map[string]string{
	intake.FieldTitle:    "Title",
	intake.FieldDirector: "Director",
	intake.FieldYear:     "Year of Release",
}

// addForm is the manual entry panel. Every edit is mirrored into the session draft.
type addForm struct {
	inputs []textinput.Model
	focus  int
}

func newAddForm() addForm {
	inputs := make([]textinput.Model, len(formFields))
	for i, field := range formFields {
		ti := textinput.New()
		ti.Placeholder = formLabels[field]
		ti.CharLimit = 120
		ti.Width = 40
		ti.Prompt = ""
		if field == intake.FieldYear {
			ti.CharLimit = 4
		}
		inputs[i] = ti
	}
	return addForm{inputs: inputs}
}

func (f *addForm) reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	return f.inputs[0].Focus()
}

func (f *addForm) ratingFocused() bool {
	return f.focus == len(f.inputs)
}

func (f *addForm) move(delta int) tea.Cmd {
	if !f.ratingFocused() {
		f.inputs[f.focus].Blur()
	}

	n := len(f.inputs) + 1
	f.focus = (f.focus + delta + n) % n

	if f.ratingFocused() {
		return nil
	}
	return f.inputs[f.focus].Focus()
}

// update forwards msg to the focused input and mirrors the value into s.
func (f *addForm) update(msg tea.Msg, s *intake.Session) tea.Cmd {
	if f.ratingFocused() {
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	s.SetField(formFields[f.focus], f.inputs[f.focus].Value())
	return cmd
}

func (f addForm) view(draft models.MovieEntry) string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Add Movie"))
	b.WriteString("\n")

	for i, field := range formFields {
		label := formLabels[field]
		if i == f.focus {
			label = styles.selected.Render("› " + label)
		} else {
			label = "  " + label
		}
		fmt.Fprintf(&b, "%s\n  %s\n\n", label, f.inputs[i].View())
	}

	label := "  Rating"
	if f.ratingFocused() {
		label = styles.selected.Render("› Rating")
	}
	rating := 0
	if draft.Rating != nil {
		rating = *draft.Rating
	}
	fmt.Fprintf(&b, "%s\n  %s", label, styles.star.Render(formatter.Stars(models.IntPtr(rating))))

	return styles.panel.Render(b.String())
}
