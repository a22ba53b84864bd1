package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvk/internal/collection"
	"github.com/desertthunder/mvk/internal/formatter"
	"github.com/desertthunder/mvk/internal/intake"
	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/services"
	"github.com/desertthunder/mvk/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CollectionView ViewState = iota
	AddPanelView
	SearchView
)

// openURL opens a movie page. Replaced in tests.
var openURL = shared.OpenBrowser

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	library     *collection.Library
	flow        *intake.Flow
	session     *intake.Session
	logger      *log.Logger
	width       int
	height      int
	movies      list.Model
	form        addForm
	searchInput textinput.Model
	cursor      int
	status      string
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model over library. flow submits entries to library.AddMovie.
func NewModel(ctx context.Context, library *collection.Library, flow *intake.Flow, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	movies := list.New(movieItems(library.Items()), list.NewDefaultDelegate(), 0, 0)
	movies.Title = "Movie Collection"
	movies.SetShowHelp(false)
	movies.DisableQuitKeybindings()

	si := textinput.New()
	si.Placeholder = "Search movies..."
	si.CharLimit = 120
	si.Width = 40

	session := intake.NewSession()

	return &Model{
		ctx:         ctx,
		view:        CollectionView,
		library:     library,
		flow:        flow,
		session:     session,
		logger:      logger.With("session", session.ID),
		movies:      movies,
		form:        newAddForm(),
		searchInput: si,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.movies.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CollectionView:
			return m.handleCollectionKeys(msg)
		case AddPanelView:
			return m.handleAddPanelKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	switch m.view {
	case CollectionView:
		m.movies, cmd = m.movies.Update(msg)
	case AddPanelView:
		cmd = m.form.update(msg, m.session)
	case SearchView:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSearchResults:
		data := msg.data.(searchResults)
		if data.err != nil {
			m.logger.Error("search failed", "query", data.query, "error", data.err)
			m.err = data.err
			m.session.ApplySuggestions(nil)
		} else {
			m.session.ApplySuggestions(data.results)
		}
		m.clampCursor()
		return m, nil

	case MsgMovieAdded:
		data := msg.data.(movieAdded)
		if data.err != nil {
			m.logger.Error("failed to add suggestion", "error", data.err)
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Added %s", data.entry.Title)
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.cursor = 0
		m.view = CollectionView
		return m, m.refresh()

	case MsgBrowserOpened:
		if err, ok := msg.data.(error); ok && err != nil {
			m.err = err
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleCollectionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.movies.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.movies, cmd = m.movies.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.add):
		m.err = nil
		m.status = ""
		m.session.Open()
		m.view = AddPanelView
		return m, m.form.reset()

	case key.Matches(msg, m.keys.search):
		m.status = ""
		if !m.flow.CanSearch() {
			m.err = fmt.Errorf("%w: set tmdb.api_key or TMDB_API_KEY to enable search", shared.ErrMissingCredentials)
			return m, nil
		}
		m.err = nil
		m.view = SearchView
		m.cursor = 0
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.open):
		selected, ok := m.movies.SelectedItem().(movieItem)
		if !ok {
			return m, nil
		}
		if !selected.item.Entry.HasID() {
			m.err = fmt.Errorf("%w: %s was added manually", shared.ErrMissingMovieID, selected.item.Entry.Title)
			return m, nil
		}
		m.err = nil
		return m, openBrowserCmd(services.MovieURL(*selected.item.Entry.ID))
	}

	var cmd tea.Cmd
	m.movies, cmd = m.movies.Update(msg)
	return m, cmd
}

func (m *Model) handleAddPanelKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.session.Cancel()
		m.err = nil
		m.view = CollectionView
		return m, nil

	case key.Matches(msg, m.keys.submit):
		entry, err := m.flow.SubmitManual(m.session)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Added %s", entry.Title)
		m.view = CollectionView
		return m, m.refresh()

	case key.Matches(msg, m.keys.next):
		return m, m.form.move(1)

	case key.Matches(msg, m.keys.prev):
		return m, m.form.move(-1)
	}

	if m.form.ratingFocused() {
		m.updateRating(msg)
		return m, nil
	}

	return m, m.form.update(msg, m.session)
}

func (m *Model) updateRating(msg tea.KeyMsg) {
	current := 0
	if r := m.session.Draft().Rating; r != nil {
		current = *r
	}

	switch {
	case key.Matches(msg, m.keys.less):
		current--
	case key.Matches(msg, m.keys.more):
		current++
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '5':
		current = int(msg.Runes[0] - '0')
	default:
		return
	}

	if _, err := m.session.SetRating(min(max(current, 0), 5)); err != nil {
		m.err = err
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		m.session.ClearSearch()
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.err = nil
		m.view = CollectionView
		return m, nil

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.cursor < len(m.visibleSuggestions())-1 {
			m.cursor++
		}
		return m, nil

	case tea.KeyEnter:
		visible := m.visibleSuggestions()
		if len(visible) == 0 {
			return m, nil
		}
		return m, m.selectCmd(visible[m.cursor])
	}

	before := m.searchInput.Value()

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	query := m.searchInput.Value()
	if query == before {
		return m, cmd
	}

	m.err = nil
	m.cursor = 0
	if !m.session.SetQuery(query) {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.searchCmd(query))
}

// visibleSuggestions hides suggestions that are already in the collection.
func (m *Model) visibleSuggestions() []models.SuggestedMovie {
	return intake.HideCollected(m.session.Suggestions(), m.library.Snapshot())
}

func (m *Model) clampCursor() {
	if n := len(m.visibleSuggestions()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) refresh() tea.Cmd {
	return m.movies.SetItems(movieItems(m.library.Items()))
}

func (m *Model) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.flow.Search(m.ctx, query)
		return searchResultsMsg(query, results, err)
	}
}

func (m *Model) selectCmd(movie models.SuggestedMovie) tea.Cmd {
	return func() tea.Msg {
		entry, err := m.flow.Select(m.ctx, m.session, movie)
		return movieAddedMsg(entry, err)
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg(openURL(url))
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case CollectionView:
		body = m.renderCollection()
	case AddPanelView:
		body = m.renderAddPanel()
	case SearchView:
		body = m.renderSearch()
	}

	return fmt.Sprintf("%s%s", body, m.renderFooter())
}

func (m *Model) renderFooter() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.ok.Render("✓ " + m.status))
	}
	return b.String()
}

func (m *Model) renderCollection() string {
	helpKeys := []key.Binding{m.keys.add, m.keys.open, m.keys.quit}
	if m.flow.CanSearch() {
		helpKeys = []key.Binding{m.keys.add, m.keys.search, m.keys.open, m.keys.quit}
	}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.library.Len() == 0 {
		title := styles.title.Render("Movie Collection")
		return fmt.Sprintf("%s\n%s\n\n%s", title, styles.help.Render(formatter.EmptyMessage), helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.movies.View(), helpView)
}

func (m *Model) renderAddPanel() string {
	helpKeys := []key.Binding{m.keys.next, m.keys.submit, m.keys.back}
	if m.form.ratingFocused() {
		helpKeys = []key.Binding{m.keys.less, m.keys.more, m.keys.submit, m.keys.back}
	}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.form.view(m.session.Draft()), helpView)
}

func (m *Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Search TMDB"))
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	visible := m.visibleSuggestions()
	switch {
	case m.session.SearchState() == intake.SearchSearching:
		b.WriteString(styles.help.Render("Searching..."))
	case len(visible) == 0 && intake.IsSearchable(m.searchInput.Value()):
		b.WriteString(styles.help.Render("No results"))
	default:
		for i, movie := range visible {
			if i == m.cursor {
				b.WriteString(styles.selected.Render("› " + suggestionLabel(movie)))
			} else {
				b.WriteString("  " + suggestionLabel(movie))
			}
			b.WriteString("\n")
		}
	}

	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add"))
	helpKeys := []key.Binding{m.keys.up, m.keys.down, submit, m.keys.back}
	return fmt.Sprintf("%s\n\n%s", b.String(), m.help.ShortHelpView(helpKeys))
}

// Err returns the last error shown to the user.
func (m *Model) Err() error {
	return m.err
}

