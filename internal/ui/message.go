package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mvk/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchResults MsgKind = iota
	MsgMovieAdded
	MsgBrowserOpened
)

type searchResults struct {
	query   string
	results []models.SuggestedMovie
	err     error
}

type movieAdded struct {
	entry models.MovieEntry
	err   error
}

// searchResultsMsg is the constructor for [MsgSearchResults]
func searchResultsMsg(query string, results []models.SuggestedMovie, err error) Msg {
	return Msg{kind: MsgSearchResults, data: searchResults{query: query, results: results, err: err}}
}

// movieAddedMsg is the constructor for [MsgMovieAdded]
func movieAddedMsg(entry models.MovieEntry, err error) Msg {
	return Msg{kind: MsgMovieAdded, data: movieAdded{entry: entry, err: err}}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: err}
}
