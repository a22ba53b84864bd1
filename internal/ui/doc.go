// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has three views over one collection:
//  1. [CollectionView] : Browse the collection (fuzzy filtering with /) and open TMDB pages
//  2. [AddPanelView] : Manual entry form with title, director, year and a 0-5 star rating
//  3. [SearchView] : Search the movie database and add a suggestion in one keystroke
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Searches run as commands; each result is applied when it arrives, so a slow earlier search may replace a newer one.
// Suggestions already in the collection are hidden.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
