// Package intake drives the add-a-movie interaction.
//
// A [Session] tracks one add-panel: the manual draft, panel visibility, the search query and the suggestions
// currently on screen. A [Flow] performs the side effects: searching the movie database, normalizing a selected
// suggestion into a [models.MovieEntry] and handing finished entries to the OnAddMovie callback.
package intake
