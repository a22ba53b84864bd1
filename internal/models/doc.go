// Package models defines the data shapes shared by the collection store, the intake flow and the TMDB client.
//
// The package contains two categories of types:
//
// 1. Collection types, persisted under a single storage key:
//   - [MovieEntry] : One tracked movie with optional id, director, year and rating
//   - [Collection] : Sequential integer keys mapped to entries
//   - [Record] : The persisted envelope {"movies": Collection}
//
// 2. Service types, decoded from TMDB responses:
//   - [SuggestedMovie] : A raw search result before normalization
//   - [Credits] and [CrewMember] : The credits payload used to find the director
package models
