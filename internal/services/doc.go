// Package services defines the [MovieDatabase] interface for movie metadata providers and implements it for TMDB.
//
// # TMDB Implementation
//
// [TMDBService] talks to the v3 API. Two credentials are supported:
//   - api_key: appended to every request as a query parameter
//   - access token: a v4 read access token sent as a bearer token through an [oauth2] client
//
// When both are configured both are sent; TMDB accepts either.
//
// Requests are one-shot: no retries, and no timeout beyond the supplied context and HTTP client.
//
// # Error Handling
//
// All failures wrap [shared.ErrAPIRequest]:
//   - transport errors from the HTTP client
//   - non-2xx responses, including TMDB's status_message when present
//   - undecodable response bodies
//
// [NewTMDBService] returns [shared.ErrMissingCredentials] when neither credential is set.
//
// # Raw Requests
//
// [TMDBService.Get] returns an [APIResponse] with the raw body for debugging endpoints by hand.
package services
