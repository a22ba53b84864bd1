// TMDB implementation of [MovieDatabase]
//
// TMDB API response types based on https://developer.themoviedb.org/reference
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/shared"
	"golang.org/x/oauth2"
)

const (
	defaultTMDBBaseURL = "https://api.themoviedb.org/3"
	tmdbWebURL         = "https://www.themoviedb.org"
)

// TMDBOpts configures a [TMDBService].
type TMDBOpts struct {
	APIKey      string
	AccessToken string
	BaseURL     string
	Language    string
	HTTPClient  *http.Client
}

// TMDBService implements [MovieDatabase] for The Movie Database.
type TMDBService struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

var _ MovieDatabase = (*TMDBService)(nil)

type searchResponse struct {
	Page         int                     `json:"page"`
	Results      []models.SuggestedMovie `json:"results"`
	TotalPages   int                     `json:"total_pages"`
	TotalResults int                     `json:"total_results"`
}

type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// NewTMDBService creates a TMDB client. At least one of APIKey or AccessToken is required.
func NewTMDBService(opts TMDBOpts) (*TMDBService, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	token := strings.TrimSpace(opts.AccessToken)
	if apiKey == "" && token == "" {
		return nil, fmt.Errorf("%w: tmdb api_key or access_token required", shared.ErrMissingCredentials)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultTMDBBaseURL
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
	}

	return &TMDBService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		language:   strings.TrimSpace(opts.Language),
		httpClient: client,
	}, nil
}

// Name returns the service name.
func (s *TMDBService) Name() string {
	return "TMDB"
}

// MovieURL returns the public web page of a movie.
func MovieURL(id int64) string {
	return fmt.Sprintf("%s/movie/%d", tmdbWebURL, id)
}

func (s *TMDBService) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	if s.apiKey != "" {
		params.Set("api_key", s.apiKey)
	}
	if s.language != "" && params.Get("language") == "" {
		params.Set("language", s.language)
	}

	u := s.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		u += sep + encoded
	}
	return u
}

func (s *TMDBService) doRequest(ctx context.Context, path string, params url.Values, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(path, params), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	// Error statuses fail the call instead of decoding to an empty result.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.StatusMessage != "" {
			return fmt.Errorf("%w: tmdb status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.StatusMessage)
		}
		return fmt.Errorf("%w: tmdb status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}

	return nil
}

// SearchMovies searches movies by title.
//
// Calls GET /search/movie?query={query}.
func (s *TMDBService) SearchMovies(ctx context.Context, query string) ([]models.SuggestedMovie, error) {
	params := url.Values{}
	params.Set("query", query)

	var payload searchResponse
	if err := s.doRequest(ctx, "/search/movie", params, &payload); err != nil {
		return nil, err
	}

	if payload.Results == nil {
		return []models.SuggestedMovie{}, nil
	}
	return payload.Results, nil
}

// GetCredits retrieves the credits of a movie.
//
// Calls GET /movie/{id}/credits.
func (s *TMDBService) GetCredits(ctx context.Context, movieID int64) (*models.Credits, error) {
	path := "/movie/" + strconv.FormatInt(movieID, 10) + "/credits"

	var credits models.Credits
	if err := s.doRequest(ctx, path, nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}
