// Package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/mvk/internal/models"
)

// MockMovieDatabase is a test double for [services.MovieDatabase].
//
// Results and Credits are keyed by query and movie id; SearchErr and CreditsErr take precedence.
type MockMovieDatabase struct {
	Results    map[string][]models.SuggestedMovie
	Credits    map[int64]*models.Credits
	SearchErr  error
	CreditsErr error

	mu           sync.Mutex
	searchCalls  []string
	creditsCalls []int64
}

func (m *MockMovieDatabase) SearchMovies(ctx context.Context, query string) ([]models.SuggestedMovie, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, query)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if results, ok := m.Results[query]; ok {
		return results, nil
	}
	return []models.SuggestedMovie{}, nil
}

func (m *MockMovieDatabase) GetCredits(ctx context.Context, movieID int64) (*models.Credits, error) {
	m.mu.Lock()
	m.creditsCalls = append(m.creditsCalls, movieID)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.CreditsErr != nil {
		return nil, m.CreditsErr
	}
	if credits, ok := m.Credits[movieID]; ok {
		return credits, nil
	}
	return &models.Credits{ID: movieID}, nil
}

func (m *MockMovieDatabase) Name() string { return "mock" }

// SearchCalls returns the queries passed to SearchMovies, in call order.
func (m *MockMovieDatabase) SearchCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.searchCalls...)
}

// CreditsCalls returns the movie ids passed to GetCredits, in call order.
func (m *MockMovieDatabase) CreditsCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.creditsCalls...)
}

// FailingStorage is a storage backend whose reads and writes fail with the configured errors.
// A nil error makes the operation behave like an empty store.
type FailingStorage struct {
	ReadErr  error
	WriteErr error
	Writes   int
}

func (f *FailingStorage) GetItem(key string) (string, bool, error) {
	if f.ReadErr != nil {
		return "", false, f.ReadErr
	}
	return "", false, nil
}

func (f *FailingStorage) SetItem(key, value string) error {
	f.Writes++
	return f.WriteErr
}

func (f *FailingStorage) Close() error { return nil }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
