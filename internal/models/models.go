package models

// MovieEntry is one tracked movie. Optional fields are omitted when serialized.
type MovieEntry struct {
	ID       *int64 `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	Director string `json:"director,omitempty"`
	Year     string `json:"year,omitempty"`
	Rating   *int   `json:"rating,omitempty"`
}

// HasID reports whether the entry came from the movie database.
func (e MovieEntry) HasID() bool { return e.ID != nil }

// Collection maps sequential keys (1, 2, 3, ...) to entries.
// JSON encodes the keys as decimal strings.
type Collection map[int]MovieEntry

// Record is the persisted envelope stored under the collection's storage key.
type Record struct {
	Movies Collection `json:"movies"`
}

// SuggestedMovie is a raw movie search result.
type SuggestedMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview,omitempty"`
	Popularity  float64 `json:"popularity,omitempty"`
}

// CrewMember is a single crew credit.
type CrewMember struct {
	ID   int64  `json:"id,omitempty"`
	Job  string `json:"job"`
	Name string `json:"name"`
}

// Credits is the movie credits payload.
type Credits struct {
	ID   int64        `json:"id,omitempty"`
	Crew []CrewMember `json:"crew"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }
