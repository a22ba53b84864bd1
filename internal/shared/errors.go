package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrDirectorNotFound   = fmt.Errorf("director not found in credits")
	ErrNoMatch            = fmt.Errorf("no matching movie found")

	// Storage errors
	ErrStorageRead    = fmt.Errorf("storage read failed")
	ErrStorageWrite   = fmt.Errorf("storage write failed")
	ErrUnknownDriver  = fmt.Errorf("unknown storage driver")
	ErrEntryNotFound  = fmt.Errorf("movie not found in collection")
	ErrMissingMovieID = fmt.Errorf("movie has no external id")

	// Intake errors
	ErrPanelClosed = fmt.Errorf("add panel is closed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
