package tvdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrMissingAPIKey indicates the client was constructed without an API key.
	ErrMissingAPIKey = errors.New("tvdb: api key is required")
	// ErrNoSearchTerms indicates a search request with no usable criteria.
	ErrNoSearchTerms = errors.New("tvdb: search requires a name, imdb id or zap2it id")
	// ErrNoResults indicates a select-first search over an empty result set.
	ErrNoResults = errors.New("tvdb: search returned no results")
	// ErrMalformedResponse indicates a success payload without the expected shape.
	ErrMalformedResponse = errors.New("tvdb: malformed response")
)

// APIError represents a TheTVDB API response outside the 2xx range.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("tvdb API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tvdb API error: status %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized reports whether the response was a 401. TheTVDB answers
// 401 for rejected and expired tokens; the refresh-to-login fallback keys
// on this status and no other.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether the response was a 404. The search endpoint
// uses it when nothing matches.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
