package spotify

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned when the client id or secret is empty.
	ErrMissingCredentials = errors.New("spotify: missing client credentials")

	// ErrInvalidConfig is returned by New for unusable Config values.
	ErrInvalidConfig = errors.New("spotify: invalid config")

	// ErrUnauthorized is returned when the API rejects a freshly refreshed token.
	ErrUnauthorized = errors.New("spotify: unauthorized")

	// ErrRateLimited is returned when a request is throttled twice in a row.
	ErrRateLimited = errors.New("spotify: rate limited")
)

// APIError is a non-2xx answer from the API or the token endpoint.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify: %s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("spotify: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
}
