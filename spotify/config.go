package spotify

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultAPIBaseURL is the Web API root.
	DefaultAPIBaseURL = "https://api.spotify.com"
	// DefaultTokenURL is the client-credentials token endpoint.
	DefaultTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultConcurrency bounds in-flight batch requests.
	DefaultConcurrency = 4
	// DefaultRequestsPerSecond is the sustained request rate.
	DefaultRequestsPerSecond = 10
	// DefaultBurst is the limiter bucket size.
	DefaultBurst = 5
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetryAfter caps how long a 429 response can make us wait.
	DefaultMaxRetryAfter = 30 * time.Second

	tracksBatch   = 50
	featuresBatch = 100
	playlistPage  = 100

	// tokenSkew refreshes tokens slightly before they expire.
	tokenSkew = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	ClientID     string
	ClientSecret string

	// APIBaseURL and TokenURL default to the public Spotify endpoints.
	APIBaseURL string
	TokenURL   string

	Concurrency       int
	RequestsPerSecond float64
	Burst             int
	MaxRetryAfter     time.Duration

	// HTTPClient defaults to a client with DefaultTimeout.
	HTTPClient *http.Client
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// withDefaults fills zero fields and validates the rest.
func (c Config) withDefaults() (Config, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return c, ErrMissingCredentials
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.Burst == 0 {
		c.Burst = DefaultBurst
	}
	if c.MaxRetryAfter == 0 {
		c.MaxRetryAfter = DefaultMaxRetryAfter
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	switch {
	case c.Concurrency < 0:
		return c, fmt.Errorf("%w: concurrency %d", ErrInvalidConfig, c.Concurrency)
	case c.RequestsPerSecond < 0:
		return c, fmt.Errorf("%w: requests per second %v", ErrInvalidConfig, c.RequestsPerSecond)
	case c.Burst < 0:
		return c, fmt.Errorf("%w: burst %d", ErrInvalidConfig, c.Burst)
	case c.MaxRetryAfter < 0:
		return c, fmt.Errorf("%w: max retry-after %v", ErrInvalidConfig, c.MaxRetryAfter)
	}
	return c, nil
}
