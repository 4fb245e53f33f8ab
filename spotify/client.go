package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client talks to the Spotify Web API. It is safe for concurrent use.
type Client struct {
	baseURL       string
	tokens        *TokenSource
	limiter       *rate.Limiter
	httpClient    *http.Client
	concurrency   int
	maxRetryAfter time.Duration
	logger        *slog.Logger
}

// New builds a Client from cfg, filling defaults for zero fields.
func New(cfg Config) (*Client, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	tokens, err := NewTokenSource(cfg.ClientID, cfg.ClientSecret, cfg.TokenURL, cfg.HTTPClient)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.APIBaseURL, "/"),
		tokens:        tokens,
		limiter:       rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		httpClient:    cfg.HTTPClient,
		concurrency:   cfg.Concurrency,
		maxRetryAfter: cfg.MaxRetryAfter,
		logger:        cfg.Logger,
	}, nil
}

// Tokens exposes the client's TokenSource.
func (c *Client) Tokens() *TokenSource { return c.tokens }

// getJSON issues an authenticated GET for path?query and decodes the body
// into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var (
		refreshed, throttled bool
		resp                 *http.Response
		used                 string
		err                  error
	)
	for {
		if resp, used, err = c.do(ctx, endpoint); err != nil {
			return err
		}
		switch {
		case resp.StatusCode == http.StatusUnauthorized && !refreshed:
			drain(resp)
			c.logger.Debug("spotify token rejected, refreshing", "url", endpoint)
			if _, err = c.tokens.refresh(ctx, used); err != nil {
				return err
			}
			refreshed = true
			continue
		case resp.StatusCode == http.StatusUnauthorized:
			drain(resp)
			return fmt.Errorf("%w: GET %s", ErrUnauthorized, endpoint)
		case resp.StatusCode == http.StatusTooManyRequests && !throttled:
			wait := c.retryAfter(resp.Header.Get("Retry-After"))
			drain(resp)
			c.logger.Warn("spotify rate limited", "url", endpoint, "retry_after", wait)
			if err = sleep(ctx, wait); err != nil {
				return err
			}
			throttled = true
			continue
		case resp.StatusCode == http.StatusTooManyRequests:
			drain(resp)
			return fmt.Errorf("%w: GET %s", ErrRateLimited, endpoint)
		}
		break
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("spotify: read %s: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Method: http.MethodGet, URL: endpoint, Message: apiMessage(body)}
	}
	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("spotify: decode %s: %w", endpoint, err)
	}
	return nil
}

// do waits for the limiter and sends one GET with the current token. It
// also returns the token it sent.
func (c *Client) do(ctx context.Context, endpoint string) (*http.Response, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("spotify: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("spotify: GET %s: %w", endpoint, err)
	}
	return resp, tok, nil
}

// retryAfter parses a Retry-After header in seconds, defaulting to one
// second and capping at maxRetryAfter.
func (c *Client) retryAfter(h string) time.Duration {
	wait := time.Second
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		wait = time.Duration(secs) * time.Second
	}
	if wait > c.maxRetryAfter {
		wait = c.maxRetryAfter
	}
	return wait
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// apiMessage extracts error.message from an API error body.
func apiMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// isStatus reports whether err is an APIError with the given status.
func isStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
