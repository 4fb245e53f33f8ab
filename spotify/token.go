package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// TokenSource hands out client-credentials access tokens. Concurrent
// callers that find the token missing or expired share a single refresh.
type TokenSource struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
	now          func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	token   string
	expires time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// NewTokenSource returns a TokenSource for the given credentials. An empty
// tokenURL selects DefaultTokenURL and a nil client selects
// http.DefaultClient.
func NewTokenSource(clientID, clientSecret, tokenURL string, httpClient *http.Client) (*TokenSource, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		httpClient:   httpClient,
		now:          time.Now,
	}, nil
}

// Token returns the cached token, refreshing it when it is missing or about
// to expire.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.RLock()
	tok, exp := ts.token, ts.expires
	ts.mu.RUnlock()
	if tok != "" && ts.now().Add(tokenSkew).Before(exp) {
		return tok, nil
	}
	return ts.refresh(ctx, "")
}

// Refresh discards the cached token and fetches a new one.
func (ts *TokenSource) Refresh(ctx context.Context) (string, error) {
	ts.mu.RLock()
	stale := ts.token
	ts.mu.RUnlock()
	return ts.refresh(ctx, stale)
}

// refresh fetches a new token unless another caller already replaced stale
// in the meantime.
func (ts *TokenSource) refresh(ctx context.Context, stale string) (string, error) {
	ch := ts.group.DoChan("token", func() (any, error) {
		ts.mu.RLock()
		tok, exp := ts.token, ts.expires
		ts.mu.RUnlock()
		if tok != "" && tok != stale && ts.now().Add(tokenSkew).Before(exp) {
			return tok, nil
		}
		return ts.fetch(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (ts *TokenSource) fetch(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("spotify: token request: %w", err)
	}
	req.SetBasicAuth(ts.clientID, ts.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("spotify: token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("spotify: read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Method: req.Method, URL: ts.tokenURL, Message: strings.TrimSpace(string(body))}
	}

	var tr tokenResponse
	if err = json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("spotify: decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("spotify: token response without access_token")
	}

	ts.mu.Lock()
	ts.token = tr.AccessToken
	ts.expires = ts.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	ts.mu.Unlock()

	return tr.AccessToken, nil
}
