package spotify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sonicpath/spotify"
)

func tokenServer(t *testing.T, expiresIn int, delay time.Duration) (*atomic.Int32, *httptest.Server) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		n := calls.Add(1)
		time.Sleep(delay)
		writeJSON(w, map[string]any{"access_token": "tok-" + string(rune('0'+n)), "expires_in": expiresIn})
	}))
	t.Cleanup(srv.Close)
	return &calls, srv
}

func TestTokenSource_SharesConcurrentRefresh(t *testing.T) {
	calls, srv := tokenServer(t, 3600, 50*time.Millisecond)
	ts, err := spotify.NewTokenSource("id", "secret", srv.URL, srv.Client())
	require.NoError(t, err)

	var wg sync.WaitGroup
	toks := make([]string, 16)
	for i := range toks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			toks[i], _ = ts.Token(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, tok := range toks {
		assert.Equal(t, "tok-1", tok)
	}
}

func TestTokenSource_RefreshReplacesToken(t *testing.T) {
	calls, srv := tokenServer(t, 3600, 0)
	ts, err := spotify.NewTokenSource("id", "secret", srv.URL, srv.Client())
	require.NoError(t, err)

	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	tok, err = ts.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)

	tok, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTokenSource_ShortLivedTokenIsRefetched(t *testing.T) {
	calls, srv := tokenServer(t, 5, 0)
	ts, err := spotify.NewTokenSource("id", "secret", srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = ts.Token(context.Background())
	require.NoError(t, err)
	_, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTokenSource_Errors(t *testing.T) {
	_, err := spotify.NewTokenSource("", "secret", "", nil)
	assert.ErrorIs(t, err, spotify.ErrMissingCredentials)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad client", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	ts, err := spotify.NewTokenSource("id", "secret", srv.URL, srv.Client())
	require.NoError(t, err)
	_, err = ts.Token(context.Background())
	var apiErr *spotify.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
