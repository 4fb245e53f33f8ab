// Package spotify is a playlist.FeatureProvider backed by the Spotify Web API.
//
// A Client authenticates with the client-credentials grant through a
// TokenSource, fetches track metadata (/v1/tracks, 50 ids per request) and
// audio features (/v1/audio-features, 100 ids per request) concurrently, and
// returns them index-aligned with the requested ids. Requests share one
// rate limiter. A 401 response refreshes the token and retries the request
// once; a 429 response waits for Retry-After and retries once.
//
// PlaylistTrackIDs pages through /v1/playlists/{id}/tracks to resolve a
// playlist into track ids.
package spotify
