package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/sonicpath/features"
	"github.com/katalvlaran/sonicpath/playlist"
)

var _ playlist.FeatureProvider = (*Client)(nil)

type apiTrack struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DurationMs int    `json:"duration_ms"`
	Artists    []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
}

func (t *apiTrack) track() features.Track {
	out := features.Track{ID: t.ID, Name: t.Name, Album: t.Album.Name, DurationMs: t.DurationMs}
	for _, a := range t.Artists {
		out.Artists = append(out.Artists, a.Name)
	}
	return out
}

type tracksResponse struct {
	Tracks []*apiTrack `json:"tracks"`
}

type featuresResponse struct {
	AudioFeatures []*features.AudioFeatures `json:"audio_features"`
}

type playlistPageResponse struct {
	Items []struct {
		Track *struct {
			ID string `json:"id"`
		} `json:"track"`
	} `json:"items"`
	Next string `json:"next"`
}

// Features implements playlist.FeatureProvider. Track metadata and audio
// features are fetched in concurrent batches; the result is aligned with
// ids. An id the API does not know yields playlist.ErrNotFound.
func (c *Client) Features(ctx context.Context, ids []string) ([]features.Track, []features.Vector, error) {
	tracks := make([]features.Track, len(ids))
	vecs := make([]features.Vector, len(ids))
	if len(ids) == 0 {
		return tracks, vecs, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for lo := 0; lo < len(ids); lo += tracksBatch {
		hi := min(lo+tracksBatch, len(ids))
		g.Go(func() error {
			var resp tracksResponse
			if err := c.getJSON(gctx, "/v1/tracks", url.Values{"ids": {strings.Join(ids[lo:hi], ",")}}, &resp); err != nil {
				return err
			}
			if len(resp.Tracks) != hi-lo {
				return fmt.Errorf("spotify: /v1/tracks returned %d items for %d ids", len(resp.Tracks), hi-lo)
			}
			for k, t := range resp.Tracks {
				if t == nil {
					return fmt.Errorf("%w: %q", playlist.ErrNotFound, ids[lo+k])
				}
				tracks[lo+k] = t.track()
			}
			return nil
		})
	}
	for lo := 0; lo < len(ids); lo += featuresBatch {
		hi := min(lo+featuresBatch, len(ids))
		g.Go(func() error {
			var resp featuresResponse
			if err := c.getJSON(gctx, "/v1/audio-features", url.Values{"ids": {strings.Join(ids[lo:hi], ",")}}, &resp); err != nil {
				return err
			}
			if len(resp.AudioFeatures) != hi-lo {
				return fmt.Errorf("spotify: /v1/audio-features returned %d items for %d ids", len(resp.AudioFeatures), hi-lo)
			}
			for k, f := range resp.AudioFeatures {
				if f == nil {
					return fmt.Errorf("%w: no audio features for %q", playlist.ErrNotFound, ids[lo+k])
				}
				vecs[lo+k] = f.Vector()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	c.logger.Debug("spotify features fetched", "n", len(ids))
	return tracks, vecs, nil
}

// PlaylistTrackIDs returns the ids of the tracks in a playlist, in playlist
// order. Local files and removed tracks (no id) are skipped.
func (c *Client) PlaylistTrackIDs(ctx context.Context, playlistID string) ([]string, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: empty playlist id", playlist.ErrInvalidInput)
	}
	path := "/v1/playlists/" + url.PathEscape(playlistID) + "/tracks"

	var ids []string
	for offset := 0; ; offset += playlistPage {
		var page playlistPageResponse
		query := url.Values{
			"fields": {"items(track(id)),next"},
			"limit":  {strconv.Itoa(playlistPage)},
			"offset": {strconv.Itoa(offset)},
		}
		if err := c.getJSON(ctx, path, query, &page); err != nil {
			if isStatus(err, http.StatusNotFound) {
				return nil, fmt.Errorf("%w: playlist %q", playlist.ErrNotFound, playlistID)
			}
			return nil, err
		}
		for _, item := range page.Items {
			if item.Track != nil && item.Track.ID != "" {
				ids = append(ids, item.Track.ID)
			}
		}
		if page.Next == "" || len(page.Items) == 0 {
			break
		}
	}

	c.logger.Debug("spotify playlist resolved", "playlist", playlistID, "tracks", len(ids))
	return ids, nil
}
