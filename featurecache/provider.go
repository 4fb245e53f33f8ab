package featurecache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/sonicpath/features"
	"github.com/katalvlaran/sonicpath/playlist"
)

// Provider serves features from a Store and falls back to the wrapped
// provider for misses, writing what it fetched back into the Store.
type Provider struct {
	store  *Store
	next   playlist.FeatureProvider
	logger *slog.Logger
}

var _ playlist.FeatureProvider = (*Provider)(nil)

// NewProvider wraps next with store. A nil logger selects slog.Default().
func NewProvider(store *Store, next playlist.FeatureProvider, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{store: store, next: next, logger: logger}
}

// Features implements playlist.FeatureProvider. Cache write failures are
// logged and do not fail the call.
func (p *Provider) Features(ctx context.Context, ids []string) ([]features.Track, []features.Vector, error) {
	cached, err := p.store.GetMany(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	var (
		missing []string
		seen    = make(map[string]struct{})
	)
	for _, id := range ids {
		if _, ok := cached[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		tracks, vecs, err := p.next.Features(ctx, missing)
		if err != nil {
			return nil, nil, err
		}
		if err = features.ValidateAligned(tracks, vecs); err != nil {
			return nil, nil, fmt.Errorf("featurecache: upstream answer: %w", err)
		}
		if err = p.store.PutMany(ctx, tracks, vecs); err != nil {
			p.logger.Warn("feature cache write failed", "err", err, "n", len(tracks))
		}
		for i := range tracks {
			row := newRow(tracks[i], vecs[i])
			cached[row.ID] = row
		}
	}
	p.logger.Debug("feature cache lookup", "requested", len(ids), "hits", len(ids)-len(missing), "fetched", len(missing))

	tracks := make([]features.Track, len(ids))
	vecs := make([]features.Vector, len(ids))
	for i, id := range ids {
		row, ok := cached[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", playlist.ErrNotFound, id)
		}
		tracks[i] = row.Track()
		vecs[i] = row.Vector()
	}
	return tracks, vecs, nil
}
