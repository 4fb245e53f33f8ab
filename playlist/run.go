package playlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/sonicpath/features"
)

type runIDKey struct{}

// ContextWithRunID attaches a run ID that Sort and JSONPresenter will use.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run ID attached to ctx, or "".
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// FeatureProvider retrieves tracks and their feature vectors for catalog
// IDs. Implementations return exactly one track and one vector per id, in
// the order of ids.
type FeatureProvider interface {
	Features(ctx context.Context, ids []string) ([]features.Track, []features.Vector, error)
}

// Presenter receives the reordered tracks with their vectors.
type Presenter interface {
	Present(ctx context.Context, tracks []features.Track, vecs []features.Vector) error
}

// Run fetches ids from provider, sorts them and hands the result to
// presenter. The provider answer must be index-aligned with ids (same
// length, same ID at every position); anything else is ErrInvalidInput.
func (s *Sorter) Run(ctx context.Context, provider FeatureProvider, ids []string, presenter Presenter) (*Result, error) {
	if RunIDFromContext(ctx) == "" {
		ctx = ContextWithRunID(ctx, uuid.NewString())
	}
	start := time.Now()
	tracks, vecs, err := provider.Features(ctx, ids)
	if err != nil {
		s.metrics.RecordError(ctx, string(StageFetch))
		return nil, stageErr(StageFetch, err)
	}
	s.metrics.RecordFetch(ctx, fmt.Sprintf("%T", provider), time.Since(start).Seconds())
	s.logger.Debug("features fetched", "n", len(tracks), "elapsed", time.Since(start))

	if err = checkAligned(ids, tracks); err != nil {
		s.metrics.RecordError(ctx, string(StageValidate))
		return nil, stageErr(StageValidate, err)
	}

	res, err := s.Sort(ctx, tracks, vecs)
	if err != nil {
		return nil, err
	}
	if err = presenter.Present(ctx, res.Tracks, res.Features); err != nil {
		s.metrics.RecordError(ctx, string(StagePresent))
		return nil, stageErr(StagePresent, err)
	}
	return res, nil
}

func checkAligned(ids []string, tracks []features.Track) error {
	if len(ids) != len(tracks) {
		return fmt.Errorf("%w: requested %d ids, provider returned %d tracks", ErrInvalidInput, len(ids), len(tracks))
	}
	for i := range ids {
		if tracks[i].ID != ids[i] {
			return fmt.Errorf("%w: position %d: want id %q, got %q", ErrInvalidInput, i, ids[i], tracks[i].ID)
		}
	}
	return nil
}
