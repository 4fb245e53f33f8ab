package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/sonicpath/features"
)

// ErrNotFound is returned by providers for unknown track IDs.
var ErrNotFound = errors.New("playlist: track not found")

// Entry is one track with its named audio features, as exchanged in JSON.
type Entry struct {
	features.Track
	Features features.AudioFeatures `json:"features"`
}

// Document is the JSON shape read by StaticProvider and written by
// JSONPresenter: {"tracks": [...]}.
type Document struct {
	RunID  string  `json:"run_id,omitempty"`
	Tracks []Entry `json:"tracks"`
}

// NewDocument pairs tracks with vectors. The slices must be aligned.
func NewDocument(tracks []features.Track, vecs []features.Vector) Document {
	doc := Document{Tracks: make([]Entry, len(tracks))}
	for i := range tracks {
		doc.Tracks[i] = Entry{Track: tracks[i], Features: features.FromVector(tracks[i].ID, vecs[i])}
	}
	return doc
}

// ReadDocument decodes a Document, rejecting unknown fields.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("playlist: decode document: %w", err)
	}
	for i, e := range doc.Tracks {
		if e.ID == "" {
			return Document{}, fmt.Errorf("%w: track %d has no id", ErrInvalidInput, i)
		}
	}
	return doc, nil
}

// IDs returns the track IDs in document order.
func (d Document) IDs() []string {
	ids := make([]string, len(d.Tracks))
	for i, e := range d.Tracks {
		ids[i] = e.ID
	}
	return ids
}

// StaticProvider serves tracks from an in-memory Document.
type StaticProvider struct {
	byID map[string]Entry
}

var _ FeatureProvider = (*StaticProvider)(nil)

// NewStaticProvider indexes doc by track ID. Later duplicates win.
func NewStaticProvider(doc Document) *StaticProvider {
	p := &StaticProvider{byID: make(map[string]Entry, len(doc.Tracks))}
	for _, e := range doc.Tracks {
		p.byID[e.ID] = e
	}
	return p
}

// Features implements FeatureProvider.
func (p *StaticProvider) Features(ctx context.Context, ids []string) ([]features.Track, []features.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	tracks := make([]features.Track, len(ids))
	vecs := make([]features.Vector, len(ids))
	for i, id := range ids {
		e, ok := p.byID[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		tracks[i] = e.Track
		vecs[i] = e.Features.Vector()
	}
	return tracks, vecs, nil
}

// SyntheticProvider fabricates deterministic features for any ID. It backs
// demos and tests that run without catalog access.
type SyntheticProvider struct{}

var _ FeatureProvider = SyntheticProvider{}

// Features implements FeatureProvider.
func (SyntheticProvider) Features(ctx context.Context, ids []string) ([]features.Track, []features.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	tracks := make([]features.Track, len(ids))
	vecs := make([]features.Vector, len(ids))
	for i, id := range ids {
		tracks[i] = features.Track{ID: id, Name: id}
		vecs[i] = features.Synthetic(id)
	}
	return tracks, vecs, nil
}

// JSONPresenter writes the reordered playlist as an indented Document.
// The run ID is taken from the context (see ContextWithRunID).
type JSONPresenter struct {
	W io.Writer
}

var _ Presenter = (*JSONPresenter)(nil)

// Present implements Presenter.
func (p *JSONPresenter) Present(ctx context.Context, tracks []features.Track, vecs []features.Vector) error {
	if len(tracks) != len(vecs) {
		return fmt.Errorf("%w: %d tracks but %d feature vectors", ErrInvalidInput, len(tracks), len(vecs))
	}
	doc := NewDocument(tracks, vecs)
	doc.RunID = RunIDFromContext(ctx)
	enc := json.NewEncoder(p.W)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("playlist: encode document: %w", err)
	}
	return nil
}
