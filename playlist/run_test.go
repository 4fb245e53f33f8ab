package playlist_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/sonicpath/embed"
	"github.com/katalvlaran/sonicpath/features"
	"github.com/katalvlaran/sonicpath/playlist"
)

const sampleDocument = `{
  "tracks": [
    {"id": "t1", "name": "One", "artists": ["A"], "features": {"energy": 0.1, "tempo": 90}},
    {"id": "t2", "name": "Two", "artists": ["B"], "features": {"energy": 0.9, "tempo": 170}},
    {"id": "t3", "name": "Three", "features": {"energy": 0.2, "tempo": 95}}
  ]
}`

type failingProvider struct{ err error }

func (p failingProvider) Features(context.Context, []string) ([]features.Track, []features.Vector, error) {
	return nil, nil, p.err
}

// shuffledProvider returns the right tracks in the wrong order.
type shuffledProvider struct{ inner playlist.FeatureProvider }

func (p shuffledProvider) Features(ctx context.Context, ids []string) ([]features.Track, []features.Vector, error) {
	tracks, vecs, err := p.inner.Features(ctx, ids)
	if err != nil || len(tracks) < 2 {
		return tracks, vecs, err
	}
	tracks[0], tracks[1] = tracks[1], tracks[0]
	vecs[0], vecs[1] = vecs[1], vecs[0]
	return tracks, vecs, nil
}

type RunSuite struct {
	suite.Suite
	doc    playlist.Document
	sorter *playlist.Sorter
}

func (s *RunSuite) SetupTest() {
	doc, err := playlist.ReadDocument(strings.NewReader(sampleDocument))
	s.Require().NoError(err)
	s.doc = doc
	points := []embed.Point{{1, 0}, {0, 0}, {5, 0}}
	s.sorter = newSorter(s.T(), playlist.WithReducer(fixedReducer{points: points}))
}

func (s *RunSuite) TestRoundTripThroughJSON() {
	var out bytes.Buffer
	ctx := playlist.ContextWithRunID(context.Background(), "run-1")

	res, err := s.sorter.Run(ctx, playlist.NewStaticProvider(s.doc), s.doc.IDs(), &playlist.JSONPresenter{W: &out})
	s.Require().NoError(err)
	s.Equal("run-1", res.RunID)
	s.Equal([]int{1, 0, 2}, res.Order)
	s.InDelta(5.0, res.Distance, 1e-9)

	written, err := playlist.ReadDocument(&out)
	s.Require().NoError(err)
	s.Equal("run-1", written.RunID)
	s.Equal([]string{"t2", "t1", "t3"}, written.IDs())
	s.Equal(0.9, written.Tracks[0].Features.Energy)
	s.Equal([]string{"B"}, written.Tracks[0].Artists)
}

func (s *RunSuite) TestMisalignedProvider() {
	_, err := s.sorter.Run(context.Background(),
		shuffledProvider{inner: playlist.NewStaticProvider(s.doc)}, s.doc.IDs(), &playlist.JSONPresenter{W: &bytes.Buffer{}})
	s.ErrorIs(err, playlist.ErrInvalidInput)
	var se *playlist.StageError
	s.Require().ErrorAs(err, &se)
	s.Equal(playlist.StageValidate, se.Stage)
}

func (s *RunSuite) TestProviderFailure() {
	boom := errors.New("catalog down")
	_, err := s.sorter.Run(context.Background(), failingProvider{err: boom}, []string{"x"}, &playlist.JSONPresenter{W: &bytes.Buffer{}})
	s.ErrorIs(err, boom)
	var se *playlist.StageError
	s.Require().ErrorAs(err, &se)
	s.Equal(playlist.StageFetch, se.Stage)
}

func (s *RunSuite) TestUnknownID() {
	_, err := s.sorter.Run(context.Background(), playlist.NewStaticProvider(s.doc), []string{"t1", "nope"}, &playlist.JSONPresenter{W: &bytes.Buffer{}})
	s.ErrorIs(err, playlist.ErrNotFound)
}

func (s *RunSuite) TestSyntheticProvider() {
	tracks, vecs, err := playlist.SyntheticProvider{}.Features(context.Background(), []string{"a", "b"})
	s.Require().NoError(err)
	s.Len(tracks, 2)
	s.Equal("b", tracks[1].ID)
	s.Equal(features.Synthetic("a"), vecs[0])
}

func TestRunSuite(t *testing.T) {
	suite.Run(t, new(RunSuite))
}

func TestReadDocument_Rejects(t *testing.T) {
	_, err := playlist.ReadDocument(strings.NewReader(`{"tracks":[{"name":"no id"}]}`))
	if !errors.Is(err, playlist.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	_, err = playlist.ReadDocument(strings.NewReader(`{"tracks":[],"extra":1}`))
	if err == nil {
		t.Fatal("unknown field accepted")
	}
}
