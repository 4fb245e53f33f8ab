package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sonicpath/config"
	"github.com/katalvlaran/sonicpath/features"
	"github.com/katalvlaran/sonicpath/playlist"
)

func writeInput(t *testing.T, n int) (string, []string) {
	t.Helper()
	tracks := make([]features.Track, n)
	vecs := make([]features.Vector, n)
	ids := make([]string, n)
	for i := range tracks {
		ids[i] = "track-" + string(rune('a'+i))
		tracks[i] = features.Track{ID: ids[i], Name: strings.ToUpper(ids[i])}
		vecs[i] = features.Synthetic(ids[i])
	}
	return writeDocument(t, tracks, vecs), ids
}

func writeDocument(t *testing.T, tracks []features.Track, vecs []features.Vector) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, (&playlist.JSONPresenter{W: &buf}).Present(context.Background(), tracks, vecs))

	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestRun_InputToOut(t *testing.T) {
	in, ids := writeInput(t, 12)
	out := filepath.Join(t.TempDir(), "out.json")
	var stderr bytes.Buffer

	code := run(context.Background(), []string{"-input", in, "-out", out, "-seed", "3", "-iterations", "200"}, nil, &bytes.Buffer{}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	doc, err := playlist.ReadDocument(f)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.RunID)
	assert.ElementsMatch(t, ids, doc.IDs())
	assert.Contains(t, stderr.String(), "playlist reordered")
}

func TestRun_StdinAxisStrategy(t *testing.T) {
	in, ids := writeInput(t, 5)
	data, err := os.ReadFile(in)
	require.NoError(t, err)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-strategy", "axis"}, bytes.NewReader(data), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	doc, err := playlist.ReadDocument(&stdout)
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, doc.IDs())
}

func TestRun_InputBypassesFeatureCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.sqlite3")
	t.Setenv(config.EnvCachePath, cachePath)

	sortDoc := func(label string, energy float64) playlist.Document {
		t.Helper()
		tracks := make([]features.Track, 4)
		vecs := make([]features.Vector, 4)
		for i := range tracks {
			id := "track-" + string(rune('a'+i))
			tracks[i] = features.Track{ID: id, Name: label + "-" + id}
			af := features.FromVector(id, features.Synthetic(id))
			af.Energy = energy
			vecs[i] = af.Vector()
		}
		in := writeDocument(t, tracks, vecs)
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"-input", in, "-seed", "1"}, nil, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		doc, err := playlist.ReadDocument(&stdout)
		require.NoError(t, err)
		return doc
	}

	sortDoc("old", 0.1)
	doc := sortDoc("new", 0.9)

	require.Len(t, doc.Tracks, 4)
	for _, tr := range doc.Tracks {
		assert.True(t, strings.HasPrefix(tr.Name, "new-"), "got %q", tr.Name)
		assert.InDelta(t, 0.9, tr.Features.Energy, 1e-12)
	}
	_, err := os.Stat(cachePath)
	assert.True(t, os.IsNotExist(err), "document input must not open the feature cache")
}

func TestRun_Failures(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"both sources", []string{"-input", "a.json", "-playlist", "p"}},
		{"missing input", []string{"-input", filepath.Join(t.TempDir(), "nope.json")}},
		{"bad strategy", []string{"-strategy", "zigzag"}},
		{"unknown flag", []string{"-frobnicate"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stderr bytes.Buffer
			code := run(context.Background(), tc.args, strings.NewReader(`{"tracks":[]}`), &bytes.Buffer{}, &stderr)
			assert.Equal(t, 1, code)
			assert.NotEmpty(t, stderr.String())
		})
	}
}
