package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sonicpath/config"
	"github.com/katalvlaran/sonicpath/distance"
	"github.com/katalvlaran/sonicpath/embed"
	"github.com/katalvlaran/sonicpath/tsp"
)

const sampleYAML = `
log:
  level: debug
  format: json
strategy: axis
normalization: zscore
embed:
  neighbors: 5
  min_dist: 0.3
  metric: correlation
  seed: 7
optimizer:
  iterations: 2000
  patience: 300
  time_limit: 2s
  polish: true
cache:
  enabled: true
  path: /tmp/cache.sqlite3
  ttl: 24h
metrics:
  addr: ":9090"
`

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, config.Validate(cfg))

	eo, err := cfg.EmbedOptions()
	require.NoError(t, err)
	assert.Equal(t, embed.DefaultOptions(), eo)
	assert.Equal(t, tsp.DefaultOptions().Iterations, cfg.OptimizerOptions().Iterations)
}

func TestLoadFromReader_OverlaysDefaults(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "axis", cfg.Strategy)
	assert.Equal(t, 2*time.Second, cfg.Optimizer.TimeLimit)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)

	eo, err := cfg.EmbedOptions()
	require.NoError(t, err)
	assert.Equal(t, 5, eo.Neighbors)
	assert.Equal(t, distance.MetricCorrelation, eo.Metric)
	assert.Equal(t, int64(7), eo.Seed)
	assert.Equal(t, embed.DefaultComponents, eo.Components) // untouched default

	opt := cfg.OptimizerOptions()
	assert.Equal(t, 2000, opt.Iterations)
	assert.Equal(t, 300, opt.Patience)
	assert.True(t, opt.Polish)

	sorterOpts, err := cfg.SorterOptions()
	require.NoError(t, err)
	assert.Len(t, sorterOpts, 4)
}

func TestEmbedOptions_StrategyDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = "axis"
	eo, err := cfg.EmbedOptions()
	require.NoError(t, err)
	assert.Equal(t, embed.AxisOptions(), eo)
	assert.Equal(t, 5, eo.Neighbors)
	assert.Equal(t, 0.3, eo.MinDist)
	assert.Equal(t, distance.MetricCorrelation, eo.Metric)

	cfg, err = config.LoadFromReader(strings.NewReader("strategy: axis\nembed:\n  neighbors: 8\n  metric: euclidean\n"))
	require.NoError(t, err)
	eo, err = cfg.EmbedOptions()
	require.NoError(t, err)
	assert.Equal(t, 8, eo.Neighbors)
	assert.Equal(t, distance.MetricEuclidean, eo.Metric)
	assert.Equal(t, embed.AxisMinDist, eo.MinDist, "unset fields keep the axis default")

	cfg, err = config.LoadFromReader(strings.NewReader("embed:\n  min_dist: 0\n"))
	require.NoError(t, err)
	eo, err = cfg.EmbedOptions()
	require.NoError(t, err)
	assert.Zero(t, eo.MinDist, "an explicit zero overrides the default")
	assert.Equal(t, embed.DefaultNeighbors, eo.Neighbors)
}

func TestLoadFromReader_Empty(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	_, err := config.LoadFromReader(strings.NewReader("optimiser:\n  iterations: 5\n"))
	assert.Error(t, err)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"
	cfg.Strategy = "spiral"
	one := 1
	cfg.Embed.Neighbors = &one
	cfg.Optimizer.Iterations = -1
	cfg.Spotify.ClientID = "only-id"
	cfg.Cache.Enabled = true
	cfg.Cache.Path = ""

	err := config.Validate(cfg)
	require.Error(t, err)
	for _, want := range []string{"log.level", "strategy", "embed.neighbors", "optimizer.iterations", "spotify.client_id", "cache.path"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvSeed:         "42",
		config.EnvIterations:   "10",
		config.EnvCachePath:    "/var/cache/s.db",
		config.EnvClientID:     "id",
		config.EnvClientSecret: "secret",
		config.EnvStrategy:     "axis",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := config.Default()
	require.NoError(t, config.ApplyEnv(cfg, lookup))
	assert.Equal(t, int64(42), cfg.Embed.Seed)
	assert.Equal(t, int64(42), cfg.Optimizer.Seed)
	assert.Equal(t, 10, cfg.Optimizer.Iterations)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "/var/cache/s.db", cfg.Cache.Path)
	assert.Equal(t, "axis", cfg.Strategy)

	sc := cfg.SpotifyClientConfig(nil)
	assert.Equal(t, "id", sc.ClientID)
	assert.Equal(t, "secret", sc.ClientSecret)

	env[config.EnvSeed] = "forty-two"
	assert.Error(t, config.ApplyEnv(config.Default(), lookup))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sonicpath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))
	t.Setenv(config.EnvIterations, "77")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 77, cfg.Optimizer.Iterations)
	assert.Equal(t, "zscore", cfg.Normalization)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
