// Package config provides the configuration schema and loader for the
// sonicpath command.
package config

import (
	"log/slog"
	"time"

	"github.com/katalvlaran/sonicpath/distance"
	"github.com/katalvlaran/sonicpath/embed"
	"github.com/katalvlaran/sonicpath/featurecache"
	"github.com/katalvlaran/sonicpath/features"
	"github.com/katalvlaran/sonicpath/playlist"
	"github.com/katalvlaran/sonicpath/spotify"
	"github.com/katalvlaran/sonicpath/tsp"
)

// Config is the root configuration structure.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Log LogConfig `yaml:"log"`

	// Strategy is "route" (default) or "axis".
	Strategy string `yaml:"strategy"`

	// Normalization is "none" (default), "zscore" or "minmax".
	Normalization string `yaml:"normalization"`

	Embed     EmbedConfig     `yaml:"embed"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Spotify   SpotifyConfig   `yaml:"spotify"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// EmbedConfig mirrors embed.Options. Neighbors, MinDist and Metric are
// left unset by Default so that each strategy keeps its own tuning
// (playlist.Strategy.EmbedOptions) unless the file overrides them.
type EmbedConfig struct {
	Components         int      `yaml:"components"`
	Neighbors          *int     `yaml:"neighbors,omitempty"`
	MinDist            *float64 `yaml:"min_dist,omitempty"`
	Spread             float64  `yaml:"spread"`
	Epochs             int      `yaml:"epochs"`
	LearningRate       float64  `yaml:"learning_rate"`
	NegativeSampleRate int      `yaml:"negative_sample_rate"`
	Metric             string   `yaml:"metric,omitempty"`
	Init               string   `yaml:"init"`
	Seed               int64    `yaml:"seed"`
}

// OptimizerConfig mirrors tsp.Options.
type OptimizerConfig struct {
	Iterations int           `yaml:"iterations"`
	Seed       int64         `yaml:"seed"`
	Patience   int           `yaml:"patience"`
	TimeLimit  time.Duration `yaml:"time_limit"`
	Polish     bool          `yaml:"polish"`
}

// SpotifyConfig holds Web API credentials and client tuning.
// Credentials are normally supplied through the environment.
type SpotifyConfig struct {
	ClientID          string        `yaml:"client_id"`
	ClientSecret      string        `yaml:"client_secret"`
	APIBaseURL        string        `yaml:"api_base_url"`
	TokenURL          string        `yaml:"token_url"`
	Concurrency       int           `yaml:"concurrency"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	MaxRetryAfter     time.Duration `yaml:"max_retry_after"`
}

// CacheConfig controls the SQLite feature cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Path    string        `yaml:"path"`
	TTL     time.Duration `yaml:"ttl"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables the endpoint.
	Addr        string `yaml:"addr"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	eo := embed.DefaultOptions()
	return &Config{
		Log:           LogConfig{Level: "info", Format: "text"},
		Strategy:      playlist.StrategyRoute.String(),
		Normalization: features.NormalizeNone.String(),
		Embed: EmbedConfig{
			Components:         eo.Components,
			Spread:             eo.Spread,
			LearningRate:       eo.LearningRate,
			NegativeSampleRate: eo.NegativeSampleRate,
			Init:               eo.Init.String(),
		},
		Optimizer: OptimizerConfig{Iterations: tsp.DefaultIterations},
		Spotify: SpotifyConfig{
			APIBaseURL:        spotify.DefaultAPIBaseURL,
			TokenURL:          spotify.DefaultTokenURL,
			Concurrency:       spotify.DefaultConcurrency,
			RequestsPerSecond: spotify.DefaultRequestsPerSecond,
			Burst:             spotify.DefaultBurst,
			MaxRetryAfter:     spotify.DefaultMaxRetryAfter,
		},
		Cache:   CacheConfig{Path: featurecache.DefaultPath},
		Metrics: MetricsConfig{ServiceName: "sonicpath"},
	}
}

// EmbedOptions converts the embed section, starting from the defaults of
// the configured strategy.
func (c *Config) EmbedOptions() (embed.Options, error) {
	strategy, err := playlist.ParseStrategy(c.Strategy)
	if err != nil {
		return embed.Options{}, err
	}
	initMode, err := embed.ParseInit(c.Embed.Init)
	if err != nil {
		return embed.Options{}, err
	}
	opts := strategy.EmbedOptions()
	opts.Components = c.Embed.Components
	opts.Spread = c.Embed.Spread
	opts.Epochs = c.Embed.Epochs
	opts.LearningRate = c.Embed.LearningRate
	opts.NegativeSampleRate = c.Embed.NegativeSampleRate
	opts.Init = initMode
	opts.Seed = c.Embed.Seed
	if c.Embed.Neighbors != nil {
		opts.Neighbors = *c.Embed.Neighbors
	}
	if c.Embed.MinDist != nil {
		opts.MinDist = *c.Embed.MinDist
	}
	if c.Embed.Metric != "" {
		if opts.Metric, err = distance.ParseMetric(c.Embed.Metric); err != nil {
			return embed.Options{}, err
		}
	}
	return opts, opts.Validate()
}

// OptimizerOptions converts the optimizer section.
func (c *Config) OptimizerOptions() tsp.Options {
	return tsp.Options{
		Iterations: c.Optimizer.Iterations,
		Seed:       c.Optimizer.Seed,
		Patience:   c.Optimizer.Patience,
		TimeLimit:  c.Optimizer.TimeLimit,
		Polish:     c.Optimizer.Polish,
	}
}

// SpotifyClientConfig converts the spotify section.
func (c *Config) SpotifyClientConfig(logger *slog.Logger) spotify.Config {
	return spotify.Config{
		ClientID:          c.Spotify.ClientID,
		ClientSecret:      c.Spotify.ClientSecret,
		APIBaseURL:        c.Spotify.APIBaseURL,
		TokenURL:          c.Spotify.TokenURL,
		Concurrency:       c.Spotify.Concurrency,
		RequestsPerSecond: c.Spotify.RequestsPerSecond,
		Burst:             c.Spotify.Burst,
		MaxRetryAfter:     c.Spotify.MaxRetryAfter,
		Logger:            logger,
	}
}

// SorterOptions builds the playlist.Sorter options described by c.
func (c *Config) SorterOptions() ([]playlist.Option, error) {
	eo, err := c.EmbedOptions()
	if err != nil {
		return nil, err
	}
	reducer, err := embed.New(eo)
	if err != nil {
		return nil, err
	}
	strategy, err := playlist.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	norm, err := features.ParseNormalization(c.Normalization)
	if err != nil {
		return nil, err
	}
	return []playlist.Option{
		playlist.WithReducer(reducer),
		playlist.WithOptimizer(playlist.RouteOptimizer{Options: c.OptimizerOptions()}),
		playlist.WithStrategy(strategy),
		playlist.WithNormalization(norm),
	}, nil
}
