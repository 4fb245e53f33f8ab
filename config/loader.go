package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sonicpath/distance"
	"github.com/katalvlaran/sonicpath/embed"
	"github.com/katalvlaran/sonicpath/features"
	"github.com/katalvlaran/sonicpath/observe"
	"github.com/katalvlaran/sonicpath/playlist"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel      = "SONICPATH_LOG_LEVEL"
	EnvLogFormat     = "SONICPATH_LOG_FORMAT"
	EnvStrategy      = "SONICPATH_STRATEGY"
	EnvNormalization = "SONICPATH_NORMALIZATION"
	EnvSeed          = "SONICPATH_SEED"
	EnvIterations    = "SONICPATH_ITERATIONS"
	EnvCachePath     = "SONICPATH_CACHE_PATH"
	EnvMetricsAddr   = "SONICPATH_METRICS_ADDR"
	EnvClientID      = "SPOTIFY_CLIENT_ID"
	EnvClientSecret  = "SPOTIFY_CLIENT_SECRET"
)

// Load reads the YAML configuration file at path, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if err = ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err = Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of Default and
// validates the result. The environment is not consulted.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg, err := decode(r)
	if err != nil {
		return nil, err
	}
	if err = Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from the environment. lookup is usually
// os.LookupEnv. SONICPATH_SEED sets both the embedding and optimizer seeds;
// SONICPATH_CACHE_PATH also enables the cache.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvLogLevel, &cfg.Log.Level)
	str(EnvLogFormat, &cfg.Log.Format)
	str(EnvStrategy, &cfg.Strategy)
	str(EnvNormalization, &cfg.Normalization)
	str(EnvMetricsAddr, &cfg.Metrics.Addr)
	str(EnvClientID, &cfg.Spotify.ClientID)
	str(EnvClientSecret, &cfg.Spotify.ClientSecret)

	if v, ok := lookup(EnvCachePath); ok && v != "" {
		cfg.Cache.Path = v
		cfg.Cache.Enabled = true
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %q is not an integer", EnvSeed, v))
		} else {
			cfg.Embed.Seed = seed
			cfg.Optimizer.Seed = seed
		}
	}
	if v, ok := lookup(EnvIterations); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %q is not an integer", EnvIterations, v))
		} else {
			cfg.Optimizer.Iterations = n
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: environment: %w", errors.Join(errs...))
	}
	return nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Log
	if _, err := observe.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level %q is invalid; valid values: debug, info, warn, error", cfg.Log.Level))
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is invalid; valid values: text, json", cfg.Log.Format))
	}

	// Pipeline
	if _, err := playlist.ParseStrategy(cfg.Strategy); err != nil {
		errs = append(errs, fmt.Errorf("strategy %q is invalid; valid values: route, axis", cfg.Strategy))
	}
	if _, err := features.ParseNormalization(cfg.Normalization); err != nil {
		errs = append(errs, fmt.Errorf("normalization %q is invalid; valid values: none, zscore, minmax", cfg.Normalization))
	}

	// Embed
	if cfg.Embed.Metric != "" {
		if _, err := distance.ParseMetric(cfg.Embed.Metric); err != nil {
			errs = append(errs, fmt.Errorf("embed.metric %q is invalid; valid values: euclidean, cosine, correlation", cfg.Embed.Metric))
		}
	}
	if _, err := embed.ParseInit(cfg.Embed.Init); err != nil {
		errs = append(errs, fmt.Errorf("embed.init %q is invalid; valid values: spectral, random", cfg.Embed.Init))
	}
	if cfg.Embed.Components < 1 {
		errs = append(errs, fmt.Errorf("embed.components %d must be ≥ 1", cfg.Embed.Components))
	}
	if n := cfg.Embed.Neighbors; n != nil && *n < 2 {
		errs = append(errs, fmt.Errorf("embed.neighbors %d must be ≥ 2", *n))
	}
	if cfg.Embed.Spread <= 0 {
		errs = append(errs, fmt.Errorf("embed.spread %v must be > 0", cfg.Embed.Spread))
	}
	if d := cfg.Embed.MinDist; d != nil && (*d < 0 || *d > cfg.Embed.Spread) {
		errs = append(errs, fmt.Errorf("embed.min_dist %v is out of range [0, spread]", *d))
	}
	if cfg.Embed.Epochs < 0 {
		errs = append(errs, fmt.Errorf("embed.epochs %d must be ≥ 0", cfg.Embed.Epochs))
	}
	if cfg.Embed.LearningRate <= 0 {
		errs = append(errs, fmt.Errorf("embed.learning_rate %v must be > 0", cfg.Embed.LearningRate))
	}
	if cfg.Embed.NegativeSampleRate < 0 {
		errs = append(errs, fmt.Errorf("embed.negative_sample_rate %d must be ≥ 0", cfg.Embed.NegativeSampleRate))
	}

	// Optimizer
	if cfg.Optimizer.Iterations < 0 {
		errs = append(errs, fmt.Errorf("optimizer.iterations %d must be ≥ 0", cfg.Optimizer.Iterations))
	}
	if cfg.Optimizer.Patience < 0 {
		errs = append(errs, fmt.Errorf("optimizer.patience %d must be ≥ 0", cfg.Optimizer.Patience))
	}
	if cfg.Optimizer.TimeLimit < 0 {
		errs = append(errs, fmt.Errorf("optimizer.time_limit %v must be ≥ 0", cfg.Optimizer.TimeLimit))
	}

	// Spotify
	if (cfg.Spotify.ClientID == "") != (cfg.Spotify.ClientSecret == "") {
		errs = append(errs, errors.New("spotify.client_id and spotify.client_secret must be set together"))
	}
	if cfg.Spotify.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("spotify.concurrency %d must be ≥ 0", cfg.Spotify.Concurrency))
	}
	if cfg.Spotify.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("spotify.requests_per_second %v must be ≥ 0", cfg.Spotify.RequestsPerSecond))
	}
	if cfg.Spotify.Burst < 0 {
		errs = append(errs, fmt.Errorf("spotify.burst %d must be ≥ 0", cfg.Spotify.Burst))
	}

	// Cache
	if cfg.Cache.Enabled && cfg.Cache.Path == "" {
		errs = append(errs, errors.New("cache.path is required when cache.enabled is true"))
	}
	if cfg.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl %v must be ≥ 0", cfg.Cache.TTL))
	}

	return errors.Join(errs...)
}
