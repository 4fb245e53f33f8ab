// Command sonicpath reorders a playlist so that consecutive tracks sound
// alike. Tracks come from a JSON document (-input, or stdin) or from a
// Spotify playlist (-playlist); the reordered document is written to stdout
// or -out.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/sonicpath/config"
	"github.com/katalvlaran/sonicpath/featurecache"
	"github.com/katalvlaran/sonicpath/observe"
	"github.com/katalvlaran/sonicpath/playlist"
	"github.com/katalvlaran/sonicpath/spotify"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	configPath  string
	input       string
	playlistID  string
	out         string
	strategy    string
	seed        int64
	iterations  int
	metricsAddr string
}

func parseFlags(args []string, stderr io.Writer) (flags, map[string]bool, error) {
	var f flags
	fs := flag.NewFlagSet("sonicpath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to the YAML configuration file")
	fs.StringVar(&f.input, "input", "", "JSON track document to reorder (default: stdin)")
	fs.StringVar(&f.playlistID, "playlist", "", "Spotify playlist id to fetch instead of -input")
	fs.StringVar(&f.out, "out", "", "write the reordered document here (default: stdout)")
	fs.StringVar(&f.strategy, "strategy", "", "ordering strategy: route or axis")
	fs.Int64Var(&f.seed, "seed", 0, "seed for the embedding and the optimizer")
	fs.IntVar(&f.iterations, "iterations", 0, "segment reversals to try")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	if err := fs.Parse(args); err != nil {
		return f, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if f.input != "" && f.playlistID != "" {
		return f, nil, errors.New("-input and -playlist are mutually exclusive")
	}
	return f, set, nil
}

func loadConfig(f flags, set map[string]bool) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
		if err = config.ApplyEnv(cfg, os.LookupEnv); err != nil {
			return nil, err
		}
	}
	if set["strategy"] {
		cfg.Strategy = f.strategy
	}
	if set["seed"] {
		cfg.Embed.Seed = f.seed
		cfg.Optimizer.Seed = f.seed
	}
	if set["iterations"] {
		cfg.Optimizer.Iterations = f.iterations
	}
	if set["metrics-addr"] {
		cfg.Metrics.Addr = f.metricsAddr
	}
	if err = config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f, set, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "sonicpath: %v\n", err)
		return 1
	}
	cfg, err := loadConfig(f, set)
	if err != nil {
		fmt.Fprintf(stderr, "sonicpath: %v\n", err)
		return 1
	}

	logger := observe.NewLogger(stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    cfg.Metrics.ServiceName,
		ServiceVersion: version,
	})
	if err != nil {
		logger.Error("failed to initialise metrics", "err", err)
		return 1
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(sctx); err != nil {
			logger.Warn("metrics shutdown", "err", err)
		}
	}()
	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, logger)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	if err = sortPlaylist(ctx, cfg, f, stdin, stdout, logger); err != nil {
		logger.Error("sonicpath failed", "err", err)
		return 1
	}
	return 0
}

func serveMetrics(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "addr", addr, "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}

func sortPlaylist(ctx context.Context, cfg *config.Config, f flags, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	provider, ids, closeSource, err := openSource(ctx, cfg, f, stdin, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	opts, err := cfg.SorterOptions()
	if err != nil {
		return err
	}
	opts = append(opts, playlist.WithLogger(logger), playlist.WithMetrics(observe.DefaultMetrics()))
	sorter := playlist.NewSorter(opts...)

	w := stdout
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		w = file
	}

	res, err := sorter.Run(ctx, provider, ids, &playlist.JSONPresenter{W: w})
	if err != nil {
		return err
	}
	logger.Info("playlist reordered",
		"run_id", res.RunID,
		"tracks", len(res.Tracks),
		"strategy", res.Strategy.String(),
		"initial_distance", res.InitialDistance,
		"distance", res.Distance,
		"partial", res.Partial,
	)
	return nil
}

// openSource picks the Spotify client for -playlist and a static document
// provider otherwise. Only catalog lookups go through the feature cache: a
// document supplied by the user is always taken as given. The returned
// close func releases the cache store, if one was opened.
func openSource(ctx context.Context, cfg *config.Config, f flags, stdin io.Reader, logger *slog.Logger) (playlist.FeatureProvider, []string, func(), error) {
	noop := func() {}
	if f.playlistID != "" {
		client, err := spotify.New(cfg.SpotifyClientConfig(logger))
		if err != nil {
			return nil, nil, noop, err
		}
		ids, err := client.PlaylistTrackIDs(ctx, f.playlistID)
		if err != nil {
			return nil, nil, noop, err
		}
		if !cfg.Cache.Enabled {
			return client, ids, noop, nil
		}
		store, err := featurecache.Open(cfg.Cache.Path, cfg.Cache.TTL)
		if err != nil {
			return nil, nil, noop, err
		}
		closeStore := func() {
			if err := store.Close(); err != nil {
				logger.Warn("close feature cache", "path", cfg.Cache.Path, "err", err)
			}
		}
		return featurecache.NewProvider(store, client, logger), ids, closeStore, nil
	}

	r := stdin
	if f.input != "" {
		file, err := os.Open(f.input)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("open input: %w", err)
		}
		defer file.Close()
		r = file
	}
	doc, err := playlist.ReadDocument(r)
	if err != nil {
		return nil, nil, noop, err
	}
	return playlist.NewStaticProvider(doc), doc.IDs(), noop, nil
}
