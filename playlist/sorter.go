package playlist

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/sonicpath/distance"
	"github.com/katalvlaran/sonicpath/embed"
	"github.com/katalvlaran/sonicpath/features"
	"github.com/katalvlaran/sonicpath/matrix"
	"github.com/katalvlaran/sonicpath/observe"
	"github.com/katalvlaran/sonicpath/tsp"
)

// Optimizer orders the points of a distance matrix along a short open path.
type Optimizer interface {
	Optimize(ctx context.Context, dist matrix.Matrix) (tsp.Result, error)
}

// RouteOptimizer is the Optimizer backed by tsp.SegmentReversal.
type RouteOptimizer struct {
	Options tsp.Options
}

// Optimize implements Optimizer.
func (o RouteOptimizer) Optimize(ctx context.Context, dist matrix.Matrix) (tsp.Result, error) {
	return tsp.SegmentReversal(ctx, dist, o.Options)
}

// Result is the outcome of one Sort call.
type Result struct {
	// RunID identifies the run in logs and presenter output.
	RunID string
	// Strategy is the ordering strategy that produced Order.
	Strategy Strategy
	// Tracks and Features are the inputs permuted by Order.
	Tracks   []features.Track
	Features []features.Vector
	// Order maps output position k to input index Order[k].
	Order []int
	// Distance is the open-path length of Order in the embedding.
	Distance float64
	// InitialDistance is the open-path length of the input order.
	InitialDistance float64
	// Partial is true when optimization stopped early on cancellation or a
	// time limit; Order is still a valid permutation.
	Partial bool
}

// Sorter runs the reordering pipeline. A Sorter is safe for concurrent use
// as long as its Reducer and Optimizer are.
type Sorter struct {
	reducer       embed.Reducer
	optimizer     Optimizer
	logger        *slog.Logger
	metrics       *observe.Metrics
	normalization features.Normalization
	strategy      Strategy
}

// Option configures a Sorter.
type Option func(*Sorter)

// WithReducer sets the embedding stage.
func WithReducer(r embed.Reducer) Option {
	return func(s *Sorter) { s.reducer = r }
}

// WithOptimizer sets the route optimization stage.
func WithOptimizer(o Optimizer) Option {
	return func(s *Sorter) { s.optimizer = o }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sorter) { s.logger = l }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Sorter) { s.metrics = m }
}

// WithNormalization rescales feature columns before embedding. The default
// is NormalizeNone.
func WithNormalization(n features.Normalization) Option {
	return func(s *Sorter) { s.normalization = n }
}

// WithStrategy selects the ordering strategy. The default is StrategyRoute.
func WithStrategy(st Strategy) Option {
	return func(s *Sorter) { s.strategy = st }
}

// NewSorter returns a Sorter with a UMAP reducer tuned for its strategy
// (Strategy.EmbedOptions), the default segment-reversal optimizer,
// slog.Default and the global metrics.
func NewSorter(opts ...Option) *Sorter {
	s := &Sorter{}
	for _, o := range opts {
		o(s)
	}
	if s.reducer == nil {
		u, _ := embed.New(s.strategy.EmbedOptions()) // defaults always validate
		s.reducer = u
	}
	if s.optimizer == nil {
		s.optimizer = RouteOptimizer{Options: tsp.DefaultOptions()}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = observe.DefaultMetrics()
	}
	return s
}

// Sort reorders tracks so that sonically similar ones are adjacent.
// tracks[i] and vecs[i] must describe the same track.
//
// The result satisfies Result.Tracks[k] == tracks[Result.Order[k]]. Inputs
// with zero or one track come back unchanged with distance 0. Any stage
// failure is returned as a *StageError and no result.
func (s *Sorter) Sort(ctx context.Context, tracks []features.Track, vecs []features.Vector) (*Result, error) {
	runID := RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}
	log := s.logger.With("run_id", runID, "strategy", s.strategy.String())

	res, err := s.sort(ctx, runID, log, tracks, vecs)
	if err != nil {
		var se *StageError
		stage := "unknown"
		if errors.As(err, &se) {
			stage = string(se.Stage)
		}
		s.metrics.RecordError(ctx, stage)
		s.metrics.RecordRun(ctx, s.strategy.String(), "error")
		log.Error("sort failed", "stage", stage, "err", err)
		return nil, err
	}

	status := "ok"
	if res.Partial {
		status = "partial"
	}
	s.metrics.RecordRun(ctx, s.strategy.String(), status)
	log.Info("sort complete",
		"n", len(res.Order),
		"distance", res.Distance,
		"initial_distance", res.InitialDistance,
		"partial", res.Partial,
	)
	return res, nil
}

func (s *Sorter) sort(ctx context.Context, runID string, log *slog.Logger, tracks []features.Track, vecs []features.Vector) (*Result, error) {
	// Stage 1: validate.
	if err := features.ValidateAligned(tracks, vecs); err != nil {
		return nil, stageErr(StageValidate, err)
	}
	n := len(tracks)
	res := &Result{RunID: runID, Strategy: s.strategy}
	if n <= 1 {
		res.Order = tsp.Identity(n)
		res.Tracks = append([]features.Track{}, tracks...)
		res.Features = append([]features.Vector{}, vecs...)
		return res, nil
	}

	rows, err := features.Normalize(features.Rows(vecs), s.normalization)
	if err != nil {
		return nil, stageErr(StageValidate, err)
	}

	// Stage 2: embed.
	start := time.Now()
	points, err := s.reducer.Reduce(ctx, rows)
	if err != nil {
		return nil, stageErr(StageEmbed, err)
	}
	if len(points) != n {
		return nil, stageErr(StageEmbed, errors.New("reducer returned a different number of points"))
	}
	elapsed := time.Since(start)
	s.metrics.EmbedDuration.Record(ctx, elapsed.Seconds())
	log.Debug("embedded", "n", n, "dims", len(points[0]), "elapsed", elapsed)

	// Stage 3: distance.
	dist, err := distance.Matrix(points)
	if err != nil {
		return nil, stageErr(StageDistance, err)
	}

	// Stage 4: order.
	start = time.Now()
	switch s.strategy {
	case StrategyAxis:
		res.Order = axisOrder(points)
		if res.Distance, err = tsp.PathLength(dist, res.Order); err != nil {
			return nil, stageErr(StageOptimize, err)
		}
		if res.InitialDistance, err = tsp.PathLength(dist, tsp.Identity(n)); err != nil {
			return nil, stageErr(StageOptimize, err)
		}
	default:
		var opt tsp.Result
		opt, err = s.optimizer.Optimize(ctx, dist)
		if err != nil && !(opt.Partial && (errors.Is(err, tsp.ErrCanceled) || errors.Is(err, tsp.ErrTimeLimit))) {
			return nil, stageErr(StageOptimize, err)
		}
		if err != nil {
			log.Warn("optimization stopped early", "err", err, "iterations", opt.Iterations)
		}
		res.Order = opt.Order
		res.Distance = opt.Distance
		res.InitialDistance = opt.InitialDistance
		res.Partial = opt.Partial
		s.metrics.OptimizeAccepted.Add(ctx, int64(opt.Accepted))
		s.metrics.Improvement.Record(ctx, opt.Improvement())
	}
	elapsed = time.Since(start)
	s.metrics.OptimizeDuration.Record(ctx, elapsed.Seconds())
	log.Debug("ordered", "elapsed", elapsed)

	// Stage 5: apply.
	if res.Tracks, err = tsp.Apply(tracks, res.Order); err != nil {
		return nil, stageErr(StageOptimize, err)
	}
	if res.Features, err = tsp.Apply(vecs, res.Order); err != nil {
		return nil, stageErr(StageOptimize, err)
	}
	return res, nil
}

// axisOrder is a stable argsort of the first coordinate.
func axisOrder(points []embed.Point) []int {
	order := tsp.Identity(len(points))
	sort.SliceStable(order, func(a, b int) bool {
		return points[order[a]][0] < points[order[b]][0]
	})
	return order
}
