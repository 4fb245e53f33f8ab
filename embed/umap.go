package embed

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/sonicpath/distance"
	"github.com/katalvlaran/sonicpath/features"
)

// defaultSeed replaces a zero Options.Seed.
const defaultSeed int64 = 1

// Point is one embedded coordinate vector.
type Point = []float64

// Reducer maps N feature vectors onto N low-dimensional points, preserving
// index correspondence.
type Reducer interface {
	Reduce(ctx context.Context, vectors [][]float64) ([]Point, error)
}

// UMAP is the Reducer built from Options.
type UMAP struct {
	opts Options
}

var _ Reducer = (*UMAP)(nil)

// New validates opts and returns a reusable reducer.
func New(opts Options) (*UMAP, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &UMAP{opts: opts}, nil
}

// Options returns the configuration of u.
func (u *UMAP) Options() Options { return u.opts }

// Reduce embeds vectors with the options of u.
func (u *UMAP) Reduce(ctx context.Context, vectors [][]float64) ([]Point, error) {
	return Reduce(ctx, vectors, u.opts)
}

// Reduce embeds vectors into opts.Components dimensions.
//
// Degenerate inputs short-circuit: no vectors give an empty slice, a single
// vector lands on the origin and two vectors are placed at distance 1 on the
// first axis. Every other size runs the full pipeline described in the
// package documentation.
//
// Errors: ErrInvalidInput for ragged or non-finite input and bad options,
// ErrReducer for a non-finite layout, ctx.Err() on cancellation.
//
// Complexity: O(N²·D) neighbour search, O(epochs·N·k·(1+negativeRate)·dim) SGD.
func Reduce(ctx context.Context, vectors [][]float64, opts Options) ([]Point, error) {
	// Stage 1: Validate.
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if _, err := features.ValidateRows(vectors); err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	n, dim := len(vectors), opts.Components

	switch n {
	case 0:
		return []Point{}, nil
	case 1:
		return []Point{make(Point, dim)}, nil
	case 2:
		second := make(Point, dim)
		second[0] = 1
		return []Point{make(Point, dim), second}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))
	fn, _ := distance.Provider(opts.Metric) // checked by Validate

	// Stage 2: fuzzy neighbour graph.
	k := opts.Neighbors
	if k > n-1 {
		k = n - 1
	}
	knn := nearestNeighbors(vectors, k, fn)
	sigmas, rhos := smoothKNN(knn, k)
	edges := fuzzyGraph(knn, sigmas, rhos)

	// Stage 3: initial layout.
	y, err := initialLayout(n, dim, edges, opts.Init, rng)
	if err != nil {
		return nil, err
	}

	// Stage 4: SGD.
	a, b := fitCurve(opts.Spread, opts.MinDist)
	nEpochs := opts.epochs(n)
	sched := newSchedule(edges, nEpochs, opts.NegativeSampleRate)
	if err = optimizeLayout(ctx, y, sched, a, b, opts.LearningRate, nEpochs, rng); err != nil {
		return nil, err
	}

	for i := range y {
		for d := range y[i] {
			if math.IsNaN(y[i][d]) || math.IsInf(y[i][d], 0) {
				return nil, fmt.Errorf("%w: point %d is not finite", ErrReducer, i)
			}
		}
	}

	return y, nil
}
