package tsp

import (
	"errors"
	"time"
)

// Sentinel errors. Every message is prefixed with "tsp: ".
var (
	// ErrNilMatrix is returned when the distance matrix is nil.
	ErrNilMatrix = errors.New("tsp: nil distance matrix")

	// ErrNonSquare is returned when the distance matrix is not n×n.
	ErrNonSquare = errors.New("tsp: distance matrix is not square")

	// ErrAsymmetry is returned when d[i][j] and d[j][i] differ beyond tolerance.
	ErrAsymmetry = errors.New("tsp: distance matrix is not symmetric")

	// ErrNonZeroDiagonal is returned when some d[i][i] is not ≈ 0.
	ErrNonZeroDiagonal = errors.New("tsp: distance matrix has non-zero diagonal")

	// ErrNegativeWeight is returned for negative distances.
	ErrNegativeWeight = errors.New("tsp: negative distance")

	// ErrNonFinite is returned for NaN or ±Inf distances.
	ErrNonFinite = errors.New("tsp: non-finite distance")

	// ErrDimensionMismatch is returned when an order does not fit the matrix
	// (wrong length, out-of-range or repeated index).
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrInvalidOptions is returned for negative iteration counts, patience
	// or time limits.
	ErrInvalidOptions = errors.New("tsp: invalid options")

	// ErrCanceled is returned together with a partial Result when the context
	// is done before the search finishes.
	ErrCanceled = errors.New("tsp: search canceled")

	// ErrTimeLimit is returned together with a partial Result when
	// Options.TimeLimit elapses before the search finishes.
	ErrTimeLimit = errors.New("tsp: time limit reached")
)

// DefaultIterations is the fixed iteration count K of SegmentReversal.
const DefaultIterations = 1000

// Options configures SegmentReversal.
type Options struct {
	// Iterations is the number K of random segment reversals tried.
	// Zero means DefaultIterations.
	Iterations int

	// Seed feeds NewSource when Source is nil (0 ⇒ the fixed default seed).
	Seed int64

	// Source overrides the random stream. It must not be shared across
	// goroutines while a search runs.
	Source Source

	// Patience stops the search after this many consecutive non-improving
	// iterations. Zero disables early stopping, so exactly K iterations run.
	Patience int

	// TimeLimit is a soft wall-clock budget (0 ⇒ unlimited). When it elapses
	// the best order so far is returned together with ErrTimeLimit.
	TimeLimit time.Duration

	// Polish runs a deterministic first-improvement open-path 2-opt pass on
	// the best order after the randomized search.
	Polish bool

	// OnImprove, when set, is called each time the best distance improves.
	OnImprove func(iteration int, best float64)
}

// DefaultOptions returns Options with Iterations = DefaultIterations and
// every enhancement switched off.
func DefaultOptions() Options {
	return Options{Iterations: DefaultIterations}
}

// Result holds the outcome of a search.
type Result struct {
	// Order is the best permutation of [0, N) found.
	Order []int

	// Distance is the open-path length of Order.
	Distance float64

	// InitialDistance is the open-path length of the identity order.
	InitialDistance float64

	// Iterations is the number of reversal attempts actually performed.
	Iterations int

	// Accepted counts candidates adopted as the new current order.
	Accepted int

	// Partial is true when the search stopped on cancellation or time limit.
	Partial bool
}

// Improvement returns the relative gain over the identity order in [0,1].
func (r Result) Improvement() float64 {
	if r.InitialDistance <= 0 {
		return 0
	}
	return (r.InitialDistance - r.Distance) / r.InitialDistance
}
