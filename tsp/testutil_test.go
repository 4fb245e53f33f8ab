// Package tsp_test provides lightweight testing helpers shared across *_test.go
// files in this package. The helpers are intentionally minimal and stdlib-only.
package tsp_test

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/katalvlaran/sonicpath/matrix"
	"github.com/katalvlaran/sonicpath/tsp"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// epsTiny is the strict threshold for exact-distance comparisons.
	epsTiny = 1e-9

	// seedDet is a deterministic seed (0 => internal default seed).
	seedDet = int64(0)

	// timeTiny is a tiny wall-clock budget used to exercise deadline behavior.
	timeTiny = 1 * time.Millisecond
)

// -----------------------------------------------------------------------------
// Minimal matrix implementation for tests (square, bounds-checked, with Clone).
// testDense satisfies matrix.Matrix and checks that the optimizer does not
// depend on *matrix.Dense.
// -----------------------------------------------------------------------------

// testDense is a simple dense matrix with bounds-checked At/Set and deep Clone.
type testDense struct{ a [][]float64 }

var _ matrix.Matrix = testDense{}

func (m testDense) Rows() int { return len(m.a) }
func (m testDense) Cols() int {
	if len(m.a) == 0 {
		return 0
	}

	return len(m.a[0])
}
func (m testDense) At(i, j int) (float64, error) {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return 0, matrix.ErrOutOfRange
	}

	return m.a[i][j], nil
}
func (m testDense) Set(i, j int, v float64) error {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return matrix.ErrOutOfRange
	}
	m.a[i][j] = v

	return nil
}
func (m testDense) Clone() matrix.Matrix {
	cp := make([][]float64, len(m.a))
	var i int
	for i = range m.a {
		cp[i] = append([]float64(nil), m.a[i]...)
	}

	return testDense{a: cp}
}

// -----------------------------------------------------------------------------
// Generic helpers (repeaters, assertions, numeric closeness)
// -----------------------------------------------------------------------------

// Repeat runs fn N times. Useful for determinism/stability checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// mustEqualInts asserts exact equality of two integer slices (length & values).
func mustEqualInts(t *testing.T, got, want []int) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("mismatch:\n got:  %v\n want: %v", got, want)
	}
}

// mustErrIs asserts that err matches target using errors.Is.
func mustErrIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("want %v, got %v", target, err)
	}
}

// mustNoErr fails the test on a non-nil error.
func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// mustFloatClose asserts |got−want| ≤ abs.
func mustFloatClose(t *testing.T, got, want, abs float64) {
	t.Helper()
	if math.Abs(got-want) > abs {
		t.Fatalf("float mismatch: got=%.17g want=%.17g (abs=%.1e)", got, want, abs)
	}
}

// mustPermutation asserts that order is a permutation of [0, n).
func mustPermutation(t *testing.T, order []int, n int) {
	t.Helper()
	if err := tsp.ValidatePermutation(order, n); err != nil {
		t.Fatalf("order %v is not a permutation of [0,%d): %v", order, n, err)
	}
}

// -----------------------------------------------------------------------------
// Geometric generators
// -----------------------------------------------------------------------------

// euclid builds a symmetric metric from 2D points with zero diagonal.
func euclid(pts [][2]float64) matrix.Matrix {
	n := len(pts)
	a := make([][]float64, n)
	var i, j int
	for i = 0; i < n; i++ {
		a[i] = make([]float64, n)
	}

	// Fill upper triangle with Euclidean distances, mirror to lower triangle.
	var d float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
			a[i][j] = d
			a[j][i] = d
		}
	}

	return testDense{a: a}
}

// rippledCircle returns n points on a slightly perturbed circle, shuffled
// with a fixed seed so that the identity order is far from optimal.
func rippledCircle(n int, seed int64) [][2]float64 {
	pts := make([][2]float64, n)
	var (
		i     int
		th, r float64
	)
	for i = 0; i < n; i++ {
		th = 2 * math.Pi * float64(i) / float64(n)
		r = 1.0 + 0.025*float64(i%3)
		pts[i] = [2]float64{r * math.Cos(th), r * math.Sin(th)}
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(a, b int) { pts[a], pts[b] = pts[b], pts[a] })

	return pts
}

// fixedSource replays a scripted sequence of draws (mod n), then repeats it.
type fixedSource struct {
	draws []int
	pos   int
}

func (s *fixedSource) Intn(n int) int {
	v := s.draws[s.pos%len(s.draws)] % n
	s.pos++

	return v
}
