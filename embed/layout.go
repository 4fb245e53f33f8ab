package embed

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/sonicpath/matrix"
	"github.com/katalvlaran/sonicpath/matrix/ops"
)

const (
	// spectralMaxN bounds the O(N³) dense eigensolve; larger graphs start
	// from a random layout.
	spectralMaxN = 256

	eigenTol       = 1e-10
	eigenMaxSweeps = 100

	// connectedTol separates the single zero eigenvalue of a connected graph
	// from the rest of the spectrum.
	connectedTol = 1e-8

	layoutScale = 10.0
	layoutNoise = 1e-4
)

// errDisconnected is internal: the spectral layout is only defined per
// connected component, so such graphs fall back to random init.
var errDisconnected = errors.New("embed: graph is disconnected")

// randomLayout draws every coordinate uniformly from [−10, 10].
func randomLayout(n, dim int, rng *rand.Rand) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, dim)
		for d := range out[i] {
			out[i][d] = rng.Float64()*2*layoutScale - layoutScale
		}
	}

	return out
}

// spectralLayout embeds the fuzzy graph with eigenvectors 2..dim+1 of the
// symmetric normalized Laplacian L = I − D^(−1/2)·W·D^(−1/2), rescaled per
// axis to [0, 10] with a little noise to break exact ties.
//
// Complexity: O(N²) to build L plus O(sweeps·N³) for the eigensolve.
func spectralLayout(n, dim int, edges []edge, rng *rand.Rand) ([][]float64, error) {
	// Stage 1: degrees and Laplacian.
	deg := make([]float64, n)
	for _, e := range edges {
		deg[e.head] += e.weight
	}
	inv := make([]float64, n)
	var i, j, d int
	for i = 0; i < n; i++ {
		if deg[i] > 0 {
			inv[i] = 1 / math.Sqrt(deg[i])
		}
	}
	lap, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i = 0; i < n; i++ {
		_ = lap.Set(i, i, 1)
	}
	var v float64
	for _, e := range edges {
		if v, err = lap.At(e.head, e.tail); err != nil {
			return nil, err
		}
		if err = lap.Set(e.head, e.tail, v-e.weight*inv[e.head]*inv[e.tail]); err != nil {
			return nil, err
		}
	}

	// Stage 2: eigenpairs, ascending.
	vals, vecs, err := ops.Eigen(lap, eigenTol, eigenMaxSweeps)
	if err != nil {
		return nil, fmt.Errorf("spectral layout: %w", err)
	}
	if vals[1] < connectedTol {
		return nil, errDisconnected
	}

	// Stage 3: take columns 1..dim and rescale each to [0, 10].
	out := make([][]float64, n)
	for i = range out {
		out[i] = make([]float64, dim)
	}
	var lo, hi float64
	for d = 0; d < dim; d++ {
		lo, hi = math.Inf(1), math.Inf(-1)
		for i = 0; i < n; i++ {
			if v, err = vecs.At(i, d+1); err != nil {
				return nil, err
			}
			out[i][d] = v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		for j = 0; j < n; j++ {
			if hi > lo {
				out[j][d] = layoutScale * (out[j][d] - lo) / (hi - lo)
			} else {
				out[j][d] = 0
			}
			out[j][d] += rng.NormFloat64() * layoutNoise
		}
	}

	return out, nil
}

// initialLayout applies the Init policy: spectral when requested, small
// enough and connected; random otherwise.
func initialLayout(n, dim int, edges []edge, init Init, rng *rand.Rand) ([][]float64, error) {
	if init == InitSpectral && n <= spectralMaxN && n > dim+1 {
		if _, count := components(n, edges); count > 1 {
			return randomLayout(n, dim, rng), nil
		}
		y, err := spectralLayout(n, dim, edges, rng)
		switch {
		case err == nil:
			return y, nil
		case errors.Is(err, errDisconnected), errors.Is(err, ops.ErrEigenFailed):
			// fall through to random init
		default:
			return nil, fmt.Errorf("%w: %w", ErrReducer, err)
		}
	}

	return randomLayout(n, dim, rng), nil
}
