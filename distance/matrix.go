package distance

import (
	"fmt"

	"github.com/katalvlaran/sonicpath/matrix"
)

// Matrix builds the N×N Euclidean distance matrix of points.
//
// Each unordered pair is computed once and mirrored (d[j][i] = d[i][j]); the
// diagonal stays 0. An empty input yields a 0×0 matrix.
//
// Errors: ErrDimensionMismatch when points disagree on dimensionality.
//
// Complexity: O(N²·k) time, O(N²) memory.
func Matrix(points [][]float64) (*matrix.Dense, error) {
	return MatrixWith(points, Euclidean)
}

// MatrixWith is Matrix under an arbitrary symmetric distance function.
func MatrixWith(points [][]float64, fn Func) (*matrix.Dense, error) {
	n := len(points)
	out, err := matrix.NewSquare(n)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return out, nil
	}

	k := len(points[0])
	var i, j int
	for i = 1; i < n; i++ {
		if len(points[i]) != k {
			return nil, fmt.Errorf("point %d has %d dims, want %d: %w", i, len(points[i]), k, ErrDimensionMismatch)
		}
	}

	var d float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = fn(points[i], points[j])
			if err = out.Set(i, j, d); err != nil {
				return nil, fmt.Errorf("pair (%d,%d): %w", i, j, err)
			}
			_ = out.Set(j, i, d) // same value, indices already validated
		}
	}

	return out, nil
}
