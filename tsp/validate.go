// Package tsp - validation utilities for the route optimizer.
//
// This file contains small, tight helpers that:
//  1. Validate Options (iteration count, patience, time limit).
//  2. Validate distance matrices through matrix.ValidateDistance and prefetch
//     them into a flat row-major buffer.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n²) worst-case where n is the matrix size.
package tsp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sonicpath/matrix"
)

// symTol is the structural tolerance for symmetry/diagonal checks.
const symTol = 1e-9

// validateOptions checks internal consistency of Options without referencing
// a matrix.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	if opts.Iterations < 0 {
		return fmt.Errorf("iterations %d: %w", opts.Iterations, ErrInvalidOptions)
	}
	if opts.Patience < 0 {
		return fmt.Errorf("patience %d: %w", opts.Patience, ErrInvalidOptions)
	}
	if opts.TimeLimit < 0 {
		return fmt.Errorf("time limit %s: %w", opts.TimeLimit, ErrInvalidOptions)
	}

	return nil
}

// matrixToTSP maps the matrix validator sentinels onto this package's own.
var matrixToTSP = []struct{ from, to error }{
	{matrix.ErrNilMatrix, ErrNilMatrix},
	{matrix.ErrNonSquare, ErrNonSquare},
	{matrix.ErrNaNInf, ErrNonFinite},
	{matrix.ErrNegative, ErrNegativeWeight},
	{matrix.ErrNonZeroDiagonal, ErrNonZeroDiagonal},
	{matrix.ErrAsymmetry, ErrAsymmetry},
	{matrix.ErrOutOfRange, ErrDimensionMismatch},
}

// distanceError rewraps a matrix.ValidateDistance failure so callers can
// match either the tsp sentinel or the original matrix one.
func distanceError(err error) error {
	for _, m := range matrixToTSP {
		if errors.Is(err, m.from) {
			return fmt.Errorf("%w: %w", m.to, err)
		}
	}
	return err
}

// prefetch validates dist with matrix.ValidateDistance and copies it into a
// flat buffer w[i*n+j]. Accepted instances are non-nil, square (n ≥ 0),
// finite, non-negative, symmetric within symTol and zero on the diagonal.
//
// Returns n (matrix order) and the buffer on success.
//
// Complexity: O(n²) time and memory.
func prefetch(dist matrix.Matrix) (int, []float64, error) {
	// Stage 1: structural and value checks.
	if err := matrix.ValidateDistance(dist, symTol); err != nil {
		return 0, nil, distanceError(err)
	}

	// Stage 2: copy.
	var (
		n    = dist.Rows()
		i, j int
		err  error
		w    = make([]float64, n*n)
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if w[i*n+j], err = dist.At(i, j); err != nil {
				return 0, nil, fmt.Errorf("at (%d,%d): %w", i, j, distanceError(err))
			}
		}
	}

	return n, w, nil
}
