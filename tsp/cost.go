// Package tsp - path length utilities.
//
// The cost of an order is the sum of distances between consecutive entries;
// the path is open, so the last element is not joined back to the first.
//
// Design:
//   - Exported PathLength validates both the matrix and the order.
//   - pathLength works on the prefetched flat buffer for the hot loop.
//
// Complexity:
//   - O(n) time for an order of length n, O(1) extra space.
package tsp

import (
	"fmt"

	"github.com/katalvlaran/sonicpath/matrix"
)

// PathLength returns Σ dist[order[k]][order[k+1]] for k in [0, n−1).
// Orders of length 0 or 1 have length 0.
//
// Contract:
//   - dist must pass the same validation as SegmentReversal.
//   - order must be a permutation of [0, n).
//
// Complexity: O(n²) for validation, O(n) for the sum.
func PathLength(dist matrix.Matrix, order []int) (float64, error) {
	n, w, err := prefetch(dist)
	if err != nil {
		return 0, err
	}
	if err = ValidatePermutation(order, n); err != nil {
		return 0, fmt.Errorf("PathLength: %w", err)
	}

	return pathLength(w, n, order), nil
}

// pathLength sums consecutive distances of order over the flat buffer w.
// Assumes order is a valid permutation of [0, n).
func pathLength(w []float64, n int, order []int) float64 {
	var (
		k     int
		total float64
	)
	for k = 0; k+1 < len(order); k++ {
		total += w[order[k]*n+order[k+1]]
	}

	return total
}
