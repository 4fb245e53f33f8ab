// Package tsp - deterministic 2-opt local search on an open path.
//
// TwoOptOpen performs first-improvement 2-opt on an OPEN path: reversing the
// closed segment [i..k] replaces the edges (a,b) and (c,d) with (a,c) and
// (b,d), where a=P[i−1], b=P[i], c=P[k], d=P[k+1]. At the path ends the
// missing neighbour contributes nothing, so an end segment can be flipped by
// changing a single edge.
//
//	Δ = [i>0]·(w(a,c) − w(a,b)) + [k<n−1]·(w(b,d) − w(c,d))
//
// Design:
//   - Deterministic scanning order; no RNG usage.
//   - A move is applied only when Δ < −twoOptEps, so the scan terminates.
//
// Complexity:
//   - One pass: O(n²) candidate checks with O(1) delta each; O(n) per applied move.
package tsp

import (
	"fmt"

	"github.com/katalvlaran/sonicpath/matrix"
)

// twoOptEps is the strict improvement threshold for a 2-opt move.
const twoOptEps = 1e-12

// TwoOptOpen improves order with first-improvement open-path 2-opt until no
// improving move remains. It returns a new order and its path length; the
// input slice is not modified.
func TwoOptOpen(dist matrix.Matrix, order []int) ([]int, float64, error) {
	n, w, err := prefetch(dist)
	if err != nil {
		return nil, 0, err
	}
	if err = ValidatePermutation(order, n); err != nil {
		return nil, 0, fmt.Errorf("TwoOptOpen: %w", err)
	}
	cur := make([]int, n)
	copy(cur, order)
	twoOptOpen(w, n, cur)

	return cur, pathLength(w, n, cur), nil
}

// twoOptOpen applies improving moves to path in place and returns the summed
// delta (≤ 0).
func twoOptOpen(w []float64, n int, path []int) float64 {
	if n < 3 {
		return 0
	}
	at := func(u, v int) float64 { return w[u*n+v] }

	var (
		i, k     int
		a, b     int
		c, d     int
		delta    float64
		total    float64
		improved = true
	)
	for improved {
		improved = false
		for i = 0; i < n-1; i++ {
			for k = i + 1; k < n; k++ {
				if i == 0 && k == n-1 {
					continue // whole-path flip has the same length
				}
				b, c = path[i], path[k]
				delta = 0
				if i > 0 {
					a = path[i-1]
					delta += at(a, c) - at(a, b)
				}
				if k < n-1 {
					d = path[k+1]
					delta += at(b, d) - at(c, d)
				}
				if delta < -twoOptEps {
					reverseInclusive(path, i, k)
					total += delta
					improved = true
				}
			}
		}
	}

	return total
}
