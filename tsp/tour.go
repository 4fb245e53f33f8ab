// Package tsp - order utilities.
//
// An Order is a permutation of [0, n): position k of the reordered sequence
// holds input element order[k]. Provided helpers:
//   - ValidatePermutation: verify a permutation over {0..n-1}.
//   - Identity: the order [0, 1, ..., n-1].
//   - Apply: gather items by an order.
//   - reverseSegment: in-place reversal of a half-open segment.
//   - reverseInclusive: in-place reversal of a closed segment (2-opt core).
//
// Design:
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n) time for every helper.
package tsp

import "fmt"

// ValidatePermutation checks that perm is a permutation of {0..n-1} of length n.
// The empty order is the valid permutation of n == 0.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if n < 0 || len(perm) != n {
		return fmt.Errorf("length %d, want %d: %w", len(perm), n, ErrDimensionMismatch)
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = perm[i]
		if v < 0 || v >= n {
			return fmt.Errorf("index %d out of range: %w", v, ErrDimensionMismatch)
		}
		if seen[v] {
			return fmt.Errorf("index %d repeated: %w", v, ErrDimensionMismatch)
		}
		seen[v] = true
	}

	return nil
}

// Identity returns the order [0, 1, ..., n-1].
// Complexity: O(n).
func Identity(n int) []int {
	if n < 0 {
		n = 0
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	return order
}

// Apply returns out[k] = items[order[k]]. The input slice is not modified.
//
// Complexity: O(n).
func Apply[T any](items []T, order []int) ([]T, error) {
	if err := ValidatePermutation(order, len(items)); err != nil {
		return nil, err
	}
	out := make([]T, len(items))
	for k, idx := range order {
		out[k] = items[idx]
	}

	return out, nil
}

// reverseSegment reverses order[i:j] in place (half-open, 0 ≤ i ≤ j ≤ len).
// Empty and single-element segments are no-ops.
func reverseSegment(order []int, i, j int) {
	for j--; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
}

// reverseInclusive reverses order[i..k] in place (closed, 0 ≤ i ≤ k < len).
func reverseInclusive(order []int, i, k int) {
	reverseSegment(order, i, k+1)
}
