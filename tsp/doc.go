// Package tsp orders points along a short open path (a Hamiltonian path whose
// ends are not joined) given their pairwise distance matrix.
//
// The engine is SegmentReversal: a bounded-iteration randomized local search.
// Each iteration draws two cut indices i ≤ j, reverses the half-open segment
// [i, j) of the current order, recomputes the full path length and accepts the
// candidate only when it is strictly shorter (greedy descent, no annealing).
// The best order seen is tracked separately and returned.
//
//   - Complexity: O(K·N) for K iterations over N points (no delta evaluation).
//   - Memory:     O(N²) for the prefetched distance buffer, O(N) per order.
//
// SegmentReversal also validates its input and can finish with an optional
// deterministic open-path 2-opt polish (TwoOptOpen). Randomness comes only from the
// injected Source, so equal seeds give equal results.
//
// The search does not guarantee a globally optimal path; it guarantees that the
// returned order is never longer than the identity order it starts from.
package tsp
