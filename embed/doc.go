// Package embed reduces high-dimensional feature vectors to a few coordinates
// with a UMAP-style manifold embedding, so that points which are neighbours in
// feature space stay neighbours in the layout.
//
// Pipeline (all stages deterministic for a fixed Options.Seed):
//
//  1. Exact k-nearest-neighbour search under Options.Metric (O(N²·D)).
//  2. Smooth kNN: per-point ρ (nearest distance) and σ found by binary search
//     so that Σ exp(−max(0, d−ρ)/σ) = log2(k).
//  3. Fuzzy union of the directed memberships: w = a + b − a·b.
//  4. Initial layout: spectral (eigenvectors of the normalized graph Laplacian,
//     via matrix/ops.Eigen) for small connected graphs, otherwise uniform random.
//  5. Stochastic gradient descent on the cross-entropy between the graph and the
//     low-dimensional similarity curve 1/(1 + a·d^(2b)), with negative sampling.
//
// The package does not log and never panics on user input; failures are
// reported with ErrInvalidInput or ErrReducer wrapped with context.
package embed
