// Package distance computes vector distances and pairwise distance matrices.
//
// # Supported Metrics
//
//   - Euclidean: √Σ(aₖ−bₖ)² (default; used for the embedded-point matrix)
//   - Cosine: 1 − cos(a,b)
//   - Correlation: 1 − Pearson(a,b), i.e. cosine distance of mean-centered vectors
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	m, err := distance.Matrix(points) // symmetric N×N *matrix.Dense, zero diagonal
package distance
