// Package matrix provides the dense numeric storage shared by the sonicpath
// pipeline.
//
// The matrix package provides:
//
//   - Matrix, a bounds-checked interface over two-dimensional float64 data.
//   - Dense, a row-major implementation with an optional NaN/Inf guard.
//   - Validators for the shapes the pipeline relies on (square, symmetric,
//     zero diagonal, finite, non-negative).
//   - Column statistics (means, standard deviations, min/max) used to
//     standardize or rescale feature tables.
//
// Distance matrices between embedded tracks are small (N ≲ a few thousand),
// so O(N²) memory and a flat buffer are the right trade-off.
//
// The ops subpackage holds the Jacobi eigen solver used for spectral layout
// initialization.
package matrix
