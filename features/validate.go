package features

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput reports feature data the pipeline cannot use: wrong
// dimensionality, non-finite values, or tracks and features that are not
// index-aligned.
var ErrInvalidInput = errors.New("features: invalid input")

// Validate checks that every vector is finite.
func Validate(vecs []Vector) error {
	for i := range vecs {
		for k, x := range vecs[i] {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("%w: vector %d %s=%v is not finite", ErrInvalidInput, i, Names[k], x)
			}
		}
	}
	return nil
}

// ValidateAligned checks len(tracks) == len(vecs) and that every vector is finite.
func ValidateAligned(tracks []Track, vecs []Vector) error {
	if len(tracks) != len(vecs) {
		return fmt.Errorf("%w: %d tracks but %d feature vectors", ErrInvalidInput, len(tracks), len(vecs))
	}
	return Validate(vecs)
}

// ValidateRows checks a generic [][]float64 table: every row has the length
// of the first one and all entries are finite. It returns that length (0 for
// an empty table).
func ValidateRows(rows [][]float64) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	d := len(rows[0])
	for i := range rows {
		if len(rows[i]) != d {
			return 0, fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidInput, i, len(rows[i]), d)
		}
		for k, x := range rows[i] {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return 0, fmt.Errorf("%w: row %d column %d is not finite", ErrInvalidInput, i, k)
			}
		}
	}
	return d, nil
}

// Rows converts vectors into a [][]float64 table (fresh copies).
func Rows(vecs []Vector) [][]float64 {
	out := make([][]float64, len(vecs))
	for i := range vecs {
		out[i] = vecs[i].Slice()
	}
	return out
}
