// SPDX-License-Identifier: MIT

// Package matrix - column statistics over feature tables.
//
// Purpose:
//   - Compute per-column means, population standard deviations and ranges.
//   - Produce standardized (z-score) or min-max rescaled copies of a table.
//
// Behavior highlights:
//   - Zero-size tables (0×c) are a strict no-op: zero-valued statistics, input returned as-is.
//   - Constant columns (σ == 0 or max == min) map to 0 instead of dividing by zero.
//   - Deterministic i→j traversal; Dense fast-path reads the flat buffer directly.
//
// Complexity:
//   - Every routine is O(r*c) time; statistics use O(c) extra space,
//     rescaling allocates one r×c output.
package matrix

import "math"

const (
	opColumnMeans  = "columnMeans"
	opColumnStd    = "ColumnStdDevs"
	opColumnRange  = "ColumnMinMax"
	opStandardize  = "StandardizeColumns"
	opMinMaxColumn = "MinMaxColumns"
)

// matrixErrorf tags an error with the statistics operation that produced it.
func matrixErrorf(op string, err error) error {
	return validatorErrorf(op, err)
}

// forEach visits every (i,j,v) in row-major order, using the Dense fast-path
// when possible and the At fallback otherwise.
func forEach(X Matrix, fn func(i, j int, v float64)) error {
	r, c := X.Rows(), X.Cols()
	var i, j int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				fn(i, j, d.data[base+j])
			}
		}
		return nil
	}

	var (
		v   float64
		err error
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return err
			}
			fn(i, j, v)
		}
	}
	return nil
}

// columnMeans returns Σ_i X[i,j] / r for every column j.
func columnMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)
	if r == 0 || c == 0 {
		return means, nil
	}
	if err := forEach(X, func(_, j int, v float64) { means[j] += v }); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	invR := 1.0 / float64(r)
	for j := range means {
		means[j] *= invR
	}

	return means, nil
}

// ColumnStdDevs returns the population standard deviation of every column
// together with the column means it was computed from.
func ColumnStdDevs(X Matrix) (std, means []float64, err error) {
	if means, err = columnMeans(X); err != nil {
		return nil, nil, matrixErrorf(opColumnStd, err)
	}
	r, c := X.Rows(), X.Cols()
	std = make([]float64, c)
	if r == 0 || c == 0 {
		return std, means, nil
	}
	err = forEach(X, func(_, j int, v float64) {
		d := v - means[j]
		std[j] += d * d
	})
	if err != nil {
		return nil, nil, matrixErrorf(opColumnStd, err)
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / float64(r))
	}

	return std, means, nil
}

// ColumnMinMax returns per-column minimum and maximum values.
func ColumnMinMax(X Matrix) (mins, maxs []float64, err error) {
	if err = ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opColumnRange, err)
	}
	c := X.Cols()
	mins = make([]float64, c)
	maxs = make([]float64, c)
	if X.Rows() == 0 || c == 0 {
		return mins, maxs, nil
	}
	for j := 0; j < c; j++ {
		mins[j] = math.Inf(1)
		maxs[j] = math.Inf(-1)
	}
	err = forEach(X, func(_, j int, v float64) {
		if v < mins[j] {
			mins[j] = v
		}
		if v > maxs[j] {
			maxs[j] = v
		}
	})
	if err != nil {
		return nil, nil, matrixErrorf(opColumnRange, err)
	}

	return mins, maxs, nil
}

// rescale builds out[i,j] = (X[i,j] − shift[j]) / scale[j], writing 0 for
// columns whose scale is 0.
func rescale(op string, X Matrix, shift, scale []float64) (Matrix, error) {
	r, c := X.Rows(), X.Cols()
	if r == 0 || c == 0 {
		return X, nil
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	err = forEach(X, func(i, j int, v float64) {
		if scale[j] == 0 {
			return // zero-filled by NewDense
		}
		out.data[i*c+j] = (v - shift[j]) / scale[j]
	})
	if err != nil {
		return nil, matrixErrorf(op, err)
	}

	return out, nil
}

// StandardizeColumns returns a z-score copy of X: (x − μ_j) / σ_j.
func StandardizeColumns(X Matrix) (Matrix, error) {
	std, means, err := ColumnStdDevs(X)
	if err != nil {
		return nil, matrixErrorf(opStandardize, err)
	}

	return rescale(opStandardize, X, means, std)
}

// MinMaxColumns returns a copy of X with every column mapped to [0,1]:
// (x − min_j) / (max_j − min_j).
func MinMaxColumns(X Matrix) (Matrix, error) {
	mins, maxs, err := ColumnMinMax(X)
	if err != nil {
		return nil, matrixErrorf(opMinMaxColumn, err)
	}
	span := make([]float64, len(mins))
	for j := range span {
		span[j] = maxs[j] - mins[j]
	}

	return rescale(opMinMaxColumn, X, mins, span)
}
