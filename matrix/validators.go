// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for the structural checks the
//    distance pipeline relies on.
//  - Return sentinel errors wrapped with a validator tag so call sites can keep
//    matching with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.
//
// Note:
//  - Composite validators follow a fixed sequence (NotNil → Square → values).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSymmetric checks |m[i,j] − m[j,i]| ≤ eps over the upper triangle.
// Assumes m is square.
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, eps float64) error {
	var (
		n        = m.Rows()
		i, j     int
		aij, aji float64
		err      error
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if aij, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if aji, err = m.At(j, i); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if math.Abs(aij-aji) > eps {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal checks |m[i,i]| ≤ eps for every i.
// Complexity: O(n).
func ValidateZeroDiagonal(m Matrix, eps float64) error {
	var (
		n   = m.Rows()
		i   int
		v   float64
		err error
	)
	for i = 0; i < n; i++ {
		if v, err = m.At(i, i); err != nil {
			return validatorErrorf("ValidateZeroDiagonal", err)
		}
		if math.Abs(v) > eps {
			return validatorErrorf("ValidateZeroDiagonal", ErrNonZeroDiagonal)
		}
	}

	return nil
}

// ValidateFiniteNonNegative checks that every entry is finite and ≥ 0.
// NaN/±Inf report ErrNaNInf; negative values report ErrNegative.
// Complexity: O(r*c).
func ValidateFiniteNonNegative(m Matrix) error {
	var (
		r, c = m.Rows(), m.Cols()
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateFiniteNonNegative", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFiniteNonNegative", ErrNaNInf)
			}
			if v < 0 {
				return validatorErrorf("ValidateFiniteNonNegative", ErrNegative)
			}
		}
	}

	return nil
}

// ValidateDistance is the composite check for a pairwise distance matrix:
// NotNil → Square → FiniteNonNegative → ZeroDiagonal → Symmetric.
// Complexity: O(n²).
func ValidateDistance(m Matrix, eps float64) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if err := ValidateFiniteNonNegative(m); err != nil {
		return err
	}
	if err := ValidateZeroDiagonal(m, eps); err != nil {
		return err
	}

	return ValidateSymmetric(m, eps)
}
