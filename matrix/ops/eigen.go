// Package ops provides advanced matrix operations for the sonicpath/matrix package.
// Eigen computes all eigenvalues and eigenvectors of a real symmetric matrix
// using cyclic Jacobi rotations.
package ops

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/sonicpath/matrix"
)

// ErrNotSymmetric is returned when the input matrix is not symmetric.
var ErrNotSymmetric = matrix.ErrAsymmetry

// ErrEigenFailed is returned if the algorithm does not converge within max sweeps.
var ErrEigenFailed = matrix.ErrEigenFailed

// Eigen performs Jacobi eigenvalue decomposition on a symmetric matrix m.
// It returns the eigenvalues in ascending order and a matrix Q whose column k
// is the unit eigenvector of eigenvalue k.
// tol bounds the off-diagonal Frobenius norm at convergence and the symmetry check;
// maxSweeps caps the number of full cyclic sweeps.
// Returns matrix.ErrNonSquare, ErrNotSymmetric, or ErrEigenFailed.
// Complexity: O(n³) per sweep, worst-case O(maxSweeps·n³); Memory: O(n²).
func Eigen(m matrix.Matrix, tol float64, maxSweeps int) ([]float64, *matrix.Dense, error) {
	// Stage 1: Validate input
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, nil, fmt.Errorf("Eigen: %w", err)
	}
	var (
		n    = m.Rows()
		i, j int
		err  error
	)
	if n != m.Cols() || n == 0 {
		return nil, nil, fmt.Errorf("Eigen: shape %dx%d: %w", n, m.Cols(), matrix.ErrNonSquare)
	}
	if err = matrix.ValidateSymmetric(m, tol); err != nil {
		return nil, nil, fmt.Errorf("Eigen: %w", ErrNotSymmetric)
	}

	// Stage 2: Prepare A (flat working copy) and Q (identity)
	a := make([]float64, n*n)
	q := make([]float64, n*n)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if a[i*n+j], err = m.At(i, j); err != nil {
				return nil, nil, fmt.Errorf("Eigen: %w", err)
			}
		}
		q[i*n+i] = 1
	}

	// Stage 3: cyclic sweeps over the upper triangle
	var (
		sweep              int
		p, r, k            int
		off                float64
		theta, t, c, s     float64
		app, arr, apr      float64
		akp, akr, qkp, qkr float64
		converged          bool
	)
	for sweep = 0; sweep < maxSweeps; sweep++ {
		off = 0
		for p = 0; p < n; p++ {
			for r = p + 1; r < n; r++ {
				off += a[p*n+r] * a[p*n+r]
			}
		}
		if math.Sqrt(off) < tol {
			converged = true
			break
		}
		for p = 0; p < n-1; p++ {
			for r = p + 1; r < n; r++ {
				apr = a[p*n+r]
				if math.Abs(apr) < tol*1e-3 {
					continue
				}
				app = a[p*n+p]
				arr = a[r*n+r]
				theta = (arr - app) / (2 * apr)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for k = 0; k < n; k++ {
					if k == p || k == r {
						continue
					}
					akp = a[k*n+p]
					akr = a[k*n+r]
					a[k*n+p] = c*akp - s*akr
					a[p*n+k] = a[k*n+p]
					a[k*n+r] = s*akp + c*akr
					a[r*n+k] = a[k*n+r]
				}
				a[p*n+p] = app - t*apr
				a[r*n+r] = arr + t*apr
				a[p*n+r] = 0
				a[r*n+p] = 0

				for k = 0; k < n; k++ {
					qkp = q[k*n+p]
					qkr = q[k*n+r]
					q[k*n+p] = c*qkp - s*qkr
					q[k*n+r] = s*qkp + c*qkr
				}
			}
		}
	}
	if !converged {
		return nil, nil, ErrEigenFailed
	}

	// Stage 4: sort eigenpairs ascending and materialize Q
	idx := make([]int, n)
	for i = range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(x, y int) bool { return a[idx[x]*n+idx[x]] < a[idx[y]*n+idx[y]] })

	eigs := make([]float64, n)
	rows := make([][]float64, n)
	for i = 0; i < n; i++ {
		rows[i] = make([]float64, n)
	}
	for k = 0; k < n; k++ {
		eigs[k] = a[idx[k]*n+idx[k]]
		for i = 0; i < n; i++ {
			rows[i][k] = q[i*n+idx[k]]
		}
	}
	Q, err := matrix.FromRows(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("Eigen: %w", err)
	}

	return eigs, Q, nil
}
