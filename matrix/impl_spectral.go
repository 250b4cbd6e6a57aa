// SPDX-License-Identifier: MIT
// Package matrix: spectral and factorization kernels for symmetric matrices.
//
// Purpose:
//   - EigenSym: full symmetric eigendecomposition (ascending eigenvalues,
//     orthonormal eigenvectors as columns) through gonum's LAPACK-backed
//     EigenSym, with a cyclic Jacobi fallback when LAPACK reports failure.
//   - LogDetSPD: log-determinant through a Cholesky factorization, which also
//     serves as the positive-definiteness test.
//
// Determinism:
//   - Both paths return eigenvalues sorted ascending with matching columns.

package matrix

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// EigenSym computes the eigendecomposition m = Q·diag(vals)·Qᵀ of a square
// symmetric matrix. Only the upper triangle of m is read on the LAPACK path.
//
// Implementation:
//   - Stage 1: validate square, finite input.
//   - Stage 2: gonum EigenSym.Factorize with vectors.
//   - Stage 3: on failure, Jacobi rotations on a symmetrized copy.
//
// Returns:
//   - vals ascending, q with eigenvectors as columns.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrEigenFailed.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func EigenSym(m *Dense) ([]float64, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	q, err := NewDense(m.r, m.r)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var es mat.EigenSym
	if es.Factorize(m.sym(), true) {
		vals := es.Values(nil)
		es.VectorsTo(q.gonum())

		return vals, q, nil
	}

	vals, err := jacobiInto(q, m, DefaultJacobiTol, DefaultJacobiSweeps*m.r*m.r)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	return vals, q, nil
}

// jacobiInto runs classical Jacobi rotations on a symmetrized copy of m,
// accumulating the rotations into q, and returns eigenvalues sorted ascending
// with q's columns permuted to match.
//
// Implementation:
//   - Stage 1: pick (p,q) with the largest |A[p,q]| in i→j order.
//   - Stage 2: rotate A and accumulate into Q.
//   - Stage 3: sort eigenpairs ascending.
//
// Errors:
//   - ErrEigenFailed when max off-diagonal ≥ tol·max(1,‖m‖_F) after maxIter rotations.
func jacobiInto(qOut, m *Dense, tol float64, maxIter int) ([]float64, error) {
	n := m.r
	a := m.Copy()
	Symmetrize(a)
	tol *= math.Max(1, Frobenius(a)) // relative to the input scale
	qOut.Zero()
	for i := 0; i < n; i++ {
		qOut.data[i*n+i] = 1
	}

	var (
		iter, i, j, p, r   int
		maxOff, off        float64
		app, arr, apr      float64
		aip, air, qip, qir float64
		theta, t, c, s     float64
		A, Q               = a.data, qOut.data
	)
	for iter = 0; iter < maxIter; iter++ {
		maxOff = NormZero
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(A[i*n+j])
				if off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		app, arr, apr = A[p*n+p], A[r*n+r], A[p*n+r]
		// θ = (arr−app)/(2*apr); t = sign(θ) / (|θ|+√(θ²+1))
		theta = (arr - app) / (2 * apr)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip, air = A[i*n+p], A[i*n+r]
			A[i*n+p], A[p*n+i] = c*aip-s*air, c*aip-s*air
			A[i*n+r], A[r*n+i] = s*aip+c*air, s*aip+c*air
		}
		A[p*n+p] = c*c*app - 2*c*s*apr + s*s*arr
		A[r*n+r] = s*s*app + 2*c*s*apr + c*c*arr
		A[p*n+r], A[r*n+p] = 0, 0

		for i = 0; i < n; i++ {
			qip, qir = Q[i*n+p], Q[i*n+r]
			Q[i*n+p] = c*qip - s*qir
			Q[i*n+r] = s*qip + c*qir
		}
	}
	if maxOff >= tol {
		return nil, ErrEigenFailed
	}

	// Sort eigenpairs ascending (stable on index for determinism).
	order := make([]int, n)
	for i = range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return A[order[x]*n+order[x]] < A[order[y]*n+order[y]] })

	vals := make([]float64, n)
	sorted := make([]float64, n*n)
	for j = 0; j < n; j++ {
		vals[j] = A[order[j]*n+order[j]]
		for i = 0; i < n; i++ {
			sorted[i*n+j] = Q[i*n+order[j]]
		}
	}
	copy(Q, sorted)

	return vals, nil
}

// LogDetSPD returns log det(m) for a symmetric positive definite m.
// Only the upper triangle is read.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrNotPositiveDefinite.
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
func LogDetSPD(m *Dense) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opLogDet, err)
	}
	if err := ValidateFinite(m); err != nil {
		return 0, matrixErrorf(opLogDet, err)
	}
	var ch mat.Cholesky
	if !ch.Factorize(m.sym()) {
		return 0, matrixErrorf(opLogDet, ErrNotPositiveDefinite)
	}

	return ch.LogDet(), nil
}

// IsPositiveDefinite reports whether a Cholesky factorization of m succeeds.
func IsPositiveDefinite(m *Dense) bool {
	_, err := LogDetSPD(m)

	return err == nil
}
