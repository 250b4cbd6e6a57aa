// SPDX-License-Identifier: MIT
// Package matrix: sample statistics over observation matrices.
//
// Exposed API:
//   - CenterColumns(X) → (Xc, means)
//   - Covariance(X)    → S (c×c), the unbiased sample covariance of the columns
//
// Determinism & Performance:
//   - Fixed i→j traversal for means; the Gram product is delegated to gonum.
//   - Rows are observations, columns are variables.

package matrix

// opCenterColumns tags errors from CenterColumns.
const opCenterColumns = "CenterColumns"

// CenterColumns subtracts the per-column mean from every element.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Compute column means in a deterministic pass over the flat buffer.
//   - Stage 3: Subtract the means into a fresh copy.
//
// Returns:
//   - *Dense: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for output (+ O(c) means).
func CenterColumns(X *Dense) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	r, c := X.r, X.c
	means := make([]float64, c)
	var i, j, base int
	for i = 0; i < r; i++ { // deterministic row order
		base = i * c
		for j = 0; j < c; j++ {
			means[j] += X.data[base+j]
		}
	}
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	Xc := X.Copy()
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			Xc.data[base+j] -= means[j]
		}
	}

	return Xc, means, nil
}

// Covariance computes the sample covariance of columns: Cov = (Xcᵀ·Xc)/(r-1).
// Implementation:
//   - Stage 1: Validate X, require r>=2 (sample denominator).
//   - Stage 2: Center columns once; then form the Gram matrix through gonum.
//   - Stage 3: Scale by 1/(r-1) and symmetrize round-off.
//
// Errors:
//   - ErrNilMatrix, ErrTooFewSamples (r<2), ErrNaNInf.
//
// Complexity:
//   - Time O(r*c²), Space O(c²).
//
// Notes:
//   - Result is positive semi-definite on well-formed data (modulo numeric noise).
func Covariance(X *Dense) (*Dense, error) {
	if err := ValidateFinite(X); err != nil {
		return nil, matrixErrorf(opCovariance, err)
	}
	if X.r < 2 {
		return nil, matrixErrorf(opCovariance, ErrTooFewSamples)
	}

	Xc, _, err := CenterColumns(X)
	if err != nil {
		return nil, matrixErrorf(opCovariance, err)
	}
	cov, err := NewDense(X.c, X.c)
	if err != nil {
		return nil, matrixErrorf(opCovariance, err)
	}
	cov.gonum().Mul(Xc.gonum().T(), Xc.gonum())
	Scale(cov, 1.0/float64(X.r-1))
	Symmetrize(cov)

	return cov, nil
}
