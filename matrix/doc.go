// Package matrix offers the dense numeric kernels behind the graphical-lasso
// solvers.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked accessors and a
//     finite-value policy, whose buffer can be shared with gonum/mat views.
//   - Vector-style kernels (AddScaled, Sub, Scale, Inner, Frobenius) backed by
//     gonum/floats.
//   - Spectral kernels: EigenSym (gonum LAPACK path with a Jacobi fallback),
//     FromEigen, ToBasis/FromBasis for Löwner operators, LogDetSPD through
//     Cholesky.
//   - Covariance: the unbiased sample covariance of observation rows.
//
// Every kernel validates its operands and returns sentinel errors wrapped
// with the operation name; match them with errors.Is.
package matrix
