// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults.
// This file is the single source of truth for tolerances used by the
// validators and the spectral kernels. There is no global mutable state;
// every kernel that needs a tolerance takes it from these constants or from
// an explicit argument.
package matrix

// Numeric policy.
const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks
	// (symmetry of inputs handed to the eigensolver).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// Jacobi fallback policy (used only when the LAPACK-backed EigenSym fails).
const (
	// DefaultJacobiTol is the off-diagonal threshold at which Jacobi stops.
	DefaultJacobiTol = 1e-12

	// DefaultJacobiSweeps bounds the rotation count as DefaultJacobiSweeps*n*n.
	DefaultJacobiSweeps = 50
)
