// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/glasso/matrix"
)

// NewFilledDense builds an r×c Dense from row-major vals or fails the test.
func NewFilledDense(t testing.TB, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return d
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RandSPD returns a deterministic well-conditioned SPD matrix A = BᵀB/n + shift·I.
func RandSPD(t testing.TB, n int, shift float64, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	b := make([]float64, n*n)
	for i := range b {
		b[i] = rng.Float64()*2 - 1 // [-1,1]
	}
	B := mat.NewDense(n, n, b)
	var prod mat.Dense
	prod.Mul(B.T(), B)
	A := NewFilledDense(t, n, n, prod.RawMatrix().Data)
	matrix.Scale(A, 1/float64(n))
	raw := A.Raw()
	for i := 0; i < n; i++ {
		raw[i*n+i] += shift
	}
	matrix.Symmetrize(A)

	return A
}

// CompareClose asserts |a_ij - b_ij| ≤ atol + rtol*|b_ij| element-wise.
func CompareClose(t testing.TB, a, b *matrix.Dense, rtol, atol float64) {
	t.Helper()
	require.Equal(t, a.Rows(), b.Rows(), "rows")
	require.Equal(t, a.Cols(), b.Cols(), "cols")
	ra, rb := a.Raw(), b.Raw()
	for i := range ra {
		if math.Abs(ra[i]-rb[i]) > atol+rtol*math.Abs(rb[i]) {
			t.Fatalf("mismatch at flat %d: %g vs %g (rtol=%g, atol=%g)", i, ra[i], rb[i], rtol, atol)
		}
	}
}

// ---------- bench helpers ----------

func mustDense(b *testing.B, r, c int) *matrix.Dense {
	d, err := matrix.NewDense(r, c)
	if err != nil {
		b.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return d
}
