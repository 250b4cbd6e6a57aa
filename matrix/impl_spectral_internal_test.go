// SPDX-License-Identifier: MIT

package matrix

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randSymDense(t *testing.T, n int, seed int64) *Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m, err := NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rng.NormFloat64()
			m.data[i*n+j], m.data[j*n+i] = v, v
		}
	}

	return m
}

func TestJacobiMatchesLAPACK(t *testing.T) {
	const n = 6
	m := randSymDense(t, n, 17)
	q, err := NewDense(n, n)
	require.NoError(t, err)

	vals, err := jacobiInto(q, m, DefaultJacobiTol, DefaultJacobiSweeps*n*n)
	require.NoError(t, err)

	var es mat.EigenSym
	require.True(t, es.Factorize(m.sym(), true))
	require.InDeltaSlice(t, es.Values(nil), vals, 1e-9)

	// QᵀQ = I
	var qtq mat.Dense
	qtq.Mul(q.gonum().T(), q.gonum())
	id, err := Identity(n)
	require.NoError(t, err)
	require.InDeltaSlice(t, id.Raw(), qtq.RawMatrix().Data, 1e-9)

	// Q·diag(vals)·Qᵀ = m
	back, err := NewDense(n, n)
	require.NoError(t, err)
	work, err := NewDense(n, n)
	require.NoError(t, err)
	require.NoError(t, FromEigen(back, q, vals, work))
	require.InDeltaSlice(t, m.Raw(), back.Raw(), 1e-9)
}

func TestJacobiDiagonalAndBudget(t *testing.T) {
	m, err := NewDenseFrom(3, 3, []float64{3, 0, 0, 0, -1, 0, 0, 0, 2})
	require.NoError(t, err)
	q, err := NewDense(3, 3)
	require.NoError(t, err)

	// already diagonal: no rotation, eigenpairs sorted ascending
	vals, err := jacobiInto(q, m, DefaultJacobiTol, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{-1, 2, 3}, vals)
	require.Equal(t, []float64{0, 0, 1, 1, 0, 0, 0, 1, 0}, q.Raw())

	_, err = jacobiInto(q, randSymDense(t, 4, 3), DefaultJacobiTol, 1)
	require.ErrorIs(t, err, ErrEigenFailed)
}
