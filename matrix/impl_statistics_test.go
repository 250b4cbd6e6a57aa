// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/glasso/matrix"
)

func TestCenterColumns(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 10, 20, 30})
	Xc, means, err := matrix.CenterColumns(X)
	require.NoError(t, err)

	require.Equal(t, []float64{5.5, 11, 16.5}, means)
	require.Equal(t, []float64{-4.5, -9, -13.5, 4.5, 9, 13.5}, Xc.Raw())
	require.Equal(t, 1.0, MustAt(t, X, 0, 0), "input untouched")
}

func TestCovariance(t *testing.T) {
	t.Parallel()

	// Two perfectly correlated columns, one anti-correlated.
	X := NewFilledDense(t, 3, 3, []float64{
		1, 2, 3,
		2, 4, 2,
		3, 6, 1,
	})
	S, err := matrix.Covariance(X)
	require.NoError(t, err)

	want := NewFilledDense(t, 3, 3, []float64{
		1, 2, -1,
		2, 4, -2,
		-1, -2, 1,
	})
	CompareClose(t, S, want, 0, epsTight)
	require.Equal(t, 0.0, matrix.MaxAsymmetry(S))
}

func TestCovarianceTooFewSamples(t *testing.T) {
	t.Parallel()

	_, err := matrix.Covariance(NewFilledDense(t, 1, 3, []float64{1, 2, 3}))
	require.ErrorIs(t, err, matrix.ErrTooFewSamples)
}
