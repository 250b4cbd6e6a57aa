// Package solver_test holds fixtures shared by the solver tests.
package solver_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/matrix"
)

const (
	// seedDet keeps every random fixture reproducible.
	seedDet = int64(11)

	// epsTight is the tolerance used when two solvers are compared.
	epsTight = 1e-7
)

// sampleCov draws n standard normal rows of width p and returns their
// sample covariance.
func sampleCov(t testing.TB, rng *rand.Rand, n, p int) *matrix.Dense {
	t.Helper()
	data := make([]float64, n*p)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	X, err := matrix.NewDenseFrom(n, p, data)
	require.NoError(t, err)
	S, err := matrix.Covariance(X)
	require.NoError(t, err)

	return S
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(seedDet))
}

// covArray returns K sample covariances of order p from n rows each.
func covArray(t testing.TB, K, p, n int) *instance.Array {
	t.Helper()
	rng := newRand()
	mats := make([]*matrix.Dense, K)
	for k := range mats {
		mats[k] = sampleCov(t, rng, n, p)
	}
	a, err := instance.ArrayOf(mats...)
	require.NoError(t, err)

	return a
}

// offDiag returns Θ_k[i,j].
func offDiag(c instance.Collection, k, i, j int) float64 {
	return c.At(k).Raw()[i*c.Dim(k)+j]
}
