package instance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/matrix"
)

func dense(t *testing.T, p int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(p, p, vals)
	require.NoError(t, err)

	return m
}

func TestArrayBasics(t *testing.T) {
	a, err := instance.NewArray(3, 2)
	require.NoError(t, err)
	require.Equal(t, instance.Regular, a.Kind())
	require.Equal(t, 3, a.Len())
	require.Equal(t, 2, a.Dim(1))
	require.Equal(t, 2, a.ID(2))
	require.Equal(t, 2, a.P())

	_, err = instance.NewArray(0, 2)
	require.ErrorIs(t, err, instance.ErrEmpty)

	_, err = instance.ArrayOf(dense(t, 2, 1, 0, 0, 1), dense(t, 1, 1))
	require.ErrorIs(t, err, instance.ErrShapeMismatch)

	rect, _ := matrix.NewDense(2, 3)
	_, err = instance.ArrayOf(rect)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestDictOrderAndClone(t *testing.T) {
	d, err := instance.NewDict(map[int]*matrix.Dense{
		7: dense(t, 1, 3),
		2: dense(t, 2, 1, 0, 0, 1),
	})
	require.NoError(t, err)
	require.Equal(t, instance.Irregular, d.Kind())
	require.Equal(t, 2, d.ID(0))
	require.Equal(t, 7, d.ID(1))
	require.Equal(t, 2, d.Dim(0))
	require.Equal(t, 1, d.Dim(1))
	require.Equal(t, 1, d.Index(7))
	require.Equal(t, -1, d.Index(3))
	require.Len(t, d.Map(), 2)

	cl := d.Clone()
	require.NoError(t, instance.SameShape(d, cl))
	require.NoError(t, cl.At(1).Set(0, 0, 9))
	require.Equal(t, 3.0, d.At(1).Raw()[0], "clone is deep")

	_, ok := instance.Uniform(d)
	require.False(t, ok)

	_, err = instance.NewDict(map[int]*matrix.Dense{1: nil})
	require.ErrorIs(t, err, instance.ErrNilInstance)
}

func TestSameShape(t *testing.T) {
	a, _ := instance.NewArray(2, 3)
	b, _ := instance.NewArray(2, 4)
	c, _ := instance.NewArray(3, 3)
	d, _ := instance.NewDict(map[int]*matrix.Dense{0: dense(t, 1, 1), 1: dense(t, 1, 1)})

	require.NoError(t, instance.SameShape(a, a.Clone()))
	require.ErrorIs(t, instance.SameShape(a, b), instance.ErrShapeMismatch)
	require.ErrorIs(t, instance.SameShape(a, c), instance.ErrShapeMismatch)
	require.ErrorIs(t, instance.SameShape(a, d), instance.ErrShapeMismatch)
}

func TestLikeConstructorsAndArithmetic(t *testing.T) {
	a, err := instance.ArrayOf(dense(t, 2, 1, 2, 3, 4), dense(t, 2, 0, 1, 1, 0))
	require.NoError(t, err)

	id := instance.IdentityLike(a)
	require.Equal(t, []float64{1, 0, 0, 1}, id.At(1).Raw())
	z := instance.ZerosLike(a)
	require.Equal(t, 0.0, instance.Norm(z))
	require.Equal(t, []float64{1, 2, 3, 4}, a.At(0).Raw(), "source untouched")

	require.InDelta(t, math.Sqrt(30+2), instance.Norm(a), 1e-12)
	require.Equal(t, 5.0, instance.Inner(a, id))
	require.InDelta(t, instance.Norm(a), instance.Distance(a, z), 1e-12)

	instance.AddScaled(z, 2, a)
	require.Equal(t, []float64{2, 4, 6, 8}, z.At(0).Raw())
	instance.Sub(z, z, a)
	require.Equal(t, []float64{1, 2, 3, 4}, z.At(0).Raw())
	instance.AddScaledTo(z, id, -1, a)
	require.Equal(t, []float64{0, -2, -3, -3}, z.At(0).Raw())
	instance.Scale(z, -1)
	require.Equal(t, []float64{0, 2, 3, 3}, z.At(0).Raw())

	require.Equal(t, 1.0, instance.MaxAsymmetry(z))
	instance.Symmetrize(z)
	require.Equal(t, []float64{0, 2.5, 2.5, 3}, z.At(0).Raw())

	instance.Copy(z, a)
	require.Equal(t, a.At(1).Raw(), z.At(1).Raw())
	require.True(t, instance.AllFinite(z))
}

func TestArithmeticShapeMismatchPanics(t *testing.T) {
	a, err := instance.ArrayOf(dense(t, 2, 1, 0, 0, 1))
	require.NoError(t, err)
	b, err := instance.ArrayOf(dense(t, 3, 1, 0, 0, 0, 1, 0, 0, 0, 1))
	require.NoError(t, err)
	require.ErrorIs(t, instance.SameShape(a, b), instance.ErrShapeMismatch)

	require.Panics(t, func() { instance.Inner(a, b) })
	require.Panics(t, func() { instance.AddScaled(a, 1, b) })
	require.Panics(t, func() { instance.Sub(a, a, b) })
	require.Panics(t, func() { instance.Copy(a, b) })
	require.Equal(t, []float64{1, 0, 0, 1}, a.At(0).Raw())
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, instance.Validate(nil), instance.ErrEmpty)

	a, _ := instance.ArrayOf(dense(t, 2, 1, 2, 0, 1))
	require.NoError(t, instance.Validate(a))
	require.ErrorIs(t, instance.ValidateSymmetric(a, 1e-9), matrix.ErrAsymmetry)

	a.At(0).Raw()[1] = math.NaN()
	require.ErrorIs(t, instance.Validate(a), matrix.ErrNaNInf)
}
