package instance

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/glasso/matrix"
)

// Stack arithmetic. Each function treats a Collection as the concatenation of
// its row-major buffers and applies the matching matrix kernel per instance.
// Operands must have the same shape (see SameShape); the solvers check this
// once at their boundary, so a mismatch here is a programmer error and panics.

// must panics on a per-instance kernel error.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Norm returns the stacked Frobenius norm sqrt(Σ_k ‖c_k‖²_F).
func Norm(c Collection) float64 {
	var sum float64
	for k := 0; k < c.Len(); k++ {
		n := matrix.Frobenius(c.At(k))
		sum += n * n
	}

	return math.Sqrt(sum)
}

// Inner returns Σ_k ⟨a_k, b_k⟩.
func Inner(a, b Collection) float64 {
	var sum float64
	for k := 0; k < a.Len(); k++ {
		v, err := matrix.Inner(a.At(k), b.At(k))
		must(err)
		sum += v
	}

	return sum
}

// Distance returns ‖a − b‖ without allocating.
func Distance(a, b Collection) float64 {
	var sum float64
	for k := 0; k < a.Len(); k++ {
		d := floats.Distance(a.At(k).Raw(), b.At(k).Raw(), 2)
		sum += d * d
	}

	return math.Sqrt(sum)
}

// AddScaled performs dst += alpha·src.
func AddScaled(dst Collection, alpha float64, src Collection) {
	for k := 0; k < dst.Len(); k++ {
		must(matrix.AddScaled(dst.At(k), alpha, src.At(k)))
	}
}

// AddScaledTo performs dst = a + alpha·b. dst may alias a or b.
func AddScaledTo(dst, a Collection, alpha float64, b Collection) {
	for k := 0; k < dst.Len(); k++ {
		floats.AddScaledTo(dst.At(k).Raw(), a.At(k).Raw(), alpha, b.At(k).Raw())
	}
}

// Sub writes a − b into dst. dst may alias a or b.
func Sub(dst, a, b Collection) {
	for k := 0; k < dst.Len(); k++ {
		must(matrix.Sub(dst.At(k), a.At(k), b.At(k)))
	}
}

// Copy overwrites dst with src.
func Copy(dst, src Collection) {
	for k := 0; k < dst.Len(); k++ {
		must(dst.At(k).CopyFrom(src.At(k)))
	}
}

// Scale multiplies every entry of c by alpha.
func Scale(c Collection, alpha float64) {
	for k := 0; k < c.Len(); k++ {
		matrix.Scale(c.At(k), alpha)
	}
}

// Symmetrize replaces each instance with its symmetric part.
func Symmetrize(c Collection) {
	for k := 0; k < c.Len(); k++ {
		matrix.Symmetrize(c.At(k))
	}
}

// MaxAsymmetry returns the largest |c_k[i,j] − c_k[j,i]| over all instances.
func MaxAsymmetry(c Collection) float64 {
	var worst float64
	for k := 0; k < c.Len(); k++ {
		worst = math.Max(worst, matrix.MaxAsymmetry(c.At(k)))
	}

	return worst
}

// AllFinite reports whether every entry is finite.
func AllFinite(c Collection) bool {
	for k := 0; k < c.Len(); k++ {
		for _, v := range c.At(k).Raw() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}

	return true
}
