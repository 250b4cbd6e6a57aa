package selection

import (
	"fmt"
	"math"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/matrix"
)

// Adjacency returns the 0/1 matrix of off-diagonal entries with |m[i,j]| > t.
func Adjacency(m *matrix.Dense, t float64) *matrix.Dense {
	p := m.Rows()
	a, _ := matrix.NewDense(p, p)
	src, dst := m.Raw(), a.Raw()
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			if i != j && math.Abs(src[i*p+j]) > t {
				dst[i*p+j] = 1
			}
		}
	}

	return a
}

// MeanSparsity returns the fraction of off-diagonal entries with |Θ| > t,
// averaged over instances. Instances of order 1 have no off-diagonal
// entries and count as 0.
func MeanSparsity(theta instance.Collection, t float64) float64 {
	var sum float64
	for k := 0; k < theta.Len(); k++ {
		p := theta.Dim(k)
		if p < 2 {
			continue
		}
		sum += float64(NumEdges(theta.At(k), t)) / float64(p*(p-1)/2)
	}

	return sum / float64(theta.Len())
}

// Rates compares an estimated support with a true one. All four rates pool
// counts over instances. The DIFF rates look at differential edges: pairs
// whose value changes between consecutive instances.
type Rates struct {
	TPR     float64
	FPR     float64
	TPRDiff float64
	FPRDiff float64
}

// DiscoveryRate compares the support of est with the support of truth, both
// thresholded at t. Differential rates need a regular shape and are NaN
// otherwise; any rate with an empty denominator is NaN.
//
// Errors:
//   - instance.ErrShapeMismatch.
func DiscoveryRate(est, truth instance.Collection, t float64) (Rates, error) {
	if err := instance.SameShape(est, truth); err != nil {
		return Rates{}, fmt.Errorf("DiscoveryRate: %w", err)
	}

	var tp, pos, trueEdges, pairs int
	for k := 0; k < est.Len(); k++ {
		p := est.Dim(k)
		e, tr := est.At(k).Raw(), truth.At(k).Raw()
		for i := 0; i < p; i++ {
			for j := i + 1; j < p; j++ {
				se, st := math.Abs(e[i*p+j]) > t, math.Abs(tr[i*p+j]) > t
				if se {
					pos++
				}
				if st {
					trueEdges++
				}
				if se && st {
					tp++
				}
			}
		}
		pairs += p * (p - 1) / 2
	}
	r := Rates{
		TPR:     ratio(tp, trueEdges),
		FPR:     ratio(pos-tp, pairs-trueEdges),
		TPRDiff: math.NaN(),
		FPRDiff: math.NaN(),
	}

	p, ok := instance.Uniform(est)
	if !ok || est.Len() < 2 {
		return r, nil
	}
	tp, pos, trueEdges, pairs = 0, 0, 0, 0
	for k := 1; k < est.Len(); k++ {
		e0, e1 := est.At(k-1).Raw(), est.At(k).Raw()
		t0, t1 := truth.At(k-1).Raw(), truth.At(k).Raw()
		for i := 0; i < p; i++ {
			for j := i + 1; j < p; j++ {
				n := i*p + j
				se, st := math.Abs(e1[n]-e0[n]) > t, math.Abs(t1[n]-t0[n]) > t
				if se {
					pos++
				}
				if st {
					trueEdges++
				}
				if se && st {
					tp++
				}
				pairs++
			}
		}
	}
	r.TPRDiff = ratio(tp, trueEdges)
	r.FPRDiff = ratio(pos-tp, pairs-trueEdges)

	return r, nil
}

// RelativeError returns ‖est − truth‖ / ‖truth‖ over the whole stack.
func RelativeError(est, truth instance.Collection) (float64, error) {
	if err := instance.SameShape(est, truth); err != nil {
		return math.NaN(), fmt.Errorf("RelativeError: %w", err)
	}

	return instance.Distance(est, truth) / instance.Norm(truth), nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}

	return float64(num) / float64(den)
}
