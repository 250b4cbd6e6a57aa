package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/matrix"
)

// phi is the scalar map behind phiplus_beta: the positive root of
// ω² − dω − beta = 0. The d < 0 branch avoids cancellation.
func phi(d, beta float64) float64 {
	r := math.Sqrt(d*d + 4*beta)
	if d >= 0 {
		return 0.5 * (d + r)
	}

	return 2 * beta / (r - d)
}

// divided returns (phi(a) − phi(b)) / (a − b), and phi'(a) when a == b, in a
// form without cancellation:
//
//	½ · (1 + (a + b) / (√(a²+4β) + √(b²+4β)))
func divided(a, b, beta float64) float64 {
	return 0.5 * (1 + (a+b)/(math.Sqrt(a*a+4*beta)+math.Sqrt(b*b+4*beta)))
}

// eigenStack holds per-instance eigendecompositions of the last argument
// passed to phiplus, which is what the Löwner derivative needs.
type eigenStack struct {
	beta  float64
	q     []*matrix.Dense
	d, w  [][]float64
	gamma []*matrix.Dense
	work  []*matrix.Dense
	tmp   []*matrix.Dense
}

func newEigenStack(shape instance.Collection) *eigenStack {
	K := shape.Len()
	e := &eigenStack{
		q:     make([]*matrix.Dense, K),
		d:     make([][]float64, K),
		w:     make([][]float64, K),
		gamma: make([]*matrix.Dense, K),
		work:  make([]*matrix.Dense, K),
		tmp:   make([]*matrix.Dense, K),
	}
	for k := 0; k < K; k++ {
		p := shape.Dim(k)
		e.w[k] = make([]float64, p)
		e.gamma[k], _ = matrix.NewDense(p, p)
		e.work[k], _ = matrix.NewDense(p, p)
		e.tmp[k], _ = matrix.NewDense(p, p)
	}

	return e
}

// phiplus writes phiplus_beta(a) = ½(a + (a² + 4·beta·I)^{1/2}) into dst,
// instance by instance. dst may alias a.
func (e *eigenStack) phiplus(dst, a instance.Collection, beta float64) error {
	e.beta = beta
	for k := 0; k < a.Len(); k++ {
		vals, q, err := matrix.EigenSym(a.At(k))
		if err != nil {
			return fmt.Errorf("phiplus: instance %d: %w", a.ID(k), err)
		}
		e.q[k], e.d[k] = q, vals
		for i, v := range vals {
			e.w[k][i] = phi(v, beta)
		}
		if err = matrix.FromEigen(dst.At(k), q, e.w[k], e.work[k]); err != nil {
			return fmt.Errorf("phiplus: instance %d: %w", a.ID(k), err)
		}
	}

	return nil
}

// barrier returns Σ_k Σ_i [−log ω_i + (ω_i − d_i)²/(2β)] for the last
// phiplus call; this is the Moreau envelope of −log det + ι_{S++} scaled by β.
func (e *eigenStack) barrier() float64 {
	var sum float64
	for k := range e.d {
		for i, d := range e.d[k] {
			w := e.w[k][i]
			sum += -math.Log(w) + (w-d)*(w-d)/(2*e.beta)
		}
	}

	return sum
}

// prepareLowner fills the divided-difference matrices Γ_k for the last
// phiplus call.
func (e *eigenStack) prepareLowner() {
	for k, d := range e.d {
		p := len(d)
		g := e.gamma[k].Raw()
		for i := 0; i < p; i++ {
			for j := i; j < p; j++ {
				v := divided(d[i], d[j], e.beta)
				g[i*p+j], g[j*p+i] = v, v
			}
		}
	}
}

// applyLowner writes Q(Γ ∘ (QᵀDQ))Qᵀ into dst, the derivative of phiplus
// at the last argument in direction d. dst must not alias d.
func (e *eigenStack) applyLowner(dst, d instance.Collection) {
	for k := 0; k < d.Len(); k++ {
		t := e.tmp[k]
		// shapes were fixed at construction, so errors cannot occur here
		_ = matrix.ToBasis(t, e.q[k], d.At(k), e.work[k])
		tr, g := t.Raw(), e.gamma[k].Raw()
		for i := range tr {
			tr[i] *= g[i]
		}
		_ = matrix.FromBasis(dst.At(k), e.q[k], t, e.work[k])
		matrix.Symmetrize(dst.At(k))
	}
}
