package penalty

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/glasso/instance"
)

// Jacobian is an element of the generalized (Clarke) Jacobian of the
// proximal map at a fixed point V, as a linear operator on symmetric
// directions. It is symmetric positive semidefinite.
type Jacobian struct {
	op *Operator

	single []bool // per uncovered pair: |v| > l1

	// Per group, flattened in op.groups order; start[l] indexes member data.
	start  []int
	active []bool    // GGL: |w_n| > l1; FGL: segment of n is active
	zero   []bool    // GGL: group collapsed to zero
	t      []float64 // GGL: l2/‖u‖
	uhat   []float64 // GGL: u/‖u‖
	segLen []int     // FGL: run lengths of equal TV output, flattened
	segOff []int     // FGL: per group offset into segLen
	dw     []float64 // scratch
}

// Jacobian builds the generalized Jacobian of v ↦ prox_P(v) with parameters
// (l1, l2), evaluated at v.
//
//   - Diagonal: identity.
//   - Uncovered entries: 1 where |v| > l1, else 0.
//   - GGL group with soft-thresholded vector u: 0 when ‖u‖ ≤ l2, otherwise
//     (1−t)·M + t·ûûᵀ with t = l2/‖u‖, û = u/‖u‖ and M the active mask.
//   - FGL group: averaging over the runs of equal values of the TV output,
//     restricted to runs whose soft-thresholded value is non-zero.
func (op *Operator) Jacobian(v instance.Collection, l1, l2 float64) *Jacobian {
	buf := raws(v)
	total := 0
	for _, slots := range op.groups {
		total += len(slots)
	}
	J := &Jacobian{
		op:     op,
		single: make([]bool, len(op.single)),
		start:  make([]int, len(op.groups)+1),
		active: make([]bool, total),
		dw:     make([]float64, len(op.w)),
	}
	for n, s := range op.single {
		a := 0.5 * (buf[s.k][s.up] + buf[s.k][s.lo])
		J.single[n] = a > l1 || a < -l1
	}

	switch op.reg {
	case GGL:
		J.zero = make([]bool, len(op.groups))
		J.t = make([]float64, len(op.groups))
		J.uhat = make([]float64, total)
	case FGL:
		J.segOff = make([]int, len(op.groups)+1)
	}

	off := 0
	for l, slots := range op.groups {
		J.start[l] = off
		w := gather(op.w, buf, slots)
		x := op.x[:len(slots)]
		switch op.reg {
		case GGL:
			for n := range w {
				x[n] = soft(w[n], l1)
				J.active[off+n] = w[n] > l1 || w[n] < -l1
			}
			nrm := floats.Norm(x, 2)
			if nrm <= l2 || nrm == 0 {
				J.zero[l] = true
				break
			}
			J.t[l] = l2 / nrm
			u := J.uhat[off : off+len(slots)]
			floats.ScaleTo(u, 1/nrm, x)
		case FGL:
			J.segOff[l] = len(J.segLen)
			tvProx(x, w, l2)
			J.segLen = append(J.segLen, 1)
			for n := range x {
				if n > 0 {
					if x[n] == x[n-1] {
						J.segLen[len(J.segLen)-1]++
					} else {
						J.segLen = append(J.segLen, 1)
					}
				}
				J.active[off+n] = x[n] > l1 || x[n] < -l1
			}
		}
		off += len(slots)
	}
	J.start[len(op.groups)] = off
	if op.reg == FGL {
		J.segOff[len(op.groups)] = len(J.segLen)
	}

	return J
}

// Apply writes J[d] into dst. dst must not alias d. Directions are
// symmetrized on the fly.
func (J *Jacobian) Apply(dst, d instance.Collection) {
	op := J.op
	in, out := raws(d), raws(dst)

	for k, p := range op.dims {
		for i := 0; i < p; i++ {
			out[k][i*p+i] = in[k][i*p+i]
		}
	}
	for n, s := range op.single {
		v := 0.0
		if J.single[n] {
			v = 0.5 * (in[s.k][s.up] + in[s.k][s.lo])
		}
		out[s.k][s.up], out[s.k][s.lo] = v, v
	}

	for l, slots := range op.groups {
		off := J.start[l]
		dw := gather(J.dw, in, slots)
		x := op.x[:len(slots)]
		act := J.active[off : off+len(slots)]
		switch op.reg {
		case GGL:
			if J.zero[l] {
				for n := range x {
					x[n] = 0
				}
				break
			}
			t := J.t[l]
			u := J.uhat[off : off+len(slots)]
			proj := t * floats.Dot(u, dw) // û is zero off the active set
			for n := range x {
				x[n] = proj * u[n]
				if act[n] {
					x[n] += (1 - t) * dw[n]
				}
			}
		case FGL:
			lens := J.segLen[J.segOff[l]:J.segOff[l+1]]
			n := 0
			for _, length := range lens {
				var sum float64
				for r := 0; r < length; r++ {
					sum += dw[n+r]
				}
				mean := sum / float64(length)
				for r := 0; r < length; r++ {
					if act[n+r] {
						x[n+r] = mean
					} else {
						x[n+r] = 0
					}
				}
				n += length
			}
		}
		scatter(out, slots, x)
	}
}
