package penalty

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/glasso/instance"
)

// slot addresses one off-diagonal pair inside a collection: instance position
// k, flat offsets of the upper (i,j) and lower (j,i) entries.
type slot struct {
	k, up, lo int
}

// Operator evaluates a penalty over collections of one fixed shape. It keeps
// scratch buffers, so one Operator must not be used from several goroutines.
type Operator struct {
	reg    Reg
	k      int
	dims   []int
	groups [][]slot // coupled pairs, members in instance order
	single []slot   // off-diagonal pairs covered by no group (λ1 only)

	w, x []float64 // scratch, len = longest group
}

// NewOperator resolves the group layout of c once. g may be nil when all
// instances share one order (implicit groups).
//
// Errors:
//   - ErrUnknownReg, instance.ErrEmpty, instance.ErrGroupsRequired,
//     instance.ErrBadGroups.
func NewOperator(c instance.Collection, reg Reg, g *instance.Groups) (*Operator, error) {
	if !reg.Valid() {
		return nil, fmt.Errorf("NewOperator: %v: %w", reg, ErrUnknownReg)
	}
	if c == nil || c.Len() == 0 {
		return nil, fmt.Errorf("NewOperator: %w", instance.ErrEmpty)
	}
	g, err := instance.Resolve(c, g)
	if err != nil {
		return nil, fmt.Errorf("NewOperator: %w", err)
	}

	op := &Operator{reg: reg, k: c.Len(), dims: make([]int, c.Len())}
	for k := range op.dims {
		op.dims[k] = c.Dim(k)
	}

	longest := 0
	op.groups = make([][]slot, g.Len())
	for l := 0; l < g.Len(); l++ {
		members := g.Group(l)
		slots := make([]slot, len(members))
		for n, m := range members {
			p := op.dims[m.K]
			slots[n] = slot{k: m.K, up: m.I*p + m.J, lo: m.J*p + m.I}
		}
		op.groups[l] = slots
		if len(slots) > longest {
			longest = len(slots)
		}
	}

	covered := g.Coverage(c)
	for k, p := range op.dims {
		for i := 0; i < p; i++ {
			for j := i + 1; j < p; j++ {
				if !covered[k][i*p+j] {
					op.single = append(op.single, slot{k: k, up: i*p + j, lo: j*p + i})
				}
			}
		}
	}
	op.w = make([]float64, longest)
	op.x = make([]float64, longest)

	return op, nil
}

// Reg returns the penalty kind.
func (op *Operator) Reg() Reg { return op.reg }

// Fits reports whether c has the shape the operator was built for.
func (op *Operator) Fits(c instance.Collection) error {
	if c.Len() != op.k {
		return fmt.Errorf("operator built for %d instances, got %d: %w", op.k, c.Len(), instance.ErrShapeMismatch)
	}
	for k, p := range op.dims {
		if c.Dim(k) != p {
			return fmt.Errorf("instance %d: order %d, want %d: %w", c.ID(k), c.Dim(k), p, instance.ErrShapeMismatch)
		}
	}

	return nil
}

// raws collects the flat buffers of c once per call.
func raws(c instance.Collection) [][]float64 {
	out := make([][]float64, c.Len())
	for k := range out {
		out[k] = c.At(k).Raw()
	}

	return out
}

// gather loads the symmetric part (upper+lower)/2 of each slot into w.
func gather(w []float64, buf [][]float64, slots []slot) []float64 {
	w = w[:len(slots)]
	for n, s := range slots {
		w[n] = 0.5 * (buf[s.k][s.up] + buf[s.k][s.lo])
	}

	return w
}

// scatter writes v into both halves of each slot.
func scatter(buf [][]float64, slots []slot, v []float64) {
	for n, s := range slots {
		buf[s.k][s.up] = v[n]
		buf[s.k][s.lo] = v[n]
	}
}

// Prox writes prox_P(src) with parameters (l1, l2) into dst:
//
//	argmin_Θ P(Θ) + ½‖Θ − src‖²
//
// over symmetric Θ. The off-diagonal input is symmetrized first; diagonals
// are copied unchanged. dst may alias src.
//
// Implementation:
//   - GGL: soft-threshold each coupled entry by l1, then shrink the group
//     vector v by max(0, 1 − l2/‖v‖).
//   - FGL: 1D total-variation prox (parameter l2) along instance order, then
//     soft-threshold by l1.
//   - Uncovered entries: soft-threshold by l1.
func (op *Operator) Prox(dst, src instance.Collection, l1, l2 float64) {
	if dst != src {
		instance.Copy(dst, src)
	}
	buf := raws(dst)

	var v float64
	for _, s := range op.single {
		v = soft(0.5*(buf[s.k][s.up]+buf[s.k][s.lo]), l1)
		buf[s.k][s.up], buf[s.k][s.lo] = v, v
	}

	for _, slots := range op.groups {
		w := gather(op.w, buf, slots)
		x := op.x[:len(slots)]
		switch op.reg {
		case GGL:
			for n := range w {
				x[n] = soft(w[n], l1)
			}
			nrm := floats.Norm(x, 2)
			scale := 0.0
			if nrm > l2 {
				scale = 1 - l2/nrm
			}
			floats.Scale(scale, x)
		case FGL:
			tvProx(x, w, l2)
			for n := range x {
				x[n] = soft(x[n], l1)
			}
		}
		scatter(buf, slots, x)
	}
}

// Value returns P(c) with parameters (l1, l2); both off-diagonal halves are
// counted.
func (op *Operator) Value(c instance.Collection, l1, l2 float64) float64 {
	buf := raws(c)

	var l1sum float64
	for k, p := range op.dims {
		for i := 0; i < p; i++ {
			row := buf[k][i*p : (i+1)*p]
			for j, v := range row {
				if j != i {
					l1sum += math.Abs(v)
				}
			}
		}
	}
	if l2 == 0 {
		return l1 * l1sum
	}

	var l2sum float64
	for _, slots := range op.groups {
		up, lo := op.w[:len(slots)], op.x[:len(slots)]
		for n, s := range slots {
			up[n], lo[n] = buf[s.k][s.up], buf[s.k][s.lo]
		}
		switch op.reg {
		case GGL:
			l2sum += floats.Norm(up, 2) + floats.Norm(lo, 2)
		case FGL:
			l2sum += tvValue(up) + tvValue(lo)
		}
	}

	return l1*l1sum + l2*l2sum
}
