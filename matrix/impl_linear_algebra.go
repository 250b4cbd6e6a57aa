// SPDX-License-Identifier: MIT
// Package matrix provides the dense linear-algebra kernels used by the
// graphical-lasso solvers: in-place axpy-style updates, Frobenius inner
// products and norms, symmetrization, and basis changes Qᵀ·D·Q / Q·D·Qᵀ.
// Products are delegated to gonum/mat over views sharing the Dense buffer;
// vector kernels are delegated to gonum/floats over the flat row-major data.
//
// Purpose:
//   - Keep every hot-loop kernel allocation-free when the caller supplies
//     destination and workspace buffers.
//   - Validate shapes once at the kernel boundary and wrap failures with
//     matrixErrorf so callers match sentinels via errors.Is.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAddScaled  = "AddScaled"
	opSub        = "Sub"
	opInner      = "Inner"
	opTraceProd  = "TraceProduct"
	opToBasis    = "ToBasis"
	opFromBasis  = "FromBasis"
	opFromEigen  = "FromEigen"
	opEigen      = "EigenSym"
	opLogDet     = "LogDetSPD"
	opCovariance = "Covariance"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// sameShape checks that every operand is non-nil and shares the first one's shape.
func sameShape(tag string, ms ...*Dense) error {
	for _, m := range ms {
		if m == nil {
			return matrixErrorf(tag, ErrNilMatrix)
		}
	}
	for _, m := range ms[1:] {
		if m.r != ms[0].r || m.c != ms[0].c {
			return matrixErrorf(tag, ErrDimensionMismatch)
		}
	}

	return nil
}

// AddScaled performs dst += alpha*src in place.
// Complexity: O(r*c), no allocations.
func AddScaled(dst *Dense, alpha float64, src *Dense) error {
	if err := sameShape(opAddScaled, dst, src); err != nil {
		return err
	}
	floats.AddScaled(dst.data, alpha, src.data)

	return nil
}

// Sub writes a - b into dst. dst may alias a or b.
// Complexity: O(r*c), no allocations.
func Sub(dst, a, b *Dense) error {
	if err := sameShape(opSub, dst, a, b); err != nil {
		return err
	}
	floats.SubTo(dst.data, a.data, b.data)

	return nil
}

// Scale multiplies every element of m by alpha in place.
func Scale(m *Dense, alpha float64) {
	floats.Scale(alpha, m.data)
}

// Frobenius returns ‖m‖_F.
// Complexity: O(r*c).
func Frobenius(m *Dense) float64 {
	return floats.Norm(m.data, 2)
}

// Inner returns the Frobenius inner product ⟨a, b⟩ = Σ a_ij·b_ij.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func Inner(a, b *Dense) (float64, error) {
	if err := sameShape(opInner, a, b); err != nil {
		return 0, err
	}

	return floats.Dot(a.data, b.data), nil
}

// TraceProduct returns tr(A·B) without forming the product.
// Both operands must be square of the same order.
//
// Complexity:
//   - Time O(n²), Space O(1).
func TraceProduct(a, b *Dense) (float64, error) {
	if err := sameShape(opTraceProd, a, b); err != nil {
		return 0, err
	}
	if a.r != a.c {
		return 0, matrixErrorf(opTraceProd, ErrNonSquare)
	}
	var (
		n    = a.r
		i, j int
		sum  = NormZero
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			sum += a.data[i*n+j] * b.data[j*n+i]
		}
	}

	return sum, nil
}

// Symmetrize replaces a square m with (m + mᵀ)/2 in place.
func Symmetrize(m *Dense) {
	n := m.r
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			v = 0.5 * (m.data[i*n+j] + m.data[j*n+i])
			m.data[i*n+j], m.data[j*n+i] = v, v
		}
	}
}

// MaxAsymmetry returns max_{i<j} |m_ij − m_ji| for a square m.
func MaxAsymmetry(m *Dense) float64 {
	n := m.r
	worst := NormZero
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			worst = math.Max(worst, math.Abs(m.data[i*n+j]-m.data[j*n+i]))
		}
	}

	return worst
}

// ToBasis writes Qᵀ·D·Q into dst using work as scratch.
// dst and work must be distinct from q and d.
//
// Complexity:
//   - Time O(n³) (two gonum products), no allocations.
func ToBasis(dst, q, d, work *Dense) error {
	if err := sameShape(opToBasis, dst, q, d, work); err != nil {
		return err
	}
	work.gonum().Mul(q.gonum().T(), d.gonum())
	dst.gonum().Mul(work.gonum(), q.gonum())

	return nil
}

// FromBasis writes Q·D·Qᵀ into dst using work as scratch.
// dst and work must be distinct from q and d.
func FromBasis(dst, q, d, work *Dense) error {
	if err := sameShape(opFromBasis, dst, q, d, work); err != nil {
		return err
	}
	work.gonum().Mul(q.gonum(), d.gonum())
	dst.gonum().Mul(work.gonum(), q.gonum().T())

	return nil
}

// FromEigen writes Q·diag(vals)·Qᵀ into dst using work as scratch and
// symmetrizes the result to remove round-off asymmetry.
//
// Implementation:
//   - Stage 1: work = Q with column j scaled by vals[j].
//   - Stage 2: dst = work·Qᵀ.
//   - Stage 3: dst ← (dst + dstᵀ)/2.
func FromEigen(dst, q *Dense, vals []float64, work *Dense) error {
	if err := sameShape(opFromEigen, dst, q, work); err != nil {
		return err
	}
	n := q.r
	if len(vals) != n {
		return matrixErrorf(opFromEigen, ErrDimensionMismatch)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			work.data[i*n+j] = q.data[i*n+j] * vals[j]
		}
	}
	dst.gonum().Mul(work.gonum(), q.gonum().T())
	Symmetrize(dst)

	return nil
}
