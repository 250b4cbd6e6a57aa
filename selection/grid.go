package selection

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/glasso/penalty"
)

// Grid is a num2×num1 table of (λ1, λ2) pairs: L1[g2][g1], L2[g2][g1].
// Rows follow λ2 (or w2 for GGL), columns follow λ1; both decrease away
// from the origin.
type Grid struct {
	L1 [][]float64
	L2 [][]float64
	// W2 holds the GGL weights per row; nil for FGL and custom grids.
	W2 []float64
}

// Shape returns (rows, cols) = (num2, num1).
func (g Grid) Shape() (rows, cols int) {
	if len(g.L1) == 0 {
		return 0, 0
	}

	return len(g.L1), len(g.L1[0])
}

// Validate checks that L1 and L2 are rectangular and agree in shape, and
// that every value is finite and non-negative.
func (g Grid) Validate() error {
	rows, cols := g.Shape()
	if rows == 0 || cols == 0 || len(g.L2) != rows {
		return fmt.Errorf("L1 %d rows, L2 %d rows: %w", len(g.L1), len(g.L2), ErrGridShape)
	}
	for r := 0; r < rows; r++ {
		if len(g.L1[r]) != cols || len(g.L2[r]) != cols {
			return fmt.Errorf("row %d is ragged: %w", r, ErrGridShape)
		}
		for c := 0; c < cols; c++ {
			if err := penalty.CheckLambdas(g.L1[r][c], g.L2[r][c]); err != nil {
				return fmt.Errorf("point (%d,%d): %w", r, c, err)
			}
		}
	}

	return nil
}

// LambdaParametrizer converts a GGL pair (l1, w2) into λ2:
//
//	λ2 = w2·l1 / (√2·(1 − w2))
//
// w2 must lie in [0, 1).
func LambdaParametrizer(l1, w2 float64) float64 {
	return w2 * l1 / (math.Sqrt2 * (1 - w2))
}

// LambdaGrid builds the default grid for reg:
//
//	GGL: l1 = 5·logspace(−1, −2, num1), w2 = linspace(0.5, 0.2, num2),
//	     λ2 = LambdaParametrizer(l1, w2)
//	FGL: l1 = 2·logspace(−1, −3, num1), l2 = 2·logspace(−1, −3, num2)
//
// Errors:
//   - ErrGridShape for num1 < 1 or num2 < 1.
//   - penalty.ErrUnknownReg.
func LambdaGrid(num1, num2 int, reg penalty.Reg) (Grid, error) {
	if num1 < 1 || num2 < 1 {
		return Grid{}, fmt.Errorf("LambdaGrid: %d×%d: %w", num2, num1, ErrGridShape)
	}
	g := Grid{L1: table(num2, num1), L2: table(num2, num1)}
	switch reg {
	case penalty.GGL:
		l1 := logspace(num1, 5*0.1, 5*0.01)
		g.W2 = linspace(num2, 0.5, 0.2)
		for r, w2 := range g.W2 {
			copy(g.L1[r], l1)
			for c, v := range l1 {
				g.L2[r][c] = LambdaParametrizer(v, w2)
			}
		}
	case penalty.FGL:
		l1 := logspace(num1, 2*0.1, 2*0.001)
		l2 := logspace(num2, 2*0.1, 2*0.001)
		for r, v2 := range l2 {
			copy(g.L1[r], l1)
			for c := range l1 {
				g.L2[r][c] = v2
			}
		}
	default:
		return Grid{}, fmt.Errorf("LambdaGrid: %v: %w", reg, penalty.ErrUnknownReg)
	}

	return g, nil
}

func table(rows, cols int) [][]float64 {
	t := make([][]float64, rows)
	for r := range t {
		t[r] = make([]float64, cols)
	}

	return t
}

// logspace returns n log-spaced values from first to last; a single point
// is first.
func logspace(n int, first, last float64) []float64 {
	dst := make([]float64, n)
	if n == 1 {
		dst[0] = first
		return dst
	}

	return floats.LogSpan(dst, first, last)
}

func linspace(n int, first, last float64) []float64 {
	dst := make([]float64, n)
	if n == 1 {
		dst[0] = first
		return dst
	}

	return floats.Span(dst, first, last)
}
