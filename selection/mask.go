package selection

import "strings"

// SkipMask marks grid points that will not be solved. It is a value: Mark
// returns a new mask and leaves the receiver untouched, so a mask handed to
// a caller never changes under it.
type SkipMask struct {
	rows, cols int
	cells      []bool
}

// NewSkipMask returns an all-clear rows×cols mask.
func NewSkipMask(rows, cols int) SkipMask {
	return SkipMask{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

// Shape returns the mask dimensions.
func (m SkipMask) Shape() (rows, cols int) { return m.rows, m.cols }

// Skipped reports whether point (r, c) is marked.
func (m SkipMask) Skipped(r, c int) bool { return m.cells[r*m.cols+c] }

// Mark returns a copy with every point (i, j), i ≥ r and j ≥ c, marked.
func (m SkipMask) Mark(r, c int) SkipMask {
	out := SkipMask{rows: m.rows, cols: m.cols, cells: append([]bool(nil), m.cells...)}
	for i := r; i < m.rows; i++ {
		for j := c; j < m.cols; j++ {
			out.cells[i*m.cols+j] = true
		}
	}

	return out
}

// MarkAfter is Mark without (r, c) itself: the quadrant strictly beyond an
// evaluated point. A mark already on (r, c) is kept.
func (m SkipMask) MarkAfter(r, c int) SkipMask {
	out := m.Mark(r, c)
	out.cells[r*m.cols+c] = m.cells[r*m.cols+c]

	return out
}

// Count returns the number of marked points.
func (m SkipMask) Count() int {
	n := 0
	for _, v := range m.cells {
		if v {
			n++
		}
	}

	return n
}

// Table returns the mask as rows of booleans.
func (m SkipMask) Table() [][]bool {
	t := make([][]bool, m.rows)
	for r := range t {
		t[r] = append([]bool(nil), m.cells[r*m.cols:(r+1)*m.cols]...)
	}

	return t
}

// String renders marked points as 'x' and clear ones as '.'.
func (m SkipMask) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.Skipped(r, c) {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
