package selection

import (
	"math"
	"sort"

	"github.com/katalvlaran/glasso/matrix"
)

// Components returns the connected components of the conditional
// independence graph of m: variables i and j are adjacent when
// |m_ij| > t. Components are listed by smallest member, members ascending;
// an isolated variable is its own component.
//
// Complexity: O(p²).
func Components(m *matrix.Dense, t float64) [][]int {
	p := m.Rows()
	raw := m.Raw()
	seen := make([]bool, p)
	var comps [][]int

	for i0 := 0; i0 < p; i0++ {
		if seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for v := 0; v < p; v++ {
				if v == u || seen[v] || math.Abs(raw[u*p+v]) <= t {
					continue
				}
				seen[v] = true
				queue = append(queue, v)
			}
		}
		sort.Ints(queue)
		comps = append(comps, queue)
	}

	return comps
}
