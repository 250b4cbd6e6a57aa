package instance

import (
	"fmt"
)

// absent marks "variable pair not present in this instance" in GroupsFromIndex.
const absent = -1

// Member is one coupled entry: instance position K, off-diagonal (I,J), I<J.
// The mirrored entry (J,I) is always treated together with (I,J).
type Member struct {
	K, I, J int
}

// Groups lists sets of off-diagonal entries that the cross-instance penalty
// couples. Members of a group are ordered by instance position, which is the
// order the fused penalty differences along.
type Groups struct {
	width  int // K the descriptor was built for
	groups [][]Member
}

// GroupsFromIndex builds a descriptor from per-group index tables:
// rows[l][k], cols[l][k] give the entry of group l in instance position k,
// or -1 in both when group l has no entry in instance k.
//
// Errors:
//   - ErrBadGroups for ragged tables, half-absent pairs, diagonal entries or
//     groups with no member.
func GroupsFromIndex(rows, cols [][]int) (*Groups, error) {
	if len(rows) == 0 || len(rows) != len(cols) {
		return nil, fmt.Errorf("GroupsFromIndex: %d row tables vs %d col tables: %w", len(rows), len(cols), ErrBadGroups)
	}
	width := len(rows[0])
	g := &Groups{width: width, groups: make([][]Member, 0, len(rows))}
	for l := range rows {
		if len(rows[l]) != width || len(cols[l]) != width {
			return nil, fmt.Errorf("GroupsFromIndex: group %d is ragged: %w", l, ErrBadGroups)
		}
		members := make([]Member, 0, width)
		for k := 0; k < width; k++ {
			i, j := rows[l][k], cols[l][k]
			if i == absent && j == absent {
				continue
			}
			if i < 0 || j < 0 || i == j {
				return nil, fmt.Errorf("GroupsFromIndex: group %d instance %d entry (%d,%d): %w", l, k, i, j, ErrBadGroups)
			}
			if i > j {
				i, j = j, i
			}
			members = append(members, Member{K: k, I: i, J: j})
		}
		if len(members) == 0 {
			return nil, fmt.Errorf("GroupsFromIndex: group %d is empty: %w", l, ErrBadGroups)
		}
		g.groups = append(g.groups, members)
	}

	return g, nil
}

// ImplicitGroups couples entry (i,j) across all K instances of order p.
func ImplicitGroups(K, p int) *Groups {
	g := &Groups{width: K, groups: make([][]Member, 0, p*(p-1)/2)}
	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			members := make([]Member, K)
			for k := range members {
				members[k] = Member{K: k, I: i, J: j}
			}
			g.groups = append(g.groups, members)
		}
	}

	return g
}

// Resolve returns the descriptor the penalty should use for c: g itself after
// validation, or the implicit groups when g is nil and all orders agree.
//
// Errors:
//   - ErrGroupsRequired when g is nil and the orders differ.
//   - ErrBadGroups when g does not fit c.
func Resolve(c Collection, g *Groups) (*Groups, error) {
	if g == nil {
		p, ok := Uniform(c)
		if !ok {
			return nil, ErrGroupsRequired
		}

		return ImplicitGroups(c.Len(), p), nil
	}
	if err := g.Fits(c); err != nil {
		return nil, err
	}

	return g, nil
}

// Fits checks that every member indexes a valid off-diagonal entry of c and
// that no entry belongs to two groups.
func (g *Groups) Fits(c Collection) error {
	if g.width != c.Len() {
		return fmt.Errorf("groups built for %d instances, collection has %d: %w", g.width, c.Len(), ErrBadGroups)
	}
	seen := make(map[Member]int)
	for l, members := range g.groups {
		for _, m := range members {
			p := c.Dim(m.K)
			if m.J >= p {
				return fmt.Errorf("group %d: entry (%d,%d) outside instance %d of order %d: %w",
					l, m.I, m.J, c.ID(m.K), p, ErrBadGroups)
			}
			if prev, dup := seen[m]; dup {
				return fmt.Errorf("groups %d and %d share entry (%d,%d) of instance %d: %w",
					prev, l, m.I, m.J, c.ID(m.K), ErrBadGroups)
			}
			seen[m] = l
		}
	}

	return nil
}

// Len returns the number of groups.
func (g *Groups) Len() int { return len(g.groups) }

// Group returns the members of group l. The slice is shared.
func (g *Groups) Group(l int) []Member { return g.groups[l] }

// Width returns the instance count the descriptor was built for.
func (g *Groups) Width() int { return g.width }

// Coverage returns, per instance, a p_k×p_k row-major mask of the entries
// (both halves) that belong to some group.
func (g *Groups) Coverage(c Collection) [][]bool {
	out := make([][]bool, c.Len())
	for k := range out {
		out[k] = make([]bool, c.Dim(k)*c.Dim(k))
	}
	for _, members := range g.groups {
		for _, m := range members {
			p := c.Dim(m.K)
			out[m.K][m.I*p+m.J] = true
			out[m.K][m.J*p+m.I] = true
		}
	}

	return out
}
