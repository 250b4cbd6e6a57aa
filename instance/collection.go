package instance

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/glasso/matrix"
)

// Kind tags the Collection variant.
type Kind int

const (
	// Regular collections hold K instances of one common order.
	Regular Kind = iota
	// Irregular collections are keyed by id and may differ in order.
	Irregular
)

func (k Kind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Irregular:
		return "irregular"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Collection is the closed set of instance containers. The unexported method
// keeps the variant set to *Array and *Dict.
type Collection interface {
	// Kind reports the variant.
	Kind() Kind
	// Len returns the number of instances K.
	Len() int
	// Dim returns the order p_k of instance k (0 ≤ k < Len()).
	Dim(k int) int
	// At returns instance k. The matrix is shared, not copied.
	At(k int) *matrix.Dense
	// ID returns the external id of instance k: k itself for *Array, the
	// k-th smallest key for *Dict.
	ID(k int) int
	// Clone returns a deep copy of the same variant.
	Clone() Collection

	sealed()
}

// Compile-time assertions for the two variants.
var (
	_ Collection = (*Array)(nil)
	_ Collection = (*Dict)(nil)
)

// Array is the regular variant: K instances of order p.
type Array struct {
	p    int
	mats []*matrix.Dense
}

// NewArray allocates K zero p×p instances.
func NewArray(K, p int) (*Array, error) {
	if K <= 0 {
		return nil, ErrEmpty
	}
	mats := make([]*matrix.Dense, K)
	for k := range mats {
		m, err := matrix.NewDense(p, p)
		if err != nil {
			return nil, fmt.Errorf("NewArray: %w", err)
		}
		mats[k] = m
	}

	return &Array{p: p, mats: mats}, nil
}

// ArrayOf wraps existing square matrices of one common order. The matrices
// are shared with the caller.
func ArrayOf(mats ...*matrix.Dense) (*Array, error) {
	if len(mats) == 0 {
		return nil, ErrEmpty
	}
	for k, m := range mats {
		if err := checkSquare(m); err != nil {
			return nil, fmt.Errorf("ArrayOf: instance %d: %w", k, err)
		}
		if m.Rows() != mats[0].Rows() {
			return nil, fmt.Errorf("ArrayOf: instance %d has order %d, want %d: %w",
				k, m.Rows(), mats[0].Rows(), ErrShapeMismatch)
		}
	}

	return &Array{p: mats[0].Rows(), mats: append([]*matrix.Dense(nil), mats...)}, nil
}

func (a *Array) Kind() Kind             { return Regular }
func (a *Array) Len() int               { return len(a.mats) }
func (a *Array) Dim(int) int            { return a.p }
func (a *Array) At(k int) *matrix.Dense { return a.mats[k] }
func (a *Array) ID(k int) int           { return k }
func (a *Array) sealed()                {}

// P returns the common order.
func (a *Array) P() int { return a.p }

// Clone returns a deep copy.
func (a *Array) Clone() Collection {
	out := &Array{p: a.p, mats: make([]*matrix.Dense, len(a.mats))}
	for k, m := range a.mats {
		out.mats[k] = m.Copy()
	}

	return out
}

// Dict is the irregular variant: instances keyed by id, iterated in
// ascending id order.
type Dict struct {
	ids  []int
	mats []*matrix.Dense
}

// NewDict wraps a map of square matrices. The matrices are shared with the
// caller; the key order is fixed at construction.
func NewDict(m map[int]*matrix.Dense) (*Dict, error) {
	if len(m) == 0 {
		return nil, ErrEmpty
	}
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	d := &Dict{ids: ids, mats: make([]*matrix.Dense, len(ids))}
	for k, id := range ids {
		if err := checkSquare(m[id]); err != nil {
			return nil, fmt.Errorf("NewDict: id %d: %w", id, err)
		}
		d.mats[k] = m[id]
	}

	return d, nil
}

func (d *Dict) Kind() Kind             { return Irregular }
func (d *Dict) Len() int               { return len(d.mats) }
func (d *Dict) Dim(k int) int          { return d.mats[k].Rows() }
func (d *Dict) At(k int) *matrix.Dense { return d.mats[k] }
func (d *Dict) ID(k int) int           { return d.ids[k] }
func (d *Dict) sealed()                {}

// Index returns the position of id, or -1.
func (d *Dict) Index(id int) int {
	k := sort.SearchInts(d.ids, id)
	if k < len(d.ids) && d.ids[k] == id {
		return k
	}

	return -1
}

// Map returns the instances keyed by id. Matrices are shared.
func (d *Dict) Map() map[int]*matrix.Dense {
	out := make(map[int]*matrix.Dense, len(d.ids))
	for k, id := range d.ids {
		out[id] = d.mats[k]
	}

	return out
}

// Clone returns a deep copy.
func (d *Dict) Clone() Collection {
	out := &Dict{ids: append([]int(nil), d.ids...), mats: make([]*matrix.Dense, len(d.mats))}
	for k, m := range d.mats {
		out.mats[k] = m.Copy()
	}

	return out
}

func checkSquare(m *matrix.Dense) error {
	if m == nil {
		return ErrNilInstance
	}

	return matrix.ValidateSquare(m)
}

// Uniform reports whether all instances share one order, and returns it.
func Uniform(c Collection) (int, bool) {
	p := c.Dim(0)
	for k := 1; k < c.Len(); k++ {
		if c.Dim(k) != p {
			return 0, false
		}
	}

	return p, true
}

// Validate checks that c is non-empty and every instance is square and finite.
func Validate(c Collection) error {
	if c == nil || c.Len() == 0 {
		return ErrEmpty
	}
	for k := 0; k < c.Len(); k++ {
		if err := checkSquare(c.At(k)); err != nil {
			return fmt.Errorf("instance %d: %w", c.ID(k), err)
		}
		if err := matrix.ValidateFinite(c.At(k)); err != nil {
			return fmt.Errorf("instance %d: %w", c.ID(k), err)
		}
	}

	return nil
}

// ValidateSymmetric checks every instance is symmetric within tol.
func ValidateSymmetric(c Collection, tol float64) error {
	for k := 0; k < c.Len(); k++ {
		if err := matrix.ValidateSymmetric(c.At(k), tol); err != nil {
			return fmt.Errorf("instance %d: %w", c.ID(k), err)
		}
	}

	return nil
}

// SameShape reports whether a and b have the same variant, K, ids and orders.
func SameShape(a, b Collection) error {
	if a.Kind() != b.Kind() || a.Len() != b.Len() {
		return fmt.Errorf("%s/%d vs %s/%d instances: %w", a.Kind(), a.Len(), b.Kind(), b.Len(), ErrShapeMismatch)
	}
	for k := 0; k < a.Len(); k++ {
		if a.ID(k) != b.ID(k) || a.Dim(k) != b.Dim(k) {
			return fmt.Errorf("instance %d: order %d vs %d: %w", a.ID(k), a.Dim(k), b.Dim(k), ErrShapeMismatch)
		}
	}

	return nil
}

// ZerosLike allocates a zero collection of c's shape and variant.
func ZerosLike(c Collection) Collection {
	out := c.Clone()
	for k := 0; k < out.Len(); k++ {
		out.At(k).Zero()
	}

	return out
}

// IdentityLike allocates an identity collection of c's shape and variant.
func IdentityLike(c Collection) Collection {
	out := ZerosLike(c)
	for k := 0; k < out.Len(); k++ {
		raw, p := out.At(k).Raw(), out.Dim(k)
		for i := 0; i < p; i++ {
			raw[i*p+i] = 1
		}
	}

	return out
}
