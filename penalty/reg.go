package penalty

import (
	"fmt"
	"math"
	"strings"
)

// Reg selects the cross-instance penalty.
type Reg int

const (
	// GGL is the group graphical lasso penalty (shared sparsity).
	GGL Reg = iota + 1
	// FGL is the fused graphical lasso penalty (successive differences).
	FGL
)

// ParseReg maps "GGL"/"FGL" (any case) to a Reg.
func ParseReg(s string) (Reg, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GGL":
		return GGL, nil
	case "FGL":
		return FGL, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownReg)
}

func (r Reg) String() string {
	switch r {
	case GGL:
		return "GGL"
	case FGL:
		return "FGL"
	}

	return fmt.Sprintf("Reg(%d)", int(r))
}

// Valid reports whether r is GGL or FGL.
func (r Reg) Valid() bool { return r == GGL || r == FGL }

// MarshalText implements encoding.TextMarshaler.
func (r Reg) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrUnknownReg
	}

	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reg) UnmarshalText(b []byte) error {
	v, err := ParseReg(string(b))
	if err != nil {
		return err
	}
	*r = v

	return nil
}

// CheckLambdas validates a (lambda1, lambda2) pair.
func CheckLambdas(l1, l2 float64) error {
	for _, l := range [...]float64{l1, l2} {
		if l < 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			return fmt.Errorf("lambda1=%g lambda2=%g: %w", l1, l2, ErrNegativeLambda)
		}
	}

	return nil
}
