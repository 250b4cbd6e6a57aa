package solver

import (
	"errors"
	"fmt"
)

// ErrInvalidInput wraps every rejection of a Problem, Start or options value.
// The concrete cause (instance.ErrShapeMismatch, penalty.ErrUnknownReg, ...)
// stays reachable through errors.Is.
var ErrInvalidInput = errors.New("solver: invalid input")

// invalidf wraps cause under ErrInvalidInput with a location tag.
func invalidf(where string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidInput, where, cause)
}

// Status is the termination reason recorded in Info.
type Status int

const (
	// Converged means the stopping rule was met.
	Converged Status = iota
	// NonConvergence means the iteration budget ran out first.
	NonConvergence
	// Breakdown means an iterate became non-finite or an eigendecomposition
	// failed; the last finite iterate is returned.
	Breakdown
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case NonConvergence:
		return "non-convergence"
	case Breakdown:
		return "breakdown"
	}

	return fmt.Sprintf("Status(%d)", int(s))
}
