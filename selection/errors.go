package selection

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/glasso/matrix"
)

var (
	// ErrNotPositiveDefinite is returned by the criteria when an instance of
	// Θ has no Cholesky factor. It matches matrix.ErrNotPositiveDefinite too.
	ErrNotPositiveDefinite = fmt.Errorf("selection: %w", matrix.ErrNotPositiveDefinite)

	// ErrNoCandidate is returned when every grid point is skipped or failed.
	ErrNoCandidate = errors.New("selection: no grid point has a finite criterion")

	// ErrGridShape is returned when grid sizes and the supplied or
	// constructed grid disagree.
	ErrGridShape = errors.New("selection: grid shape mismatch")

	// ErrSampleSize is returned for a non-positive sample size or a sample
	// size list whose length is neither 1 nor K.
	ErrSampleSize = errors.New("selection: invalid sample sizes")

	// ErrUnknownCriterion is returned for a criterion other than AIC or BIC.
	ErrUnknownCriterion = errors.New("selection: unknown criterion")
)
