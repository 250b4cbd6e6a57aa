package instance

import (
	"fmt"

	"github.com/katalvlaran/glasso/matrix"
)

// SampleCovariances turns per-instance observation matrices (rows are
// samples, columns variables) into an Array of sample covariances and the
// per-instance sample counts N_k.
func SampleCovariances(samples ...*matrix.Dense) (*Array, []int, error) {
	if len(samples) == 0 {
		return nil, nil, ErrEmpty
	}
	covs := make([]*matrix.Dense, len(samples))
	ns := make([]int, len(samples))
	for k, x := range samples {
		if x == nil {
			return nil, nil, fmt.Errorf("SampleCovariances: instance %d: %w", k, ErrNilInstance)
		}
		s, err := matrix.Covariance(x)
		if err != nil {
			return nil, nil, fmt.Errorf("SampleCovariances: instance %d: %w", k, err)
		}
		covs[k], ns[k] = s, x.Rows()
	}
	arr, err := ArrayOf(covs...)
	if err != nil {
		return nil, nil, fmt.Errorf("SampleCovariances: %w", err)
	}

	return arr, ns, nil
}

// SampleCovariancesDict is the keyed counterpart of SampleCovariances; the
// returned counts follow the Dict's ascending id order.
func SampleCovariancesDict(samples map[int]*matrix.Dense) (*Dict, []int, error) {
	if len(samples) == 0 {
		return nil, nil, ErrEmpty
	}
	covs := make(map[int]*matrix.Dense, len(samples))
	rows := make(map[int]int, len(samples))
	for id, x := range samples {
		if x == nil {
			return nil, nil, fmt.Errorf("SampleCovariancesDict: id %d: %w", id, ErrNilInstance)
		}
		s, err := matrix.Covariance(x)
		if err != nil {
			return nil, nil, fmt.Errorf("SampleCovariancesDict: id %d: %w", id, err)
		}
		covs[id], rows[id] = s, x.Rows()
	}
	d, err := NewDict(covs)
	if err != nil {
		return nil, nil, fmt.Errorf("SampleCovariancesDict: %w", err)
	}
	ns := make([]int, d.Len())
	for k := range ns {
		ns[k] = rows[d.ID(k)]
	}

	return d, ns, nil
}
