package selection

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/matrix"
)

// EdgeTol is the magnitude above which an off-diagonal entry counts as an edge.
const EdgeTol = 1e-5

// DefaultGamma is the eBIC γ used by ModelSelect.
const DefaultGamma = 0.1

// Criterion picks the information criterion minimized by ModelSelect.
type Criterion int

const (
	AIC Criterion = iota + 1
	EBIC
)

// ParseCriterion accepts "AIC", "BIC" and "eBIC" in any case.
func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AIC":
		return AIC, nil
	case "BIC", "EBIC":
		return EBIC, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownCriterion)
}

func (c Criterion) String() string {
	switch c {
	case AIC:
		return "AIC"
	case EBIC:
		return "eBIC"
	}

	return fmt.Sprintf("Criterion(%d)", int(c))
}

// SampleSizes expands n to one sample size per instance: a single value is
// broadcast, otherwise len(n) must equal K.
func SampleSizes(n []int, K int) ([]int, error) {
	var out []int
	switch len(n) {
	case 1:
		out = make([]int, K)
		for k := range out {
			out[k] = n[0]
		}
	case K:
		out = append([]int(nil), n...)
	default:
		return nil, fmt.Errorf("%d sizes for %d instances: %w", len(n), K, ErrSampleSize)
	}
	for k, v := range out {
		if v <= 0 {
			return nil, fmt.Errorf("instance %d: N = %d: %w", k, v, ErrSampleSize)
		}
	}

	return out, nil
}

// NumEdges counts the pairs i<j with |m[i,j]| > t.
func NumEdges(m *matrix.Dense, t float64) int {
	p, raw := m.Rows(), m.Raw()
	n := 0
	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			if math.Abs(raw[i*p+j]) > t {
				n++
			}
		}
	}

	return n
}

// likelihood returns N·tr(SΘ) − N·log det Θ for one instance.
func likelihood(s, theta *matrix.Dense, n int) (float64, error) {
	tr, err := matrix.TraceProduct(s, theta)
	if err != nil {
		return 0, err
	}
	ld, err := matrix.LogDetSPD(theta)
	if errors.Is(err, matrix.ErrNotPositiveDefinite) {
		return 0, ErrNotPositiveDefinite
	}
	if err != nil {
		return 0, err
	}

	return float64(n) * (tr - ld), nil
}

// criterion sums likelihood(k) + E_k·penalty(k) over instances.
func criterion(S, theta instance.Collection, n []int, penalty func(k, edges int) float64) (float64, error) {
	if S == nil || theta == nil {
		return math.NaN(), instance.ErrEmpty
	}
	if err := instance.SameShape(S, theta); err != nil {
		return math.NaN(), err
	}
	ns, err := SampleSizes(n, S.Len())
	if err != nil {
		return math.NaN(), err
	}
	var total float64
	for k := 0; k < S.Len(); k++ {
		l, err := likelihood(S.At(k), theta.At(k), ns[k])
		if err != nil {
			return math.NaN(), fmt.Errorf("instance %d: %w", S.ID(k), err)
		}
		total += l + penalty(k, NumEdges(theta.At(k), EdgeTol))
	}

	return total, nil
}

// AICValue returns Σ_k N_k tr(S_kΘ_k) − N_k log det Θ_k + 2E_k, with E_k the
// number of edges of Θ_k. n holds one size or one per instance.
//
// Errors:
//   - ErrNotPositiveDefinite when some Θ_k is not positive definite.
//   - ErrSampleSize, instance.ErrShapeMismatch.
func AICValue(S, theta instance.Collection, n []int) (float64, error) {
	return criterion(S, theta, n, func(_, edges int) float64 {
		return 2 * float64(edges)
	})
}

// EBICValue returns the extended BIC
//
//	Σ_k N_k tr(S_kΘ_k) − N_k log det Θ_k + E_k·(log N_k + 4γ log p_k).
func EBICValue(S, theta instance.Collection, n []int, gamma float64) (float64, error) {
	if S == nil {
		return math.NaN(), instance.ErrEmpty
	}
	ns, err := SampleSizes(n, S.Len())
	if err != nil {
		return math.NaN(), err
	}

	return criterion(S, theta, ns, func(k, edges int) float64 {
		return float64(edges) * (math.Log(float64(ns[k])) + 4*gamma*math.Log(float64(S.Dim(k))))
	})
}
