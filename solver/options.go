package solver

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"
)

// Step size bounds and balancing constants for ADMM.
const (
	rhoMin       = 1e-4
	rhoMax       = 1e4
	balanceMu    = 10.0
	balanceTau   = 2.0
	sigmaMax     = 1e6
	armijoMu     = 1e-4
	armijoShrink = 0.5
	maxBacktrack = 30
)

var (
	errNonPositive = errors.New("must be finite and > 0")
	errBadIter     = errors.New("iteration budget must be > 0")
)

// ADMMOptions configures ADMM.
type ADMMOptions struct {
	// Rho is the initial step size.
	Rho float64
	// MaxIter bounds the number of iterations.
	MaxIter int
	// Eps is the tolerance on the scaled primal and dual residuals.
	Eps float64
	// Balance adapts rho to keep the residuals within a factor of 10.
	Balance bool
	// Verbose logs one line per iteration at Info level.
	Verbose bool
	// Measure records per-iteration wall time in Info.IterTimes.
	Measure bool
	// Logger receives progress lines; nil means logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// DefaultADMMOptions returns rho = 1, 1000 iterations, eps = 1e-5 and
// residual balancing on.
func DefaultADMMOptions() ADMMOptions {
	return ADMMOptions{
		Rho:     1,
		MaxIter: 1000,
		Eps:     1e-5,
		Balance: true,
	}
}

func (o ADMMOptions) validate() error {
	if !positive(o.Rho) {
		return invalidf("rho", errNonPositive)
	}
	if !positive(o.Eps) {
		return invalidf("eps", errNonPositive)
	}
	if o.MaxIter <= 0 {
		return invalidf("max_iter", errBadIter)
	}

	return nil
}

// PPDNAOptions configures PPDNA.
type PPDNAOptions struct {
	// Sigma0 is the initial proximal parameter; it grows by SigmaGrowth per
	// outer step up to 1e6.
	Sigma0      float64
	SigmaGrowth float64
	// MaxIter bounds the outer proximal point steps.
	MaxIter int
	// Eps is the tolerance on the relative KKT residual.
	Eps float64
	// MaxNewton bounds the semismooth Newton steps per outer step.
	MaxNewton int
	// InnerEps0 is the initial inner tolerance ε_0; ε_t = max(ε_0·2^−t, Eps/10).
	InnerEps0 float64
	// CGTol (η) and CGTau (τ) set the CG tolerance min(η, ‖∇φ‖^{1+τ}).
	CGTol     float64
	CGTau     float64
	CGMaxIter int
	Verbose   bool
	Measure   bool
	Logger    logrus.FieldLogger
}

// DefaultPPDNAOptions returns sigma_0 = 10, 100 outer steps and eps = 1e-5.
func DefaultPPDNAOptions() PPDNAOptions {
	return PPDNAOptions{
		Sigma0:      10,
		SigmaGrowth: 1.3,
		MaxIter:     100,
		Eps:         1e-5,
		MaxNewton:   20,
		InnerEps0:   1,
		CGTol:       0.1,
		CGTau:       0.2,
		CGMaxIter:   200,
	}
}

func (o PPDNAOptions) validate() error {
	switch {
	case !positive(o.Sigma0):
		return invalidf("sigma_0", errNonPositive)
	case !positive(o.SigmaGrowth):
		return invalidf("sigma_growth", errNonPositive)
	case !positive(o.Eps):
		return invalidf("eps", errNonPositive)
	case !positive(o.InnerEps0):
		return invalidf("inner_eps_0", errNonPositive)
	case !positive(o.CGTol):
		return invalidf("cg_tol", errNonPositive)
	case o.CGTau < 0 || math.IsNaN(o.CGTau):
		return invalidf("cg_tau", errNonPositive)
	case o.MaxIter <= 0, o.MaxNewton <= 0, o.CGMaxIter <= 0:
		return invalidf("max_iter", errBadIter)
	}

	return nil
}

// WarmOptions configures WarmPPDNA: a loose ADMM stage, then PPDNA, then an
// optional ADMM continuation when PPDNA stalls.
type WarmOptions struct {
	ADMM  ADMMOptions
	PPDNA PPDNAOptions
	// FallbackIter is the ADMM budget used when PPDNA does not converge.
	// Zero disables the continuation.
	FallbackIter int
}

// DefaultWarmOptions returns a 20-iteration ADMM stage at tolerance 10·eps
// followed by PPDNA at eps, for eps = 1e-5.
func DefaultWarmOptions() WarmOptions {
	return NewWarmOptions(1e-5)
}

// NewWarmOptions builds default WarmOptions for a target tolerance eps.
func NewWarmOptions(eps float64) WarmOptions {
	a := DefaultADMMOptions()
	a.MaxIter = 20
	a.Eps = 10 * eps
	p := DefaultPPDNAOptions()
	p.Eps = eps

	return WarmOptions{ADMM: a, PPDNA: p, FallbackIter: 1000}
}

// WithLogger sets the logger, Verbose and Measure flags on both stages.
func (o WarmOptions) WithLogger(l logrus.FieldLogger, verbose, measure bool) WarmOptions {
	o.ADMM.Logger, o.ADMM.Verbose, o.ADMM.Measure = l, verbose, measure
	o.PPDNA.Logger, o.PPDNA.Verbose, o.PPDNA.Measure = l, verbose, measure

	return o
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func loggerOf(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logrus.StandardLogger()
	}

	return l
}
