package solver

import (
	"time"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/penalty"
)

// Method names recorded in Info.Method and Stage.Method.
const (
	MethodADMM      = "admm"
	MethodPPDNA     = "ppdna"
	MethodWarmPPDNA = "warm-ppdna"
)

// Problem is one joint graphical lasso instance.
type Problem struct {
	// S holds the empirical covariances. It is never modified.
	S instance.Collection
	// Lambda1 weights the element-wise L1 term, Lambda2 the coupling term.
	Lambda1, Lambda2 float64
	// Reg selects GGL or FGL coupling.
	Reg penalty.Reg
	// Groups describes the coupling for instances of different order.
	// Nil means implicit groups (all instances share one variable order).
	Groups *instance.Groups
}

// Start is the initial point. Collections must match the shape of S; they
// are copied, never modified.
type Start struct {
	Omega instance.Collection
	Theta instance.Collection
	X     instance.Collection
}

// Solution holds the final iterates.
type Solution struct {
	Omega instance.Collection
	Theta instance.Collection
	X     instance.Collection
}

// Residual is one entry of the convergence trace. ADMM fills Primal and Dual;
// PPDNA fills KKT and Newton (the final ‖∇φ‖ of the outer step's subproblem).
type Residual struct {
	Primal float64
	Dual   float64
	KKT    float64
	Newton float64
}

// Stage summarizes one solver run inside a composite call.
type Stage struct {
	Method     string
	Status     Status
	Iterations int
	KKT        float64
	Elapsed    time.Duration
}

// Info is the convergence record of a solver call.
type Info struct {
	Method     string
	Status     Status
	Iterations int
	Residuals  []Residual
	// KKT is the relative KKT residual at the returned iterate.
	KKT float64
	// Rho is the final ADMM step size, Sigma the final PPDNA parameter.
	Rho   float64
	Sigma float64
	// Fallbacks counts PPDNA outer steps replaced by an ADMM step.
	Fallbacks int
	// NewtonSteps and CGSteps total the PPDNA inner work.
	NewtonSteps int
	CGSteps     int
	Elapsed     time.Duration
	// IterTimes is filled only when Measure is set.
	IterTimes []time.Duration
	// Stages is filled by WarmPPDNA.
	Stages []Stage
}

// Converged reports whether the stopping rule was met.
func (in Info) Converged() bool { return in.Status == Converged }

func (in Info) stage() Stage {
	return Stage{
		Method:     in.Method,
		Status:     in.Status,
		Iterations: in.Iterations,
		KKT:        in.KKT,
		Elapsed:    in.Elapsed,
	}
}
