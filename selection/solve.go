package selection

import (
	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/solver"
)

// SolveFunc is one solver call at a fixed (λ1, λ2).
type SolveFunc func(prob solver.Problem, start solver.Start) (solver.Solution, solver.Info, error)

// ADMMSolver adapts solver.ADMM.
func ADMMSolver(opts solver.ADMMOptions) SolveFunc {
	return func(prob solver.Problem, start solver.Start) (solver.Solution, solver.Info, error) {
		return solver.ADMM(prob, start, opts)
	}
}

// PPDNASolver adapts solver.PPDNA. The carry always provides Theta.
func PPDNASolver(opts solver.PPDNAOptions) SolveFunc {
	return func(prob solver.Problem, start solver.Start) (solver.Solution, solver.Info, error) {
		return solver.PPDNA(prob, start, opts)
	}
}

// WarmPPDNASolver adapts solver.WarmPPDNA.
func WarmPPDNASolver(opts solver.WarmOptions) SolveFunc {
	return func(prob solver.Problem, start solver.Start) (solver.Solution, solver.Info, error) {
		return solver.WarmPPDNA(prob, start, opts)
	}
}

// Carry is the warm start threaded from one grid point to the next.
type Carry struct {
	Omega instance.Collection
	Theta instance.Collection
	X     instance.Collection
}

// InitialCarry starts from identity Omega and Theta and zero X.
func InitialCarry(S instance.Collection) Carry {
	return Carry{Omega: instance.IdentityLike(S), Theta: instance.IdentityLike(S)}
}

func (c Carry) start() solver.Start {
	return solver.Start{Omega: c.Omega, Theta: c.Theta, X: c.X}
}

func carryOf(sol solver.Solution) Carry {
	return Carry{Omega: sol.Omega, Theta: sol.Theta, X: sol.X}
}
