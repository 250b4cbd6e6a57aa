package solver

import (
	"time"

	"github.com/katalvlaran/glasso/instance"
)

// WarmPPDNA runs a short ADMM pass from start (opts.ADMM, typically 20 loose
// iterations), then PPDNA from the ADMM iterates. If PPDNA does not converge
// and opts.FallbackIter > 0, ADMM continues from whichever of the two stage
// results has the smaller KKT residual, at PPDNA's tolerance.
//
// Info carries the final stage's status and KKT, the concatenated residual
// trace and one Stage entry per stage run.
func WarmPPDNA(prob Problem, start Start, opts WarmOptions) (Solution, Info, error) {
	began := time.Now()
	if err := opts.ADMM.validate(); err != nil {
		return Solution{}, Info{}, err
	}
	if err := opts.PPDNA.validate(); err != nil {
		return Solution{}, Info{}, err
	}
	ws, err := newWorkspace(prob)
	if err != nil {
		return Solution{}, Info{}, err
	}
	omega, theta, x, err := ws.admmStart(start)
	if err != nil {
		return Solution{}, Info{}, err
	}

	t0 := time.Now()
	warm := ws.admm(omega, theta, x, opts.ADMM)
	warm.Elapsed = time.Since(t0)
	stages := []Info{warm}

	if warm.Status != Breakdown {
		saved := Solution{Omega: omega.Clone(), Theta: theta.Clone(), X: x.Clone()}

		t0 = time.Now()
		outer := ws.ppdna(omega, theta, x, opts.PPDNA)
		outer.Elapsed = time.Since(t0)
		stages = append(stages, outer)

		if !outer.Converged() && opts.FallbackIter > 0 {
			if outer.Status == Breakdown || !(outer.KKT <= warm.KKT) {
				instance.Copy(omega, saved.Omega)
				instance.Copy(theta, saved.Theta)
				instance.Copy(x, saved.X)
			}
			cont := opts.ADMM
			cont.MaxIter, cont.Eps = opts.FallbackIter, opts.PPDNA.Eps
			t0 = time.Now()
			tail := ws.admm(omega, theta, x, cont)
			tail.Elapsed = time.Since(t0)
			stages = append(stages, tail)
		}
	}

	info := merge(stages)
	info.Elapsed = time.Since(began)

	return Solution{Omega: omega, Theta: theta, X: x}, info, nil
}

// merge folds stage records into one Info labelled MethodWarmPPDNA.
func merge(stages []Info) Info {
	last := stages[len(stages)-1]
	info := Info{
		Method: MethodWarmPPDNA,
		Status: last.Status,
		KKT:    last.KKT,
		Rho:    stages[0].Rho,
	}
	for _, st := range stages {
		info.Iterations += st.Iterations
		info.Residuals = append(info.Residuals, st.Residuals...)
		info.IterTimes = append(info.IterTimes, st.IterTimes...)
		info.Fallbacks += st.Fallbacks
		info.NewtonSteps += st.NewtonSteps
		info.CGSteps += st.CGSteps
		if st.Method == MethodPPDNA {
			info.Sigma = st.Sigma
		}
		if st.Method == MethodADMM {
			info.Rho = st.Rho
		}
		info.Stages = append(info.Stages, st.stage())
	}

	return info
}
