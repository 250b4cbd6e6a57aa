package solver

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/glasso/instance"
)

// ADMM solves prob by the alternating direction method of multipliers over
// (Ω, Θ, X), starting from start. start.Omega is required; Theta and X
// default to zero.
//
// Stopping rule, checked after every sweep:
//
//	r = ‖Ω − Θ‖ / (1 + max(‖Ω‖, ‖Θ‖)) ≤ eps
//	s = ρ‖Θ − Θ_prev‖ / (1 + ‖X‖)    ≤ eps
//
// With opts.Balance, ρ is doubled when r > 10s and halved when s > 10r,
// within [1e-4, 1e4].
//
// Errors:
//   - ErrInvalidInput for a malformed problem, start or options.
func ADMM(prob Problem, start Start, opts ADMMOptions) (Solution, Info, error) {
	began := time.Now()
	if err := opts.validate(); err != nil {
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

	info := ws.admm(omega, theta, x, opts)
	info.Elapsed = time.Since(began)

	return Solution{Omega: omega, Theta: theta, X: x}, info, nil
}

// admm runs the iteration on the given iterates in place.
func (ws *workspace) admm(omega, theta, x instance.Collection, opts ADMMOptions) Info {
	log := loggerOf(opts.Logger).WithField("solver", MethodADMM)
	info := Info{Method: MethodADMM, Status: NonConvergence}
	if opts.Measure {
		info.IterTimes = make([]time.Duration, 0, opts.MaxIter)
	}

	rho := opts.Rho
	thetaPrev := theta.Clone()
	lastGood := Solution{Omega: omega.Clone(), Theta: theta.Clone(), X: x.Clone()}

	for iter := 1; iter <= opts.MaxIter; iter++ {
		t0 := time.Now()
		instance.Copy(thetaPrev, theta)

		gap, err := ws.admmStep(omega, theta, x, rho)
		if err != nil || !instance.AllFinite(x) {
			log.WithError(err).WithField("iter", iter).Warn("iterate broke down, returning last finite iterate")
			instance.Copy(omega, lastGood.Omega)
			instance.Copy(theta, lastGood.Theta)
			instance.Copy(x, lastGood.X)
			info.Status = Breakdown
			break
		}
		info.Iterations = iter

		rPri := gap / (1 + math.Max(instance.Norm(omega), instance.Norm(theta)))
		rDual := rho * instance.Distance(theta, thetaPrev) / (1 + instance.Norm(x))
		info.Residuals = append(info.Residuals, Residual{Primal: rPri, Dual: rDual})
		if opts.Measure {
			info.IterTimes = append(info.IterTimes, time.Since(t0))
		}
		if opts.Verbose {
			log.WithFields(logrus.Fields{
				"iter":   iter,
				"r_pri":  rPri,
				"r_dual": rDual,
				"rho":    rho,
			}).Info("admm iteration")
		}

		if rPri <= opts.Eps && rDual <= opts.Eps {
			info.Status = Converged
			break
		}
		if opts.Balance {
			switch {
			case rPri > balanceMu*rDual:
				rho = math.Min(rho*balanceTau, rhoMax)
			case rDual > balanceMu*rPri:
				rho = math.Max(rho/balanceTau, rhoMin)
			}
		}
		instance.Copy(lastGood.Omega, omega)
		instance.Copy(lastGood.Theta, theta)
		instance.Copy(lastGood.X, x)
	}

	info.Rho = rho
	eta, err := ws.kkt(omega, theta, x)
	if err != nil {
		eta = math.NaN()
	}
	info.KKT = eta
	if info.Status == NonConvergence {
		log.WithFields(logrus.Fields{"max_iter": opts.MaxIter, "kkt": eta}).Warn("admm did not converge")
	}

	return info
}
