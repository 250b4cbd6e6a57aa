package solver

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/glasso/instance"
)

// PPDNA solves prob by a proximal point method on the primal whose dual
// subproblems are solved by semismooth Newton-CG. start.Theta is required;
// Omega defaults to Theta and X to zero. Because the Newton method converges
// only locally, PPDNA is meant to be started close to the solution (see
// WarmPPDNA).
//
// Each outer step t:
//  1. Stop when the relative KKT residual η ≤ eps.
//  2. Maximize the dual φ_σ around (Ω_t, Θ_t) to ‖∇φ‖ ≤ ε_t/√σ.
//  3. On stagnation, take one ADMM step with ρ = 1/σ instead (a fallback).
//  4. σ ← min(growth·σ, 1e6).
//
// Errors:
//   - ErrInvalidInput for a malformed problem, start or options.
func PPDNA(prob Problem, start Start, opts PPDNAOptions) (Solution, Info, error) {
	began := time.Now()
	if err := opts.validate(); err != nil {
		return Solution{}, Info{}, err
	}
	ws, err := newWorkspace(prob)
	if err != nil {
		return Solution{}, Info{}, err
	}
	omega, theta, x, err := ws.ppdnaStart(start)
	if err != nil {
		return Solution{}, Info{}, err
	}

	info := ws.ppdna(omega, theta, x, opts)
	info.Elapsed = time.Since(began)

	return Solution{Omega: omega, Theta: theta, X: x}, info, nil
}

func (ws *workspace) ppdna(omega, theta, x instance.Collection, opts PPDNAOptions) Info {
	log := loggerOf(opts.Logger).WithField("solver", MethodPPDNA)
	info := Info{Method: MethodPPDNA, Status: NonConvergence}
	if opts.Measure {
		info.IterTimes = make([]time.Duration, 0, opts.MaxIter)
	}

	eta, err := ws.kkt(omega, theta, x)
	if err != nil {
		log.WithError(err).Warn("initial point is not usable")
		info.Status, info.KKT = Breakdown, math.NaN()
		return info
	}

	sp := newSubproblem(ws)
	sigma := opts.Sigma0
	for eta > opts.Eps && info.Iterations < opts.MaxIter {
		t0 := time.Now()
		t := info.Iterations
		info.Iterations++

		sp.sigma = sigma
		sp.omegaT, sp.thetaT = omega, theta
		instance.Copy(sp.cur.x, x)

		epsT := math.Max(opts.InnerEps0*math.Pow(0.5, float64(t)), 0.1*opts.Eps)
		res := sp.solve(epsT/math.Sqrt(sigma), opts)
		info.NewtonSteps += res.steps
		info.CGSteps += res.cgSteps

		if res.ok {
			instance.Copy(omega, sp.cur.omega)
			instance.Copy(theta, sp.cur.theta)
			instance.Copy(x, sp.cur.x)
		} else {
			info.Fallbacks++
			log.WithFields(logrus.Fields{
				"iter":      info.Iterations,
				"sigma":     sigma,
				"grad_norm": res.gradNorm,
			}).Debug("newton-cg stagnated, taking an admm step")
			if _, err = ws.admmStep(omega, theta, x, 1/sigma); err != nil {
				log.WithError(err).Warn("fallback step broke down")
				info.Status = Breakdown
				break
			}
		}

		if eta, err = ws.kkt(omega, theta, x); err != nil {
			info.Status = Breakdown
			break
		}
		info.Residuals = append(info.Residuals, Residual{KKT: eta, Newton: res.gradNorm})
		if opts.Measure {
			info.IterTimes = append(info.IterTimes, time.Since(t0))
		}
		if opts.Verbose {
			log.WithFields(logrus.Fields{
				"iter":   info.Iterations,
				"eta":    eta,
				"sigma":  sigma,
				"newton": res.steps,
			}).Info("ppdna iteration")
		}
		sigma = math.Min(opts.SigmaGrowth*sigma, sigmaMax)
	}

	if info.Status != Breakdown && eta <= opts.Eps {
		info.Status = Converged
	}
	info.KKT, info.Sigma = eta, sigma
	if info.Status == NonConvergence {
		log.WithFields(logrus.Fields{"max_iter": opts.MaxIter, "kkt": eta}).Warn("ppdna did not converge")
	}

	return info
}
