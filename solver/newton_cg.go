package solver

import (
	"math"

	"github.com/katalvlaran/glasso/instance"
)

// dualPoint is the state of the proximal subproblem at one dual X.
type dualPoint struct {
	x     instance.Collection
	omega instance.Collection // Ω*(X) = phiplus_σ(Ω_t − σ(S + X))
	theta instance.Collection // Θ*(X) = prox_{σP}(Θ_t + σX)
	v     instance.Collection // Θ_t + σX
	grad  instance.Collection // Ω* − Θ*
	eig   *eigenStack
	value float64
}

func newDualPoint(shape instance.Collection) *dualPoint {
	return &dualPoint{
		x:     instance.ZerosLike(shape),
		omega: instance.ZerosLike(shape),
		theta: instance.ZerosLike(shape),
		v:     instance.ZerosLike(shape),
		grad:  instance.ZerosLike(shape),
		eig:   newEigenStack(shape),
	}
}

// subproblem is the strongly concave dual of one proximal point step,
//
//	φ(X) = min_Ω { f(Ω) + ⟨X, Ω⟩ + ‖Ω − Ω_t‖²/(2σ) }
//	     + min_Θ { P(Θ) − ⟨X, Θ⟩ + ‖Θ − Θ_t‖²/(2σ) },
//
// with f(Ω) = −log det Ω + tr(SΩ). Its gradient is Ω*(X) − Θ*(X) and its
// generalized Hessian is −σ(J_Ω + J_P).
type subproblem struct {
	ws             *workspace
	sigma          float64
	omegaT, thetaT instance.Collection
	cur, trial     *dualPoint

	// CG vectors
	d, r, p, ap, jp instance.Collection
}

func newSubproblem(ws *workspace) *subproblem {
	s := ws.s
	return &subproblem{
		ws:    ws,
		cur:   newDualPoint(s),
		trial: newDualPoint(s),
		d:     instance.ZerosLike(s),
		r:     instance.ZerosLike(s),
		p:     instance.ZerosLike(s),
		ap:    instance.ZerosLike(s),
		jp:    instance.ZerosLike(s),
	}
}

// eval fills pt for its current pt.x. The value is φ up to the constant
// (‖Ω_t‖² + ‖Θ_t‖²)/(2σ).
func (sp *subproblem) eval(pt *dualPoint) error {
	ws, sigma := sp.ws, sp.sigma

	w := ws.tmp
	instance.AddScaledTo(w, sp.omegaT, -sigma, ws.s)
	instance.AddScaled(w, -sigma, pt.x)
	nw := instance.Norm(w)
	if err := pt.eig.phiplus(pt.omega, w, sigma); err != nil {
		return err
	}

	instance.AddScaledTo(pt.v, sp.thetaT, sigma, pt.x)
	ws.op.Prox(pt.theta, pt.v, sigma*ws.l1, sigma*ws.l2)
	dv := instance.Distance(pt.theta, pt.v)
	nv := instance.Norm(pt.v)

	instance.Sub(pt.grad, pt.omega, pt.theta)
	pt.value = pt.eig.barrier() +
		ws.op.Value(pt.theta, ws.l1, ws.l2) + dv*dv/(2*sigma) -
		(nw*nw+nv*nv)/(2*sigma)

	return nil
}

// hessian writes (J_Ω + J_P)[d] into dst for the current point.
func (sp *subproblem) hessian(jp jacobianApplier, dst, d instance.Collection) {
	sp.cur.eig.applyLowner(dst, d)
	jp.Apply(sp.jp, d)
	instance.AddScaled(dst, 1, sp.jp)
}

type jacobianApplier interface {
	Apply(dst, d instance.Collection)
}

// newtonResult reports the inner solve to the outer loop.
type newtonResult struct {
	ok       bool
	steps    int
	cgSteps  int
	gradNorm float64
}

// solve runs semismooth Newton steps from X until ‖∇φ‖ ≤ tol or the budget
// runs out. ok is false when the iteration stagnated: a non-ascent direction,
// a failed line search, a non-finite value or no decrease of ‖∇φ‖ at all.
func (sp *subproblem) solve(tol float64, opts PPDNAOptions) newtonResult {
	ws := sp.ws
	res := newtonResult{}
	if err := sp.eval(sp.cur); err != nil || math.IsNaN(sp.cur.value) {
		return res
	}
	g0 := instance.Norm(sp.cur.grad)
	res.gradNorm = g0

	for res.steps < opts.MaxNewton {
		if res.gradNorm <= tol {
			res.ok = true
			return res
		}
		res.steps++

		jp := ws.op.Jacobian(sp.cur.v, sp.sigma*ws.l1, sp.sigma*ws.l2)
		sp.cur.eig.prepareLowner()
		cgTol := math.Min(opts.CGTol, math.Pow(res.gradNorm, 1+opts.CGTau)) / sp.sigma
		res.cgSteps += sp.cg(jp, 1/sp.sigma, cgTol, opts.CGMaxIter)

		slope := instance.Inner(sp.cur.grad, sp.d)
		if !(slope > 0) {
			return res
		}

		alpha, accepted := 1.0, false
		for ls := 0; ls < maxBacktrack; ls++ {
			instance.AddScaledTo(sp.trial.x, sp.cur.x, alpha, sp.d)
			err := sp.eval(sp.trial)
			if err == nil && !math.IsNaN(sp.trial.value) && !math.IsInf(sp.trial.value, 0) &&
				sp.trial.value >= sp.cur.value+armijoMu*alpha*slope {
				accepted = true
				break
			}
			alpha *= armijoShrink
		}
		if !accepted {
			return res
		}
		sp.cur, sp.trial = sp.trial, sp.cur
		res.gradNorm = instance.Norm(sp.cur.grad)
	}
	res.ok = res.gradNorm <= tol || res.gradNorm < g0

	return res
}

// cg solves (J_Ω + J_P) D = scale·∇φ for sp.d by conjugate gradients from
// zero, stopping at ‖residual‖ ≤ tol. It returns the iteration count.
func (sp *subproblem) cg(jp jacobianApplier, scale, tol float64, maxIter int) int {
	d, r, p, ap := sp.d, sp.r, sp.p, sp.ap

	instance.Scale(d, 0)
	instance.Copy(r, sp.cur.grad)
	instance.Scale(r, scale)
	instance.Copy(p, r)
	rr := instance.Inner(r, r)

	iter := 0
	for iter < maxIter && math.Sqrt(rr) > tol {
		iter++
		sp.hessian(jp, ap, p)
		pap := instance.Inner(p, ap)
		if !(pap > 0) {
			break
		}
		a := rr / pap
		instance.AddScaled(d, a, p)
		instance.AddScaled(r, -a, ap)
		next := instance.Inner(r, r)
		instance.AddScaledTo(p, r, next/rr, p)
		rr = next
	}
	if instance.Norm(d) == 0 {
		// degenerate operator: steepest ascent keeps the step well defined
		instance.Copy(d, sp.cur.grad)
		instance.Scale(d, scale)
	}

	return iter
}
