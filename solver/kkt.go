package solver

import (
	"math"

	"github.com/katalvlaran/glasso/instance"
)

// kkt returns the relative KKT residual of (Ω, Θ, X):
//
//	η = max( ‖Θ − prox_P(Θ + X)‖ / (1 + ‖Θ‖),
//	         ‖Θ − Ω‖ / (1 + ‖Θ‖),
//	         ‖Ω − phiplus_1(Ω − S − X)‖ / (1 + ‖Ω‖) )
//
// It is zero exactly at a solution: X ∈ ∂P(Θ), Ω = Θ and Ω⁻¹ = S + X.
func (ws *workspace) kkt(omega, theta, x instance.Collection) (float64, error) {
	nTheta := instance.Norm(theta)
	nOmega := instance.Norm(omega)

	instance.AddScaledTo(ws.tmp, theta, 1, x)
	ws.op.Prox(ws.tmp, ws.tmp, ws.l1, ws.l2)
	eta := instance.Distance(theta, ws.tmp) / (1 + nTheta)

	eta = math.Max(eta, instance.Distance(theta, omega)/(1+nTheta))

	instance.Sub(ws.tmp, omega, ws.s)
	instance.AddScaled(ws.tmp, -1, x)
	if err := ws.eig.phiplus(ws.tmp, ws.tmp, 1); err != nil {
		return math.NaN(), err
	}
	eta = math.Max(eta, instance.Distance(omega, ws.tmp)/(1+nOmega))

	return eta, nil
}

// admmStep performs one ADMM sweep with step size rho in place:
//
//	Ω ← phiplus_{1/ρ}(Θ − (X + S)/ρ)
//	Θ ← prox_{P/ρ}(Ω + X/ρ)
//	X ← X + ρ(Ω − Θ)
//
// and returns the primal difference ‖Ω − Θ‖.
func (ws *workspace) admmStep(omega, theta, x instance.Collection, rho float64) (float64, error) {
	inv := 1 / rho

	instance.AddScaledTo(ws.tmp, theta, -inv, x)
	instance.AddScaled(ws.tmp, -inv, ws.s)
	if err := ws.eig.phiplus(omega, ws.tmp, inv); err != nil {
		return math.NaN(), err
	}

	instance.AddScaledTo(ws.tmp, omega, inv, x)
	ws.op.Prox(theta, ws.tmp, inv*ws.l1, inv*ws.l2)

	instance.Sub(ws.tmp, omega, theta)
	instance.AddScaled(x, rho, ws.tmp)

	return instance.Norm(ws.tmp), nil
}
