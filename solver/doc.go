// Package solver estimates K sparse precision matrices jointly by solving
//
//	min_{Ω,Θ}  Σ_k [ −log det Ω_k + tr(S_k Ω_k) ] + P(Θ)   s.t.  Ω = Θ
//
// where P is a GGL or FGL penalty (see package penalty) and S is a collection
// of empirical covariances.
//
// Three entry points share the same call contract:
//
//   - ADMM: three-block alternating direction method over (Ω, Θ, X) with
//     optional residual balancing of the step size rho.
//   - PPDNA: proximal point outer loop whose strongly concave dual
//     subproblems are solved by a semismooth Newton method with a
//     conjugate-gradient inner solve.
//   - WarmPPDNA: a short loose ADMM pass followed by PPDNA.
//
// Every call returns a Solution and an Info record. Running out of
// iterations is not an error: Info.Status reports NonConvergence and the last
// iterate is returned. Errors are reserved for invalid input (ErrInvalidInput).
//
// Solvers are single-threaded and keep all state local to the call, so
// independent calls may run concurrently.
package solver
