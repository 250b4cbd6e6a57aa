// Package glasso estimates several related sparse precision matrices at
// once: the Multiple Graphical Lasso.
//
// Given K empirical covariances S_1..S_K (one per instance, possibly of
// different order), it minimizes
//
//	Σ_k ( tr(S_k Θ_k) − log det Θ_k ) + P(Θ)
//
// where P is an element-wise L1 term plus a coupling term that either
// shares sparsity across instances (GGL, group penalty) or fuses successive
// instances (FGL, fused penalty).
//
// What is inside:
//
//	matrix/    dense matrices, symmetric eigendecomposition, log-det
//	instance/  regular (K×p×p) and irregular (keyed) instance stacks, groups
//	penalty/   GGL/FGL proximal operator and its generalized Jacobian
//	solver/    ADMM, PPDNA (proximal point + semismooth Newton-CG), WarmPPDNA
//	selection/ (λ1, λ2) grid search by AIC/eBIC, recovery metrics
//	cmd/mgl    command line: solve, select, compare
//
// Quick start:
//
//	S, n, _ := instance.SampleCovariances(x1, x2, x3)
//	prob := solver.Problem{S: S, Lambda1: 0.05, Lambda2: 0.02, Reg: penalty.GGL}
//	sol, info, err := solver.WarmPPDNA(prob, solver.Start{Omega: instance.IdentityLike(S)}, solver.DefaultWarmOptions())
//
// or let the grid pick the penalty:
//
//	res, err := selection.ModelSelect(S, n, penalty.GGL, selection.EBIC,
//		selection.ADMMSolver(solver.DefaultADMMOptions()), selection.DefaultOptions())
//
//	go get github.com/katalvlaran/glasso
package glasso
