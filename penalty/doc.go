// Package penalty implements the two cross-instance penalties of the joint
// graphical lasso and the operators the solvers need from them.
//
// For a collection Θ = (Θ_1, ..., Θ_K) the penalties are
//
//	GGL: P(Θ) = λ1 Σ_k Σ_{i≠j} |Θ_k[i,j]| + λ2 Σ_{i≠j} ‖(Θ_1[i,j], ..., Θ_K[i,j])‖₂
//	FGL: P(Θ) = λ1 Σ_k Σ_{i≠j} |Θ_k[i,j]| + λ2 Σ_{i≠j} Σ_{k≥2} |Θ_k[i,j] − Θ_{k−1}[i,j]|
//
// where the group sums run over the coupled entries described by an
// instance.Groups. Diagonals are never penalized. Entries not covered by any
// group carry the λ1 term only.
//
// An Operator evaluates P, its proximal map and a generalized Jacobian of the
// proximal map (used by the semismooth Newton solver).
package penalty
