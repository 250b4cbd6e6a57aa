// Package selection chooses (λ1, λ2) for the joint graphical lasso by grid
// search with information criteria.
//
// ModelSelect walks a num2×num1 grid in row-major order (rows follow λ2,
// columns follow λ1), seeding each solver call with the previous call's
// result (a Carry). At every evaluated point it records AIC, eBIC and the
// mean edge density of Θ. When the density reaches Options.Threshold the
// SkipMask marks every point with both indices at least as large, and those
// points are never solved.
//
// The pruning rule assumes density does not increase further along both
// axes. That holds for typical problems but is not a property of the
// penalties; set Options.DisablePruning to evaluate the full grid.
//
// The package also carries the metrics used to judge an estimate against a
// known truth: DiscoveryRate, RelativeError, Adjacency and MeanSparsity.
package selection
