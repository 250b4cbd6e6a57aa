// Command mgl solves Multiple Graphical Lasso problems, runs model
// selection over a (λ1, λ2) grid and cross-checks the solvers.
//
// Usage:
//
//	mgl solve problem.yaml --method admm
//	mgl select problem.yaml --criterion AIC --grid1 8 --grid2 4
//	mgl compare problem.yaml
//
// Every flag has a config key (--config file.yaml) and an MGL_ environment
// variable, e.g. MGL_SOLVER_EPS or MGL_SELECTION_GRID1.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mgl: %v\n", err)
		os.Exit(1)
	}
}
