package solver_test

import (
	"fmt"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/matrix"
	"github.com/katalvlaran/glasso/penalty"
	"github.com/katalvlaran/glasso/solver"
)

// ExampleADMM estimates two 2×2 precision matrices whose only correlation is
// below lambda1, so the estimated edge vanishes in both instances.
func ExampleADMM() {
	s1, _ := matrix.NewDenseFrom(2, 2, []float64{1, 0.3, 0.3, 1})
	s2, _ := matrix.NewDenseFrom(2, 2, []float64{1, 0.2, 0.2, 1})
	S, _ := instance.ArrayOf(s1, s2)

	logger, _ := logtest.NewNullLogger()
	opts := solver.DefaultADMMOptions()
	opts.Logger = logger

	sol, info, err := solver.ADMM(
		solver.Problem{S: S, Lambda1: 0.5, Lambda2: 0.1, Reg: penalty.GGL},
		solver.Start{Omega: instance.IdentityLike(S)},
		opts,
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(info.Status)
	th := sol.Theta.At(0).Raw()
	fmt.Printf("%.3f %.3f\n%.3f %.3f\n", th[0], th[1], th[2], th[3])
	// Output:
	// converged
	// 1.000 0.000
	// 0.000 1.000
}
