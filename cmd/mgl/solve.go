package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/glasso/selection"
)

func newSolveCmd(a *app) *cobra.Command {
	var l1, l2 float64
	cmd := &cobra.Command{
		Use:   "solve PROBLEM",
		Short: "Solve one problem at a fixed (λ1, λ2)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProblem(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("lambda1") {
				p.Lambda1 = l1
			}
			if cmd.Flags().Changed("lambda2") {
				p.Lambda2 = l2
			}

			sc := a.cfg.Solver
			solve, err := sc.solveFunc(sc.Method, a.log)
			if err != nil {
				return err
			}
			sol, info, err := solve(p.solverProblem(), p.start())
			if err != nil {
				return err
			}

			return a.writeReport(cmd, solveReport{
				Reg:       p.Reg.String(),
				Lambda1:   p.Lambda1,
				Lambda2:   p.Lambda2,
				Sparsity:  selection.MeanSparsity(sol.Theta, selection.EdgeTol),
				Info:      infoOf(info),
				Instances: instancesOf(sol.Theta, a.cfg.Output.Matrices),
			})
		},
	}
	cmd.Flags().Float64Var(&l1, "lambda1", 0, "override the problem's lambda1")
	cmd.Flags().Float64Var(&l2, "lambda2", 0, "override the problem's lambda2")

	return cmd
}
