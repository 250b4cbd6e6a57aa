package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/glasso/selection"
)

func newSelectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select PROBLEM",
		Short: "Select (λ1, λ2) over a grid by AIC or eBIC",
		Long: `select walks the default λ grid of the problem's regularizer row by row,
warm-starting each solve from the previous point, and keeps the point with
the smallest information criterion. The lambda values in the problem file
are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProblem(args[0])
			if err != nil {
				return err
			}
			crit, err := selection.ParseCriterion(a.cfg.Selection.Criterion)
			if err != nil {
				return err
			}
			sc := a.cfg.Solver
			solve, err := sc.solveFunc(sc.Method, a.log)
			if err != nil {
				return err
			}
			opts := a.cfg.Selection.options(a.log)
			opts.Groups = p.Groups

			res, err := selection.ModelSelect(p.S, p.N, p.Reg, crit, solve, opts)
			if res == nil {
				return err
			}
			if werr := a.writeReport(cmd, selectReportOf(res, a.cfg.Output.Matrices)); werr != nil {
				return werr
			}

			return err
		},
	}

	f := cmd.Flags()
	f.String("criterion", "", "AIC or eBIC")
	f.Int("grid1", 0, "number of lambda1 values")
	f.Int("grid2", 0, "number of lambda2 values")
	f.Float64("gamma", 0, "eBIC gamma")
	f.Float64("threshold", 0, "edge density that prunes the rest of the grid")
	f.Bool("no-prune", false, "evaluate every grid point")
	bindFlags(a.v, f, map[string]string{
		"selection.criterion": "criterion",
		"selection.grid1":     "grid1",
		"selection.grid2":     "grid2",
		"selection.gamma":     "gamma",
		"selection.threshold": "threshold",
		"selection.no_prune":  "no-prune",
	})

	return cmd
}

func selectReportOf(res *selection.Result, withMatrices bool) selectReport {
	return selectReport{
		RunID:     res.RunID,
		Reg:       res.Reg.String(),
		Criterion: res.Criterion.String(),
		Lambda1:   res.Lambda1,
		Lambda2:   res.Lambda2,
		Index:     res.Index,
		Calls:     res.Calls,
		Skipped:   res.Skip.Count(),
		Mask:      res.Skip.String(),
		AIC:       res.AIC,
		EBIC:      res.EBIC,
		Sparsity:  res.Sparsity,
		Elapsed:   res.Elapsed.String(),
		Instances: instancesOf(res.Best.Theta, withMatrices),
	}
}
