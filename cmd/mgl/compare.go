package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/glasso/selection"
	"github.com/katalvlaran/glasso/solver"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare PROBLEM",
		Short: "Run ADMM and WarmPPDNA side by side and report their difference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProblem(args[0])
			if err != nil {
				return err
			}
			rep, err := compare(p, a.cfg.Solver, a.log)
			if err != nil {
				return err
			}

			return a.writeReport(cmd, rep)
		},
	}
}

// compare solves p with both methods concurrently. The calls share only
// read-only inputs.
func compare(p *problem, sc SolverConfig, l logrus.FieldLogger) (compareReport, error) {
	prob := p.solverProblem()
	var (
		admm, warm         solver.Solution
		admmInfo, warmInfo solver.Info
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		admm, admmInfo, err = solver.ADMM(prob, p.start(), sc.admmOptions(l))
		return err
	})
	g.Go(func() error {
		var err error
		warm, warmInfo, err = solver.WarmPPDNA(prob, p.start(), sc.warmOptions(l))
		return err
	})
	if err := g.Wait(); err != nil {
		return compareReport{}, err
	}

	rel, err := selection.RelativeError(admm.Theta, warm.Theta)
	if err != nil {
		return compareReport{}, err
	}

	return compareReport{
		Reg:     p.Reg.String(),
		Lambda1: p.Lambda1,
		Lambda2: p.Lambda2,
		ADMM:    infoOf(admmInfo),
		Warm:    infoOf(warmInfo),
		RelDiff: rel,
	}, nil
}
