package main

import (
	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/selection"
	"github.com/katalvlaran/glasso/solver"
)

type stageReport struct {
	Method     string  `yaml:"method"`
	Status     string  `yaml:"status"`
	Iterations int     `yaml:"iterations"`
	KKT        float64 `yaml:"kkt"`
	Elapsed    string  `yaml:"elapsed"`
}

type infoReport struct {
	Method      string        `yaml:"method"`
	Status      string        `yaml:"status"`
	Iterations  int           `yaml:"iterations"`
	KKT         float64       `yaml:"kkt"`
	Elapsed     string        `yaml:"elapsed"`
	Fallbacks   int           `yaml:"fallbacks,omitempty"`
	NewtonSteps int           `yaml:"newton_steps,omitempty"`
	CGSteps     int           `yaml:"cg_steps,omitempty"`
	Stages      []stageReport `yaml:"stages,omitempty"`
}

type instanceReport struct {
	ID         int         `yaml:"id"`
	Edges      int         `yaml:"edges"`
	Components int         `yaml:"components"`
	Theta      [][]float64 `yaml:"theta,omitempty,flow"`
}

type solveReport struct {
	Reg       string           `yaml:"reg"`
	Lambda1   float64          `yaml:"lambda1"`
	Lambda2   float64          `yaml:"lambda2"`
	Sparsity  float64          `yaml:"sparsity"`
	Info      infoReport       `yaml:"info"`
	Instances []instanceReport `yaml:"instances"`
}

type selectReport struct {
	RunID     string           `yaml:"run_id"`
	Reg       string           `yaml:"reg"`
	Criterion string           `yaml:"criterion"`
	Lambda1   float64          `yaml:"lambda1"`
	Lambda2   float64          `yaml:"lambda2"`
	Index     [2]int           `yaml:"index,flow"`
	Calls     int              `yaml:"calls"`
	Skipped   int              `yaml:"skipped"`
	Mask      string           `yaml:"mask"`
	AIC       [][]float64      `yaml:"aic,flow"`
	EBIC      [][]float64      `yaml:"ebic,flow"`
	Sparsity  [][]float64      `yaml:"sparsity,flow"`
	Elapsed   string           `yaml:"elapsed"`
	Instances []instanceReport `yaml:"instances"`
}

type compareReport struct {
	Reg     string     `yaml:"reg"`
	Lambda1 float64    `yaml:"lambda1"`
	Lambda2 float64    `yaml:"lambda2"`
	ADMM    infoReport `yaml:"admm"`
	Warm    infoReport `yaml:"warm_ppdna"`
	// RelDiff is ‖Θ_admm − Θ_warm‖ / ‖Θ_warm‖.
	RelDiff float64 `yaml:"rel_diff"`
}

func stageOf(st solver.Stage) stageReport {
	return stageReport{
		Method:     st.Method,
		Status:     st.Status.String(),
		Iterations: st.Iterations,
		KKT:        st.KKT,
		Elapsed:    st.Elapsed.String(),
	}
}

func infoOf(in solver.Info) infoReport {
	r := infoReport{
		Method:      in.Method,
		Status:      in.Status.String(),
		Iterations:  in.Iterations,
		KKT:         in.KKT,
		Elapsed:     in.Elapsed.String(),
		Fallbacks:   in.Fallbacks,
		NewtonSteps: in.NewtonSteps,
		CGSteps:     in.CGSteps,
	}
	for _, st := range in.Stages {
		r.Stages = append(r.Stages, stageOf(st))
	}

	return r
}

// instancesOf lists per-instance edge and component counts and, when
// withMatrices is set, the estimated precision matrices.
func instancesOf(theta instance.Collection, withMatrices bool) []instanceReport {
	if theta == nil {
		return nil
	}
	out := make([]instanceReport, theta.Len())
	for k := range out {
		m := theta.At(k)
		out[k] = instanceReport{
			ID:         theta.ID(k),
			Edges:      selection.NumEdges(m, selection.EdgeTol),
			Components: len(selection.Components(m, selection.EdgeTol)),
		}
		if withMatrices {
			out[k].Theta = rowsOf(m)
		}
	}

	return out
}
