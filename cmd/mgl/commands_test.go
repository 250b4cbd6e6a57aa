package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const smallProblem = `
reg: ggl
lambda1: 0.1
lambda2: 0.05
instances:
  - cov: [[1.0, 0.4, 0.1], [0.4, 1.2, 0.2], [0.1, 0.2, 0.9]]
    n: 60
  - cov: [[1.1, 0.3, 0.0], [0.3, 1.0, 0.25], [0.0, 0.25, 1.0]]
    n: 80
`

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, root.Execute())

	return out.Bytes()
}

func TestSolveCommand(t *testing.T) {
	path := writeFile(t, "problem.yaml", smallProblem)

	for _, method := range []string{"admm", "ppdna", "warm-ppdna"} {
		t.Run(method, func(t *testing.T) {
			var rep solveReport
			require.NoError(t, yaml.Unmarshal(execute(t, "solve", path, "--method", method), &rep))

			assert.Equal(t, "GGL", rep.Reg)
			assert.Equal(t, method, rep.Info.Method)
			if method != "ppdna" {
				assert.Equal(t, "converged", rep.Info.Status)
				assert.Less(t, rep.Info.KKT, 1e-3)
			}
			require.Len(t, rep.Instances, 2)
			for k, in := range rep.Instances {
				assert.Equal(t, k, in.ID)
				require.Len(t, in.Theta, 3)
				for i := range in.Theta {
					assert.Greater(t, in.Theta[i][i], 0.0)
					assert.InDelta(t, in.Theta[i][(i+1)%3], in.Theta[(i+1)%3][i], 1e-8)
				}
			}
		})
	}
}

func TestSolveCommandOverridesAndFile(t *testing.T) {
	path := writeFile(t, "problem.yaml", smallProblem)
	report := filepath.Join(t.TempDir(), "report.yaml")

	out := execute(t, "solve", path, "--method", "admm", "--lambda1", "10", "--matrices=false", "-o", report)
	assert.Empty(t, out)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var rep solveReport
	require.NoError(t, yaml.Unmarshal(data, &rep))
	assert.Equal(t, 10.0, rep.Lambda1)
	// λ1 far above every |S_ij| empties the graph.
	assert.Zero(t, rep.Sparsity)
	for _, in := range rep.Instances {
		assert.Zero(t, in.Edges)
		assert.Equal(t, 3, in.Components)
		assert.Nil(t, in.Theta)
	}
}

func TestSelectCommand(t *testing.T) {
	path := writeFile(t, "problem.yaml", smallProblem)

	var rep selectReport
	out := execute(t, "select", path, "--method", "admm", "--criterion", "AIC", "--grid1", "3", "--grid2", "2")
	require.NoError(t, yaml.Unmarshal(out, &rep))

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, "AIC", rep.Criterion)
	require.Len(t, rep.AIC, 2)
	require.Len(t, rep.AIC[0], 3)
	assert.Equal(t, 6, rep.Calls+rep.Skipped)
	assert.GreaterOrEqual(t, rep.Index[0], 0)
	assert.Less(t, rep.Index[0], 2)
	assert.GreaterOrEqual(t, rep.Index[1], 0)
	assert.Less(t, rep.Index[1], 3)
	assert.Equal(t, rep.AIC[rep.Index[0]][rep.Index[1]], minFinite(rep.AIC))
	assert.Len(t, rep.Instances, 2)
}

func TestCompareCommand(t *testing.T) {
	path := writeFile(t, "problem.yaml", smallProblem)

	var rep compareReport
	require.NoError(t, yaml.Unmarshal(execute(t, "compare", path), &rep))
	assert.Equal(t, "admm", rep.ADMM.Method)
	assert.Equal(t, "warm-ppdna", rep.Warm.Method)
	assert.NotEmpty(t, rep.Warm.Stages)
	assert.Less(t, rep.RelDiff, 1e-2)
}

func TestCommandErrors(t *testing.T) {
	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"solve", filepath.Join(t.TempDir(), "none.yaml")})
	require.Error(t, root.Execute())

	path := writeFile(t, "problem.yaml", smallProblem)
	root = newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"solve", path, "--method", "newton"})
	require.ErrorIs(t, root.Execute(), errUnknownMethod)
}

func minFinite(t [][]float64) float64 {
	best := 0.0
	found := false
	for _, row := range t {
		for _, v := range row {
			if v == v && (!found || v < best) {
				best, found = v, true
			}
		}
	}

	return best
}
