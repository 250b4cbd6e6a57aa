package selection_test

import (
	"math"
	"math/rand"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/matrix"
	"github.com/katalvlaran/glasso/penalty"
	"github.com/katalvlaran/glasso/selection"
	"github.com/katalvlaran/glasso/solver"
)

// fakeSolver returns identity Θ plus one edge of size edge(λ1, λ2) at (0,1)
// and records every call.
type fakeSolver struct {
	edge     func(l1, l2 float64) float64
	calls    [][2]float64
	starts   []solver.Start
	returned []instance.Collection
}

func (f *fakeSolver) solve(prob solver.Problem, start solver.Start) (solver.Solution, solver.Info, error) {
	f.calls = append(f.calls, [2]float64{prob.Lambda1, prob.Lambda2})
	f.starts = append(f.starts, start)
	theta := instance.IdentityLike(prob.S)
	v := f.edge(prob.Lambda1, prob.Lambda2)
	for k := 0; k < theta.Len(); k++ {
		p := theta.Dim(k)
		theta.At(k).Raw()[1] = v
		theta.At(k).Raw()[p] = v
	}
	f.returned = append(f.returned, theta)

	return solver.Solution{Omega: theta, Theta: theta, X: instance.ZerosLike(theta)},
		solver.Info{Status: solver.Converged, Iterations: 1}, nil
}

type SelectSuite struct {
	suite.Suite
	S    *instance.Array
	opts selection.Options
}

func (s *SelectSuite) SetupTest() {
	S, err := instance.NewArray(2, 4)
	s.Require().NoError(err)
	for k := 0; k < 2; k++ {
		for i := 0; i < 4; i++ {
			s.Require().NoError(S.At(k).Set(i, i, 1))
		}
	}
	s.S = S
	s.opts = selection.DefaultOptions()
	s.opts.Logger, _ = logtest.NewNullLogger()
}

func TestSelectSuite(t *testing.T) {
	suite.Run(t, new(SelectSuite))
}

func (s *SelectSuite) TestPruningSkipsQuadrantAndNeverSolvesIt() {
	// one edge of six is density 1/6 ≥ 0.15; it appears once λ1 < 0.25,
	// i.e. from column 2 of the 3×6 GGL grid
	f := &fakeSolver{edge: func(l1, _ float64) float64 {
		if l1 < 0.25 {
			return 0.1
		}
		return 0
	}}
	res, err := selection.ModelSelect(s.S, []int{10}, penalty.GGL, selection.AIC, f.solve, s.opts)
	s.Require().NoError(err)

	// the triggering point (0,2) is solved; its quadrant beyond it is marked
	s.Equal("...xxx\n..xxxx\n..xxxx\n", res.Skip.String())
	s.Equal(7, res.Calls)
	s.Equal(18, res.Calls+res.Skip.Count())
	s.Len(f.calls, 7)
	solved := 0
	for r := 0; r < 3; r++ {
		for c := 0; c < 6; c++ {
			s.Equal(res.Status[r][c] == selection.Skipped, res.Skip.Skipped(r, c), "(%d,%d)", r, c)
			if res.Status[r][c] == selection.Skipped {
				s.True(math.IsNaN(res.AIC[r][c]))
				s.NotContains(f.calls, [2]float64{res.Grid.L1[r][c], res.Grid.L2[r][c]}, "skipped (%d,%d) solved", r, c)
				continue
			}
			solved++
		}
	}
	s.Equal(res.Calls, solved)
	s.Equal(selection.Solved, res.Status[0][2])

	// AIC = 2·(10·4) = 80 without edges; any edge costs more, first minimum wins
	s.Equal([2]int{0, 0}, res.Index)
	s.InDelta(80.0, res.AIC[0][0], 1e-12)
	s.InDelta(res.Grid.L1[0][0], res.Lambda1, 0)
	s.NotEmpty(res.RunID)
	s.Same(res.Best.Theta, f.starts[1].Theta, "best solution carried into the next call")
}

func (s *SelectSuite) TestDisablePruning() {
	f := &fakeSolver{edge: func(float64, float64) float64 { return 0.3 }}
	s.opts.DisablePruning = true
	res, err := selection.ModelSelect(s.S, []int{10, 20}, penalty.FGL, selection.EBIC, f.solve, s.opts)
	s.Require().NoError(err)
	s.Equal(18, res.Calls)
	s.Zero(res.Skip.Count())
	s.InDelta(1.0/6, res.Sparsity[2][5], 1e-12)
}

func (s *SelectSuite) TestCarryThreadsPreviousSolution() {
	f := &fakeSolver{edge: func(float64, float64) float64 { return 0 }}
	s.opts.GridSize1, s.opts.GridSize2 = 3, 2
	_, err := selection.ModelSelect(s.S, []int{10}, penalty.GGL, selection.AIC, f.solve, s.opts)
	s.Require().NoError(err)

	s.Require().Len(f.starts, 6)
	s.Equal(instance.IdentityLike(s.S).At(0).Raw(), f.starts[0].Omega.At(0).Raw())
	s.Nil(f.starts[0].X)
	for i := 1; i < len(f.starts); i++ {
		s.Same(f.returned[i-1], f.starts[i].Theta, "call %d", i)
		s.Same(f.returned[i-1], f.starts[i].Omega, "call %d", i)
	}
}

func (s *SelectSuite) TestNonPositiveDefinitePointsAreExcluded() {
	// edge 2 makes Θ indefinite for λ1 > 0.3 (the first two columns)
	f := &fakeSolver{edge: func(l1, _ float64) float64 {
		if l1 > 0.3 {
			return 2
		}
		return 0.05
	}}
	s.opts.DisablePruning = true
	res, err := selection.ModelSelect(s.S, []int{10}, penalty.GGL, selection.AIC, f.solve, s.opts)
	s.Require().NoError(err)

	for r := 0; r < 3; r++ {
		for c := 0; c < 2; c++ {
			s.Equal(selection.Failed, res.Status[r][c])
			s.True(math.IsNaN(res.AIC[r][c]))
			s.True(math.IsNaN(res.EBIC[r][c]))
		}
	}
	s.Equal([2]int{0, 2}, res.Index)
	idx, err := selection.Argmin(res.AIC)
	s.Require().NoError(err)
	s.Equal(res.Index, idx)
}

func (s *SelectSuite) TestNoCandidate() {
	f := &fakeSolver{edge: func(float64, float64) float64 { return 5 }}
	s.opts.DisablePruning = true
	res, err := selection.ModelSelect(s.S, []int{10}, penalty.GGL, selection.AIC, f.solve, s.opts)
	s.Require().ErrorIs(err, selection.ErrNoCandidate)
	s.Require().NotNil(res)
	s.Equal(18, res.Calls)
}

func (s *SelectSuite) TestInputErrors() {
	f := &fakeSolver{edge: func(float64, float64) float64 { return 0 }}

	bad := s.opts
	bad.Grid = &selection.Grid{L1: [][]float64{{0.1, 0.2}}, L2: [][]float64{{0.1, 0.2}}}
	_, err := selection.ModelSelect(s.S, []int{10}, penalty.GGL, selection.AIC, f.solve, bad)
	s.ErrorIs(err, selection.ErrGridShape)

	_, err = selection.ModelSelect(s.S, []int{1, 2, 3}, penalty.GGL, selection.AIC, f.solve, s.opts)
	s.ErrorIs(err, selection.ErrSampleSize)

	_, err = selection.ModelSelect(s.S, []int{10}, penalty.Reg(5), selection.AIC, f.solve, s.opts)
	s.ErrorIs(err, penalty.ErrUnknownReg)

	_, err = selection.ModelSelect(s.S, []int{10}, penalty.GGL, selection.Criterion(0), f.solve, s.opts)
	s.ErrorIs(err, selection.ErrUnknownCriterion)

	_, err = selection.ModelSelect(nil, []int{10}, penalty.GGL, selection.AIC, f.solve, s.opts)
	s.ErrorIs(err, instance.ErrEmpty)
	s.Empty(f.calls)

	// a custom grid of the right shape is used as given
	ok := s.opts
	ok.GridSize1, ok.GridSize2 = 2, 1
	ok.Grid = bad.Grid
	res, err := selection.ModelSelect(s.S, []int{10}, penalty.GGL, selection.AIC, f.solve, ok)
	s.Require().NoError(err)
	s.Equal(2, res.Calls)
	s.Equal([2]float64{0.1, 0.1}, f.calls[0])
}

func (s *SelectSuite) TestRealSolverGrid() {
	rng := rand.New(rand.NewSource(21))
	samples := make([]*matrix.Dense, 2)
	for k := range samples {
		data := make([]float64, 60*4)
		for i := range data {
			data[i] = rng.NormFloat64()
		}
		samples[k], _ = matrix.NewDenseFrom(60, 4, data)
	}
	S, ns, err := instance.SampleCovariances(samples...)
	s.Require().NoError(err)

	admm := solver.DefaultADMMOptions()
	admm.Eps, admm.Logger = 1e-4, s.opts.Logger
	s.opts.GridSize1, s.opts.GridSize2 = 4, 2
	res, err := selection.ModelSelect(S, ns, penalty.GGL, selection.EBIC, selection.ADMMSolver(admm), s.opts)
	s.Require().NoError(err)
	skipped := 0
	for _, row := range res.Status {
		for _, st := range row {
			if st == selection.Skipped {
				skipped++
			}
		}
	}
	s.Equal(skipped, res.Skip.Count())
	s.Equal(8, res.Calls+res.Skip.Count())
	s.False(math.IsNaN(res.EBIC[res.Index[0]][res.Index[1]]))
	for k := 0; k < 2; k++ {
		s.True(matrix.IsPositiveDefinite(res.Best.Theta.At(k)))
	}
}
