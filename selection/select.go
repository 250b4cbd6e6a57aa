package selection

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/penalty"
	"github.com/katalvlaran/glasso/solver"
)

// PointStatus is the outcome at one grid point.
type PointStatus int

const (
	// Skipped points were pruned and never solved.
	Skipped PointStatus = iota
	// Solved points converged and have finite criteria.
	Solved
	// NotConverged points hit the iteration budget; criteria are computed
	// on the returned iterate.
	NotConverged
	// Failed points produced a Θ that is not positive definite (or not
	// finite); criteria are NaN.
	Failed
)

func (s PointStatus) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Solved:
		return "solved"
	case NotConverged:
		return "not-converged"
	case Failed:
		return "failed"
	}

	return fmt.Sprintf("PointStatus(%d)", int(s))
}

// Options configures ModelSelect.
type Options struct {
	// GridSize1 and GridSize2 are the number of λ1 and λ2 values.
	GridSize1, GridSize2 int
	// Grid overrides LambdaGrid; its shape must be GridSize2×GridSize1.
	Grid *Grid
	// Groups is passed to every solver call (required for instances of
	// different order).
	Groups *instance.Groups
	// Gamma is the eBIC γ.
	Gamma float64
	// Threshold is the edge density that prunes the remaining quadrant.
	Threshold float64
	// DisablePruning evaluates every grid point.
	DisablePruning bool
	// Logger receives one line per grid point; nil means logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// DefaultOptions returns a 3×6 grid, γ = 0.1 and threshold 0.15.
func DefaultOptions() Options {
	return Options{
		GridSize1: 6,
		GridSize2: 3,
		Gamma:     DefaultGamma,
		Threshold: 0.15,
	}
}

// Result is the full grid record of a ModelSelect call. All tables are
// GridSize2×GridSize1 and NaN where no finite value exists.
type Result struct {
	RunID     string
	Reg       penalty.Reg
	Criterion Criterion
	Grid      Grid

	AIC        [][]float64
	EBIC       [][]float64
	Sparsity   [][]float64
	Status     [][]PointStatus
	Iterations [][]int
	Skip       SkipMask
	// Calls is the number of solver invocations.
	Calls int

	// Index is the selected (row, col) = (g2, g1); Lambda1/Lambda2 its values
	// and Best the solution there.
	Index   [2]int
	Lambda1 float64
	Lambda2 float64
	Best    solver.Solution
	Elapsed time.Duration
}

// gridState is what one grid step consumes and produces: the warm start
// for the next point and the skip mask.
type gridState struct {
	carry Carry
	mask  SkipMask
}

// run holds the inputs fixed for a whole ModelSelect call.
type run struct {
	S      instance.Collection
	n      []int
	reg    penalty.Reg
	method Criterion
	solve  SolveFunc
	opts   Options
	log    logrus.FieldLogger
	res    *Result
	best   float64
}

// ModelSelect evaluates solve over the (λ1, λ2) grid and selects the point
// minimizing method (AIC or eBIC). n holds one sample size or one per
// instance.
//
// Points are visited row by row; each call starts from the previous
// evaluated point's solution. Non-converged points keep their criteria;
// points whose Θ is not positive definite get NaN and are never selected.
//
// Errors:
//   - ErrGridShape, ErrSampleSize, ErrUnknownCriterion, penalty.ErrUnknownReg,
//     instance.ErrEmpty: returned before any solver call.
//   - A solver error (solver.ErrInvalidInput) aborts the grid.
//   - ErrNoCandidate together with the filled Result when no point has a
//     finite criterion.
func ModelSelect(S instance.Collection, n []int, reg penalty.Reg, method Criterion, solve SolveFunc, opts Options) (*Result, error) {
	began := time.Now()
	if err := instance.Validate(S); err != nil {
		return nil, fmt.Errorf("ModelSelect: %w", err)
	}
	ns, err := SampleSizes(n, S.Len())
	if err != nil {
		return nil, fmt.Errorf("ModelSelect: %w", err)
	}
	if method != AIC && method != EBIC {
		return nil, fmt.Errorf("ModelSelect: %v: %w", method, ErrUnknownCriterion)
	}
	if solve == nil {
		return nil, fmt.Errorf("ModelSelect: nil solver: %w", solver.ErrInvalidInput)
	}
	grid, err := resolveGrid(reg, opts)
	if err != nil {
		return nil, fmt.Errorf("ModelSelect: %w", err)
	}

	rows, cols := grid.Shape()
	res := &Result{
		RunID:      uuid.New().String(),
		Reg:        reg,
		Criterion:  method,
		Grid:       grid,
		AIC:        nanTable(rows, cols),
		EBIC:       nanTable(rows, cols),
		Sparsity:   nanTable(rows, cols),
		Status:     make([][]PointStatus, rows),
		Iterations: make([][]int, rows),
		Index:      [2]int{-1, -1},
	}
	for r := range res.Status {
		res.Status[r] = make([]PointStatus, cols)
		res.Iterations[r] = make([]int, cols)
	}

	rn := &run{
		S:      S,
		n:      ns,
		reg:    reg,
		method: method,
		solve:  solve,
		opts:   opts,
		res:    res,
		best:   math.Inf(1),
		log: loggerOf(opts.Logger).WithFields(logrus.Fields{
			"run": res.RunID,
			"reg": reg.String(),
		}),
	}

	st := gridState{carry: InitialCarry(S), mask: NewSkipMask(rows, cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if st, err = rn.step(r, c, st); err != nil {
				return nil, fmt.Errorf("ModelSelect: point (%d,%d): %w", r, c, err)
			}
		}
	}
	res.Skip = st.mask
	res.Elapsed = time.Since(began)

	if res.Index[0] < 0 {
		return res, ErrNoCandidate
	}
	res.Lambda1 = grid.L1[res.Index[0]][res.Index[1]]
	res.Lambda2 = grid.L2[res.Index[0]][res.Index[1]]
	rn.log.WithFields(logrus.Fields{
		"criterion": method.String(),
		"g2":        res.Index[0],
		"g1":        res.Index[1],
		"lambda1":   res.Lambda1,
		"lambda2":   res.Lambda2,
		"calls":     res.Calls,
	}).Info("model selected")

	return res, nil
}

// step evaluates point (r, c) given the incoming state and returns the
// state for the next point. A skipped point passes the state through.
func (rn *run) step(r, c int, st gridState) (gridState, error) {
	res := rn.res
	l1, l2 := res.Grid.L1[r][c], res.Grid.L2[r][c]
	pt := rn.log.WithFields(logrus.Fields{"g2": r, "g1": c, "lambda1": l1, "lambda2": l2})
	if st.mask.Skipped(r, c) {
		pt.Debug("grid point skipped")
		return st, nil
	}

	prob := solver.Problem{S: rn.S, Lambda1: l1, Lambda2: l2, Reg: rn.reg, Groups: rn.opts.Groups}
	sol, info, err := rn.solve(prob, st.carry.start())
	res.Calls++
	if err != nil {
		return st, err
	}
	res.Iterations[r][c] = info.Iterations

	density := MeanSparsity(sol.Theta, EdgeTol)
	res.Sparsity[r][c] = density
	next := st
	if !rn.opts.DisablePruning && density >= rn.opts.Threshold {
		next.mask = st.mask.MarkAfter(r, c)
	}

	aic, errA := AICValue(rn.S, sol.Theta, rn.n)
	ebic, errB := EBICValue(rn.S, sol.Theta, rn.n, rn.opts.Gamma)
	if err = errors.Join(errA, errB); err != nil {
		// shapes were validated up front, so only a singular or
		// non-finite Θ can fail here
		res.Status[r][c] = Failed
		pt.WithError(err).WithField("status", Failed.String()).Warn("criteria undefined at grid point")
		return next, nil
	}

	res.AIC[r][c], res.EBIC[r][c] = aic, ebic
	res.Status[r][c] = Solved
	if !info.Converged() {
		res.Status[r][c] = NotConverged
	}
	next.carry = carryOf(sol)

	score := aic
	if rn.method == EBIC {
		score = ebic
	}
	if !math.IsNaN(score) && (res.Index[0] < 0 || score < rn.best) {
		rn.best = score
		res.Index = [2]int{r, c}
		res.Best = sol
	}

	pt.WithFields(logrus.Fields{
		"aic":        aic,
		"ebic":       ebic,
		"sparsity":   density,
		"iterations": info.Iterations,
		"status":     res.Status[r][c].String(),
	}).Info("grid point evaluated")

	return next, nil
}

// resolveGrid returns opts.Grid after a shape check, or the default grid.
func resolveGrid(reg penalty.Reg, opts Options) (Grid, error) {
	if !reg.Valid() {
		return Grid{}, fmt.Errorf("%v: %w", reg, penalty.ErrUnknownReg)
	}
	if opts.GridSize1 < 1 || opts.GridSize2 < 1 {
		return Grid{}, fmt.Errorf("grid sizes %d×%d: %w", opts.GridSize2, opts.GridSize1, ErrGridShape)
	}
	if opts.Grid == nil {
		return LambdaGrid(opts.GridSize1, opts.GridSize2, reg)
	}
	if err := opts.Grid.Validate(); err != nil {
		return Grid{}, err
	}
	if rows, cols := opts.Grid.Shape(); rows != opts.GridSize2 || cols != opts.GridSize1 {
		return Grid{}, fmt.Errorf("grid is %d×%d, want %d×%d: %w", rows, cols, opts.GridSize2, opts.GridSize1, ErrGridShape)
	}

	return *opts.Grid, nil
}

// Argmin returns the (row, col) of the smallest non-NaN entry, first
// occurrence on ties.
//
// Errors:
//   - ErrNoCandidate when every entry is NaN.
func Argmin(t [][]float64) ([2]int, error) {
	idx, best := [2]int{-1, -1}, math.Inf(1)
	for r, row := range t {
		for c, v := range row {
			if !math.IsNaN(v) && (idx[0] < 0 || v < best) {
				idx, best = [2]int{r, c}, v
			}
		}
	}
	if idx[0] < 0 {
		return idx, ErrNoCandidate
	}

	return idx, nil
}

func nanTable(rows, cols int) [][]float64 {
	t := table(rows, cols)
	for _, row := range t {
		for c := range row {
			row[c] = math.NaN()
		}
	}

	return t
}

func loggerOf(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logrus.StandardLogger()
	}

	return l
}
