package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/matrix"
	"github.com/katalvlaran/glasso/penalty"
	"github.com/katalvlaran/glasso/solver"
)

var (
	errNoInstances  = errors.New("problem: no instances")
	errInstanceData = errors.New("problem: instance needs exactly one of cov or samples")
	errSampleCount  = errors.New("problem: cov instance needs n > 0")
	errRagged       = errors.New("problem: ragged matrix rows")
	errMixedIDs     = errors.New("problem: either every instance has an id or none does")
)

// problemFile is the YAML layout of a problem:
//
//	reg: ggl
//	lambda1: 0.1
//	lambda2: 0.05
//	instances:
//	  - cov: [[1, 0.2], [0.2, 1]]
//	    n: 100
//	  - samples: [[0.1, 0.3], [1.2, -0.4], ...]
//	groups:
//	  rows: [[0, 0]]
//	  cols: [[1, 1]]
//
// Instances with ids form an irregular collection keyed by id.
type problemFile struct {
	Reg       string         `yaml:"reg"`
	Lambda1   float64        `yaml:"lambda1"`
	Lambda2   float64        `yaml:"lambda2"`
	Instances []instanceFile `yaml:"instances"`
	Groups    *groupsFile    `yaml:"groups,omitempty"`
}

type instanceFile struct {
	ID      *int        `yaml:"id,omitempty"`
	Cov     [][]float64 `yaml:"cov,omitempty"`
	Samples [][]float64 `yaml:"samples,omitempty"`
	N       int         `yaml:"n,omitempty"`
}

type groupsFile struct {
	Rows [][]int `yaml:"rows"`
	Cols [][]int `yaml:"cols"`
}

// problem is a decoded, validated problemFile.
type problem struct {
	S       instance.Collection
	N       []int
	Reg     penalty.Reg
	Lambda1 float64
	Lambda2 float64
	Groups  *instance.Groups
}

func loadProblem(path string) (*problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open problem: %w", err)
	}
	defer f.Close()

	p, err := decodeProblem(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

func decodeProblem(r io.Reader) (*problem, error) {
	var pf problemFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return nil, fmt.Errorf("decode problem: %w", err)
	}
	reg, err := penalty.ParseReg(pf.Reg)
	if err != nil {
		return nil, err
	}
	if err = penalty.CheckLambdas(pf.Lambda1, pf.Lambda2); err != nil {
		return nil, err
	}
	if len(pf.Instances) == 0 {
		return nil, errNoInstances
	}

	p := &problem{Reg: reg, Lambda1: pf.Lambda1, Lambda2: pf.Lambda2}
	if p.S, p.N, err = buildCollection(pf.Instances); err != nil {
		return nil, err
	}
	if pf.Groups != nil {
		if p.Groups, err = instance.GroupsFromIndex(pf.Groups.Rows, pf.Groups.Cols); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func buildCollection(ins []instanceFile) (instance.Collection, []int, error) {
	keyed := ins[0].ID != nil
	mats := make([]*matrix.Dense, len(ins))
	ns := make([]int, len(ins))
	for k, in := range ins {
		if (in.ID != nil) != keyed {
			return nil, nil, errMixedIDs
		}
		s, n, err := in.covariance()
		if err != nil {
			return nil, nil, fmt.Errorf("instance %d: %w", k, err)
		}
		mats[k], ns[k] = s, n
	}
	if !keyed {
		arr, err := instance.ArrayOf(mats...)
		if err != nil {
			return nil, nil, err
		}

		return arr, ns, nil
	}

	byID := make(map[int]*matrix.Dense, len(ins))
	nByID := make(map[int]int, len(ins))
	for k, in := range ins {
		byID[*in.ID], nByID[*in.ID] = mats[k], ns[k]
	}
	d, err := instance.NewDict(byID)
	if err != nil {
		return nil, nil, err
	}
	sorted := make([]int, d.Len())
	for k := range sorted {
		sorted[k] = nByID[d.ID(k)]
	}

	return d, sorted, nil
}

// covariance returns S_k and N_k for one instance entry.
func (in instanceFile) covariance() (*matrix.Dense, int, error) {
	switch {
	case (in.Cov == nil) == (in.Samples == nil):
		return nil, 0, errInstanceData
	case in.Samples != nil:
		x, err := denseOf(in.Samples)
		if err != nil {
			return nil, 0, err
		}
		s, err := matrix.Covariance(x)
		if err != nil {
			return nil, 0, err
		}

		return s, x.Rows(), nil
	}
	if in.N <= 0 {
		return nil, 0, errSampleCount
	}
	s, err := denseOf(in.Cov)
	if err != nil {
		return nil, 0, err
	}

	return s, in.N, nil
}

func denseOf(rows [][]float64) (*matrix.Dense, error) {
	if len(rows) == 0 {
		return nil, errRagged
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for _, row := range rows {
		if len(row) != c {
			return nil, errRagged
		}
		data = append(data, row...)
	}

	return matrix.NewDenseFrom(len(rows), c, data)
}

// rowsOf is the inverse of denseOf for reports.
func rowsOf(m *matrix.Dense) [][]float64 {
	r, c := m.Shape()
	raw := m.Raw()
	out := make([][]float64, r)
	for i := range out {
		out[i] = append([]float64(nil), raw[i*c:(i+1)*c]...)
	}

	return out
}

func (p *problem) solverProblem() solver.Problem {
	return solver.Problem{S: p.S, Lambda1: p.Lambda1, Lambda2: p.Lambda2, Reg: p.Reg, Groups: p.Groups}
}

// start is the identity starting point every method accepts.
func (p *problem) start() solver.Start {
	return solver.Start{Omega: instance.IdentityLike(p.S), Theta: instance.IdentityLike(p.S)}
}
