package solver

import (
	"errors"

	"github.com/katalvlaran/glasso/instance"
	"github.com/katalvlaran/glasso/penalty"
)

// symTol bounds |S[i,j] − S[j,i]| for accepted covariances.
const symTol = 1e-8

var errMissingStart = errors.New("initial point required")

// workspace bundles what every solver derives from a Problem once.
type workspace struct {
	s      instance.Collection
	l1, l2 float64
	op     *penalty.Operator
	eig    *eigenStack
	tmp    instance.Collection
	tmp2   instance.Collection
}

// newWorkspace validates prob and resolves its penalty operator.
//
// Stages:
//  1. S non-empty, square, finite and symmetric.
//  2. Lambdas finite and non-negative.
//  3. Reg known and Groups consistent with S.
func newWorkspace(prob Problem) (*workspace, error) {
	if err := instance.Validate(prob.S); err != nil {
		return nil, invalidf("S", err)
	}
	if err := instance.ValidateSymmetric(prob.S, symTol); err != nil {
		return nil, invalidf("S", err)
	}
	if err := penalty.CheckLambdas(prob.Lambda1, prob.Lambda2); err != nil {
		return nil, invalidf("lambda", err)
	}
	op, err := penalty.NewOperator(prob.S, prob.Reg, prob.Groups)
	if err != nil {
		return nil, invalidf("penalty", err)
	}

	return &workspace{
		s:    prob.S,
		l1:   prob.Lambda1,
		l2:   prob.Lambda2,
		op:   op,
		eig:  newEigenStack(prob.S),
		tmp:  instance.ZerosLike(prob.S),
		tmp2: instance.ZerosLike(prob.S),
	}, nil
}

// startFrom copies c after checking it against S; a nil c yields a copy of
// fallback, or zeros when fallback is nil too.
func (ws *workspace) startFrom(name string, c, fallback instance.Collection) (instance.Collection, error) {
	if c == nil {
		if fallback == nil {
			return instance.ZerosLike(ws.s), nil
		}

		return fallback.Clone(), nil
	}
	if err := instance.Validate(c); err != nil {
		return nil, invalidf(name, err)
	}
	if err := instance.SameShape(ws.s, c); err != nil {
		return nil, invalidf(name, err)
	}
	out := c.Clone()
	instance.Symmetrize(out)

	return out, nil
}

// admmStart resolves a Start for ADMM: Omega required, Theta and X zero.
func (ws *workspace) admmStart(st Start) (omega, theta, x instance.Collection, err error) {
	if st.Omega == nil {
		return nil, nil, nil, invalidf("Omega", errMissingStart)
	}
	if omega, err = ws.startFrom("Omega", st.Omega, nil); err != nil {
		return nil, nil, nil, err
	}
	if theta, err = ws.startFrom("Theta", st.Theta, nil); err != nil {
		return nil, nil, nil, err
	}
	if x, err = ws.startFrom("X", st.X, nil); err != nil {
		return nil, nil, nil, err
	}

	return omega, theta, x, nil
}

// ppdnaStart resolves a Start for PPDNA: Theta required, Omega defaults to
// Theta, X to zero.
func (ws *workspace) ppdnaStart(st Start) (omega, theta, x instance.Collection, err error) {
	if st.Theta == nil {
		return nil, nil, nil, invalidf("Theta", errMissingStart)
	}
	if theta, err = ws.startFrom("Theta", st.Theta, nil); err != nil {
		return nil, nil, nil, err
	}
	if omega, err = ws.startFrom("Omega", st.Omega, theta); err != nil {
		return nil, nil, nil, err
	}
	if x, err = ws.startFrom("X", st.X, nil); err != nil {
		return nil, nil, nil, err
	}

	return omega, theta, x, nil
}
