package penalty

import "errors"

var (
	// ErrUnknownReg is returned for a regularizer name other than GGL or FGL.
	ErrUnknownReg = errors.New("penalty: unknown regularizer")

	// ErrNegativeLambda is returned for a negative or non-finite penalty parameter.
	ErrNegativeLambda = errors.New("penalty: lambda must be finite and non-negative")
)
