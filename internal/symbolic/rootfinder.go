package symbolic

import (
	"errors"
	"math"
)

// RootFinderConfig parameterizes Newton's method, defaulting to the
// constants of §4.6 and §9.
type RootFinderConfig struct {
	Epsilon       float64 // finite-difference step
	Tolerance     float64 // |f(x)| < Tolerance is success
	MaxIterations int
	InitialGuess  float64
}

// DefaultRootFinderConfig returns spec §4.6's defaults.
func DefaultRootFinderConfig() RootFinderConfig {
	return RootFinderConfig{
		Epsilon:       1e-6,
		Tolerance:     1e-9,
		MaxIterations: 100,
		InitialGuess:  1.0,
	}
}

const singularDerivativeThreshold = 1e-12

// FindRoot solves eq (rearranged as Left - Right = 0) for target via
// Newton's method with a forward finite-difference derivative, under
// frame. frame's local bindings must be empty of target on entry (see
// Frame.forSolving); FindRoot owns target's binding for the duration of
// the search. axis selects the basis component being solved.
func FindRoot(ev *Evaluator, eq Equation, target string, frame *Frame, axis Axis) (float64, error) {
	cfg := ev.env.rootFinder
	guess := cfg.InitialGuess

	f := func(x float64) (float64, error) {
		frame.local[target] = x
		l, err := ev.Eval(eq.AST.Left, frame, axis)
		if err != nil {
			return 0, err
		}
		r, err := ev.Eval(eq.AST.Right, frame, axis)
		if err != nil {
			return 0, err
		}
		return l - r, nil
	}

	x := guess
	for i := 0; i < cfg.MaxIterations; i++ {
		fx, err := f(x)
		if err != nil {
			return 0, unresolvedOrErr(err)
		}
		if math.Abs(fx) < cfg.Tolerance {
			return x, nil
		}

		fxEps, err := f(x + cfg.Epsilon)
		if err != nil {
			return 0, unresolvedOrErr(err)
		}

		slope := (fxEps - fx) / cfg.Epsilon
		if math.Abs(slope) < singularDerivativeThreshold {
			return 0, &EvalError{Kind: SingularDerivative}
		}

		x = x - fx/slope
		if !isFiniteFloat(x) {
			return 0, &EvalError{Kind: DomainError}
		}
	}

	return 0, &EvalError{Kind: NoConvergence}
}

func isFiniteFloat(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// unresolvedOrErr passes Unresolved errors through unchanged (the caller
// abandons this candidate equation and tries the next); any other error
// is also passed through, terminating the search with a hard failure.
func unresolvedOrErr(err error) error {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee
	}
	return err
}
