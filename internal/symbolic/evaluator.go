package symbolic

import (
	"errors"
	"math"

	"github.com/rbody2d/engine/internal/expr"
)

// Evaluator walks an expr.Node AST to a float64 under a given Frame and
// target Axis, consulting its Environment for variables, functions,
// constants, and (lazily) the equation solver.
type Evaluator struct {
	env *Environment
}

// Eval evaluates node under frame with the given basis axis selecting
// which of hati/hatj/hatk resolves to 1.
func (ev *Evaluator) Eval(node expr.Node, frame *Frame, axis Axis) (float64, error) {
	switch n := node.(type) {
	case *expr.Number:
		return n.Value, nil

	case *expr.Arithmetic:
		l, err := ev.Eval(n.Left, frame, axis)
		if err != nil {
			return 0, err
		}
		r, err := ev.Eval(n.Right, frame, axis)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case expr.Add:
			return l + r, nil
		case expr.Sub:
			return l - r, nil
		case expr.Mul:
			return l * r, nil
		case expr.Div:
			if r == 0 {
				return 0, &EvalError{Kind: DivisionByZero}
			}
			return l / r, nil
		case expr.Pow:
			if l < 0 && r != math.Trunc(r) {
				return 0, &EvalError{Kind: DomainError}
			}
			return math.Pow(l, r), nil
		}
		return 0, &EvalError{Kind: DomainError}

	case *expr.Variable:
		return ev.resolveVariable(n.Name, frame, axis)

	case *expr.Function:
		return ev.evalFunction(n, frame, axis)

	case *expr.Comparison:
		// A comparison is never evaluated directly; callers (the solver)
		// rearrange it as Left - Right.
		return 0, &EvalError{Kind: DomainError}

	default:
		return 0, &EvalError{Kind: DomainError}
	}
}

func (ev *Evaluator) evalFunction(n *expr.Function, frame *Frame, axis Axis) (float64, error) {
	fn, ok := ev.env.Functions[n.Name]
	if !ok {
		return 0, &EvalError{Kind: Unresolved, Variable: n.Name}
	}

	args := make([]float64, len(n.Args))
	for i, a := range n.Args {
		v, err := ev.Eval(a, frame, axis)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	switch fn.Kind {
	case FuncBaked:
		if len(args) != fn.Arity {
			return 0, &EvalError{Kind: DomainError}
		}
		return fn.Closure(args)

	case FuncMathematical:
		if len(args) != len(fn.Params) {
			return 0, &EvalError{Kind: DomainError}
		}
		if frame.depth+1 > ev.env.maxDepth {
			return 0, &EvalError{Kind: DepthExceeded}
		}
		bound := make(map[string]float64, len(args))
		for i, p := range fn.Params {
			bound[p] = args[i]
		}
		child := frame.withArgs(bound)
		return ev.Eval(fn.Body, child, axis)

	default:
		return 0, &EvalError{Kind: DomainError}
	}
}

// resolveVariable implements the §4.5 variable-resolution hierarchy.
func (ev *Evaluator) resolveVariable(name string, frame *Frame, axis Axis) (float64, error) {
	if v, ok := frame.lookup(name); ok {
		return v, nil
	}

	if v, ok := ev.env.Constants[name]; ok {
		return v, nil
	}
	if v, ok := basisValue(name, axis); ok {
		return v, nil
	}

	return ev.resolveViaEquations(name, frame, axis)
}

// resolveViaEquations searches only the registered Equations for one whose
// free variables include name, and solves it via Newton's method. It
// deliberately skips frame.lookup/Constants/basisValue, so it also serves
// as the integrator's override-ladder probe (see integrate.VariableResolver):
// a body's own published current-state snapshot (x_B, v_x_B, theta_B, ...)
// must never short-circuit the question "did the user write an equation
// defining this name", or the acceleration rung of §4.7 would never fire.
func (ev *Evaluator) resolveViaEquations(name string, frame *Frame, axis Axis) (float64, error) {
	if frame.depth+1 > ev.env.maxDepth {
		return 0, &EvalError{Kind: DepthExceeded}
	}

	var firstUnresolved *EvalError
	for _, eq := range ev.env.Equations {
		if !eq.FreeVars[name] {
			continue
		}
		ok, pop := frame.pushEquation(eq.ID)
		if !ok {
			// Already on the active path: this equation cannot help, not
			// an error; keep searching other candidates.
			continue
		}

		childFrame := frame.forSolving()
		val, err := FindRoot(ev, eq, name, childFrame, axis)
		pop()

		if err == nil {
			frame.memoize(name, val)
			return val, nil
		}

		var ee *EvalError
		if errors.As(err, &ee) && ee.Kind == Unresolved {
			if firstUnresolved == nil {
				firstUnresolved = ee
			}
			continue
		}
		return 0, err
	}

	if firstUnresolved != nil {
		return 0, firstUnresolved
	}
	return 0, &EvalError{Kind: Unresolved, Variable: name}
}
