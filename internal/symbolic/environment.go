package symbolic

import (
	"fmt"

	"github.com/rbody2d/engine/internal/expr"
)

// Equation is a classified, non-function, non-constant comparison
// registered in an Environment, together with its free variables.
type Equation struct {
	ID       int
	AST      *expr.Comparison
	FreeVars map[string]bool
}

// Environment is the immutable (after Build) table of equations,
// functions, and constants produced by classifying a set of raw
// expression strings, per §4.3.
type Environment struct {
	Equations []Equation
	Functions map[string]Function
	Constants map[string]float64

	rootFinder RootFinderConfig
	maxDepth   int
}

// Option configures Build.
type Option func(*Environment)

// WithRootFinderConfig overrides the Newton's-method defaults of §4.6.
func WithRootFinderConfig(cfg RootFinderConfig) Option {
	return func(e *Environment) { e.rootFinder = cfg }
}

// WithMaxDepth overrides the evaluator recursion cap of §4.5.
func WithMaxDepth(n int) Option {
	return func(e *Environment) { e.maxDepth = n }
}

// Build classifies each raw expression string per §4.3 and returns the
// resulting Environment. Built-in functions and constants (§4.4) are
// registered first and may be overridden by a matching user definition.
func Build(expressions []string, opts ...Option) (*Environment, error) {
	env := &Environment{
		Functions:  defaultFunctions(),
		Constants:  defaultConstants(),
		rootFinder: DefaultRootFinderConfig(),
		maxDepth:   DefaultMaxDepth,
	}
	for _, o := range opts {
		o(env)
	}

	var nodes []expr.Node
	for _, src := range expressions {
		n, err := expr.Parse(src)
		if err != nil {
			return nil, &ClassifyError{Source: src, Wrapped: err}
		}
		nodes = append(nodes, n)
	}

	nextID := 0
	for i, n := range nodes {
		cmp, ok := n.(*expr.Comparison)
		if !ok {
			return nil, &ClassifyError{Source: expressions[i], Wrapped: fmt.Errorf("top-level expression is not a comparison")}
		}

		if fn, ok := cmp.Left.(*expr.Function); ok {
			params, ok := plainVariableNames(fn.Args)
			if ok {
				env.Functions[fn.Name] = Function{
					Kind:   FuncMathematical,
					Params: params,
					Body:   cmp.Right,
				}
				delete(env.Constants, fn.Name)
				continue
			}
			return nil, &ClassifyError{Source: expressions[i], Wrapped: ErrBadFunctionHead}
		}

		if v, ok := cmp.Left.(*expr.Variable); ok {
			if val, isConst := env.tryBuildTimeConstant(cmp.Right); isConst {
				env.Constants[v.Name] = val
				continue
			}
		}

		fv := env.equationFreeVars(cmp)
		env.Equations = append(env.Equations, Equation{ID: nextID, AST: cmp, FreeVars: fv})
		nextID++
	}

	return env, nil
}

func plainVariableNames(args []expr.Node) ([]string, bool) {
	names := make([]string, len(args))
	for i, a := range args {
		v, ok := a.(*expr.Variable)
		if !ok {
			return nil, false
		}
		names[i] = v.Name
	}
	return names, true
}

// tryBuildTimeConstant attempts to fully evaluate node using only the
// environment's currently-known functions and constants (no body
// overrides, no equation solving). It is used to classify "v = <const
// expr>" equations as constants per §4.3. A right side that mentions a
// basis token (hati/hatj/hatk) is never a constant, since its value
// depends on the axis being queried; such an equation is stored as an
// Equation and evaluated once per axis.
func (e *Environment) tryBuildTimeConstant(node expr.Node) (float64, bool) {
	for name := range expr.FreeVariables(node, nil) {
		if _, isBasis := basisValue(name, AxisX); isBasis {
			return 0, false
		}
	}
	ev := &Evaluator{env: e}
	frame := NewFrame(nil)
	val, err := ev.Eval(node, frame, AxisX)
	if err != nil {
		return 0, false
	}
	return val, true
}

// equationFreeVars computes §4.3's free-variable set for a stored
// equation: every Variable name reached by traversal, excluding names
// that already resolve to a constant or a basis token.
func (e *Environment) equationFreeVars(cmp *expr.Comparison) map[string]bool {
	raw := expr.FreeVariables(cmp, nil)
	out := make(map[string]bool, len(raw))
	for name := range raw {
		if _, isConst := e.Constants[name]; isConst {
			continue
		}
		if _, isBasis := basisValue(name, AxisX); isBasis {
			continue
		}
		out[name] = true
	}
	return out
}

// Evaluate resolves a single named variable under the given body-override
// publications and target axis, creating a fresh top-level Frame. This is
// the entry point used for one-off queries (tests, scenario validation).
func (e *Environment) Evaluate(name string, overrides map[string]float64, axis Axis) (float64, error) {
	ev := &Evaluator{env: e}
	frame := NewFrame(overrides)
	return ev.Eval(&expr.Variable{Name: name}, frame, axis)
}

// EvaluateOverride probes whether name is defined by a registered
// equation under frame (the engine's shared per-tick published-variable
// scope), without first consulting frame's own lookup/Constants/basis
// layers for this top-level name. The integrator's override ladder (§4.7)
// uses this: a body's published current-state snapshot (e.g. v_x_B) must
// never satisfy the question "did the user define v_x_B", since the
// engine itself publishes that name every tick and the acceleration rung
// would then never be reachable. Nested sub-expressions inside the
// matched equation still resolve through the full hierarchy.
func (e *Environment) EvaluateOverride(name string, frame *Frame, axis Axis) (float64, error) {
	ev := &Evaluator{env: e}
	return ev.resolveViaEquations(name, frame, axis)
}
