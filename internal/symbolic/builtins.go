package symbolic

import (
	"math"

	"github.com/rbody2d/engine/internal/expr"
)

// Axis selects which basis vector (hati/hatj/hatk) evaluates to 1 during a
// single evaluation pass; the other two evaluate to 0.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// FuncKind tags a Function variant.
type FuncKind int

const (
	FuncMathematical FuncKind = iota
	FuncBaked
)

// Function is a callable registered in an Environment, either a
// user-defined "name(params) = body" equation or a built-in closure.
type Function struct {
	Kind    FuncKind
	Params  []string
	Body    expr.Node
	Arity   int
	Closure func(args []float64) (float64, error)
}

func bakedUnary(f func(float64) float64) Function {
	return Function{Kind: FuncBaked, Arity: 1, Closure: func(a []float64) (float64, error) {
		return f(a[0]), nil
	}}
}

func bakedBinary(f func(a, b float64) float64) Function {
	return Function{Kind: FuncBaked, Arity: 2, Closure: func(a []float64) (float64, error) {
		return f(a[0], a[1]), nil
	}}
}

// defaultFunctions returns the built-in function table of §4.4, keyed by
// name. Users may override any entry by defining an equation of the same
// name.
func defaultFunctions() map[string]Function {
	return map[string]Function{
		"sin":  bakedUnary(math.Sin),
		"cos":  bakedUnary(math.Cos),
		"tan":  bakedUnary(math.Tan),
		"asin": bakedUnary(math.Asin),
		"acos": bakedUnary(math.Acos),
		"atan": bakedUnary(math.Atan),
		"ln":   bakedUnary(math.Log),
		"log":  bakedUnary(math.Log10),
		"log2": bakedUnary(math.Log2),
		"sqrt": bakedUnary(math.Sqrt),
		"nrt":  bakedBinary(func(x, n float64) float64 { return math.Pow(x, 1/n) }),
	}
}

// defaultConstants returns the built-in constant table of §4.4.
func defaultConstants() map[string]float64 {
	return map[string]float64{
		"pi": math.Pi,
		"e":  math.E,
	}
}

// basisValue resolves a hati/hatj/hatk token under the current target
// axis: 1 when it matches, 0 otherwise. ok is false if name is not a
// basis token.
func basisValue(name string, axis Axis) (float64, bool) {
	switch name {
	case "hati":
		return boolF(axis == AxisX), true
	case "hatj":
		return boolF(axis == AxisY), true
	case "hatk":
		return boolF(axis == AxisZ), true
	default:
		return 0, false
	}
}

func boolF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
