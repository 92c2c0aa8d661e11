package plotengine

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
)

// Expr is a compiled mathematical expression ready for repeated evaluation.
type Expr struct {
	src   string
	inner *govaluate.EvaluableExpression
}

// Compile parses an expression string. The caret is accepted as the power
// operator and rewritten to govaluate's ** before parsing.
func Compile(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errors.New("empty expression")
	}
	rewritten := strings.ReplaceAll(src, "^", "**")
	inner, err := govaluate.NewEvaluableExpressionWithFunctions(rewritten, mathFunctions)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", src, err)
	}
	return &Expr{src: src, inner: inner}, nil
}

// EvalX evaluates the expression with x bound.
func (e *Expr) EvalX(x float64) (float64, error) {
	return e.eval(map[string]interface{}{"x": x, "t": x})
}

// EvalXY evaluates the expression with both x and y bound, for implicit
// relations f(x,y).
func (e *Expr) EvalXY(x, y float64) (float64, error) {
	return e.eval(map[string]interface{}{"x": x, "y": y})
}

func (e *Expr) eval(params map[string]interface{}) (float64, error) {
	params["PI"] = math.Pi
	params["pi"] = math.Pi
	params["E"] = math.E
	params["e"] = math.E
	out, err := e.inner.Evaluate(params)
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", e.src, err)
	}
	f, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("expression %q is not numeric", e.src)
	}
	return f, nil
}

func unaryFn(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s wants 1 argument, got %d", name, len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%s wants a number", name)
		}
		return fn(v), nil
	}
}

func binaryFn(name string, fn func(a, b float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s wants 2 arguments, got %d", name, len(args))
		}
		a, okA := args[0].(float64)
		b, okB := args[1].(float64)
		if !okA || !okB {
			return nil, fmt.Errorf("%s wants numbers", name)
		}
		return fn(a, b), nil
	}
}

var mathFunctions = map[string]govaluate.ExpressionFunction{
	"sin":   unaryFn("sin", math.Sin),
	"cos":   unaryFn("cos", math.Cos),
	"tan":   unaryFn("tan", math.Tan),
	"asin":  unaryFn("asin", math.Asin),
	"acos":  unaryFn("acos", math.Acos),
	"atan":  unaryFn("atan", math.Atan),
	"sinh":  unaryFn("sinh", math.Sinh),
	"cosh":  unaryFn("cosh", math.Cosh),
	"tanh":  unaryFn("tanh", math.Tanh),
	"sqrt":  unaryFn("sqrt", math.Sqrt),
	"cbrt":  unaryFn("cbrt", math.Cbrt),
	"abs":   unaryFn("abs", math.Abs),
	"log":   unaryFn("log", math.Log),
	"ln":    unaryFn("ln", math.Log),
	"log2":  unaryFn("log2", math.Log2),
	"log10": unaryFn("log10", math.Log10),
	"exp":   unaryFn("exp", math.Exp),
	"floor": unaryFn("floor", math.Floor),
	"ceil":  unaryFn("ceil", math.Ceil),
	"round": unaryFn("round", math.Round),
	"sign": unaryFn("sign", func(v float64) float64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	}),
	"min":   binaryFn("min", math.Min),
	"max":   binaryFn("max", math.Max),
	"pow":   binaryFn("pow", math.Pow),
	"atan2": binaryFn("atan2", math.Atan2),
	"mod":   binaryFn("mod", math.Mod),
}
