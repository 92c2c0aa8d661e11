package plotengine

import (
	"math"
	"testing"
)

func TestCompileAndEvalX(t *testing.T) {
	cases := []struct {
		src  string
		x    float64
		want float64
	}{
		{"x^2", 3, 9},
		{"x^3 - 1", 2, 7},
		{"2*x + 1", 0.5, 2},
		{"sin(PI/2)", 0, 1},
		{"cos(0)", 123, 1},
		{"sqrt(x)", 16, 4},
		{"abs(x)", -3.5, 3.5},
		{"pow(x, 2) + 1", 3, 10},
		{"max(x, 10)", 4, 10},
		{"exp(0) + log(E)", 0, 2},
	}
	for _, tc := range cases {
		expr, err := Compile(tc.src)
		if err != nil {
			t.Fatalf("%s: compile failed: %v", tc.src, err)
		}
		got, err := expr.EvalX(tc.x)
		if err != nil {
			t.Fatalf("%s: eval failed: %v", tc.src, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s at x=%v: got %v want %v", tc.src, tc.x, got, tc.want)
		}
	}
}

func TestEvalXY_Implicit(t *testing.T) {
	expr, err := Compile("x^2 + y^2 - 4")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	v, err := expr.EvalXY(2, 0)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if math.Abs(v) > 1e-9 {
		t.Fatalf("circle boundary should evaluate to 0, got %v", v)
	}
	v, _ = expr.EvalXY(0, 0)
	if v >= 0 {
		t.Fatalf("circle interior should be negative, got %v", v)
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, src := range []string{"", "  ", "x +* 2", "sin(", ")("} {
		if _, err := Compile(src); err == nil {
			t.Fatalf("expected compile error for %q", src)
		}
	}
}

func TestEval_UnknownVariable(t *testing.T) {
	expr, err := Compile("x + z")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if _, err := expr.EvalX(1); err == nil {
		t.Fatalf("expected evaluation error for unbound variable")
	}
}

func TestEval_ParametricVariableT(t *testing.T) {
	expr, err := Compile("t^2")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	got, err := expr.EvalX(4)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if got != 16 {
		t.Fatalf("t binding broken: got %v", got)
	}
}
