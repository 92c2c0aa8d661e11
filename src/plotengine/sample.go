package plotengine

import (
	"fmt"
	"math"
	"strings"

	"github.com/plotpad/plotpad/src/plotcfg"
)

const (
	defaultSamples = 1000
	maxSamples     = 20000
	// implicit relations are evaluated on a square grid; the default keeps a
	// full redraw comfortably under a frame on typical hardware
	defaultImplicitGrid = 160
	maxImplicitGrid     = 600
)

// Point is one sampled plot coordinate.
type Point struct {
	X float64
	Y float64
}

// SampleSeries produces the drawable point sequence for one processed series
// given the resolved axis domains. Expression errors are returned to the
// caller; they are the engine-failure path, not a crash.
func SampleSeries(s plotcfg.SeriesSpec, xDomain, yDomain [2]float64) ([]Point, error) {
	switch s.Kind {
	case plotcfg.KindPoints:
		pts := make([]Point, 0, len(s.Points))
		for _, p := range s.Points {
			pts = append(pts, Point{X: p[0], Y: p[1]})
		}
		return pts, nil
	case plotcfg.KindVector:
		if s.Vector == nil {
			return nil, fmt.Errorf("vector series %q has no vector", s.Label)
		}
		return []Point{{0, 0}, {s.Vector[0], s.Vector[1]}}, nil
	case plotcfg.KindImplicit:
		expr, err := Compile(s.Expression)
		if err != nil {
			return nil, err
		}
		return sampleImplicit(expr, xDomain, yDomain, implicitGridSize(s.SampleCount))
	case plotcfg.KindParametric:
		rng := [2]float64{0, 2 * math.Pi}
		if s.Range != nil {
			rng = *s.Range
		}
		return sampleParametric(s.Expression, rng, sampleCount(s.SampleCount))
	default:
		domain := xDomain
		if s.Range != nil {
			domain = *s.Range
		}
		expr, err := Compile(s.Expression)
		if err != nil {
			return nil, err
		}
		return sampleLinear(expr, domain, sampleCount(s.SampleCount))
	}
}

func sampleCount(n int) int {
	if n <= 0 {
		return defaultSamples
	}
	if n < 2 {
		return 2
	}
	if n > maxSamples {
		return maxSamples
	}
	return n
}

func implicitGridSize(n int) int {
	if n <= 0 {
		return defaultImplicitGrid
	}
	if n < 8 {
		return 8
	}
	if n > maxImplicitGrid {
		return maxImplicitGrid
	}
	return n
}

// sampleLinear evaluates y(x) across the domain. Non-finite values become NaN
// samples so the chart renderer breaks the line instead of drawing artifacts.
func sampleLinear(expr *Expr, domain [2]float64, n int) ([]Point, error) {
	step := (domain[1] - domain[0]) / float64(n-1)
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		x := domain[0] + float64(i)*step
		y, err := expr.EvalX(x)
		if err != nil {
			return nil, err
		}
		if !isFinite(y) {
			y = math.NaN()
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

// sampleParametric accepts "x(t), y(t)" (top-level comma) or a single y(t)
// expression plotted against t.
func sampleParametric(src string, rng [2]float64, n int) ([]Point, error) {
	parts := splitTopLevel(src)
	var xExpr, yExpr *Expr
	var err error
	switch len(parts) {
	case 1:
		yExpr, err = Compile(parts[0])
		if err != nil {
			return nil, err
		}
	case 2:
		if xExpr, err = Compile(parts[0]); err != nil {
			return nil, err
		}
		if yExpr, err = Compile(parts[1]); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("parametric expression %q wants one or two components", src)
	}
	step := (rng[1] - rng[0]) / float64(n-1)
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		t := rng[0] + float64(i)*step
		x := t
		if xExpr != nil {
			if x, err = xExpr.EvalX(t); err != nil {
				return nil, err
			}
		}
		y, err := yExpr.EvalX(t)
		if err != nil {
			return nil, err
		}
		if !isFinite(x) || !isFinite(y) {
			continue
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

// sampleImplicit evaluates f(x,y) on a grid and emits a mark wherever the
// sign changes across a cell, approximating the zero set f(x,y)=0.
func sampleImplicit(expr *Expr, xDomain, yDomain [2]float64, grid int) ([]Point, error) {
	dx := (xDomain[1] - xDomain[0]) / float64(grid)
	dy := (yDomain[1] - yDomain[0]) / float64(grid)
	vals := make([][]float64, grid+1)
	for i := range vals {
		vals[i] = make([]float64, grid+1)
		x := xDomain[0] + float64(i)*dx
		for j := 0; j <= grid; j++ {
			y := yDomain[0] + float64(j)*dy
			v, err := expr.EvalXY(x, y)
			if err != nil {
				return nil, err
			}
			vals[i][j] = v
		}
	}
	var pts []Point
	for i := 0; i < grid; i++ {
		for j := 0; j < grid; j++ {
			v00 := vals[i][j]
			v10 := vals[i+1][j]
			v01 := vals[i][j+1]
			v11 := vals[i+1][j+1]
			if !isFinite(v00) || !isFinite(v10) || !isFinite(v01) || !isFinite(v11) {
				continue
			}
			minV := math.Min(math.Min(v00, v10), math.Min(v01, v11))
			maxV := math.Max(math.Max(v00, v10), math.Max(v01, v11))
			if minV <= 0 && maxV >= 0 {
				pts = append(pts, Point{
					X: xDomain[0] + (float64(i)+0.5)*dx,
					Y: yDomain[0] + (float64(j)+0.5)*dy,
				})
			}
		}
	}
	return pts, nil
}

// splitTopLevel splits on commas that are not nested inside parentheses.
func splitTopLevel(src string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, r := range src {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(src[last:i]))
				last = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(src[last:]))
	return parts
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
