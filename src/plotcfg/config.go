package plotcfg

import "fmt"

// Kind classifies what a series plots.
type Kind string

const (
	KindLinear     Kind = "linear"
	KindImplicit   Kind = "implicit"
	KindParametric Kind = "parametric"
	KindPoints     Kind = "points"
	KindVector     Kind = "vector"
)

// RenderMode selects how a series is drawn.
type RenderMode string

const (
	ModePolyline RenderMode = "polyline"
	ModeScatter  RenderMode = "scatter"
	ModeInterval RenderMode = "interval"
)

// Palette holds the fallback colors assigned by series position when a series
// declares no color of its own. Assignment is palette[index % len(Palette)].
var Palette = [7]string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
}

// Axis carries an optional [min,max] domain and a label for one axis.
type Axis struct {
	Domain *[2]float64
	Label  string
}

// SeriesSpec is one fully processed series: every field the renderer needs,
// with defaults resolved. Color and Label are always non-empty.
type SeriesSpec struct {
	Expression  string
	Kind        Kind
	RenderMode  RenderMode
	Color       string
	Label       string
	Points      [][2]float64
	Vector      *[2]float64
	Range       *[2]float64
	Closed      bool
	SampleCount int
}

// PlotConfig is the processed multi-series configuration for one render
// cycle. It is built fresh on every pass and never mutated afterwards.
type PlotConfig struct {
	Title       string
	XAxis       Axis
	YAxis       Axis
	Grid        bool
	DisableZoom bool
	Series      []SeriesSpec
}

// RawSeries is one undecoded series entry as it appeared in the input. Field
// sanitization is deferred to the processor so one malformed series never
// invalidates its siblings.
type RawSeries map[string]any

// NormalizedConfig is the normalizer's output: shape already resolved
// (legacy vs advanced), series entries still raw.
type NormalizedConfig struct {
	Legacy      bool
	Title       string
	XAxis       Axis
	YAxis       Axis
	Grid        bool
	DisableZoom bool
	Series      []RawSeries
}

// ParseError reports input text that could not be decoded at all. No partial
// configuration accompanies it.
type ParseError struct {
	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse plot config: %v", e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }
