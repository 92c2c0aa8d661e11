package plotcfg

import "fmt"

// Process runs the per-series defaulting over a normalized configuration and
// assembles the final PlotConfig. Series order in equals series order out.
func Process(nc *NormalizedConfig) *PlotConfig {
	cfg := &PlotConfig{
		Title:       nc.Title,
		XAxis:       nc.XAxis,
		YAxis:       nc.YAxis,
		Grid:        nc.Grid,
		DisableZoom: nc.DisableZoom,
		Series:      make([]SeriesSpec, len(nc.Series)),
	}
	for i, raw := range nc.Series {
		cfg.Series[i] = ProcessSeries(raw, i)
	}
	return cfg
}

// ProcessSeries resolves one raw series entry into a SeriesSpec. Each entry is
// independent of its siblings; the index only feeds the palette fallback and
// the generated ordinal label.
func ProcessSeries(raw RawSeries, index int) SeriesSpec {
	s := SeriesSpec{}
	s.Expression, _ = raw["fn"].(string)
	s.Kind = seriesKind(raw)
	s.RenderMode = renderMode(raw, s.Kind)

	s.Color, _ = raw["color"].(string)
	if s.Color == "" {
		s.Color = Palette[index%len(Palette)]
	}

	s.Label, _ = raw["label"].(string)
	if s.Label == "" {
		s.Label = s.Expression
	}
	if s.Label == "" {
		s.Label = fmt.Sprintf("Function %d", index+1)
	}

	s.Points = pointList(raw["points"])
	s.Vector = vectorPair(raw["vector"])

	// Implicit relations are not interval-sampled over a 1D range; any
	// supplied range is stripped rather than passed along.
	if s.Kind != KindImplicit {
		if r := numberPair(raw["range"]); r != nil && r[0] <= r[1] {
			s.Range = r
		}
	}

	s.Closed, _ = raw["closed"].(bool)
	if n, ok := toFloat(raw["nSamples"]); ok && n > 0 {
		s.SampleCount = int(n)
	}
	return s
}

func seriesKind(raw RawSeries) Kind {
	t, _ := raw["fnType"].(string)
	switch Kind(t) {
	case KindImplicit, KindParametric, KindPoints, KindVector:
		return Kind(t)
	}
	return KindLinear
}

// renderMode honors an explicit graphType and otherwise derives the mode from
// the series kind: implicit relations draw as intervals, point sets scatter,
// everything else is a polyline.
func renderMode(raw RawSeries, kind Kind) RenderMode {
	g, _ := raw["graphType"].(string)
	switch RenderMode(g) {
	case ModePolyline, ModeScatter, ModeInterval:
		return RenderMode(g)
	}
	switch kind {
	case KindImplicit:
		return ModeInterval
	case KindPoints:
		return ModeScatter
	}
	return ModePolyline
}

// vectorPair copies a vector value into a fresh 2-tuple. Extra elements are
// discarded; fewer than two numeric components means absent. The result never
// aliases caller-supplied storage.
func vectorPair(v any) *[2]float64 {
	arr, ok := v.([]any)
	if !ok || len(arr) < 2 {
		return nil
	}
	x, ok := toFloat(arr[0])
	if !ok {
		return nil
	}
	y, ok := toFloat(arr[1])
	if !ok {
		return nil
	}
	return &[2]float64{x, y}
}

func pointList(v any) [][2]float64 {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([][2]float64, 0, len(arr))
	for _, e := range arr {
		if p := numberPair(e); p != nil {
			out = append(out, *p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
