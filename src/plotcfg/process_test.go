package plotcfg

import (
	"fmt"
	"testing"
)

func TestProcessSeries_Defaults(t *testing.T) {
	s := ProcessSeries(RawSeries{"fn": "x^2"}, 0)
	if s.Kind != KindLinear {
		t.Fatalf("missing fnType should default to linear, got %q", s.Kind)
	}
	if s.RenderMode != ModePolyline {
		t.Fatalf("linear should derive polyline, got %q", s.RenderMode)
	}
	if s.Color != Palette[0] {
		t.Fatalf("expected first palette color, got %q", s.Color)
	}
	if s.Label != "x^2" {
		t.Fatalf("label should fall back to expression, got %q", s.Label)
	}
}

func TestProcessSeries_KindAndModeDerivation(t *testing.T) {
	cases := []struct {
		fnType string
		kind   Kind
		mode   RenderMode
	}{
		{"", KindLinear, ModePolyline},
		{"linear", KindLinear, ModePolyline},
		{"implicit", KindImplicit, ModeInterval},
		{"parametric", KindParametric, ModePolyline},
		{"points", KindPoints, ModeScatter},
		{"vector", KindVector, ModePolyline},
		{"polar", KindLinear, ModePolyline}, // unrecognized
		{"garbage", KindLinear, ModePolyline},
	}
	for _, tc := range cases {
		raw := RawSeries{}
		if tc.fnType != "" {
			raw["fnType"] = tc.fnType
		}
		s := ProcessSeries(raw, 0)
		if s.Kind != tc.kind {
			t.Fatalf("fnType %q: kind %q, want %q", tc.fnType, s.Kind, tc.kind)
		}
		if s.RenderMode != tc.mode {
			t.Fatalf("fnType %q: mode %q, want %q", tc.fnType, s.RenderMode, tc.mode)
		}
	}
}

func TestProcessSeries_ExplicitGraphTypeWins(t *testing.T) {
	s := ProcessSeries(RawSeries{"fn": "x", "graphType": "scatter"}, 0)
	if s.RenderMode != ModeScatter {
		t.Fatalf("explicit graphType should win, got %q", s.RenderMode)
	}
	s = ProcessSeries(RawSeries{"fnType": "implicit", "graphType": "polyline"}, 0)
	if s.RenderMode != ModePolyline {
		t.Fatalf("explicit graphType should override derivation, got %q", s.RenderMode)
	}
	s = ProcessSeries(RawSeries{"fn": "x", "graphType": "sparkles"}, 0)
	if s.RenderMode != ModePolyline {
		t.Fatalf("unrecognized graphType should derive from kind, got %q", s.RenderMode)
	}
}

func TestProcessSeries_PaletteByIndexIsDeterministic(t *testing.T) {
	for run := 0; run < 2; run++ {
		for i := 0; i < 20; i++ {
			s := ProcessSeries(RawSeries{"fn": "x"}, i)
			want := Palette[i%len(Palette)]
			if s.Color != want {
				t.Fatalf("run %d index %d: color %q, want %q", run, i, s.Color, want)
			}
		}
	}
	s := ProcessSeries(RawSeries{"fn": "x", "color": "#000"}, 3)
	if s.Color != "#000" {
		t.Fatalf("explicit color must be kept, got %q", s.Color)
	}
}

func TestProcessSeries_LabelFallbackChain(t *testing.T) {
	if s := ProcessSeries(RawSeries{"fn": "x", "label": "mine"}, 0); s.Label != "mine" {
		t.Fatalf("explicit label lost: %q", s.Label)
	}
	if s := ProcessSeries(RawSeries{"fn": "sin(x)"}, 0); s.Label != "sin(x)" {
		t.Fatalf("expression fallback lost: %q", s.Label)
	}
	if s := ProcessSeries(RawSeries{}, 4); s.Label != "Function 5" {
		t.Fatalf("ordinal fallback wrong: %q", s.Label)
	}
}

func TestProcessSeries_RangeStrippedForImplicit(t *testing.T) {
	s := ProcessSeries(RawSeries{"fnType": "implicit", "fn": "x^2+y^2-4", "range": []any{0.0, 5.0}}, 0)
	if s.RenderMode != ModeInterval {
		t.Fatalf("implicit should render as interval, got %q", s.RenderMode)
	}
	if s.Range != nil {
		t.Fatalf("range must be stripped for implicit series, got %v", s.Range)
	}
}

func TestProcessSeries_RangeSanitized(t *testing.T) {
	if s := ProcessSeries(RawSeries{"fn": "x", "range": []any{-1.0, 1.0}}, 0); s.Range == nil || *s.Range != [2]float64{-1, 1} {
		t.Fatalf("valid range dropped: %v", s.Range)
	}
	bad := []any{
		[]any{1.0},
		[]any{1.0, 2.0, 3.0},
		[]any{"a", "b"},
		"nope",
		[]any{5.0, -5.0}, // inverted
	}
	for i, r := range bad {
		s := ProcessSeries(RawSeries{"fn": "x", "range": r}, 0)
		if s.Range != nil {
			t.Fatalf("case %d: malformed range should be absent, got %v", i, s.Range)
		}
	}
}

func TestProcessSeries_VectorCopiedByValue(t *testing.T) {
	in := []any{3.0, 4.0}
	s := ProcessSeries(RawSeries{"fnType": "vector", "vector": in}, 0)
	if s.Vector == nil || *s.Vector != [2]float64{3, 4} {
		t.Fatalf("vector not decoded: %v", s.Vector)
	}
	// Mutating the caller's array must not reach the processed spec.
	in[0] = 99.0
	if s.Vector[0] != 3 {
		t.Fatalf("vector aliases caller storage")
	}

	if s := ProcessSeries(RawSeries{"vector": []any{1.0, 2.0, 3.0}}, 0); s.Vector == nil || *s.Vector != [2]float64{1, 2} {
		t.Fatalf("extra vector elements should be discarded, got %v", s.Vector)
	}
	if s := ProcessSeries(RawSeries{"vector": []any{1.0}}, 0); s.Vector != nil {
		t.Fatalf("short vector should be absent, got %v", s.Vector)
	}
	if s := ProcessSeries(RawSeries{"vector": []any{"a", 2.0}}, 0); s.Vector != nil {
		t.Fatalf("non-numeric vector should be absent, got %v", s.Vector)
	}
}

func TestProcessSeries_PointsSanitized(t *testing.T) {
	s := ProcessSeries(RawSeries{
		"fnType": "points",
		"points": []any{[]any{1.0, 2.0}, []any{3.0}, []any{4.0, 5.0}, "junk"},
	}, 0)
	if len(s.Points) != 2 {
		t.Fatalf("expected 2 valid points, got %v", s.Points)
	}
	if s.Points[0] != [2]float64{1, 2} || s.Points[1] != [2]float64{4, 5} {
		t.Fatalf("point values mismatch: %v", s.Points)
	}
}

func TestProcessSeries_SampleCountAndClosed(t *testing.T) {
	if s := ProcessSeries(RawSeries{"fn": "x", "nSamples": 250.0}, 0); s.SampleCount != 250 {
		t.Fatalf("nSamples not decoded: %d", s.SampleCount)
	}
	if s := ProcessSeries(RawSeries{"fn": "x", "nSamples": -5.0}, 0); s.SampleCount != 0 {
		t.Fatalf("nonpositive nSamples should be dropped: %d", s.SampleCount)
	}
	if s := ProcessSeries(RawSeries{"fn": "x", "closed": true}, 0); !s.Closed {
		t.Fatalf("closed flag lost")
	}
}

func TestProcess_OrderPreservedAndInvariants(t *testing.T) {
	nc := &NormalizedConfig{Grid: true}
	for i := 0; i < 9; i++ {
		nc.Series = append(nc.Series, RawSeries{"fn": fmt.Sprintf("x+%d", i)})
	}
	cfg := Process(nc)
	if len(cfg.Series) != 9 {
		t.Fatalf("series count changed: %d", len(cfg.Series))
	}
	for i, s := range cfg.Series {
		if s.Label != fmt.Sprintf("x+%d", i) {
			t.Fatalf("order not preserved at %d: %q", i, s.Label)
		}
		if s.Color == "" || s.Label == "" {
			t.Fatalf("processed series %d missing color/label", i)
		}
	}
}

func TestEndToEnd_ScenarioLegacy(t *testing.T) {
	nc, err := Normalize(`{"fn":"x^2"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := Process(nc)
	if len(cfg.Series) != 1 {
		t.Fatalf("expected one series")
	}
	s := cfg.Series[0]
	if s.Expression != "x^2" || s.Label != "x^2" || s.Color != Palette[0] {
		t.Fatalf("legacy scenario mismatch: %+v", s)
	}
	if *cfg.XAxis.Domain != [2]float64{-10, 10} || *cfg.YAxis.Domain != [2]float64{-10, 10} {
		t.Fatalf("legacy domains mismatch: %v %v", cfg.XAxis.Domain, cfg.YAxis.Domain)
	}
	if !cfg.Grid {
		t.Fatalf("legacy grid must be enabled")
	}
}

func TestEndToEnd_ScenarioTwoSeries(t *testing.T) {
	nc, err := Normalize(`{"data":[{"fn":"sin(x)"},{"fn":"cos(x)","color":"#000"}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := Process(nc)
	if len(cfg.Series) != 2 {
		t.Fatalf("expected two series")
	}
	if cfg.Series[0].Color != Palette[0] || cfg.Series[0].Label != "sin(x)" {
		t.Fatalf("first series mismatch: %+v", cfg.Series[0])
	}
	if cfg.Series[1].Color != "#000" || cfg.Series[1].Label != "cos(x)" {
		t.Fatalf("second series mismatch: %+v", cfg.Series[1])
	}
}
