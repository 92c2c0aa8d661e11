// Package plotexport renders a processed plot configuration to formats other
// than the live raster surface: a self-contained interactive HTML chart and a
// terminal ASCII preview.
package plotexport

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/plotpad/plotpad/src/plotcfg"
	"github.com/plotpad/plotpad/src/plotengine"
)

// WriteHTML samples every series and emits one interactive chart document.
// Polyline series become echarts lines; scatter and interval series are
// overlapped as scatter marks on the same value axes.
func WriteHTML(cfg *plotcfg.PlotConfig, w io.Writer) error {
	xd, yd := resolvedDomains(cfg)

	line := charts.NewLine()
	title := cfg.Title
	if title == "" {
		title = "plotpad export"
	}
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: axisLabel(cfg.XAxis, "x"), Min: xd[0], Max: xd[1]}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: axisLabel(cfg.YAxis, "y"), Min: yd[0], Max: yd[1]}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	scatter := charts.NewScatter()
	haveScatter := false

	for _, s := range cfg.Series {
		pts, err := plotengine.SampleSeries(s, xd, yd)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		if s.RenderMode == plotcfg.ModePolyline {
			data := make([]opts.LineData, 0, len(pts))
			for _, p := range pts {
				if !finitePoint(p) {
					continue
				}
				data = append(data, opts.LineData{Value: []interface{}{p.X, p.Y}})
			}
			line.AddSeries(s.Label, data,
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			)
			continue
		}
		data := make([]opts.ScatterData, 0, len(pts))
		for _, p := range pts {
			if !finitePoint(p) {
				continue
			}
			data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Y}, SymbolSize: 4})
		}
		scatter.AddSeries(s.Label, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		haveScatter = true
	}
	if haveScatter {
		line.Overlap(scatter)
	}
	return line.Render(w)
}

func axisLabel(ax plotcfg.Axis, fallback string) string {
	if ax.Label != "" {
		return ax.Label
	}
	return fallback
}

func resolvedDomains(cfg *plotcfg.PlotConfig) ([2]float64, [2]float64) {
	xd := plotcfg.DefaultDomain()
	yd := plotcfg.DefaultDomain()
	if cfg.XAxis.Domain != nil {
		xd = *cfg.XAxis.Domain
	}
	if cfg.YAxis.Domain != nil {
		yd = *cfg.YAxis.Domain
	}
	return xd, yd
}

func finitePoint(p plotengine.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
