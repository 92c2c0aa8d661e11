package plotexport

import (
	"errors"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/plotpad/plotpad/src/plotcfg"
	"github.com/plotpad/plotpad/src/plotengine"
)

const asciiSamples = 120

// RenderASCII draws the expression-backed polyline series of a config as a
// terminal graph. Point, vector, and implicit series have no sensible
// single-row projection and are skipped.
func RenderASCII(cfg *plotcfg.PlotConfig, height int) (string, error) {
	if height <= 0 {
		height = 12
	}
	xd, yd := resolvedDomains(cfg)

	var rows [][]float64
	caption := cfg.Title
	for _, s := range cfg.Series {
		if s.Kind != plotcfg.KindLinear && s.Kind != plotcfg.KindParametric {
			continue
		}
		sampled := s
		if sampled.SampleCount == 0 || sampled.SampleCount > asciiSamples {
			sampled.SampleCount = asciiSamples
		}
		pts, err := plotengine.SampleSeries(sampled, xd, yd)
		if err != nil {
			return "", err
		}
		ys := make([]float64, 0, len(pts))
		for _, p := range pts {
			if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
				continue
			}
			ys = append(ys, p.Y)
		}
		if len(ys) < 2 {
			continue
		}
		rows = append(rows, ys)
		if caption == "" {
			caption = s.Label
		}
	}
	if len(rows) == 0 {
		return "", errors.New("no expression series to preview")
	}
	return asciigraph.PlotMany(rows,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	), nil
}
