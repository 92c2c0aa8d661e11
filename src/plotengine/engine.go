package plotengine

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"strconv"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/plotpad/plotpad/src/plotcfg"
	"github.com/plotpad/plotpad/src/plotlog"
)

// Options is one fully resolved draw call: pixel size, axis setup, and the
// processed series list. All defaults are already applied by the caller.
type Options struct {
	Width       int
	Height      int
	Title       string
	Grid        bool
	DisableZoom bool
	XDomain     [2]float64
	YDomain     [2]float64
	XLabel      string
	YLabel      string
	Series      []plotcfg.SeriesSpec
	// Tooltip formats a cursor position for the interactive readout. The
	// raster backend does not consume it; interactive surfaces do.
	Tooltip func(x, y float64) string
}

// Plot is the live handle for one rendered surface. The owner must call
// Release before acquiring a replacement.
type Plot struct {
	img image.Image
}

// Image returns the rendered raster, or nil after Release.
func (p *Plot) Image() image.Image { return p.img }

// Release drops the rendered raster.
func (p *Plot) Release() { p.img = nil }

// Render rasterizes the series list into a PNG-backed image via go-chart.
func Render(opts Options) (*Plot, error) {
	defer plotlog.TimeTrack(time.Now(), "plot render")
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid plot size %dx%d", opts.Width, opts.Height)
	}
	if len(opts.Series) == 0 {
		return &Plot{img: drawMessage(blank(opts.Width, opts.Height), "no series to plot")}, nil
	}

	series := make([]chart.Series, 0, len(opts.Series))
	for _, s := range opts.Series {
		pts, err := SampleSeries(s, opts.XDomain, opts.YDomain)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Label, err)
		}
		xs, ys := splitPoints(pts)
		if len(xs) == 0 {
			// Nothing drawable (e.g. implicit relation with no zero set in
			// view); keep the series out rather than upsetting go-chart.
			continue
		}
		if len(xs) == 1 {
			// go-chart wants at least two X values
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(s),
		})
	}
	if len(series) == 0 {
		return &Plot{img: drawMessage(blank(opts.Width, opts.Height), "nothing to draw in this window")}, nil
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:  opts.XLabel,
			Range: &chart.ContinuousRange{Min: opts.XDomain[0], Max: opts.XDomain[1]},
		},
		YAxis: chart.YAxis{
			Name:  opts.YLabel,
			Range: &chart.ContinuousRange{Min: opts.YDomain[0], Max: opts.YDomain[1]},
		},
		Series: series,
	}
	if opts.Grid {
		gs := chart.Style{StrokeColor: drawing.Color{R: 220, G: 220, B: 220, A: 255}, StrokeWidth: 1.0}
		ch.XAxis.GridMajorStyle = gs
		ch.YAxis.GridMajorStyle = gs
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("chart decode: %w", err)
	}
	return &Plot{img: img}, nil
}

func splitPoints(pts []Point) ([]float64, []float64) {
	xs := make([]float64, 0, len(pts))
	ys := make([]float64, 0, len(pts))
	for _, p := range pts {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	return xs, ys
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

func seriesStyle(s plotcfg.SeriesSpec) chart.Style {
	col := ParseColor(s.Color)
	switch s.RenderMode {
	case plotcfg.ModeScatter:
		return pointStyle(col)
	case plotcfg.ModeInterval:
		st := pointStyle(col)
		st.DotWidth = 2
		return st
	}
	return chart.Style{StrokeWidth: 2, StrokeColor: col}
}

// cssNames covers the color keywords seen in real configs; anything else
// should arrive as hex.
var cssNames = map[string]drawing.Color{
	"black":     {R: 0, G: 0, B: 0, A: 255},
	"white":     {R: 255, G: 255, B: 255, A: 255},
	"red":       {R: 255, G: 0, B: 0, A: 255},
	"green":     {R: 0, G: 128, B: 0, A: 255},
	"blue":      {R: 0, G: 0, B: 255, A: 255},
	"yellow":    {R: 255, G: 255, B: 0, A: 255},
	"orange":    {R: 255, G: 165, B: 0, A: 255},
	"purple":    {R: 128, G: 0, B: 128, A: 255},
	"magenta":   {R: 255, G: 0, B: 255, A: 255},
	"cyan":      {R: 0, G: 255, B: 255, A: 255},
	"brown":     {R: 165, G: 42, B: 42, A: 255},
	"gray":      {R: 128, G: 128, B: 128, A: 255},
	"grey":      {R: 128, G: 128, B: 128, A: 255},
	"pink":      {R: 255, G: 192, B: 203, A: 255},
	"steelblue": {R: 70, G: 130, B: 180, A: 255},
	"teal":      {R: 0, G: 128, B: 128, A: 255},
}

// ParseColor resolves a CSS color string (#rgb, #rrggbb, or a keyword). An
// unparseable value falls back to the first palette color so a bad series
// color never aborts a draw.
func ParseColor(s string) drawing.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := cssNames[s]; ok {
		return c
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return drawing.Color{
				R: uint8(v >> 16),
				G: uint8(v >> 8),
				B: uint8(v),
				A: 255,
			}
		}
	}
	plotlog.Debugf("unparseable color %q, using palette fallback", s)
	return ParseColor(plotcfg.Palette[0])
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// drawMessage draws a small status string onto the provided image near the
// bottom-left.
func drawMessage(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}

var errNoImage = errors.New("plot already released")

// EncodePNG writes the plot back out as PNG, for exports.
func (p *Plot) EncodePNG(buf *bytes.Buffer) error {
	if p.img == nil {
		return errNoImage
	}
	return png.Encode(buf, p.img)
}
