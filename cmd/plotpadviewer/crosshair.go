package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/plotpad/plotpad/cmd/plotpadviewer/uihelpers"
)

// Plot area insets inside the rendered raster, in image pixels. They account
// for the chart background padding plus the axis tick gutters, so the cursor
// readout lines up with the drawn curves closely enough for a hover label.
const (
	plotInsetLeft   float32 = 46
	plotInsetRight  float32 = 18
	plotInsetTop    float32 = 22
	plotInsetBottom float32 = 42
)

// crosshairOverlay sits on top of the plot raster, tracks the mouse, and
// shows the coordinate readout near the cursor. It is also the scroll target
// for wheel zoom.
type crosshairOverlay struct {
	widget.BaseWidget
	state    *uiState
	mouse    fyne.Position
	hovering bool
}

func newCrosshairOverlay(state *uiState) *crosshairOverlay {
	c := &crosshairOverlay{state: state}
	c.ExtendBaseWidget(c)
	return c
}

// dataAt maps an overlay position to data coordinates using the latest drawn
// frame. ok is false before the first draw or when the cursor is outside the
// plot area.
func (c *crosshairOverlay) dataAt(pos fyne.Position, size fyne.Size) (float64, float64, bool) {
	img, req, ok := c.state.engine.Latest()
	if !ok || img == nil {
		return 0, 0, false
	}
	b := img.Bounds()
	return viewToData(pos, size, float32(b.Dx()), float32(b.Dy()), req.XDomain, req.YDomain)
}

// viewToData converts an overlay-space position into data coordinates given
// the raster size and axis domains. Pure so the mapping is testable without a
// canvas.
func viewToData(pos fyne.Position, size fyne.Size, imgW, imgH float32, xDom, yDom [2]float64) (float64, float64, bool) {
	drawX, drawY, _, _, scale := uihelpers.ComputeContainRect(imgW, imgH, size.Width, size.Height)
	if scale <= 0 {
		return 0, 0, false
	}
	// position in image pixel space
	px := (pos.X - drawX) / scale
	py := (pos.Y - drawY) / scale
	plotW := imgW - plotInsetLeft - plotInsetRight
	plotH := imgH - plotInsetTop - plotInsetBottom
	if plotW <= 0 || plotH <= 0 {
		return 0, 0, false
	}
	fx := (px - plotInsetLeft) / plotW
	fy := (py - plotInsetTop) / plotH
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	dataX := xDom[0] + float64(fx)*(xDom[1]-xDom[0])
	dataY := yDom[1] - float64(fy)*(yDom[1]-yDom[0])
	return dataX, dataY, true
}

func (c *crosshairOverlay) CreateRenderer() fyne.WidgetRenderer {
	// transparent background keeps the full hit-area for hover events
	bg := canvas.NewRectangle(color.RGBA{})
	lineV := canvas.NewLine(theme.Color(theme.ColorNameDisabled))
	lineV.StrokeWidth = 1
	lineH := canvas.NewLine(theme.Color(theme.ColorNameDisabled))
	lineH.StrokeWidth = 1
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 170})
	objs := []fyne.CanvasObject{bg, lineV, lineH, labelBG, label}
	return &crosshairRenderer{c: c, bg: bg, lineV: lineV, lineH: lineH, labelBG: labelBG, label: label, objs: objs}
}

type crosshairRenderer struct {
	c       *crosshairOverlay
	bg      *canvas.Rectangle
	lineV   *canvas.Line
	lineH   *canvas.Line
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *crosshairRenderer) Destroy() {}

func (r *crosshairRenderer) hide() {
	r.lineV.Position1 = fyne.NewPos(-10, -10)
	r.lineV.Position2 = fyne.NewPos(-10, -10)
	r.lineH.Position1 = fyne.NewPos(-10, -10)
	r.lineH.Position2 = fyne.NewPos(-10, -10)
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
	r.label.Move(fyne.NewPos(-1000, -1000))
}

func (r *crosshairRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	if !r.c.hovering {
		r.hide()
		return
	}
	x, y := r.c.mouse.X, r.c.mouse.Y
	dataX, dataY, ok := r.c.dataAt(r.c.mouse, size)
	if !ok {
		r.hide()
		return
	}

	r.lineV.Position1 = fyne.NewPos(x, 0)
	r.lineV.Position2 = fyne.NewPos(x, size.Height)
	r.lineH.Position1 = fyne.NewPos(0, y)
	r.lineH.Position2 = fyne.NewPos(size.Width, y)

	_, req, _ := r.c.state.engine.Latest()
	format := req.Tooltip
	if format == nil {
		return
	}
	r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: format(dataX, dataY)}}
	r.label.Refresh()

	pad := float32(6)
	ts := r.label.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx, ty := x+10, y+10
	if tx+bgW > size.Width {
		tx = size.Width - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *crosshairRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *crosshairRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *crosshairRenderer) Refresh() {
	r.Layout(r.c.Size())
	r.bg.Refresh()
	r.lineV.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.lineH.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.lineV.Refresh()
	r.lineH.Refresh()
	r.labelBG.Refresh()
	r.label.Refresh()
}

func (c *crosshairOverlay) MouseMoved(ev *desktop.MouseEvent) {
	c.hovering = true
	c.mouse = ev.Position
	c.Refresh()
}
func (c *crosshairOverlay) MouseIn(ev *desktop.MouseEvent) { c.hovering = true; c.Refresh() }
func (c *crosshairOverlay) MouseOut()                      { c.hovering = false; c.Refresh() }

// Scrolled zooms around the cursor. A config with disableZoom set makes this
// a no-op inside zoomAt.
func (c *crosshairOverlay) Scrolled(ev *fyne.ScrollEvent) {
	dataX, dataY, ok := c.dataAt(ev.Position, c.Size())
	if !ok {
		return
	}
	factor := 1.25
	if ev.Scrolled.DY > 0 {
		factor = 0.8
	}
	zoomAt(c.state, dataX, dataY, factor)
}

var (
	_ desktop.Hoverable = (*crosshairOverlay)(nil)
	_ fyne.Scrollable   = (*crosshairOverlay)(nil)
)
