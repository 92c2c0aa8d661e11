package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	png "image/png"
	"io"
	"os"
	"sync"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/plotpad/plotpad/cmd/plotpadviewer/uihelpers"
	"github.com/plotpad/plotpad/src/plotengine"
	"github.com/plotpad/plotpad/src/plotlog"
	"github.com/plotpad/plotpad/src/plotloop"
)

// starterConfig is loaded on first launch, before any file is opened or any
// editor text has been persisted.
const starterConfig = `{
  "title": "plotpad",
  "data": [
    {"fn": "sin(x)"},
    {"fn": "x/4", "color": "#d62728", "label": "quarter line"}
  ]
}`

type uiState struct {
	app    fyne.App
	window fyne.Window

	editor     *widget.Entry
	plotCanvas *canvas.Image
	overlay    *crosshairOverlay
	legendBox  *fyne.Container
	errBanner  *widget.Label
	statusBar  *widget.Label

	engine *rasterEngine
	coord  *plotloop.Coordinator
}

// rasterEngine adapts the go-chart raster backend to the coordinator's Engine
// contract and keeps the latest frame around for the presentation surface and
// the crosshair readout. Zoom overrides live here, outside the coordinator.
type rasterEngine struct {
	mu      sync.Mutex
	zoomX   *[2]float64
	zoomY   *[2]float64
	lastImg image.Image
	lastReq plotloop.DrawRequest
	haveReq bool
}

func (e *rasterEngine) Draw(req plotloop.DrawRequest) (plotloop.Handle, error) {
	e.mu.Lock()
	if !req.DisableZoom {
		if e.zoomX != nil {
			req.XDomain = *e.zoomX
		}
		if e.zoomY != nil {
			req.YDomain = *e.zoomY
		}
	}
	e.mu.Unlock()
	plot, err := plotengine.Render(plotengine.Options{
		Width:       req.Width,
		Height:      req.Height,
		Title:       req.Title,
		Grid:        req.Grid,
		DisableZoom: req.DisableZoom,
		XDomain:     req.XDomain,
		YDomain:     req.YDomain,
		XLabel:      req.XLabel,
		YLabel:      req.YLabel,
		Series:      req.Series,
		Tooltip:     req.Tooltip,
	})
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.lastImg = plot.Image()
	e.lastReq = req
	e.haveReq = true
	e.mu.Unlock()
	return plot, nil
}

// Latest returns the most recently drawn frame and the request that produced
// it. ok is false before the first successful draw.
func (e *rasterEngine) Latest() (image.Image, plotloop.DrawRequest, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastImg, e.lastReq, e.haveReq
}

func (e *rasterEngine) SetZoom(x, y [2]float64) {
	e.mu.Lock()
	e.zoomX, e.zoomY = &x, &y
	e.mu.Unlock()
}

func (e *rasterEngine) ResetZoom() {
	e.mu.Lock()
	e.zoomX, e.zoomY = nil, nil
	e.mu.Unlock()
}

func (e *rasterEngine) Zoomed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.zoomX != nil || e.zoomY != nil
}

func main() {
	var fileFlag string
	var logLevel string
	flag.StringVar(&fileFlag, "file", "", "Path to a plot config JSON file to open")
	flag.StringVar(&logLevel, "log", "warn", "Log level: debug|info|warn|error")
	flag.Parse()
	plotlog.SetLevel(logLevel)

	a := app.NewWithID("com.plotpad.viewer")
	w := a.NewWindow("PlotPad")
	w.Resize(fyne.NewSize(1100, 760))

	state := &uiState{
		app:    a,
		window: w,
		engine: &rasterEngine{},
	}

	// editor seeded from -file, then the persisted editor text, then the
	// starter config
	initial := a.Preferences().StringWithFallback("lastConfig", starterConfig)
	if fileFlag != "" {
		if data, err := os.ReadFile(fileFlag); err == nil {
			initial = string(data)
		} else {
			plotlog.Warnf("cannot read %s: %v", fileFlag, err)
		}
	}
	state.editor = widget.NewMultiLineEntry()
	state.editor.TextStyle = fyne.TextStyle{Monospace: true}
	state.editor.SetText(initial)

	state.plotCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.plotCanvas.FillMode = canvas.ImageFillContain
	state.plotCanvas.SetMinSize(fyne.NewSize(640, 420))
	state.overlay = newCrosshairOverlay(state)

	state.legendBox = container.NewHBox()
	state.errBanner = widget.NewLabel("")
	state.errBanner.Importance = widget.DangerImportance
	state.errBanner.Wrapping = fyne.TextWrapWord
	state.errBanner.Hide()
	state.statusBar = widget.NewLabel("")

	sched := plotloop.NewFrameScheduler(plotloop.DefaultFrameInterval, fyne.Do)
	state.coord = plotloop.NewCoordinator(state.engine, sched, func(snap plotloop.Snapshot) {
		applySnapshot(state, snap)
	})

	state.editor.OnChanged = func(text string) {
		a.Preferences().SetString("lastConfig", text)
		state.coord.SetInput(text)
	}

	resetBtn := widget.NewButton("Reset Zoom", func() { resetZoom(state) })
	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state) }),
		widget.NewButton("Export PNG…", func() { exportPNG(state) }),
		resetBtn,
	)

	plotStack := container.NewStack(state.plotCanvas, state.overlay)
	right := container.NewBorder(nil, container.NewVBox(state.errBanner, state.legendBox, state.statusBar), nil, nil, plotStack)
	split := container.NewHSplit(state.editor, right)
	split.SetOffset(0.3)
	w.SetContent(container.NewBorder(top, nil, nil, nil, split))

	buildMenus(state)

	// Feed measured surface sizes to the coordinator. The plot area has no
	// resize callback, so poll it the same way the window canvas is polled
	// for width changes.
	done := make(chan struct{})
	w.SetOnClosed(func() {
		a.Preferences().SetString("lastConfig", state.editor.Text)
		state.coord.Close()
		close(done)
	})
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				sz := state.plotCanvas.Size()
				cw, ch := uihelpers.ComputeChartDimensions(int(sz.Width), int(sz.Height))
				if sz.Width <= 0 || sz.Height <= 0 {
					continue
				}
				state.coord.SetSize(cw, ch)
			}
		}
	}()

	state.coord.SetInput(state.editor.Text)
	w.ShowAndRun()
}

// applySnapshot projects a coordinator snapshot onto the widgets. It runs on
// the UI goroutine because the frame scheduler dispatches through fyne.Do.
func applySnapshot(state *uiState, snap plotloop.Snapshot) {
	if snap.Err != "" {
		state.errBanner.SetText(snap.Err)
		state.errBanner.Show()
		state.legendBox.Hide()
		state.statusBar.SetText(snap.State.String())
		return
	}
	state.errBanner.Hide()
	if img, _, ok := state.engine.Latest(); ok && img != nil {
		state.plotCanvas.Image = img
		state.plotCanvas.Refresh()
	}
	rebuildLegend(state, snap.Legend)
	state.legendBox.Show()
	state.statusBar.SetText(statusText(snap))
	state.overlay.Refresh()
}

// statusText summarizes a successful pass for the status bar.
func statusText(snap plotloop.Snapshot) string {
	n := len(snap.Legend)
	if n == 1 {
		return snap.State.String() + ", 1 series"
	}
	return fmt.Sprintf("%s, %d series", snap.State, n)
}

func rebuildLegend(state *uiState, entries []plotloop.LegendEntry) {
	state.legendBox.Objects = nil
	for _, e := range entries {
		swatch := canvas.NewRectangle(swatchColor(e.Color))
		swatch.SetMinSize(fyne.NewSize(12, 12))
		state.legendBox.Add(container.NewHBox(swatch, widget.NewLabel(e.Label)))
	}
	state.legendBox.Refresh()
}

func swatchColor(s string) color.Color {
	c := plotengine.ParseColor(s)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// resetZoom drops the zoom override and redraws with the config's own
// domains.
func resetZoom(state *uiState) {
	if !state.engine.Zoomed() {
		return
	}
	state.engine.ResetZoom()
	state.coord.Invalidate()
}

// zoomAt applies a scroll-wheel zoom step centered on the given data point.
// Ignored while the active config disables zoom.
func zoomAt(state *uiState, dataX, dataY, factor float64) {
	_, req, ok := state.engine.Latest()
	if !ok || req.DisableZoom {
		return
	}
	state.engine.SetZoom(
		uihelpers.ZoomDomain(req.XDomain, dataX, factor),
		uihelpers.ZoomDomain(req.YDomain, dataY, factor),
	)
	state.coord.Invalidate()
}

func buildMenus(state *uiState) {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG…", func() { exportPNG(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Reset Zoom", func() { resetZoom(state) }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { exportPNG(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { exportPNG(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		state.engine.ResetZoom()
		// SetText fires OnChanged, which persists and schedules the render
		state.editor.SetText(string(data))
	}, state.window)
	d.Show()
}

func exportPNG(state *uiState) {
	img, req, ok := state.engine.Latest()
	if !ok || img == nil {
		dialog.ShowInformation("Export", "No plot to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			plotlog.Errorf("png export failed: %v", err)
		}
	}, state.window)
	fs.SetFileName(exportFileName(req.Title))
	fs.Show()
}

// exportFileName derives a safe default file name from the plot title.
func exportFileName(title string) string {
	if title == "" {
		return "plot.png"
	}
	safe := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			safe = append(safe, r)
		case r == ' ':
			safe = append(safe, '_')
		}
	}
	if len(safe) == 0 {
		return "plot.png"
	}
	return string(safe) + ".png"
}

