package plotloop

import (
	"fmt"
	"sync"

	"github.com/plotpad/plotpad/src/plotcfg"
	"github.com/plotpad/plotpad/src/plotlog"
)

// State is the coordinator's render lifecycle state.
type State int

const (
	StateIdle State = iota
	StateScheduled
	StateRendering
	StateRendered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StateRendering:
		return "rendering"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// LegendEntry is one swatch+label pair for the presentation surface.
type LegendEntry struct {
	Color string
	Label string
}

// Snapshot is the pure projection of coordinator state the presentation
// surface renders from. Legend and Err can coexist; display logic must hide
// the legend whenever Err is set.
type Snapshot struct {
	State  State
	Legend []LegendEntry
	Err    string
}

// Handle is a live plot surface owned by the coordinator. Exactly one handle
// is live at a time; it is released before a replacement is acquired.
type Handle interface {
	Release()
}

// DrawRequest is the fully resolved call handed to the plotting engine:
// measured pixel size, axis defaults applied, processed series, and the
// always-on tooltip formatter.
type DrawRequest struct {
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
	Tooltip     func(x, y float64) string
}

// Engine paints one DrawRequest onto its surface and returns the live handle.
type Engine interface {
	Draw(req DrawRequest) (Handle, error)
}

// FormatTooltip renders a cursor position rounded to 2 decimal places.
func FormatTooltip(x, y float64) string {
	return fmt.Sprintf("(%.2f, %.2f)", x, y)
}

// Coordinator turns input-text and size triggers into at most one
// normalize+draw pass per scheduled frame. Any new trigger cancels pending
// work; a superseded pass produces no observable side effect.
type Coordinator struct {
	mu     sync.Mutex
	engine Engine
	sched  Scheduler

	text   string
	width  int
	height int

	gen    uint64
	cancel func()

	state  State
	legend []LegendEntry
	errMsg string
	handle Handle

	onChange func(Snapshot)
}

// NewCoordinator wires an engine and a scheduler. onChange, if non-nil, is
// called after every completed pass (Rendered or Failed) with the fresh
// snapshot; it runs on the scheduler's goroutine.
func NewCoordinator(engine Engine, sched Scheduler, onChange func(Snapshot)) *Coordinator {
	return &Coordinator{
		engine:   engine,
		sched:    sched,
		state:    StateIdle,
		onChange: onChange,
	}
}

// SetInput replaces the raw config text and schedules a render.
func (c *Coordinator) SetInput(text string) {
	c.mu.Lock()
	c.text = text
	c.scheduleLocked()
	c.mu.Unlock()
}

// SetSize records the observed surface size and schedules a render. Reports
// where either dimension is not positive are suppressed: the engine cannot
// draw into a zero-area surface.
func (c *Coordinator) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		plotlog.Debugf("suppressing zero-size report %dx%d", width, height)
		return
	}
	c.mu.Lock()
	if width == c.width && height == c.height {
		c.mu.Unlock()
		return
	}
	c.width, c.height = width, height
	c.scheduleLocked()
	c.mu.Unlock()
}

// Invalidate schedules a render with unchanged inputs, for callers whose
// draw-affecting state lives outside the coordinator (zoom, theme).
func (c *Coordinator) Invalidate() {
	c.mu.Lock()
	c.scheduleLocked()
	c.mu.Unlock()
}

// Snapshot returns the current presentation state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels pending work and releases the live handle. Nothing may
// outlive the host surface.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.handle != nil {
		c.handle.Release()
		c.handle = nil
	}
	c.state = StateIdle
	c.mu.Unlock()
}

func (c *Coordinator) snapshotLocked() Snapshot {
	legend := make([]LegendEntry, len(c.legend))
	copy(legend, c.legend)
	return Snapshot{State: c.state, Legend: legend, Err: c.errMsg}
}

// scheduleLocked coalesces triggers: the previous pending task is cancelled
// and replaced, so at most one pass runs per frame no matter how many
// triggers arrive before it.
func (c *Coordinator) scheduleLocked() {
	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	c.state = StateScheduled
	c.cancel = c.sched.Schedule(func() { c.run(gen) })
}

func (c *Coordinator) run(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		// Superseded by a newer trigger; no side effects.
		c.mu.Unlock()
		return
	}
	if c.width <= 0 || c.height <= 0 {
		// Stay Scheduled until a trigger supplies usable dimensions.
		c.mu.Unlock()
		return
	}
	c.state = StateRendering

	nc, err := plotcfg.Normalize(c.text)
	if err != nil {
		plotlog.Errorf("config parse failed: %v", err)
		c.state = StateFailed
		c.errMsg = err.Error()
		c.legend = nil
		c.finishLocked()
		return
	}
	cfg := plotcfg.Process(nc)

	// Legend derives from processed data alone, before the draw call can
	// succeed or fail.
	c.legend = make([]LegendEntry, len(cfg.Series))
	for i, s := range cfg.Series {
		c.legend[i] = LegendEntry{Color: s.Color, Label: s.Label}
	}

	if c.handle != nil {
		c.handle.Release()
		c.handle = nil
	}
	handle, err := c.draw(buildDrawRequest(cfg, c.width, c.height))
	if err != nil {
		plotlog.Errorf("plot draw failed: %v", err)
		c.state = StateFailed
		c.errMsg = failureMessage(err)
		c.finishLocked()
		return
	}
	c.handle = handle
	c.state = StateRendered
	c.errMsg = ""
	c.finishLocked()
}

// finishLocked publishes the snapshot and releases the lock.
func (c *Coordinator) finishLocked() {
	snap := c.snapshotLocked()
	cb := c.onChange
	c.mu.Unlock()
	if cb != nil {
		cb(snap)
	}
}

// draw shields the coordinator from a panicking engine; a crash in the
// plotting collaborator becomes a Failed state, never a crash of the host.
func (c *Coordinator) draw(req DrawRequest) (handle Handle, err error) {
	defer func() {
		if r := recover(); r != nil {
			handle = nil
			err = fmt.Errorf("plot engine panic: %v", r)
		}
	}()
	return c.engine.Draw(req)
}

func failureMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "plot engine failed"
	}
	return err.Error()
}

// buildDrawRequest applies the draw-call defaults: [-10,10] per missing axis
// domain, "x"/"y" axis labels, grid on unless explicitly disabled (already
// resolved in cfg), and the 2-decimal tooltip formatter.
func buildDrawRequest(cfg *plotcfg.PlotConfig, width, height int) DrawRequest {
	req := DrawRequest{
		Width:       width,
		Height:      height,
		Title:       cfg.Title,
		Grid:        cfg.Grid,
		DisableZoom: cfg.DisableZoom,
		XDomain:     plotcfg.DefaultDomain(),
		YDomain:     plotcfg.DefaultDomain(),
		XLabel:      "x",
		YLabel:      "y",
		Series:      cfg.Series,
		Tooltip:     FormatTooltip,
	}
	if cfg.XAxis.Domain != nil {
		req.XDomain = *cfg.XAxis.Domain
	}
	if cfg.YAxis.Domain != nil {
		req.YDomain = *cfg.YAxis.Domain
	}
	if cfg.XAxis.Label != "" {
		req.XLabel = cfg.XAxis.Label
	}
	if cfg.YAxis.Label != "" {
		req.YLabel = cfg.YAxis.Label
	}
	return req
}
