package plotloop

import "time"

// Scheduler defers a task to the next frame opportunity. Schedule returns a
// cancel func; a cancelled task must not run. Implementations run at most one
// task per Schedule call.
type Scheduler interface {
	Schedule(run func()) (cancel func())
}

// FrameScheduler defers tasks by a fixed frame interval using a single-shot
// timer. An optional dispatch hook moves execution onto the host's UI
// thread (fyne.Do in the viewer).
type FrameScheduler struct {
	Interval time.Duration
	Dispatch func(func())
}

// DefaultFrameInterval approximates one 60Hz paint frame.
const DefaultFrameInterval = 16 * time.Millisecond

// NewFrameScheduler returns a scheduler firing after interval (the default
// frame interval when nonpositive).
func NewFrameScheduler(interval time.Duration, dispatch func(func())) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameScheduler{Interval: interval, Dispatch: dispatch}
}

func (s *FrameScheduler) Schedule(run func()) (cancel func()) {
	t := time.AfterFunc(s.Interval, func() {
		if s.Dispatch != nil {
			s.Dispatch(run)
			return
		}
		run()
	})
	return func() { t.Stop() }
}
