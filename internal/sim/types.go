package sim

import "github.com/ElliottSullingeFarrall/Solar-Sym/internal/orbit"

// Day is one simulated day in seconds, the unit of elapsed time shown to
// the user.
const Day = 24 * 60 * 60

// Frame is the renderer-facing snapshot emitted once per captured frame.
type Frame struct {
	Time   float64
	Bodies []orbit.BodyState
}

// Days returns the elapsed simulation time in days.
func (f Frame) Days() float64 { return f.Time / Day }

// Metric observes the system once per integration step and reduces the
// run to a single number.
type Metric interface {
	Name() string
	Observe(sys *orbit.System)
	Value() float64
	Reset()
}

// Observer is notified of every captured frame.
type Observer interface {
	OnFrame(f Frame)
}

// Config drives a run. Dt is the integration step in seconds; one frame is
// captured every StepsPerFrame steps.
type Config struct {
	Dt            float64
	Duration      float64
	StepsPerFrame int
}

// Result is what a completed run produced.
type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
}
