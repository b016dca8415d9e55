package sim

import (
	"context"
	"fmt"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/orbit"
)

// Runner drives a System through a fixed-step run, capturing frames for
// renderers and feeding metrics. The core stays single-threaded: the
// runner is the only caller of Step.
type Runner struct {
	sys       *orbit.System
	metrics   []Metric
	observers []Observer
}

func New(sys *orbit.System) *Runner {
	return &Runner{sys: sys}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// System exposes the underlying system for live views that step manually.
func (r *Runner) System() *orbit.System { return r.sys }

// Run executes Duration/Dt steps, emitting a frame every StepsPerFrame
// steps (plus the initial state). Cancellation via ctx stops the run
// between steps and returns what was produced so far alongside ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0, steps/cfg.StepsPerFrame+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
		m.Observe(r.sys)
	}
	r.capture(result)

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		r.sys.Step(cfg.Dt)
		result.StepsTaken++

		for _, m := range r.metrics {
			m.Observe(r.sys)
		}

		if i%cfg.StepsPerFrame == 0 {
			r.capture(result)
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) capture(result *Result) {
	f := Frame{Time: r.sys.Time(), Bodies: r.sys.Positions()}
	result.Frames = append(result.Frames, f)
	for _, o := range r.observers {
		o.OnFrame(f)
	}
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.StepsPerFrame < 1 {
		return fmt.Errorf("steps per frame must be at least 1, got %d", cfg.StepsPerFrame)
	}
	return nil
}
