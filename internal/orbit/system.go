package orbit

import "fmt"

// System owns a fixed, insertion-ordered set of bodies and advances their
// joint state with forward Euler steps. The body set never changes after
// construction, and the System is the sole owner of its bodies for the
// duration of a run.
type System struct {
	t      float64
	order  []*Body
	byName map[string]*Body

	next   []pending // scratch for the compute phase
	others []*Body   // scratch for per-body force sums
}

// pending holds a body's computed next state until the commit phase.
type pending struct {
	x, v Vec
}

// BodyState is the per-body snapshot handed to renderers.
type BodyState struct {
	Name  string
	Color string
	X     Vec
	R     float64
}

// New validates the body set and builds a System at t=0. It rejects empty
// sets, duplicate names, non-positive masses, and coincident positions.
func New(bodies ...*Body) (*System, error) {
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}

	byName := make(map[string]*Body, len(bodies))
	for _, b := range bodies {
		if b.M <= 0 {
			return nil, fmt.Errorf("body %q (m=%g): %w", b.Name, b.M, ErrNonPositiveMass)
		}
		if _, dup := byName[b.Name]; dup {
			return nil, fmt.Errorf("body %q: %w", b.Name, ErrDuplicateName)
		}
		byName[b.Name] = b
	}

	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].X == bodies[j].X {
				return nil, fmt.Errorf("bodies %q and %q: %w",
					bodies[i].Name, bodies[j].Name, ErrCoincident)
			}
		}
	}

	return &System{
		order:  bodies,
		byName: byName,
		next:   make([]pending, len(bodies)),
		others: make([]*Body, 0, len(bodies)-1),
	}, nil
}

// Step advances every body and the clock by dt seconds.
//
// The update runs in two phases: new positions and velocities for all
// bodies are computed against the pre-step state, then committed together.
// Updating in place instead would feed already-advanced positions into
// later force sums and break the symmetry of Newton's third law.
//
// Forward Euler is first order and not symplectic, so energy drifts over
// long horizons; dt must stay well below the innermost orbital period.
func (s *System) Step(dt float64) {
	for i, b := range s.order {
		others := s.others[:0]
		for j, o := range s.order {
			if j != i {
				others = append(others, o)
			}
		}
		a := b.Force(others).Scale(1 / b.M)
		s.next[i] = pending{
			x: b.X.Add(b.V.Scale(dt)),
			v: b.V.Add(a.Scale(dt)),
		}
	}

	for i, b := range s.order {
		b.X = s.next[i].x
		b.V = s.next[i].v
	}
	s.t += dt
}

// Time returns the elapsed simulation time in seconds.
func (s *System) Time() float64 { return s.t }

// Len returns the number of bodies.
func (s *System) Len() int { return len(s.order) }

// Body returns the named body, or nil.
func (s *System) Body(name string) *Body { return s.byName[name] }

// Positions snapshots every body's render state in insertion order.
func (s *System) Positions() []BodyState {
	states := make([]BodyState, len(s.order))
	for i, b := range s.order {
		states[i] = BodyState{Name: b.Name, Color: b.Color, X: b.X, R: b.R}
	}
	return states
}

// Energy returns the total mechanical energy, kinetic plus pairwise
// gravitational potential. Diagnostic only; the integrator never reads it.
func (s *System) Energy() float64 {
	ke, pe := 0.0, 0.0
	for i, b := range s.order {
		v := b.V.Norm()
		ke += 0.5 * b.M * v * v
		for j := i + 1; j < len(s.order); j++ {
			o := s.order[j]
			pe -= G * b.M * o.M / b.X.Sub(o.X).Norm()
		}
	}
	return ke + pe
}

// Momentum returns the total linear momentum.
func (s *System) Momentum() Vec {
	var p Vec
	for _, b := range s.order {
		p = p.Add(b.V.Scale(b.M))
	}
	return p
}

// AngularMomentum returns the total angular momentum about the origin.
func (s *System) AngularMomentum() float64 {
	l := 0.0
	for _, b := range s.order {
		l += b.M * b.X.Cross(b.V)
	}
	return l
}
