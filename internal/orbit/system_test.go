package orbit

import (
	"errors"
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		bodies []*Body
		want   error
	}{
		{"empty set", nil, ErrNoBodies},
		{"zero mass", []*Body{{Name: "a", M: 0}}, ErrNonPositiveMass},
		{"negative mass", []*Body{{Name: "a", M: -1e24}}, ErrNonPositiveMass},
		{"duplicate name", []*Body{
			{Name: "a", M: 1, X: Vec{0, 0}},
			{Name: "a", M: 1, X: Vec{1, 0}},
		}, ErrDuplicateName},
		{"coincident", []*Body{
			{Name: "a", M: 1, X: Vec{5, 5}},
			{Name: "b", M: 1, X: Vec{5, 5}},
		}, ErrCoincident},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.bodies...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewValid(t *testing.T) {
	s, err := New(
		&Body{Name: "a", M: 1e30, X: Vec{0, 0}},
		&Body{Name: "b", M: 1e24, X: Vec{1e11, 0}},
	)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 bodies, got %d", s.Len())
	}
	if s.Time() != 0 {
		t.Errorf("expected t=0, got %g", s.Time())
	}
	if s.Body("b") == nil {
		t.Error("expected lookup by name to succeed")
	}
}

// Worked example: two bodies at rest, 1e11 m apart. After one
// 60 s step the light body's velocity points at the heavy one with
// magnitude G*m1/r^2 * dt, and neither body has moved yet.
func TestStepExampleScenario(t *testing.T) {
	m1, m2 := 1e30, 1e24
	sep, dt := 1e11, 60.0

	b1 := &Body{Name: "heavy", M: m1, X: Vec{0, 0}}
	b2 := &Body{Name: "light", M: m2, X: Vec{sep, 0}}

	s, err := New(b1, b2)
	if err != nil {
		t.Fatal(err)
	}
	s.Step(dt)

	wantV := G * m1 / (sep * sep) * dt
	if b2.V.X >= 0 {
		t.Errorf("light body must accelerate toward heavy, got vx=%g", b2.V.X)
	}
	if math.Abs(-b2.V.X-wantV)/wantV > 1e-12 {
		t.Errorf("expected |v|=%g, got %g", wantV, -b2.V.X)
	}

	// Positions use pre-step velocities, which were zero.
	if b1.X != (Vec{0, 0}) {
		t.Errorf("heavy body moved: (%g, %g)", b1.X.X, b1.X.Y)
	}
	if b2.X != (Vec{sep, 0}) {
		t.Errorf("light body moved: (%g, %g)", b2.X.X, b2.X.Y)
	}
}

// Stepping must match per-body updates computed entirely against the
// pre-step state, and must not match a naive sequential in-place update.
func TestStepTwoPhase(t *testing.T) {
	mk := func() []*Body {
		return []*Body{
			{Name: "a", M: 2e30, X: Vec{0, 0}, V: Vec{0, 1e3}},
			{Name: "b", M: 1e30, X: Vec{1.5e11, 0}, V: Vec{0, -2e4}},
			{Name: "c", M: 3e29, X: Vec{0, 2e11}, V: Vec{1e4, 0}},
		}
	}
	dt := 3600.0

	pre := mk()
	var wantX, wantV [3]Vec
	for i, b := range pre {
		others := make([]*Body, 0, 2)
		for j, o := range pre {
			if j != i {
				others = append(others, o)
			}
		}
		a := b.Force(others).Scale(1 / b.M)
		wantX[i] = b.X.Add(b.V.Scale(dt))
		wantV[i] = b.V.Add(a.Scale(dt))
	}

	bodies := mk()
	s, err := New(bodies...)
	if err != nil {
		t.Fatal(err)
	}
	s.Step(dt)

	for i, b := range bodies {
		if dv := b.X.Sub(wantX[i]).Norm(); dv > wantX[i].Norm()*1e-14 {
			t.Errorf("body %s: position differs from pre-step formula by %g", b.Name, dv)
		}
		if dv := b.V.Sub(wantV[i]).Norm(); dv > wantV[i].Norm()*1e-14 {
			t.Errorf("body %s: velocity differs from pre-step formula by %g", b.Name, dv)
		}
	}

	// Sequential in-place update: later bodies see already-advanced state.
	naive := mk()
	for i, b := range naive {
		others := make([]*Body, 0, 2)
		for j, o := range naive {
			if j != i {
				others = append(others, o)
			}
		}
		a := b.Force(others).Scale(1 / b.M)
		b.X = b.X.Add(b.V.Scale(dt))
		b.V = b.V.Add(a.Scale(dt))
	}

	diverged := false
	for i, b := range bodies {
		if b.V.Sub(naive[i].V).Norm() > 1e-9 {
			diverged = true
		}
	}
	if !diverged {
		t.Error("two-phase result should not match a sequential in-place update")
	}
}

func TestStepOrderIndependent(t *testing.T) {
	mk := func(perm [3]int) []*Body {
		base := []*Body{
			{Name: "a", M: 2e30, X: Vec{0, 0}, V: Vec{0, 1e3}},
			{Name: "b", M: 1e30, X: Vec{1.5e11, 0}, V: Vec{0, -2e4}},
			{Name: "c", M: 3e29, X: Vec{0, 2e11}, V: Vec{1e4, 0}},
		}
		out := make([]*Body, 3)
		for i, p := range perm {
			out[i] = base[p]
		}
		return out
	}

	perms := [][3]int{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}}
	var results []map[string]Vec
	for _, p := range perms {
		bodies := mk(p)
		s, err := New(bodies...)
		if err != nil {
			t.Fatal(err)
		}
		// Several steps so that force differences would reach positions.
		for i := 0; i < 3; i++ {
			s.Step(3600)
		}
		got := make(map[string]Vec, 3)
		for _, b := range bodies {
			got[b.Name] = b.X
		}
		results = append(results, got)
	}

	for name, x := range results[0] {
		for _, other := range results[1:] {
			if d := other[name].Sub(x).Norm(); d > x.Norm()*1e-14 {
				t.Errorf("body %s: position depends on iteration order (delta %g)", name, d)
			}
		}
	}
}

func TestTimeMonotonic(t *testing.T) {
	s, err := New(
		&Body{Name: "a", M: 1e30, X: Vec{0, 0}},
		&Body{Name: "b", M: 1e24, X: Vec{1e11, 0}},
	)
	if err != nil {
		t.Fatal(err)
	}

	dt := 60.0
	n := 1000
	for i := 0; i < n; i++ {
		s.Step(dt)
	}

	want := float64(n) * dt
	if math.Abs(s.Time()-want) > 1e-6*want {
		t.Errorf("expected t=%g after %d steps, got %g", want, n, s.Time())
	}
}

// sunEarth builds a circular two-body setup. The sun gets a compensating
// velocity so total momentum starts at zero.
func sunEarth() (*System, error) {
	const (
		mSun   = 1.989e30
		mEarth = 5.972e24
		r      = 1.49598261e11
	)
	v := math.Sqrt(G * mSun / r)
	return New(
		&Body{Name: "sun", M: mSun, X: Vec{0, 0}, V: Vec{0, -v * mEarth / mSun}},
		&Body{Name: "earth", M: mEarth, X: Vec{r, 0}, V: Vec{0, v}},
	)
}

func TestMomentumConserved(t *testing.T) {
	s, err := sunEarth()
	if err != nil {
		t.Fatal(err)
	}

	p0 := s.Momentum()
	for i := 0; i < 5000; i++ {
		s.Step(3600)
	}
	p1 := s.Momentum()

	// Internal forces are equal and opposite; only rounding remains.
	scale := 5.972e24 * 3e4
	if p1.Sub(p0).Norm()/scale > 1e-9 {
		t.Errorf("momentum drifted: |dp|=%g", p1.Sub(p0).Norm())
	}
}

func TestEnergyDriftBounded(t *testing.T) {
	s, err := sunEarth()
	if err != nil {
		t.Fatal(err)
	}

	e0 := s.Energy()
	if e0 >= 0 {
		t.Fatalf("bound system should have negative energy, got %g", e0)
	}

	// One full orbital period at dt=1h. Euler drift should stay small at
	// this step size.
	period := 2 * math.Pi * math.Sqrt(math.Pow(1.49598261e11, 3)/(G*1.989e30))
	steps := int(period / 3600)
	for i := 0; i < steps; i++ {
		s.Step(3600)
	}

	drift := math.Abs(s.Energy()-e0) / math.Abs(e0)
	if drift > 0.05 {
		t.Errorf("energy drift %.4f exceeds 5%% over one period", drift)
	}
}

func TestPositions(t *testing.T) {
	s, err := New(
		&Body{Name: "sun", Color: "yellow", M: 1.989e30, X: Vec{0, 0}, R: 696340e3},
		&Body{Name: "earth", Color: "blue", M: 5.972e24, X: Vec{1.496e11, 0}, R: 6371e3},
	)
	if err != nil {
		t.Fatal(err)
	}

	states := s.Positions()
	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d", len(states))
	}
	if states[0].Name != "sun" || states[1].Name != "earth" {
		t.Error("expected insertion order to be preserved")
	}
	if states[1].Color != "blue" || states[1].R != 6371e3 {
		t.Error("render attributes not carried through")
	}
	if states[1].X != (Vec{1.496e11, 0}) {
		t.Error("position not carried through")
	}
}
